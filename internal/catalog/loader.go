package catalog

import (
	"encoding/json"
	"io"
	"os"

	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"github.com/shopspring/decimal"
)

// LoadFiles reads the products and collections JSON documents and builds a Store.
func LoadFiles(productsPath, collectionsPath string) (*Store, error) {
	pf, err := os.Open(productsPath)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open products file")
	}
	defer pf.Close()

	cf, err := os.Open(collectionsPath)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open collections file")
	}
	defer cf.Close()

	return Load(pf, cf)
}

// Load decodes both documents and builds a Store.
func Load(products, collections io.Reader) (*Store, error) {
	ps, err := DecodeProducts(products)
	if err != nil {
		return nil, err
	}
	cs, err := DecodeCollections(collections)
	if err != nil {
		return nil, err
	}
	return NewStore(ps, cs)
}

func DecodeProducts(r io.Reader) ([]Product, error) {
	var products []Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode products")
	}
	for i := range products {
		products[i].CompareAtPrice = normalizeCompareAt(products[i].CompareAtPrice)
	}
	return products, nil
}

func DecodeCollections(r io.Reader) ([]Collection, error) {
	var collections []Collection
	if err := json.NewDecoder(r).Decode(&collections); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode collections")
	}
	return collections, nil
}

// normalizeCompareAt treats a zero compare-at price as absent.
func normalizeCompareAt(v *decimal.Decimal) *decimal.Decimal {
	if v == nil || v.IsZero() {
		return nil
	}
	return v
}
