package query

import (
	"sort"
	"strings"

	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/pkg/enums"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used for alphabetical ordering when none is configured.
const DefaultLocale = "ar"

// Pipeline filters and orders catalog products. It is not safe for concurrent use.
type Pipeline struct {
	collator *collate.Collator
	folder   cases.Caser
}

// NewPipeline builds a pipeline whose alphabetical sort follows the given locale.
// Unknown locales fall back to the root collation order.
func NewPipeline(locale string) *Pipeline {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Und
	}
	return &Pipeline{
		collator: collate.New(tag),
		folder:   cases.Fold(),
	}
}

// Run applies the collection filter, then the search filter, then the sort.
// It never returns nil and never duplicates or drops products beyond the filters.
func (p *Pipeline) Run(products []catalog.Product, criteria Criteria) []catalog.Product {
	criteria = criteria.Normalized()

	result := make([]catalog.Product, 0, len(products))
	for _, product := range products {
		if p.Matches(product, criteria) {
			result = append(result, product)
		}
	}

	p.sortProducts(result, criteria.Sort)
	return result
}

// Matches reports whether a single product passes both filters of criteria.
func (p *Pipeline) Matches(product catalog.Product, criteria Criteria) bool {
	criteria = criteria.Normalized()
	if criteria.FiltersCollection() && product.Collection != criteria.Collection {
		return false
	}
	needle := p.fold(criteria.Search)
	return needle == "" || strings.Contains(p.fold(product.SearchText()), needle)
}

// SortCollections returns collections ordered by title when alpha is set,
// otherwise in their catalog order.
func (p *Pipeline) SortCollections(collections []catalog.Collection, alpha bool) []catalog.Collection {
	out := append([]catalog.Collection(nil), collections...)
	if alpha {
		sort.SliceStable(out, func(i, j int) bool {
			return p.collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}

func (p *Pipeline) sortProducts(products []catalog.Product, key enums.SortKey) {
	switch key {
	case enums.SortKeyPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case enums.SortKeyPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case enums.SortKeyAlpha:
		sort.SliceStable(products, func(i, j int) bool {
			return p.collator.CompareString(products[i].Title, products[j].Title) < 0
		})
	}
}

func (p *Pipeline) fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return p.folder.String(s)
}
