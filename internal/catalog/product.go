package catalog

import (
	"strings"

	"github.com/next1store/marketoo-down/pkg/enums"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold applies when a product does not carry its own threshold.
const DefaultLowStockThreshold = 3

// Product is a read-only catalog record.
type Product struct {
	ID                string           `json:"id" validate:"required"`
	Title             string           `json:"title" validate:"required"`
	Vendor            string           `json:"vendor"`
	Price             decimal.Decimal  `json:"price"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price,omitempty"`
	Collection        string           `json:"collection,omitempty"`
	Image             string           `json:"image"`
	Description       string           `json:"description"`
	Inventory         int              `json:"inventory" validate:"gte=0"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty" validate:"omitempty,gte=0"`
}

// Available reports whether at least one unit can be sold.
func (p Product) Available() bool {
	return p.Inventory > 0
}

// OutOfStock is the inverse of Available; the storefront disables add-to-cart for it.
func (p Product) OutOfStock() bool {
	return !p.Available()
}

// Threshold returns the low-stock threshold, falling back to the default when
// the record omits it or sets it to zero.
func (p Product) Threshold() int {
	if p.LowStockThreshold == nil || *p.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return *p.LowStockThreshold
}

// LowStock reports a positive inventory at or below the threshold.
func (p Product) LowStock() bool {
	return p.Inventory > 0 && p.Inventory <= p.Threshold()
}

// OnSale reports whether the compare-at price is strictly above the price.
func (p Product) OnSale() bool {
	return p.CompareAtPrice != nil && p.CompareAtPrice.GreaterThan(p.Price)
}

// SearchText is the concatenation matched by free-text search.
func (p Product) SearchText() string {
	var b strings.Builder
	b.Grow(len(p.Title) + len(p.Vendor) + len(p.Description))
	b.WriteString(p.Title)
	b.WriteString(p.Vendor)
	b.WriteString(p.Description)
	return b.String()
}

// Badges summarizes the display flags of a product card.
type Badges struct {
	OnSale     bool `json:"on_sale"`
	LowStock   bool `json:"low_stock"`
	OutOfStock bool `json:"out_of_stock"`
}

func (p Product) Badges() Badges {
	return Badges{
		OnSale:     p.OnSale(),
		LowStock:   p.LowStock(),
		OutOfStock: p.OutOfStock(),
	}
}

// List returns the set badges in display order.
func (b Badges) List() []enums.ProductBadge {
	out := make([]enums.ProductBadge, 0, 3)
	if b.OnSale {
		out = append(out, enums.ProductBadgeSale)
	}
	if b.OutOfStock {
		out = append(out, enums.ProductBadgeOutOfStock)
	} else if b.LowStock {
		out = append(out, enums.ProductBadgeLowStock)
	}
	return out
}
