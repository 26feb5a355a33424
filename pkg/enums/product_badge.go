package enums

import "fmt"

// ProductBadge represents the flags shown on a product card.
type ProductBadge string

const (
	ProductBadgeSale       ProductBadge = "sale"
	ProductBadgeLowStock   ProductBadge = "low_stock"
	ProductBadgeOutOfStock ProductBadge = "out_of_stock"
)

var validProductBadges = []ProductBadge{
	ProductBadgeSale,
	ProductBadgeLowStock,
	ProductBadgeOutOfStock,
}

var productBadgeLabels = map[ProductBadge]string{
	ProductBadgeSale:       "عرض خاص",
	ProductBadgeLowStock:   "متوفر بكمية محدودة",
	ProductBadgeOutOfStock: "نفد المخزون",
}

// String implements fmt.Stringer.
func (b ProductBadge) String() string {
	return string(b)
}

// IsValid reports whether the value is a known ProductBadge.
func (b ProductBadge) IsValid() bool {
	for _, candidate := range validProductBadges {
		if candidate == b {
			return true
		}
	}
	return false
}

// Label is the storefront display text.
func (b ProductBadge) Label() string {
	return productBadgeLabels[b]
}

// ParseProductBadge converts raw input into a ProductBadge.
func ParseProductBadge(value string) (ProductBadge, error) {
	for _, candidate := range validProductBadges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product badge %q", value)
}
