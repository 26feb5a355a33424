package enums

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied by the catalog query pipeline.
type SortKey string

const (
	SortKeyFeatured  SortKey = "featured"
	SortKeyPriceAsc  SortKey = "price-asc"
	SortKeyPriceDesc SortKey = "price-desc"
	SortKeyAlpha     SortKey = "alpha"
)

var validSortKeys = []SortKey{
	SortKeyFeatured,
	SortKeyPriceAsc,
	SortKeyPriceDesc,
	SortKeyAlpha,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input maps to featured.
func ParseSortKey(value string) (SortKey, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return SortKeyFeatured, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
