package query

import (
	"strings"

	"github.com/next1store/marketoo-down/pkg/enums"
)

// AllCollections disables the collection filter.
const AllCollections = "all"

// Criteria is the transient filter/sort state derived from the UI on every interaction.
type Criteria struct {
	Collection string
	Search     string
	Sort       enums.SortKey
}

// DefaultCriteria shows the whole catalog in featured order.
func DefaultCriteria() Criteria {
	return Criteria{Collection: AllCollections, Sort: enums.SortKeyFeatured}
}

// Normalized fills blanks with their defaults and trims the search text.
func (c Criteria) Normalized() Criteria {
	c.Collection = strings.TrimSpace(c.Collection)
	if c.Collection == "" {
		c.Collection = AllCollections
	}
	c.Search = strings.TrimSpace(c.Search)
	if !c.Sort.IsValid() {
		c.Sort = enums.SortKeyFeatured
	}
	return c
}

// FiltersCollection reports whether a specific collection is selected.
func (c Criteria) FiltersCollection() bool {
	return c.Collection != "" && c.Collection != AllCollections
}
