package pagination

const (
	// DefaultPageSize is the catalog grid size when none is configured.
	DefaultPageSize = 8
	// MaxPageSize caps how many products a single page may hold.
	MaxPageSize = 100
)

// Page is one slice of a result list together with its position metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	Index      int `json:"index"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ShowControls reports whether the presentation layer should draw page buttons.
func (p Page[T]) ShowControls() bool {
	return p.TotalPages > 1
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Index < p.TotalPages
}

// NormalizePageSize enforces the default and maximum page sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// NormalizeIndex raises indices below 1 to the first page. Indices past the
// last page are left alone; they simply yield an empty page.
func NormalizeIndex(index int) int {
	if index < 1 {
		return 1
	}
	return index
}

// TotalPages returns ceil(total / size), or zero for an empty list.
func TotalPages(total, size int) int {
	size = NormalizePageSize(size)
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate slices list into the requested 1-based page. The returned items
// share the backing array of list.
func Paginate[T any](list []T, size, index int) Page[T] {
	size = NormalizePageSize(size)
	index = NormalizeIndex(index)

	page := Page[T]{
		Items:      []T{},
		Index:      index,
		Size:       size,
		TotalItems: len(list),
		TotalPages: TotalPages(len(list), size),
	}

	if index > page.TotalPages {
		return page
	}
	start := (index - 1) * size
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	page.Items = list[start:end:end]
	return page
}
