package catalog

// Collection groups products for filtering and navigation.
type Collection struct {
	Handle      string `json:"handle" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}
