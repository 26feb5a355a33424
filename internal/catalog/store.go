package catalog

// Store holds the products and collections of a session. It is immutable
// after construction; accessors hand out copies.
type Store struct {
	products    []Product
	byID        map[string]int
	collections []Collection
	byHandle    map[string]int
}

// NewStore validates the records and indexes them by identifier.
func NewStore(products []Product, collections []Collection) (*Store, error) {
	if err := Validate(products, collections); err != nil {
		return nil, err
	}

	s := &Store{
		products:    append([]Product(nil), products...),
		byID:        make(map[string]int, len(products)),
		collections: append([]Collection(nil), collections...),
		byHandle:    make(map[string]int, len(collections)),
	}
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	for i, c := range s.collections {
		s.byHandle[c.Handle] = i
	}
	return s, nil
}

// Products returns the catalog in featured order.
func (s *Store) Products() []Product {
	return append([]Product(nil), s.products...)
}

// Product resolves an identifier.
func (s *Store) Product(id string) (Product, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[idx], true
}

func (s *Store) Collections() []Collection {
	return append([]Collection(nil), s.collections...)
}

func (s *Store) Collection(handle string) (Collection, bool) {
	idx, ok := s.byHandle[handle]
	if !ok {
		return Collection{}, false
	}
	return s.collections[idx], true
}

func (s *Store) Len() int {
	return len(s.products)
}
