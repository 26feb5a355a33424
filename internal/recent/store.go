package recent

import (
	"context"
	"slices"
)

// Store reads and writes the whole recently viewed list under a single key.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}

// MemoryStore keeps the list for the lifetime of the process.
type MemoryStore struct {
	ids []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) ([]string, error) {
	return slices.Clone(m.ids), nil
}

func (m *MemoryStore) Save(_ context.Context, ids []string) error {
	m.ids = slices.Clone(ids)
	return nil
}
