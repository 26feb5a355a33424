package recent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/pkg/logger"
	"github.com/next1store/marketoo-down/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingStore) Load(context.Context) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return []string{}, nil
}

func (f *failingStore) Save(context.Context, []string) error {
	f.saves++
	return f.saveErr
}

type mapResolver map[string]catalog.Product

func (m mapResolver) Product(id string) (catalog.Product, bool) {
	p, ok := m[id]
	return p, ok
}

func TestRecordViewMovesToFront(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(NewMemoryStore(), DefaultMax, nil, nil)

	tracker.RecordView(ctx, "a")
	tracker.RecordView(ctx, "b")
	tracker.RecordView(ctx, "c")
	require.Equal(t, []string{"c", "b", "a"}, tracker.IDs())

	got := tracker.RecordView(ctx, "a")
	assert.Equal(t, []string{"a", "c", "b"}, got)
	assert.Equal(t, 3, tracker.Len(), "re-viewing keeps the length")

	tracker.RecordView(ctx, "  ")
	assert.Equal(t, 3, tracker.Len(), "blank ids are ignored")
}

func TestRecordViewBoundsAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(NewMemoryStore(), DefaultMax, nil, nil)
	rng := rand.New(rand.NewPCG(3, 4))

	for step := 0; step < 500; step++ {
		id := fmt.Sprintf("p-%d", rng.IntN(20))
		before := tracker.IDs()
		ids := tracker.RecordView(ctx, id)

		require.LessOrEqual(t, len(ids), DefaultMax)
		require.Equal(t, id, ids[0])
		seen := map[string]bool{}
		for _, v := range ids {
			require.False(t, seen[v], "duplicate %s in %v", v, ids)
			seen[v] = true
		}
		for _, v := range before {
			if v == id {
				require.Len(t, ids, len(before), "re-view must not change the length")
			}
		}
	}
}

func TestRecordViewPersistsEveryCall(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tracker := NewTracker(store, DefaultMax, nil, nil)

	tracker.RecordView(ctx, "a")
	tracker.RecordView(ctx, "b")

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, persisted)

	reloaded := NewTracker(store, DefaultMax, nil, nil)
	reloaded.Load(ctx)
	assert.Equal(t, []string{"b", "a"}, reloaded.IDs())
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(reg)

	store := &failingStore{saveErr: errors.New("quota exceeded")}
	tracker := NewTracker(store, DefaultMax, logg, m)

	ids := tracker.RecordView(ctx, "a")
	assert.Equal(t, []string{"a"}, ids)
	assert.Equal(t, 1, store.saves)
	assert.Contains(t, buf.String(), "recently viewed list not persisted")
	assert.Contains(t, buf.String(), "quota exceeded")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var failures float64
	for _, mf := range mfs {
		if mf.GetName() == "marketoo_recent_persist_failures_total" {
			failures = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), failures)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	tracker := NewTracker(&failingStore{loadErr: errors.New("corrupt")}, DefaultMax, nil, nil)
	tracker.Load(context.Background())
	assert.Empty(t, tracker.IDs())

	tracker.RecordView(context.Background(), "a")
	assert.Equal(t, []string{"a"}, tracker.IDs())
}

func TestLoadSanitizesStoredList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, []string{"a", "", "b", "a", "c", "d", "e", "f", "g", "h", "i"}))

	tracker := NewTracker(store, DefaultMax, nil, nil)
	tracker.Load(ctx)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, tracker.IDs())
}

func TestRecentListDropsDiscontinued(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(nil, DefaultMax, nil, nil)
	for _, id := range []string{"a", "gone", "b", "c", "d", "e"} {
		tracker.RecordView(ctx, id)
	}

	resolver := mapResolver{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		resolver[id] = catalog.Product{ID: id}
	}

	got := tracker.RecentList(resolver, DefaultDisplay)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"e", "d", "c", "b"}, ids)

	assert.Empty(t, tracker.RecentList(resolver, 0))
	assert.Empty(t, NewTracker(nil, DefaultMax, nil, nil).RecentList(resolver, DefaultDisplay))
}
