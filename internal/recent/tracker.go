package recent

import (
	"context"
	"slices"
	"strings"

	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/pkg/logger"
	"github.com/next1store/marketoo-down/pkg/metrics"
)

const (
	// DefaultMax bounds the stored list.
	DefaultMax = 8
	// DefaultDisplay bounds how many recent products are shown.
	DefaultDisplay = 4
)

// Resolver looks products up by identifier.
type Resolver interface {
	Product(id string) (catalog.Product, bool)
}

// Tracker keeps the most-recently-used list of viewed product identifiers.
// The in-memory list is authoritative; storage failures degrade to session-only tracking.
type Tracker struct {
	store   Store
	max     int
	ids     []string
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewTracker builds a tracker over store. A nil store keeps the list in memory only.
func NewTracker(store Store, maxLen int, logg *logger.Logger, m *metrics.StorefrontMetrics) *Tracker {
	if store == nil {
		store = NewMemoryStore()
	}
	if maxLen <= 0 {
		maxLen = DefaultMax
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Tracker{
		store:   store,
		max:     maxLen,
		ids:     []string{},
		logg:    logg,
		metrics: m,
	}
}

// Load reads the persisted list once at startup. Unreadable state leaves the list empty.
func (t *Tracker) Load(ctx context.Context) {
	ids, err := t.store.Load(ctx)
	if err != nil {
		t.metrics.IncPersistFailure("load")
		t.logg.Warn(t.logg.WithField(ctx, "error", err.Error()), "recently viewed list could not be loaded")
		t.ids = []string{}
		return
	}
	t.ids = sanitize(ids, t.max)
}

// RecordView moves productID to the front of the list and persists the result.
func (t *Tracker) RecordView(ctx context.Context, productID string) []string {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return t.IDs()
	}
	t.ids = promote(t.ids, productID, t.max)
	t.metrics.IncView()

	if err := t.store.Save(ctx, t.IDs()); err != nil {
		t.metrics.IncPersistFailure("save")
		ctx = t.logg.WithFields(ctx, map[string]any{"product_id": productID, "error": err.Error()})
		t.logg.Warn(ctx, "recently viewed list not persisted")
	}
	return t.IDs()
}

// IDs returns a copy of the list, most recent first.
func (t *Tracker) IDs() []string {
	return slices.Clone(t.ids)
}

func (t *Tracker) Len() int {
	return len(t.ids)
}

// RecentList resolves the list against the catalog, dropping discontinued products, bounded to limit.
func (t *Tracker) RecentList(products Resolver, limit int) []catalog.Product {
	out := make([]catalog.Product, 0, min(max(limit, 0), len(t.ids)))
	if limit <= 0 {
		return out
	}
	for _, id := range t.ids {
		product, ok := products.Product(id)
		if !ok {
			continue
		}
		out = append(out, product)
		if len(out) == limit {
			break
		}
	}
	return out
}

func promote(ids []string, id string, limit int) []string {
	out := make([]string, 0, min(len(ids)+1, limit))
	out = append(out, id)
	for _, existing := range ids {
		if len(out) == limit {
			break
		}
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func sanitize(ids []string, limit int) []string {
	out := make([]string, 0, min(len(ids), limit))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == limit {
			break
		}
	}
	return out
}
