package recent

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"github.com/next1store/marketoo-down/pkg/redis"
)

type fakeKV struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
	delErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	if f.delErr != nil {
		return f.delErr
	}
	for _, key := range keys {
		delete(f.data, key)
		delete(f.ttls, key)
	}
	return nil
}

func (f *fakeKV) RecentViewsKey(storageKey string) string {
	return "mk:recent:" + storageKey
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewRedisStore(kv, "marketoo_views", time.Hour)
	key := "mk:recent:marketoo_views"

	ids, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("missing key should read as an empty list, got %v", ids)
	}

	if err := store.Save(ctx, []string{"b", "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if kv.data[key] != `["b","a"]` {
		t.Fatalf("unexpected payload %q", kv.data[key])
	}
	if kv.ttls[key] != time.Hour {
		t.Fatalf("expected ttl of one hour, got %v", kv.ttls[key])
	}

	ids, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !slices.Equal(ids, []string{"b", "a"}) {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestRedisStoreEmptyListDropsKey(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewRedisStore(kv, "marketoo_views", 0)

	if err := store.Save(ctx, []string{"a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if _, ok := kv.data["mk:recent:marketoo_views"]; ok {
		t.Fatalf("empty list should delete the key")
	}
	ids, err := store.Load(ctx)
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected empty list after clearing, got %v err=%v", ids, err)
	}

	kv.delErr = errors.New("connection reset")
	err = store.Save(ctx, []string{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error when delete fails, got %v", err)
	}
}

func TestRedisStoreErrors(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.data["mk:recent:k"] = "not json"
	store := NewRedisStore(kv, "k", 0)

	if _, err := store.Load(ctx); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error for a corrupt payload, got %v", err)
	}

	kv.getErr = errors.New("connection refused")
	if _, err := store.Load(ctx); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}

	kv.setErr = errors.New("read only replica")
	if err := store.Save(ctx, []string{"a"}); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error on write failure, got %v", err)
	}
}

func TestTrackerOverRedisDegradesOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.setErr = errors.New("OOM")
	tracker := NewTracker(NewRedisStore(kv, "marketoo_views", 0), DefaultMax, nil, nil)

	if got := tracker.RecordView(ctx, "a"); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("unexpected list %v", got)
	}
	if got := tracker.RecordView(ctx, "b"); !slices.Equal(got, []string{"b", "a"}) {
		t.Fatalf("unexpected list %v", got)
	}
	if len(kv.data) != 0 {
		t.Fatalf("nothing should have been stored, got %v", kv.data)
	}
}
