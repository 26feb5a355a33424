package recent

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"github.com/next1store/marketoo-down/pkg/redis"
)

// KV is the slice of the redis client the redis store needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	RecentViewsKey(storageKey string) string
}

// RedisStore keeps the list as a JSON array of identifiers under one key.
type RedisStore struct {
	kv  KV
	key string
	ttl time.Duration
}

// NewRedisStore builds a store under the namespaced storage key. A zero ttl never expires.
func NewRedisStore(kv KV, storageKey string, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, key: kv.RecentViewsKey(storageKey), ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context) ([]string, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, redis.ErrNil) {
		return []string{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent views")
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode recent views")
	}
	return ids, nil
}

// Save writes the list, or drops the key when the list is empty.
func (s *RedisStore) Save(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		if err := s.kv.Del(ctx, s.key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear recent views")
		}
		return nil
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode recent views")
	}
	if err := s.kv.Set(ctx, s.key, string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save recent views")
	}
	return nil
}
