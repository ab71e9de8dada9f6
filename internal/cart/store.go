package cart

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
	pkgredis "github.com/gtlearning/storefront-backend/pkg/redis"
)

// SnapshotStore persists cart state between requests. The store is a
// cache: anything it returns is replayed through the aggregator, so a
// lost or stale snapshot degrades to an empty cart, never a corrupt one.
type SnapshotStore interface {
	Save(ctx context.Context, token string, lines []LineItem, ttl time.Duration) error
	Load(ctx context.Context, token string) ([]LineItem, error)
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	client *pkgredis.Client
}

// NewRedisStore builds a SnapshotStore backed by the shared redis client.
func NewRedisStore(client *pkgredis.Client) SnapshotStore {
	return &redisStore{client: client}
}

func (s *redisStore) Save(ctx context.Context, token string, lines []LineItem, ttl time.Duration) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.client.Set(ctx, s.client.CartKey(token), payload, ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	return nil
}

func (s *redisStore) Load(ctx context.Context, token string) ([]LineItem, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(token))
	if err != nil {
		if pkgredis.IsNil(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	var lines []LineItem
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		// A snapshot we cannot decode is treated as a cache miss.
		return nil, nil
	}
	return lines, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart snapshot")
	}
	return nil
}
