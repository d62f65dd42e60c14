package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs a Store with a redis instance. Keys are prefixed with a
// profile namespace so several storefront profiles can share one server;
// within a namespace the store is single-writer by construction, matching
// the one-tab assumption of the original app. No TTLs are set: session
// expiry is a logical check on read, not a store-level eviction.
type Redis struct {
	rdb *redis.Client
	ns  string
}

func NewRedis(addr, namespace string) *Redis {
	r := redis.NewClient(&redis.Options{Addr: addr})
	_ = r.WithTimeout(2 * time.Second)
	return &Redis{rdb: r, ns: namespace}
}

func (r *Redis) key(k string) string { return "store:" + r.ns + ":" + k }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.key(key), value, 0).Err()
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.key(key)).Err()
}

func (r *Redis) Close() error { return r.rdb.Close() }
