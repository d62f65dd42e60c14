package kvstore

import (
	"context"
	"encoding/json"
)

// Store is the persistent key-value store the session, registry and cart
// components write through. Values are JSON documents. Implementations are
// constructor-injected; components never reach for a global.
type Store interface {
	// Get returns the raw value, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the value at key into out. A missing key returns
// (false, nil). A corrupt value is treated as absent: the key is deleted
// and (false, nil) is returned, so parse garbage never reaches callers.
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	b, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		_ = s.Remove(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, b)
}
