package repository

import "context"

// IKVStore is the injected key-value store behind coupons, plans and small
// cached settings. Implementations are free to be Redis, a database table or
// an in-memory map; callers must not assume durability semantics beyond
// read-your-writes within one deployment.
type IKVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Keys lists stored keys matching the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ErrKeyNotFound is returned by Get for absent keys.
type ErrKeyNotFound struct{ Key string }

func (e *ErrKeyNotFound) Error() string { return "key not found: " + e.Key }
