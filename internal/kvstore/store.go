// Package kvstore is the persistent local key-value storage behind the session.
// Values are opaque strings; callers own their encoding.
package kvstore

import "context"

// Store is implemented by every backend. Get returns domain.ErrNotFound for an
// absent key. Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
