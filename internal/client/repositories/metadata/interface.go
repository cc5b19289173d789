// Package metadata stores small client-side key/value state: the cached
// login of the current owner and the last synchronization marker.
package metadata

import (
	"context"
)

// Repository is a key/value store. Absent keys read as nil.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns the present keys among keys.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany upserts every pair in one statement.
	SetMany(ctx context.Context, values map[string][]byte) error
	// Delete removes keys and reports how many existed.
	Delete(ctx context.Context, keys ...string) (int64, error)
}
