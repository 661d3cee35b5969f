// Package storage defines the string-keyed slot store that backs visitor
// carts. Backends live in the sub-packages.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// KV is a generic key-value string store.
type KV interface {
	// Get returns ErrNotFound when the key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
}
