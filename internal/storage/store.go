// Package storage defines the key-value persistence port and an in-memory backend.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// Store is a string key-value store. Values are opaque to the store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// UpdateFunc computes the new value of a key from its current value.
// found is false when the key has never been set.
type UpdateFunc func(current string, found bool) (string, error)

// Updater is implemented by stores that can read-modify-write one key
// atomically across processes.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
