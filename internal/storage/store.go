// Package storage holds the durable key/value stores the record
// repositories write to. Every key holds one whole serialized collection.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when a key has never been written.
	ErrNotFound = errors.New("key not found")
	ErrClosed   = errors.New("store closed")
)

// Store is durable key -> string storage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
