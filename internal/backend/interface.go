// Package backend builds the key/value store the book persists into.
package backend

import (
	"context"

	"pocketbook/internal/cache"
	"pocketbook/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the store and the function that releases it
type BackendResult struct {
	// Store is the configured backend behind a read cache.
	Store storage.Store
	// Cache is the read cache in front of Store, exposed for stats.
	Cache   *cache.LRUCache[string]
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}
