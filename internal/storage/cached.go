package storage

import (
	"context"

	"pocketbook/internal/cache"
)

// CachedStore serves repeated reads of a key from memory. Writes go to the
// inner store first and only reach the cache once they succeed.
type CachedStore struct {
	inner Store
	cache cache.Cache[string]
}

func NewCachedStore(inner Store, c cache.Cache[string]) *CachedStore {
	return &CachedStore{inner: inner, cache: c}
}

// Get implements Store. Absent keys are not cached.
func (s *CachedStore) Get(ctx context.Context, key string) (string, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}
	v, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	s.cache.Set(key, v)
	return v, nil
}

// Set implements Store.
func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.inner.Set(ctx, key, value); err != nil {
		s.cache.Delete(key)
		return err
	}
	s.cache.Set(key, value)
	return nil
}

func (s *CachedStore) Close() error {
	return s.inner.Close()
}

// Unwrap returns the store behind the cache.
func (s *CachedStore) Unwrap() Store {
	return s.inner
}
