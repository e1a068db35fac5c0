package backend

import (
	"context"
	"errors"
	"fmt"

	"pocketbook/internal/cache"
	"pocketbook/internal/log"
	"pocketbook/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend. The returned store reads
// through an LRU cache whose expired entries are evicted in the background
// until Cleanup runs.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		inner storage.Store
		err   error
	)
	switch config.Type {
	case SQLiteBackend:
		inner, err = f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		inner = f.createMemoryBackend(ctx, config)
	default:
		err = fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	lru := cache.NewLRUCache[string](config.CacheSize, config.CacheTTL)
	manager := cache.NewManager(f.logger.With(log.FieldComponent, log.ComponentCache).Logger)
	manager.Register(lru)
	manager.StartCleanup(config.CacheTTL)

	return &BackendResult{
		Store: storage.NewCachedStore(inner, lru),
		Cache: lru,
		Cleanup: func() error {
			manager.Stop()
			return inner.Close()
		},
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (storage.Store, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.DebugContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return store, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) storage.Store {
	if config.DataDirectory == "" {
		f.logger.DebugContext(ctx, "Initialized empty memory backend")
		return storage.NewMemoryStore(nil)
	}

	store := storage.NewMemoryStoreFromFiles(config.DataDirectory)
	f.logger.DebugContext(ctx, "Initialized memory backend",
		"data_directory", config.DataDirectory,
		"keys", len(store.Keys()))
	return store
}

// ErrNoInspector is returned by Inspect for stores that cannot list keys.
var ErrNoInspector = errors.New("store cannot list keys")

// Inspect lists the keys held by the store behind any caching layer.
func Inspect(ctx context.Context, s storage.Store) ([]storage.KeyInfo, error) {
	for {
		u, ok := s.(interface{ Unwrap() storage.Store })
		if !ok {
			break
		}
		s = u.Unwrap()
	}
	switch st := s.(type) {
	case *storage.SQLiteStore:
		return st.Keys(ctx)
	case *storage.MemoryStore:
		var out []storage.KeyInfo
		for _, k := range st.Keys() {
			v, err := st.Get(ctx, k)
			if err != nil {
				return nil, err
			}
			out = append(out, storage.KeyInfo{Key: k, Size: len(v)})
		}
		return out, nil
	}
	return nil, ErrNoInspector
}
