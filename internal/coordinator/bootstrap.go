package coordinator

import (
	"context"
	"fmt"
	"io"

	"github.com/kingrea/lunch-roulette/internal/config"
	"github.com/kingrea/lunch-roulette/internal/location"
	"github.com/kingrea/lunch-roulette/internal/menu"
	"github.com/kingrea/lunch-roulette/internal/search"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenBackend returns the location backend selected by cfg. The closer
// releases network resources held by the backend.
func OpenBackend(cfg *config.Config) (location.Backend, io.Closer, error) {
	settings := cfg.Project.Store
	switch settings.Backend {
	case config.BackendFile, "":
		return location.NewFileBackend(cfg.StorePath()), nopCloser{}, nil
	case config.BackendMemory:
		return location.NewMemoryBackend(nil), nopCloser{}, nil
	case config.BackendRedis:
		backend := location.NewRedisBackend(
			settings.Redis.Addr,
			settings.Redis.Password,
			settings.Redis.DB,
			location.WithPrefix(settings.Redis.Prefix),
		)
		return backend, backend, nil
	default:
		return nil, nil, fmt.Errorf("coordinator: unknown store backend %q", settings.Backend)
	}
}

// FromConfig wires a coordinator from cfg using backend for persistence.
func FromConfig(ctx context.Context, cfg *config.Config, backend location.Backend, logger Logger, opts ...menu.RouletteOption) (*Coordinator, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	store := location.NewStore(backend,
		location.WithKey(cfg.Project.Store.Key),
		location.WithLogger(logger),
	)
	rouletteOpts := append([]menu.RouletteOption{
		menu.WithTiming(cfg.Project.Reveal.Tick, cfg.Project.Reveal.Duration),
	}, opts...)
	roulette := menu.NewRoulette(catalog, rouletteOpts...)
	return New(ctx, store, roulette,
		WithLogger(logger),
		WithBuilder(search.NewBuilder(cfg.Project.Search.Endpoint)),
		WithFilter(cfg.Project.Search.Filter),
	), nil
}
