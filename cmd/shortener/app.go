package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/server"
	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/cache"
	"github.com/atinyakov/shortlink-registry/internal/codegen"
	"github.com/atinyakov/shortlink-registry/internal/config"
	"github.com/atinyakov/shortlink-registry/internal/metrics"
	"github.com/atinyakov/shortlink-registry/internal/repository"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// app is the wired service: the registry and its HTTP router plus whatever
// has to be closed on shutdown.
type app struct {
	registry *service.Registry
	router   http.Handler
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

func newApp(ctx context.Context, options *config.Options, zapLogger *zap.Logger) (*app, error) {
	a := &app{}

	backend, err := a.openStorage(ctx, options, zapLogger)
	if err != nil {
		a.Close()
		return nil, err
	}

	var store service.Storage = backend
	if options.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, options.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, rc.Close)

		zapLogger.Info("using redis cache", zap.Duration("ttl", options.CacheTTL))
		store = storage.NewCachedStorage(backend, rc, options.CacheTTL, zapLogger)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	a.registry = service.NewRegistry(store, codegen.New(), m, zapLogger)
	a.router = server.Init(options.ResultHostname, zapLogger, a.registry, m, options.TrustedSubnet)

	return a, nil
}

// openStorage picks Postgres when a DSN is configured, then the SQLite file,
// then memory.
func (a *app) openStorage(ctx context.Context, options *config.Options, zapLogger *zap.Logger) (storage.Backend, error) {
	switch {
	case options.DatabaseDSN != "":
		zapLogger.Info("using postgres")
		db, err := repository.InitDB(ctx, repository.Postgres, options.DatabaseDSN, zapLogger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return repository.CreateURLRepository(db, repository.Postgres, zapLogger), nil

	case options.FilePath != "":
		zapLogger.Info("using sqlite", zap.String("filePath", options.FilePath))
		db, err := repository.InitDB(ctx, repository.SQLite, options.FilePath, zapLogger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return repository.CreateURLRepository(db, repository.SQLite, zapLogger), nil

	default:
		zapLogger.Info("using in memory storage")
		return storage.CreateMemoryStorage()
	}
}
