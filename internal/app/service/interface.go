package service

import (
	"context"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

//go:generate mockgen -destination=../../mocks/mock_storage.go -package=mocks github.com/atinyakov/shortlink-registry/internal/app/service Storage

// Storage is the persistent mapping the registry works on. Insert must fail
// with storage.ErrConflict when either the URL or the code is already stored.
type Storage interface {
	Insert(context.Context, storage.URLRecord) (*storage.URLRecord, error)
	FindByShort(context.Context, string) (*storage.URLRecord, error)
	FindByOriginal(context.Context, string) (*storage.URLRecord, error)
	Count(context.Context) (int, error)
	PingContext(context.Context) error
}

// CodeGenerator produces candidate short codes. Candidates are not expected
// to be unique.
type CodeGenerator interface {
	Generate() (string, error)
}

//go:generate mockgen -destination=../../mocks/mock_registry.go -package=mocks github.com/atinyakov/shortlink-registry/internal/app/service RegistryIface

type RegistryIface interface {
	Shorten(ctx context.Context, originalURL string) (string, error)
	Resolve(ctx context.Context, shortCode string) (string, error)
	Stats(ctx context.Context) (int, error)
	PingContext(ctx context.Context) error
}
