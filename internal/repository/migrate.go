package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies the pending schema migrations of dialect d.
func Migrate(ctx context.Context, db *sql.DB, d Dialect, logger *zap.Logger) error {
	fsys, err := fs.Sub(migrations, path.Join("migrations", d.name))
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", d, err)
	}

	provider, err := goose.NewProvider(d.goose, db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, r := range results {
		logger.Info("migration applied",
			zap.String("source", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}
	return nil
}
