// Package repository implements the URL storage on top of database/sql for
// PostgreSQL and SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// InitDB opens a connection pool for dialect d, checks it and brings the
// schema up to date.
func InitDB(ctx context.Context, d Dialect, dsn string, logger *zap.Logger) (*sql.DB, error) {
	if d.name == SQLite.name {
		var err error
		if dsn, err = sqliteDSN(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}
	configurePool(db, d)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}

	if err := Migrate(ctx, db, d, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("database connected and schema ready", zap.Stringer("dialect", d))
	return db, nil
}

// SQLite allows a single writer, so the pool is kept to one connection and
// callers queue on it instead of failing with SQLITE_BUSY.
func configurePool(db *sql.DB, d Dialect) {
	if d.name == SQLite.name {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
}

func sqliteDSN(p string) (string, error) {
	if strings.HasPrefix(p, "file:") {
		return p, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0770); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	return "file:" + p + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
}

// URLRepository stores mappings in the urls table. The UNIQUE constraints on
// both columns make Insert the arbiter between concurrent writers.
type URLRepository struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

func CreateURLRepository(db *sql.DB, d Dialect, logger *zap.Logger) *URLRepository {
	return &URLRepository{
		db:      db,
		dialect: d,
		logger:  logger,
	}
}

// Insert writes a new mapping. A uniqueness violation on either column is
// reported as storage.ErrConflict.
func (r *URLRepository) Insert(ctx context.Context, v storage.URLRecord) (*storage.URLRecord, error) {
	err := r.db.QueryRowContext(ctx, r.dialect.insertQuery, v.Original, v.Short).Scan(&v.ID)
	if err != nil {
		if r.dialect.isUniqueViolation(err) {
			r.logger.Debug("insert conflict", zap.String("original", v.Original), zap.String("short", v.Short))
			return nil, storage.ErrConflict
		}
		return nil, fmt.Errorf("insert url: %w", err)
	}

	return &v, nil
}

func (r *URLRepository) FindByShort(ctx context.Context, s string) (*storage.URLRecord, error) {
	return r.findOne(ctx, r.dialect.findByShortQuery, s)
}

func (r *URLRepository) FindByOriginal(ctx context.Context, o string) (*storage.URLRecord, error) {
	return r.findOne(ctx, r.dialect.findByOriginalQuery, o)
}

func (r *URLRepository) findOne(ctx context.Context, query string, arg string) (*storage.URLRecord, error) {
	var res storage.URLRecord

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&res.ID, &res.Original, &res.Short)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select url: %w", err)
	}

	return &res, nil
}

func (r *URLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, r.dialect.countQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count urls: %w", err)
	}
	return n, nil
}

func (r *URLRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
