package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Dialect holds what differs between the supported SQL engines.
type Dialect struct {
	name   string
	driver string
	goose  goose.Dialect

	insertQuery         string
	findByShortQuery    string
	findByOriginalQuery string
	countQuery          string

	isUniqueViolation func(error) bool
}

func (d Dialect) String() string {
	return d.name
}

// Postgres talks to PostgreSQL through the pgx database/sql driver.
var Postgres = Dialect{
	name:   "postgres",
	driver: "pgx",
	goose:  goose.DialectPostgres,

	insertQuery:         "INSERT INTO urls (original_url, short_code) VALUES ($1, $2) RETURNING id;",
	findByShortQuery:    "SELECT id, original_url, short_code FROM urls WHERE short_code = $1;",
	findByOriginalQuery: "SELECT id, original_url, short_code FROM urls WHERE original_url = $1;",
	countQuery:          "SELECT COUNT(*) FROM urls;",

	isUniqueViolation: isPgUniqueViolation,
}

// SQLite stores the table in a local database file.
var SQLite = Dialect{
	name:   "sqlite",
	driver: "sqlite",
	goose:  goose.DialectSQLite3,

	insertQuery:         "INSERT INTO urls (original_url, short_code) VALUES (?, ?) RETURNING id;",
	findByShortQuery:    "SELECT id, original_url, short_code FROM urls WHERE short_code = ?;",
	findByOriginalQuery: "SELECT id, original_url, short_code FROM urls WHERE original_url = ?;",
	countQuery:          "SELECT COUNT(*) FROM urls;",

	isUniqueViolation: isSQLiteUniqueViolation,
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
