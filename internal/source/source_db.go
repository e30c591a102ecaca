package source

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"rustref/internal/redirects"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SourceDB reads redirect rules from a PostgreSQL table.
type SourceDB struct {
	dbConn *sql.DB
}

// NewSourceDB opens a database connection for the given DSN.
func NewSourceDB(dsn string) (*SourceDB, error) {
	dbConn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable open database: %w", err)
	}
	return &SourceDB{dbConn: dbConn}, nil
}

// NewSourceDBWithConn wraps an existing connection. Used in tests.
func NewSourceDBWithConn(dbConn *sql.DB) *SourceDB {
	return &SourceDB{dbConn: dbConn}
}

// UpDBMigrations applies the embedded goose migrations.
func (s *SourceDB) UpDBMigrations() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting goose dialect: %w", err)
	}
	if err := goose.Up(s.dbConn, "migrations"); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}
	return nil
}

// Load selects every redirect row. Rows are validated with the same rules
// as the TOML loader before being returned.
func (s *SourceDB) Load(ctx context.Context) ([]redirects.Entry, error) {
	rows, err := s.dbConn.QueryContext(ctx,
		"SELECT short, url FROM redirects ORDER BY short")
	if err != nil {
		return nil, fmt.Errorf("error select query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []redirects.Entry
	for rows.Next() {
		var e redirects.Entry
		if err := rows.Scan(&e.Short, &e.URL); err != nil {
			return nil, fmt.Errorf("error scanning redirect row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating redirect rows: %w", err)
	}

	if err := redirects.ValidateEntries(entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// Ping checks the connection to the database.
func (s *SourceDB) Ping() error {
	return s.dbConn.Ping()
}
