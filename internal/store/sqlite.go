package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"catalog-browser/internal/domain"
)

// schema creates the catalog tables. Categories and products keep their
// references as plain columns without foreign keys: dangling ids are valid data.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    sex TEXT
);

CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    icon TEXT,
    owner_id INTEGER
);

CREATE TABLE IF NOT EXISTS products (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category_id INTEGER
);
`

var sqliteTables = tableSet{
	users:      "users",
	categories: "categories",
	products:   "products",
}

// SQLiteStore implements DatasetLoader on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs the schema.
// ":memory:" is accepted for an in-process database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("store: failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open sqlite database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to run sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Seed writes ds into empty tables. Tables that already hold users are left untouched.
func (s *SQLiteStore) Seed(ctx context.Context, ds *domain.Dataset) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return fmt.Errorf("store: Seed failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: Seed failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, u := range ds.Users {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, name, sex) VALUES (?, ?, ?);`, u.ID, u.Name, string(u.Sex)); err != nil {
			return fmt.Errorf("store: Seed failed to insert user %d: %w", u.ID, err)
		}
	}
	for _, c := range ds.Categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (id, title, icon, owner_id) VALUES (?, ?, ?, ?);`, c.ID, c.Title, c.Icon, c.OwnerID); err != nil {
			return fmt.Errorf("store: Seed failed to insert category %d: %w", c.ID, err)
		}
	}
	for _, p := range ds.Products {
		if _, err := tx.ExecContext(ctx, `INSERT INTO products (id, name, category_id) VALUES (?, ?, ?);`, p.ID, p.Name, p.CategoryID); err != nil {
			return fmt.Errorf("store: Seed failed to insert product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: Seed failed to commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	return loadDataset(ctx, s.db, sqliteTables)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
