package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"catalog-browser/internal/domain"
)

// ErrSchemaMissing is returned when the catalog tables do not exist.
var ErrSchemaMissing = errors.New("store: catalog schema not found")

var postgresTables = tableSet{
	users:      "catalog.users",
	categories: "catalog.categories",
	products:   "catalog.products",
}

// PostgresStore implements DatasetLoader using PostgreSQL.
// It only reads; the catalog tables are owned by whoever provisions the database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// LoadDataset reads all three tables inside one read-only transaction so the
// dataset is a consistent snapshot.
func (s *PostgresStore) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("store: LoadDataset failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	ds, err := loadDataset(ctx, tx, postgresTables)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table
			return nil, fmt.Errorf("%w: %s", ErrSchemaMissing, pqErr.Message)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: LoadDataset failed to commit: %w", err)
	}
	return ds, nil
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
