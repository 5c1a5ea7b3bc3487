package store

import (
	"context"

	"catalog-browser/internal/domain"
)

// DatasetLoader loads the users, categories and products a catalog is built from.
// Implementations return a validated dataset; records keep their source order.
type DatasetLoader interface {
	LoadDataset(ctx context.Context) (*domain.Dataset, error)
}

// Source names accepted by the DATA_SOURCE setting.
const (
	SourceFixture  = "fixture"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)
