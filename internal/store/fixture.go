package store

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"catalog-browser/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/catalog.yaml
var embeddedCatalog []byte

// FixtureStore loads the dataset from a YAML document, either the one baked
// into the binary or a file given at construction.
type FixtureStore struct {
	path string
}

// NewFixtureStore creates a FixtureStore. An empty path selects the embedded fixture.
func NewFixtureStore(path string) *FixtureStore {
	return &FixtureStore{path: path}
}

func (s *FixtureStore) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := embeddedCatalog
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("store: LoadDataset failed to read fixture %s: %w", s.path, err)
		}
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates a YAML dataset document.
func ParseFixture(data []byte) (*domain.Dataset, error) {
	var ds domain.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("store: failed to parse fixture: %w", err)
	}
	if err := ValidateDataset(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}
