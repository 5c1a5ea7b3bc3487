package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"catalog-browser/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureStore_Embedded(t *testing.T) {
	ds, err := NewFixtureStore("").LoadDataset(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Users)
	assert.NotEmpty(t, ds.Categories)
	assert.NotEmpty(t, ds.Products)
	assert.Equal(t, domain.User{ID: 1, Name: "Roma", Sex: domain.SexMale}, ds.Users[0])
	assert.Equal(t, "🍞", ds.Categories[0].Icon)
}

func TestFixtureStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
users:
  - { id: 100, name: Max, sex: m }
categories:
  - { id: 10, title: Fruits, icon: "🍎", ownerId: 100 }
products:
  - { id: 1, name: Apple, categoryId: 10 }
  - { id: 2, name: Stray, categoryId: 99 }
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ds, err := NewFixtureStore(path).LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{
		{ID: 1, Name: "Apple", CategoryID: 10},
		{ID: 2, Name: "Stray", CategoryID: 99},
	}, ds.Products)
}

func TestFixtureStore_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFixtureStore(filepath.Join(t.TempDir(), "nope.yaml")).LoadDataset(context.Background())
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseFixture([]byte("users: [ {id: 1"))
		require.Error(t, err)
	})

	t.Run("invalid sex", func(t *testing.T) {
		_, err := ParseFixture([]byte("users:\n  - { id: 1, name: A, sex: q }\n"))
		require.ErrorIs(t, err, ErrInvalidDataset)
	})

	t.Run("missing product name", func(t *testing.T) {
		_, err := ParseFixture([]byte("products:\n  - { id: 1, categoryId: 2 }\n"))
		require.ErrorIs(t, err, ErrInvalidDataset)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFixtureStore("").LoadDataset(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
