// File: catalog-browser/cmd/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/config"
	"catalog-browser/internal/store"
	"catalog-browser/pkg/logging"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

const (
	defaultAppName = "CatalogBrowser" // App name for logs and health output
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse a static product catalog filtered by owner and name",
	Long: `catalog joins users, categories and products into one table and lets you
filter it by category owner and by a case-insensitive name query.

The dataset comes from DATA_SOURCE: the embedded fixture (default), a YAML file
(FIXTURE_PATH), a SQLite file (SQLITE_PATH) or PostgreSQL (POSTGRES_*).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		logging.Setup(cfg.LogLevel)
		slog.Info("Configuration loaded", "app_env", cfg.AppEnv, "data_source", cfg.DataSource)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, browseCmd, renderCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDataset loads the dataset once from the configured source.
// The returned closer releases the database connection, if any.
func openDataset(ctx context.Context, cfg *config.Config) (*catalog.Browser, func() error, error) {
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var (
		loader store.DatasetLoader
		closer = func() error { return nil }
	)

	switch cfg.DataSource {
	case store.SourcePostgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database connection: %w", err)
		}
		if err := db.PingContext(loadCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		pg := store.NewPostgresStore(db)
		loader, closer = pg, pg.Close
	case store.SourceSQLite:
		lite, err := store.NewSQLiteStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		seed, err := store.NewFixtureStore(cfg.FixturePath).LoadDataset(loadCtx)
		if err != nil {
			lite.Close()
			return nil, nil, err
		}
		if err := lite.Seed(loadCtx, seed); err != nil {
			lite.Close()
			return nil, nil, err
		}
		loader, closer = lite, lite.Close
	default:
		loader = store.NewFixtureStore(cfg.FixturePath)
	}

	browser, err := loadBrowser(loadCtx, loader)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return browser, closer, nil
}

// loadBrowser reads and validates the dataset, then builds the enriched browser.
func loadBrowser(ctx context.Context, loader store.DatasetLoader) (*catalog.Browser, error) {
	ds, err := loader.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := store.ValidateDataset(ds); err != nil {
		return nil, err
	}
	slog.Info("Dataset loaded",
		"users", len(ds.Users),
		"categories", len(ds.Categories),
		"products", len(ds.Products),
	)
	return catalog.NewBrowser(ds), nil
}
