package store

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-browser/internal/domain"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// tableSet names the three source tables, schema-qualified where the backend needs it.
type tableSet struct {
	users      string
	categories string
	products   string
}

func listUsers(ctx context.Context, q queryer, table string) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT id, name, COALESCE(sex, '') FROM %s ORDER BY id ASC;`, table)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: listUsers failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		var sex string
		if err := rows.Scan(&u.ID, &u.Name, &sex); err != nil {
			return nil, fmt.Errorf("store: listUsers failed to scan user row: %w", err)
		}
		u.Sex = domain.Sex(sex)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: listUsers iteration error: %w", err)
	}
	return users, nil
}

func listCategories(ctx context.Context, q queryer, table string) ([]domain.Category, error) {
	query := fmt.Sprintf(`SELECT id, title, COALESCE(icon, ''), COALESCE(owner_id, 0) FROM %s ORDER BY id ASC;`, table)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: listCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Icon, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("store: listCategories failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: listCategories iteration error: %w", err)
	}
	return categories, nil
}

func listProducts(ctx context.Context, q queryer, table string) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT id, name, COALESCE(category_id, 0) FROM %s ORDER BY id ASC;`, table)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: listProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("store: listProducts failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: listProducts iteration error: %w", err)
	}
	return products, nil
}

// loadDataset reads the three tables through q and validates the result.
func loadDataset(ctx context.Context, q queryer, t tableSet) (*domain.Dataset, error) {
	users, err := listUsers(ctx, q, t.users)
	if err != nil {
		return nil, err
	}
	categories, err := listCategories(ctx, q, t.categories)
	if err != nil {
		return nil, err
	}
	products, err := listProducts(ctx, q, t.products)
	if err != nil {
		return nil, err
	}

	ds := &domain.Dataset{Users: users, Categories: categories, Products: products}
	if err := ValidateDataset(ds); err != nil {
		return nil, err
	}
	return ds, nil
}
