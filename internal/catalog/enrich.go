// Package catalog joins the static record sets into view rows and holds the
// filter state machine the UI surfaces drive.
package catalog

import "catalog-browser/internal/domain"

// Enrich attaches the resolved category and owner to every product.
// The result has the same length and order as products. The owner is looked up
// through the resolved category only, so a product without a category has no owner.
func Enrich(products []domain.Product, categories []domain.Category, users []domain.User) []domain.EnrichedProduct {
	enriched := make([]domain.EnrichedProduct, 0, len(products))
	for _, p := range products {
		row := domain.EnrichedProduct{Product: p}
		row.Category = findCategory(categories, p.CategoryID)
		if row.Category != nil {
			row.Owner = findUser(users, row.Category.OwnerID)
		}
		enriched = append(enriched, row)
	}
	return enriched
}

// findCategory returns a copy of the first category with the given id, or nil.
func findCategory(categories []domain.Category, id int64) *domain.Category {
	for i := range categories {
		if categories[i].ID == id {
			c := categories[i]
			return &c
		}
	}
	return nil
}

func findUser(users []domain.User, id int64) *domain.User {
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u
		}
	}
	return nil
}
