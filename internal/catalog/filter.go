package catalog

import (
	"strings"

	"catalog-browser/internal/domain"
)

// NoOwner is the OwnerID of a state with no owner selected. Valid user ids are positive.
const NoOwner int64 = 0

// FilterByOwner returns the rows whose resolved owner has the given id.
// With NoOwner the rows are returned unchanged.
func FilterByOwner(rows []domain.EnrichedProduct, ownerID int64) []domain.EnrichedProduct {
	if ownerID == NoOwner {
		return rows
	}
	filtered := make([]domain.EnrichedProduct, 0, len(rows))
	for _, row := range rows {
		if row.Owner != nil && row.Owner.ID == ownerID {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// FilterByQuery returns the rows whose product name contains query, ignoring case.
// An empty query matches every row.
func FilterByQuery(rows []domain.EnrichedProduct, query string) []domain.EnrichedProduct {
	if query == "" {
		return rows
	}
	needle := strings.ToLower(query)
	filtered := make([]domain.EnrichedProduct, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
