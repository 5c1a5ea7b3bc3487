package store

import (
	"errors"
	"fmt"

	"catalog-browser/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Predefined errors for store operations
var (
	ErrInvalidDataset = errors.New("store: invalid dataset")
)

var validate = validator.New()

// ValidateDataset checks the shape of every record. Dangling category or owner
// references are allowed; they resolve to absent values during enrichment.
func ValidateDataset(ds *domain.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: nil dataset", ErrInvalidDataset)
	}
	if err := validate.Struct(ds); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return nil
}
