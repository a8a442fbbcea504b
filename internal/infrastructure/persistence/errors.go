package persistence

import (
	"errors"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound builds the not found error for one resource
func notFound(resource string, id any) error {
	return shared.ErrNotFound.WithDetail("resource", resource).WithDetail("id", id)
}

// translateError maps gorm sentinel errors onto domain errors.
// missing is returned for gorm.ErrRecordNotFound.
func translateError(err, missing error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return missing
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrDuplicate
	default:
		return err
	}
}
