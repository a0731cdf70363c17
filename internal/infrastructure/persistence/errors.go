package persistence

import (
	"errors"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// notFoundOr maps gorm.ErrRecordNotFound to a domain not-found error and passes anything else through
func notFoundOr(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource, id)
	}
	return err
}

// conflictOr maps unique key violations to a domain conflict error.
// It relies on gorm.Config.TranslateError, which both the postgres and sqlite dialectors honour.
func conflictOr(err error, resource, key string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewConflictError("ALREADY_EXISTS", "%s %s already exists", resource, key).
			WithDetail("resource", resource)
	}
	return err
}
