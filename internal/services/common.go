package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/teenxsky/money-flow/internal/errors"
)

// translateCreateError maps translated GORM constraint violations on insert
// to the business taxonomy. The database unique index is the backstop for
// racing creates that pass the service-level duplicate pre-check.
func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.ErrDuplicateName, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.Wrap(apperrors.ErrParentNotFound, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// translateDeleteError maps translated GORM constraint violations on delete.
// A foreign key violation means the row is still referenced.
func translateDeleteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.Wrap(apperrors.ErrReferenceInUse, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
