package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teenxsky/money-flow/internal/catalog"
	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/models"
)

// statusService handles status reference data.
type statusService struct {
	db *gorm.DB
}

// NewStatusService creates a new StatusServicer.
func NewStatusService(db *gorm.DB) StatusServicer {
	return &statusService{db: db}
}

// Create creates a new status. Statuses are a leaf in the hierarchy, so only
// the vocabulary and uniqueness checks apply.
func (s *statusService) Create(name string) (*models.Status, error) {
	if !catalog.IsValidName(catalog.KindStatus, name) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid status name: %s", name))
	}

	status := &models.Status{Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Status{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Status with name '%s' already exists", name))
		}

		if err := tx.Create(status).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// List returns all statuses ordered alphabetically by name.
func (s *statusService) List() ([]models.Status, error) {
	var statuses []models.Status
	if err := s.db.Order("name ASC").Find(&statuses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return statuses, nil
}

// GetByID retrieves a status by ID.
func (s *statusService) GetByID(id string) (*models.Status, error) {
	var status models.Status
	if err := s.db.Where("id = ?", id).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStatusNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &status, nil
}

// Update applies a partial update with the same name checks as on create.
func (s *statusService) Update(id string, name *string) (*models.Status, error) {
	status, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name == nil {
		return status, nil
	}

	if !catalog.IsValidName(catalog.KindStatus, *name) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid status name: %s", *name))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Status{}).Where("name = ? AND id <> ?", *name, id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Status with name '%s' already exists", *name))
		}

		status.Name = *name
		if err := tx.Save(status).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Delete removes a status. Protected: fails while transactions still
// reference the row.
func (s *statusService) Delete(id string) error {
	status, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Transaction{}).Where("status_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrReferenceInUse, "Status is referenced by existing transactions")
		}

		if err := tx.Delete(status).Error; err != nil {
			return translateDeleteError(err)
		}
		return nil
	})
}
