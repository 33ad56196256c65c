package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teenxsky/money-flow/internal/catalog"
	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/models"
)

// transactionTypeService handles transaction type reference data.
type transactionTypeService struct {
	db *gorm.DB
}

// NewTransactionTypeService creates a new TransactionTypeServicer.
func NewTransactionTypeService(db *gorm.DB) TransactionTypeServicer {
	return &transactionTypeService{db: db}
}

// Create creates a new transaction type. The name must belong to the closed
// vocabulary and be unused.
func (s *transactionTypeService) Create(name string) (*models.TransactionType, error) {
	if !catalog.IsValidName(catalog.KindTransactionType, name) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid transaction type name: %s", name))
	}

	transactionType := &models.TransactionType{Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TransactionType{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Transaction type with name '%s' already exists", name))
		}

		if err := tx.Create(transactionType).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactionType, nil
}

// List returns all transaction types ordered alphabetically by name.
func (s *transactionTypeService) List() ([]models.TransactionType, error) {
	var types []models.TransactionType
	if err := s.db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}

// GetByID retrieves a transaction type by ID.
func (s *transactionTypeService) GetByID(id string) (*models.TransactionType, error) {
	var transactionType models.TransactionType
	if err := s.db.Where("id = ?", id).First(&transactionType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transactionType, nil
}

// Update applies a partial update. A supplied name goes through the same
// vocabulary and uniqueness checks as on create.
func (s *transactionTypeService) Update(id string, name *string) (*models.TransactionType, error) {
	transactionType, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name == nil {
		return transactionType, nil
	}

	if !catalog.IsValidName(catalog.KindTransactionType, *name) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid transaction type name: %s", *name))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TransactionType{}).Where("name = ? AND id <> ?", *name, id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Transaction type with name '%s' already exists", *name))
		}

		transactionType.Name = *name
		if err := tx.Save(transactionType).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactionType, nil
}

// Delete removes a transaction type. The delete is protected: it fails while
// categories or transactions still reference the row.
func (s *transactionTypeService) Delete(id string) error {
	transactionType, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("transaction_type_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrReferenceInUse, "Transaction type is referenced by existing categories")
		}

		if err := tx.Model(&models.Transaction{}).Where("transaction_type_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrReferenceInUse, "Transaction type is referenced by existing transactions")
		}

		if err := tx.Delete(transactionType).Error; err != nil {
			return translateDeleteError(err)
		}
		return nil
	})
}
