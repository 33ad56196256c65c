package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teenxsky/money-flow/internal/catalog"
	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/models"
)

// categoryService handles category reference data.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// Create creates a new category. The name must belong to the closed
// vocabulary and be globally unused, and the referenced transaction type
// must carry the name the static map mandates for this category.
func (s *categoryService) Create(name, transactionTypeID string) (*models.Category, error) {
	if !catalog.IsValidName(catalog.KindCategory, name) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid category name: %s", name))
	}

	category := &models.Category{Name: name, TransactionTypeID: transactionTypeID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Category with name '%s' already exists", name))
		}

		var transactionType models.TransactionType
		if err := tx.Where("id = ?", transactionTypeID).First(&transactionType).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrParentNotFound, "Transaction type not found")
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if required, ok := catalog.RequiredParentName(catalog.KindCategory, name); ok && required != transactionType.Name {
			return apperrors.WithMessage(apperrors.ErrHierarchyMismatch,
				fmt.Sprintf("Category '%s' must be associated with transaction type '%s'", name, required))
		}

		category.TransactionType = &transactionType
		if err := tx.Create(category).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories with their transaction types, ordered
// alphabetically by name.
func (s *categoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("TransactionType").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetByID retrieves a category with its transaction type.
func (s *categoryService) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("TransactionType").Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// Update applies a partial update. The vocabulary, uniqueness and hierarchy
// checks run against the merged result, so changing only the transaction
// type still validates it against the category's current name.
func (s *categoryService) Update(id string, name, transactionTypeID *string) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if !catalog.IsValidName(catalog.KindCategory, *name) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid category name: %s", *name))
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if name != nil {
			var count int64
			if err := tx.Model(&models.Category{}).Where("name = ? AND id <> ?", *name, id).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Category with name '%s' already exists", *name))
			}
			category.Name = *name
		}

		if transactionTypeID != nil {
			var transactionType models.TransactionType
			if err := tx.Where("id = ?", *transactionTypeID).First(&transactionType).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.WithMessage(apperrors.ErrParentNotFound, "Transaction type not found")
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			category.TransactionTypeID = *transactionTypeID
			category.TransactionType = &transactionType
		}

		// Re-check the hierarchy against the merged name/type pair.
		if required, ok := catalog.RequiredParentName(catalog.KindCategory, category.Name); ok && category.TransactionType != nil && required != category.TransactionType.Name {
			return apperrors.WithMessage(apperrors.ErrHierarchyMismatch,
				fmt.Sprintf("Category '%s' must be associated with transaction type '%s'", category.Name, required))
		}

		if err := tx.Save(category).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Protected: fails while subcategories or
// transactions still reference the row.
func (s *categoryService) Delete(id string) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Subcategory{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrReferenceInUse, "Category is referenced by existing subcategories")
		}

		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrReferenceInUse, "Category is referenced by existing transactions")
		}

		if err := tx.Delete(category).Error; err != nil {
			return translateDeleteError(err)
		}
		return nil
	})
}
