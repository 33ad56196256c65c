package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teenxsky/money-flow/internal/catalog"
	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/models"
)

// subcategoryService handles subcategory reference data.
type subcategoryService struct {
	db *gorm.DB
}

// NewSubcategoryService creates a new SubcategoryServicer.
func NewSubcategoryService(db *gorm.DB) SubcategoryServicer {
	return &subcategoryService{db: db}
}

// Create creates a new subcategory. The name must belong to the closed
// vocabulary and be globally unused, and the referenced category must carry
// the name the static map mandates for this subcategory.
func (s *subcategoryService) Create(name, categoryID string) (*models.Subcategory, error) {
	if !catalog.IsValidName(catalog.KindSubcategory, name) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid subcategory name: %s", name))
	}

	subcategory := &models.Subcategory{Name: name, CategoryID: categoryID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Subcategory{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Subcategory with name '%s' already exists", name))
		}

		var category models.Category
		if err := tx.Where("id = ?", categoryID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrParentNotFound, "Category not found")
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if required, ok := catalog.RequiredParentName(catalog.KindSubcategory, name); ok && required != category.Name {
			return apperrors.WithMessage(apperrors.ErrHierarchyMismatch,
				fmt.Sprintf("Subcategory '%s' must be associated with category '%s'", name, required))
		}

		subcategory.Category = &category
		if err := tx.Create(subcategory).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subcategory, nil
}

// List returns all subcategories with their categories, ordered
// alphabetically by name.
func (s *subcategoryService) List() ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := s.db.Preload("Category").Order("name ASC").Find(&subcategories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return subcategories, nil
}

// GetByID retrieves a subcategory with its category.
func (s *subcategoryService) GetByID(id string) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	if err := s.db.Preload("Category").Where("id = ?", id).First(&subcategory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubcategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &subcategory, nil
}

// Update applies a partial update, re-validating the vocabulary, uniqueness
// and hierarchy against the merged result.
func (s *subcategoryService) Update(id string, name, categoryID *string) (*models.Subcategory, error) {
	subcategory, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if !catalog.IsValidName(catalog.KindSubcategory, *name) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidName, fmt.Sprintf("Invalid subcategory name: %s", *name))
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if name != nil {
			var count int64
			if err := tx.Model(&models.Subcategory{}).Where("name = ? AND id <> ?", *name, id).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				return apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("Subcategory with name '%s' already exists", *name))
			}
			subcategory.Name = *name
		}

		if categoryID != nil {
			var category models.Category
			if err := tx.Where("id = ?", *categoryID).First(&category).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.WithMessage(apperrors.ErrParentNotFound, "Category not found")
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			subcategory.CategoryID = *categoryID
			subcategory.Category = &category
		}

		if required, ok := catalog.RequiredParentName(catalog.KindSubcategory, subcategory.Name); ok && subcategory.Category != nil && required != subcategory.Category.Name {
			return apperrors.WithMessage(apperrors.ErrHierarchyMismatch,
				fmt.Sprintf("Subcategory '%s' must be associated with category '%s'", subcategory.Name, required))
		}

		if err := tx.Save(subcategory).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subcategory, nil
}

// Delete removes a subcategory. Protected: fails while transactions still
// reference the row.
func (s *subcategoryService) Delete(id string) error {
	subcategory, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Transaction{}).Where("subcategory_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrReferenceInUse, "Subcategory is referenced by existing transactions")
		}

		if err := tx.Delete(subcategory).Error; err != nil {
			return translateDeleteError(err)
		}
		return nil
	})
}
