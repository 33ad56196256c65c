package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/teenxsky/money-flow/internal/catalog"
	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/logger"
	"github.com/teenxsky/money-flow/internal/models"
)

// seedService loads the compiled-in reference vocabulary into the database.
type seedService struct {
	db *gorm.DB
}

// NewSeedService creates a new SeedServicer.
func NewSeedService(db *gorm.DB) SeedServicer {
	return &seedService{db: db}
}

// Load inserts every enum-defined reference row that is not already present,
// in dependency order, inside a single database transaction so partial
// seeding never occurs. When clear is true all reference rows are deleted
// first; clearing is blocked while transactions exist. Loading is idempotent:
// a second run without clearing creates nothing.
func (s *seedService) Load(clear bool) (*SeedReport, error) {
	report := &SeedReport{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if clear {
			if err := clearReferenceData(tx); err != nil {
				return err
			}
		}

		if err := s.loadTransactionTypes(tx, report); err != nil {
			return err
		}
		if err := s.loadCategories(tx, report); err != nil {
			return err
		}
		if err := s.loadSubcategories(tx, report); err != nil {
			return err
		}
		return s.loadStatuses(tx, report)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("reference data loaded",
		"transaction_types", report.TransactionTypes,
		"categories", report.Categories,
		"subcategories", report.Subcategories,
		"statuses", report.Statuses,
	)
	return report, nil
}

// clearReferenceData deletes all reference rows, children first. Reference
// rows referenced by transactions block the clear.
func clearReferenceData(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.WithMessage(apperrors.ErrReferenceInUse, "Reference data is referenced by existing transactions")
	}

	for _, model := range []interface{}{
		&models.Subcategory{},
		&models.Category{},
		&models.TransactionType{},
		&models.Status{},
	} {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return translateDeleteError(err)
		}
	}
	return nil
}

func (s *seedService) loadTransactionTypes(tx *gorm.DB, report *SeedReport) error {
	for _, name := range catalog.ValidNames(catalog.KindTransactionType) {
		var transactionType models.TransactionType
		result := tx.Where(models.TransactionType{Name: name}).FirstOrCreate(&transactionType)
		if result.Error != nil {
			return translateCreateError(result.Error)
		}
		if result.RowsAffected > 0 {
			report.TransactionTypes++
		}
	}
	return nil
}

func (s *seedService) loadCategories(tx *gorm.DB, report *SeedReport) error {
	for _, name := range catalog.ValidNames(catalog.KindCategory) {
		parentName, ok := catalog.RequiredParentName(catalog.KindCategory, name)
		if !ok {
			logger.Get().Warnw("no transaction type mapping for category", "category", name)
			continue
		}

		var transactionType models.TransactionType
		if err := tx.Where("name = ?", parentName).First(&transactionType).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Get().Warnw("transaction type not found for category", "category", name, "transaction_type", parentName)
				continue
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var category models.Category
		result := tx.Where(models.Category{Name: name}).
			Attrs(models.Category{TransactionTypeID: transactionType.ID}).
			FirstOrCreate(&category)
		if result.Error != nil {
			return translateCreateError(result.Error)
		}
		if result.RowsAffected > 0 {
			report.Categories++
		}
	}
	return nil
}

func (s *seedService) loadSubcategories(tx *gorm.DB, report *SeedReport) error {
	for _, name := range catalog.ValidNames(catalog.KindSubcategory) {
		parentName, ok := catalog.RequiredParentName(catalog.KindSubcategory, name)
		if !ok {
			logger.Get().Warnw("no category mapping for subcategory", "subcategory", name)
			continue
		}

		var category models.Category
		if err := tx.Where("name = ?", parentName).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Get().Warnw("category not found for subcategory", "subcategory", name, "category", parentName)
				continue
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var subcategory models.Subcategory
		result := tx.Where(models.Subcategory{Name: name}).
			Attrs(models.Subcategory{CategoryID: category.ID}).
			FirstOrCreate(&subcategory)
		if result.Error != nil {
			return translateCreateError(result.Error)
		}
		if result.RowsAffected > 0 {
			report.Subcategories++
		}
	}
	return nil
}

func (s *seedService) loadStatuses(tx *gorm.DB, report *SeedReport) error {
	for _, name := range catalog.ValidNames(catalog.KindStatus) {
		var status models.Status
		result := tx.Where(models.Status{Name: name}).FirstOrCreate(&status)
		if result.Error != nil {
			return translateCreateError(result.Error)
		}
		if result.RowsAffected > 0 {
			report.Statuses++
		}
	}
	return nil
}
