package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/models"
	"github.com/teenxsky/money-flow/internal/pagination"
)

// transactionService handles owner-scoped transaction business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// Create creates a new transaction for the authenticated user. All foreign
// ids must resolve, the subcategory (when present) must belong to the
// category and the category to the transaction type, and the amount must
// have at most two fraction digits.
func (s *transactionService) Create(
	userID, statusID, transactionTypeID, categoryID string,
	subcategoryID *string,
	amount decimal.Decimal,
	comment string,
) (*models.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if len(comment) > 50 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Comment must be at most 50 characters")
	}

	transaction := &models.Transaction{
		UserID:            userID,
		StatusID:          statusID,
		TransactionTypeID: transactionTypeID,
		CategoryID:        categoryID,
		SubcategoryID:     subcategoryID,
		Amount:            amount,
		Comment:           comment,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validateReferences(tx, transaction); err != nil {
			return err
		}
		if err := tx.Create(transaction).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// validateReferences resolves every referenced reference entity and checks
// the transitive hierarchy: subcategory ⊆ category ⊆ transaction type.
func (s *transactionService) validateReferences(tx *gorm.DB, t *models.Transaction) error {
	var status models.Status
	if err := tx.Where("id = ?", t.StatusID).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrParentNotFound, "Status not found")
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactionType models.TransactionType
	if err := tx.Where("id = ?", t.TransactionTypeID).First(&transactionType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrParentNotFound, "Transaction type not found")
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var category models.Category
	if err := tx.Where("id = ?", t.CategoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrParentNotFound, "Category not found")
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if t.SubcategoryID != nil {
		var subcategory models.Subcategory
		if err := tx.Where("id = ?", *t.SubcategoryID).First(&subcategory).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrParentNotFound, "Subcategory not found")
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if subcategory.CategoryID != t.CategoryID {
			return apperrors.WithMessage(apperrors.ErrHierarchyMismatch,
				"Selected subcategory does not belong to the selected category")
		}
	}

	if category.TransactionTypeID != t.TransactionTypeID {
		return apperrors.WithMessage(apperrors.ErrHierarchyMismatch,
			"Selected category does not belong to the selected transaction type")
	}

	return nil
}

// List retrieves a paginated, filtered, ordered list of the user's own
// transactions. The result is always restricted to userID regardless of
// filters.
func (s *transactionService) List(userID string, filter TransactionFilter, ordering string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.
		Preload("Status").
		Preload("TransactionType").
		Preload("Category").
		Preload("Subcategory").
		Scopes(pagination.Paginate(page)).
		Order(orderingClause(ordering)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// orderingClause maps an ordering key to its SQL clause. The default and any
// unknown key order newest first.
func orderingClause(ordering string) string {
	switch ordering {
	case "created_at":
		return "created_at ASC"
	case "amount":
		return "amount ASC"
	case "-amount":
		return "amount DESC"
	default:
		return "created_at DESC"
	}
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.CreatedAtGTE != nil {
		q = q.Where("created_at >= ?", *f.CreatedAtGTE)
	}
	if f.CreatedAtLTE != nil {
		q = q.Where("created_at <= ?", *f.CreatedAtLTE)
	}
	if f.CreatedAtGT != nil {
		q = q.Where("created_at > ?", *f.CreatedAtGT)
	}
	if f.CreatedAtLT != nil {
		q = q.Where("created_at < ?", *f.CreatedAtLT)
	}
	if f.CreatedAtExact != nil {
		q = q.Where("created_at = ?", *f.CreatedAtExact)
	}
	if f.StatusID != nil {
		q = q.Where("status_id = ?", *f.StatusID)
	}
	if f.TransactionTypeID != nil {
		q = q.Where("transaction_type_id = ?", *f.TransactionTypeID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		q = q.Where("subcategory_id = ?", *f.SubcategoryID)
	}
	if f.AmountGTE != nil {
		q = q.Where("amount >= ?", *f.AmountGTE)
	}
	if f.AmountLTE != nil {
		q = q.Where("amount <= ?", *f.AmountLTE)
	}
	if f.AmountExact != nil {
		q = q.Where("amount = ?", *f.AmountExact)
	}
	return q
}

// GetByID retrieves a transaction. A transaction owned by another user
// yields ErrForbidden, not ErrTransactionNotFound, so the lookup is by id
// alone and ownership compared afterwards.
func (s *transactionService) GetByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.
		Preload("Status").
		Preload("TransactionType").
		Preload("Category").
		Preload("Subcategory").
		Where("id = ?", transactionID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if transaction.UserID != userID {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to access this transaction")
	}

	return &transaction, nil
}

// Update applies a partial update after the existence and ownership checks.
// Supplied fields are merged with current values and the full hierarchy is
// re-validated against the merged result, so updating only the subcategory
// still checks it against the transaction's current category.
func (s *transactionService) Update(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if update.StatusID != nil {
		transaction.StatusID = *update.StatusID
	}
	if update.TransactionTypeID != nil {
		transaction.TransactionTypeID = *update.TransactionTypeID
	}
	if update.CategoryID != nil {
		transaction.CategoryID = *update.CategoryID
	}
	if update.ClearSubcategory {
		transaction.SubcategoryID = nil
	} else if update.SubcategoryID != nil {
		transaction.SubcategoryID = update.SubcategoryID
	}
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return nil, err
		}
		transaction.Amount = *update.Amount
	}
	if update.Comment != nil {
		if len(*update.Comment) > 50 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Comment must be at most 50 characters")
		}
		transaction.Comment = *update.Comment
	}

	// Drop preloaded associations so stale parents are not re-saved.
	transaction.Status = nil
	transaction.TransactionType = nil
	transaction.Category = nil
	transaction.Subcategory = nil

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validateReferences(tx, transaction); err != nil {
			return err
		}
		if err := tx.Save(transaction).Error; err != nil {
			return translateCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction after the existence and ownership checks.
func (s *transactionService) Delete(userID, transactionID string) error {
	transaction, err := s.GetByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateAmount rejects amounts with more than two fraction digits. No sign
// constraint applies.
func validateAmount(amount decimal.Decimal) error {
	if amount.Exponent() < -2 {
		return apperrors.ErrInvalidAmount
	}
	return nil
}
