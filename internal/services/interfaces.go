// Package services implements the business rules of the Money Flow API:
// closed-vocabulary reference data with its static hierarchy, owner-scoped
// transactions that must conform to that hierarchy, and the reference seed
// loader. Handlers depend on the interfaces declared here.
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teenxsky/money-flow/internal/models"
	"github.com/teenxsky/money-flow/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionTypeServicer defines the contract for transaction type
// reference data. Names come from a closed vocabulary and are unique.
type TransactionTypeServicer interface {
	Create(name string) (*models.TransactionType, error)
	List() ([]models.TransactionType, error)
	GetByID(id string) (*models.TransactionType, error)
	Update(id string, name *string) (*models.TransactionType, error)
	Delete(id string) error
}

// CategoryServicer defines the contract for category reference data. Beyond
// name validity and uniqueness, each mapped category name must be paired
// with its statically mandated transaction type.
type CategoryServicer interface {
	Create(name, transactionTypeID string) (*models.Category, error)
	List() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Update(id string, name, transactionTypeID *string) (*models.Category, error)
	Delete(id string) error
}

// SubcategoryServicer defines the contract for subcategory reference data,
// checked against categories the way categories are checked against
// transaction types.
type SubcategoryServicer interface {
	Create(name, categoryID string) (*models.Subcategory, error)
	List() ([]models.Subcategory, error)
	GetByID(id string) (*models.Subcategory, error)
	Update(id string, name, categoryID *string) (*models.Subcategory, error)
	Delete(id string) error
}

// StatusServicer defines the contract for status reference data.
type StatusServicer interface {
	Create(name string) (*models.Status, error)
	List() ([]models.Status, error)
	GetByID(id string) (*models.Status, error)
	Update(id string, name *string) (*models.Status, error)
	Delete(id string) error
}

// TransactionFilter holds optional filter parameters for listing
// transactions. Nil fields are no-ops.
type TransactionFilter struct {
	CreatedAtGTE   *time.Time
	CreatedAtLTE   *time.Time
	CreatedAtGT    *time.Time
	CreatedAtLT    *time.Time
	CreatedAtExact *time.Time

	StatusID          *string
	TransactionTypeID *string
	CategoryID        *string
	SubcategoryID     *string

	AmountGTE   *decimal.Decimal
	AmountLTE   *decimal.Decimal
	AmountExact *decimal.Decimal
}

// TransactionUpdate carries the fields of a partial transaction update.
// Nil fields keep their current values. ClearSubcategory removes the
// subcategory regardless of SubcategoryID.
type TransactionUpdate struct {
	StatusID          *string
	TransactionTypeID *string
	CategoryID        *string
	SubcategoryID     *string
	ClearSubcategory  bool
	Amount            *decimal.Decimal
	Comment           *string
}

// TransactionServicer defines the contract for owner-scoped transaction
// business logic. All operations verify ownership; hierarchy consistency is
// re-validated on every write against the merged state.
type TransactionServicer interface {
	Create(userID, statusID, transactionTypeID, categoryID string, subcategoryID *string, amount decimal.Decimal, comment string) (*models.Transaction, error)
	List(userID string, filter TransactionFilter, ordering string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetByID(userID, transactionID string) (*models.Transaction, error)
	Update(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	Delete(userID, transactionID string) error
}

// SeedReport carries the number of reference rows created per kind by a
// seed run.
type SeedReport struct {
	TransactionTypes int `json:"transaction_types"`
	Categories       int `json:"categories"`
	Subcategories    int `json:"subcategories"`
	Statuses         int `json:"statuses"`
}

// SeedServicer loads the compiled-in reference vocabulary into the database.
type SeedServicer interface {
	Load(clear bool) (*SeedReport, error)
}
