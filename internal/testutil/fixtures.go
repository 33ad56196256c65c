package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/teenxsky/money-flow/internal/catalog"
	"github.com/teenxsky/money-flow/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates an active admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote test admin: %v", err)
	}
	user.IsAdmin = true
	return user
}

// CreateTestTransactionType creates a transaction type with the given name.
func CreateTestTransactionType(t *testing.T, db *gorm.DB, name string) *models.TransactionType {
	t.Helper()

	transactionType := &models.TransactionType{Name: name}
	if err := db.Create(transactionType).Error; err != nil {
		t.Fatalf("failed to create test transaction type: %v", err)
	}
	return transactionType
}

// CreateTestCategory creates a category under the given transaction type.
func CreateTestCategory(t *testing.T, db *gorm.DB, name, transactionTypeID string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, TransactionTypeID: transactionTypeID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubcategory creates a subcategory under the given category.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, name, categoryID string) *models.Subcategory {
	t.Helper()

	subcategory := &models.Subcategory{Name: name, CategoryID: categoryID}
	if err := db.Create(subcategory).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return subcategory
}

// CreateTestStatus creates a status with the given name.
func CreateTestStatus(t *testing.T, db *gorm.DB, name string) *models.Status {
	t.Helper()

	status := &models.Status{Name: name}
	if err := db.Create(status).Error; err != nil {
		t.Fatalf("failed to create test status: %v", err)
	}
	return status
}

// ReferenceData holds a fully populated reference hierarchy.
type ReferenceData struct {
	Income  *models.TransactionType
	Expense *models.TransactionType

	Infrastructure *models.Category
	Marketing      *models.Category
	Salary         *models.Category

	VPS     *models.Subcategory
	Proxy   *models.Subcategory
	Farpost *models.Subcategory
	Avito   *models.Subcategory

	Business *models.Status
	Personal *models.Status
	Tax      *models.Status
}

// CreateReferenceData populates the complete reference hierarchy with every
// name paired to its mapped parent.
func CreateReferenceData(t *testing.T, db *gorm.DB) *ReferenceData {
	t.Helper()

	ref := &ReferenceData{}
	ref.Income = CreateTestTransactionType(t, db, catalog.TransactionTypeIncome)
	ref.Expense = CreateTestTransactionType(t, db, catalog.TransactionTypeExpense)

	ref.Infrastructure = CreateTestCategory(t, db, catalog.CategoryInfrastructure, ref.Expense.ID)
	ref.Marketing = CreateTestCategory(t, db, catalog.CategoryMarketing, ref.Expense.ID)
	ref.Salary = CreateTestCategory(t, db, catalog.CategorySalary, ref.Income.ID)

	ref.VPS = CreateTestSubcategory(t, db, catalog.SubcategoryVPS, ref.Infrastructure.ID)
	ref.Proxy = CreateTestSubcategory(t, db, catalog.SubcategoryProxy, ref.Infrastructure.ID)
	ref.Farpost = CreateTestSubcategory(t, db, catalog.SubcategoryFarpost, ref.Marketing.ID)
	ref.Avito = CreateTestSubcategory(t, db, catalog.SubcategoryAvito, ref.Marketing.ID)

	ref.Business = CreateTestStatus(t, db, catalog.StatusBusiness)
	ref.Personal = CreateTestStatus(t, db, catalog.StatusPersonal)
	ref.Tax = CreateTestStatus(t, db, catalog.StatusTax)

	return ref
}

// CreateTestTransaction creates a consistent expense transaction for the user
// using the Infrastructure branch of the given reference hierarchy.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, ref *ReferenceData, amount string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:            userID,
		StatusID:          ref.Business.ID,
		TransactionTypeID: ref.Expense.ID,
		CategoryID:        ref.Infrastructure.ID,
		SubcategoryID:     &ref.VPS.ID,
		Amount:            decimal.RequireFromString(amount),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
