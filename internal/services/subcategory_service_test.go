package services

import (
	"testing"

	"github.com/teenxsky/money-flow/internal/catalog"
	"github.com/teenxsky/money-flow/internal/testutil"
	"github.com/teenxsky/money-flow/internal/uuid"
)

func TestSubcategoryService_Create(t *testing.T) {
	t.Run("creates a subcategory under its mapped category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		expense := testutil.CreateTestTransactionType(t, db, catalog.TransactionTypeExpense)
		infrastructure := testutil.CreateTestCategory(t, db, catalog.CategoryInfrastructure, expense.ID)

		subcategory, err := svc.Create(catalog.SubcategoryVPS, infrastructure.ID)

		testutil.AssertNoError(t, err)
		if subcategory.CategoryID != infrastructure.ID {
			t.Errorf("expected category %s, got %s", infrastructure.ID, subcategory.CategoryID)
		}
	})

	t.Run("rejects a name outside the vocabulary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		expense := testutil.CreateTestTransactionType(t, db, catalog.TransactionTypeExpense)
		infrastructure := testutil.CreateTestCategory(t, db, catalog.CategoryInfrastructure, expense.ID)

		_, err := svc.Create("Hosting", infrastructure.ID)

		testutil.AssertAppError(t, err, "INVALID_NAME")
	})

	t.Run("rejects the wrong category for a mapped name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		expense := testutil.CreateTestTransactionType(t, db, catalog.TransactionTypeExpense)
		marketing := testutil.CreateTestCategory(t, db, catalog.CategoryMarketing, expense.ID)

		// VPS is mapped to Infrastructure.
		_, err := svc.Create(catalog.SubcategoryVPS, marketing.ID)

		testutil.AssertAppError(t, err, "HIERARCHY_MISMATCH")
	})

	t.Run("accepts Avito only under Marketing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		expense := testutil.CreateTestTransactionType(t, db, catalog.TransactionTypeExpense)
		infrastructure := testutil.CreateTestCategory(t, db, catalog.CategoryInfrastructure, expense.ID)
		marketing := testutil.CreateTestCategory(t, db, catalog.CategoryMarketing, expense.ID)

		_, err := svc.Create(catalog.SubcategoryAvito, infrastructure.ID)
		testutil.AssertAppError(t, err, "HIERARCHY_MISMATCH")

		_, err = svc.Create(catalog.SubcategoryAvito, marketing.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("rejects a missing category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		_, err := svc.Create(catalog.SubcategoryProxy, uuid.New())

		testutil.AssertAppError(t, err, "PARENT_NOT_FOUND")
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		expense := testutil.CreateTestTransactionType(t, db, catalog.TransactionTypeExpense)
		infrastructure := testutil.CreateTestCategory(t, db, catalog.CategoryInfrastructure, expense.ID)

		_, err := svc.Create(catalog.SubcategoryProxy, infrastructure.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.Create(catalog.SubcategoryProxy, infrastructure.ID)
		testutil.AssertAppError(t, err, "DUPLICATE_NAME")
	})
}

func TestSubcategoryService_Update(t *testing.T) {
	t.Run("rejects moving a subcategory out of its mapped category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		ref := testutil.CreateReferenceData(t, db)

		// Farpost is mapped to Marketing; moving it under Infrastructure
		// must fail even though the name is untouched.
		_, err := svc.Update(ref.Farpost.ID, nil, &ref.Infrastructure.ID)

		testutil.AssertAppError(t, err, "HIERARCHY_MISMATCH")
	})

	t.Run("renames within the same category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		expense := testutil.CreateTestTransactionType(t, db, catalog.TransactionTypeExpense)
		infrastructure := testutil.CreateTestCategory(t, db, catalog.CategoryInfrastructure, expense.ID)
		vps := testutil.CreateTestSubcategory(t, db, catalog.SubcategoryVPS, infrastructure.ID)

		updated, err := svc.Update(vps.ID, strPtr(catalog.SubcategoryProxy), nil)

		testutil.AssertNoError(t, err)
		if updated.Name != catalog.SubcategoryProxy {
			t.Errorf("expected Proxy, got %s", updated.Name)
		}
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		_, err := svc.Update(uuid.New(), strPtr(catalog.SubcategoryVPS), nil)

		testutil.AssertAppError(t, err, "SUBCATEGORY_NOT_FOUND")
	})
}

func TestSubcategoryService_Delete(t *testing.T) {
	t.Run("deletes an unreferenced subcategory", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		ref := testutil.CreateReferenceData(t, db)

		testutil.AssertNoError(t, svc.Delete(ref.Avito.ID))
	})

	t.Run("refuses while transactions reference it", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)

		user := testutil.CreateTestUser(t, db)
		ref := testutil.CreateReferenceData(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, ref, "5.00")

		testutil.AssertAppError(t, svc.Delete(ref.VPS.ID), "REFERENCE_IN_USE")
	})
}
