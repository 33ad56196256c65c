package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/teenxsky/money-flow/internal/testutil"
	"github.com/teenxsky/money-flow/internal/uuid"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Run("creates a user with hashed password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("New@Example.com", "password123", "New", "User")

		testutil.AssertNoError(t, err)
		if user.Email != "new@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("password should be hashed")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
			t.Error("stored hash should match the password")
		}
		if !user.IsActive {
			t.Error("new users should be active")
		}
		if user.IsAdmin {
			t.Error("new users should not be admins")
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("taken@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Taken@Example.com", "password123", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("rejects empty email or password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("user@example.com", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUserService_GetUserByEmail(t *testing.T) {
	t.Run("finds an active user regardless of case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("user@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)

		found, err := svc.GetUserByEmail("User@Example.com")

		testutil.AssertNoError(t, err)
		if found.ID != created.ID {
			t.Errorf("expected %s, got %s", created.ID, found.ID)
		}
	})

	t.Run("ignores inactive users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("user@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, db.Model(created).Update("is_active", false).Error)

		_, err = svc.GetUserByEmail("user@example.com")

		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUserService_VerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("user@example.com", "password123", "", "")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "password123") {
		t.Error("expected the correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected a wrong password to fail")
	}
}

func TestUserService_RefreshTokenHash(t *testing.T) {
	t.Run("stores and returns the hash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("user@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "deadbeef"))

		hash, err := svc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if hash != "deadbeef" {
			t.Errorf("expected deadbeef, got %s", hash)
		}

		refreshed, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if refreshed.LastLoginAt == nil {
			t.Error("expected last login to be stamped")
		}
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.StoreRefreshTokenHash(uuid.New(), "deadbeef")

		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
