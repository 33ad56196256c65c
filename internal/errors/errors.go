// Package errors provides the typed error taxonomy for the Money Flow API.
// All service-layer errors use AppError so the HTTP boundary can map each
// business failure to a status code in a single place, without leaking
// internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAdminRequired      = &AppError{Code: "ADMIN_REQUIRED", Message: "Administrator privileges required", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Reference data errors. These cover all four reference kinds; messages are
// specialized at the call site via WithMessage.
var (
	ErrInvalidName       = &AppError{Code: "INVALID_NAME", Message: "Name is not in the allowed set for this entity", StatusCode: http.StatusBadRequest}
	ErrDuplicateName     = &AppError{Code: "DUPLICATE_NAME", Message: "An entity with this name already exists", StatusCode: http.StatusConflict}
	ErrHierarchyMismatch = &AppError{Code: "HIERARCHY_MISMATCH", Message: "Entity does not belong to the required parent", StatusCode: http.StatusBadRequest}
	ErrParentNotFound    = &AppError{Code: "PARENT_NOT_FOUND", Message: "Referenced parent entity not found", StatusCode: http.StatusNotFound}
	ErrReferenceInUse    = &AppError{Code: "REFERENCE_IN_USE", Message: "Entity is referenced by existing records", StatusCode: http.StatusConflict}

	ErrTransactionTypeNotFound = &AppError{Code: "TRANSACTION_TYPE_NOT_FOUND", Message: "Transaction type not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound        = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrSubcategoryNotFound     = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "Subcategory not found", StatusCode: http.StatusNotFound}
	ErrStatusNotFound          = &AppError{Code: "STATUS_NOT_FOUND", Message: "Status not found", StatusCode: http.StatusNotFound}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidAmount       = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a decimal with at most two fraction digits", StatusCode: http.StatusBadRequest}
)
