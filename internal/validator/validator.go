// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/teenxsky/money-flow/internal/catalog"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type_name", validateTransactionTypeName)
		_ = v.RegisterValidation("category_name", validateCategoryName)
		_ = v.RegisterValidation("subcategory_name", validateSubcategoryName)
		_ = v.RegisterValidation("status_name", validateStatusName)
		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("transaction_ordering", validateTransactionOrdering)
	}
}

func validateTransactionTypeName(fl validator.FieldLevel) bool {
	return catalog.IsValidName(catalog.KindTransactionType, fl.Field().String())
}

func validateCategoryName(fl validator.FieldLevel) bool {
	return catalog.IsValidName(catalog.KindCategory, fl.Field().String())
}

func validateSubcategoryName(fl validator.FieldLevel) bool {
	return catalog.IsValidName(catalog.KindSubcategory, fl.Field().String())
}

func validateStatusName(fl validator.FieldLevel) bool {
	return catalog.IsValidName(catalog.KindStatus, fl.Field().String())
}

// validateMoney accepts a decimal string with at most two fraction digits.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Exponent() >= -2
}

func validateTransactionOrdering(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "created_at", "-created_at", "amount", "-amount":
		return true
	}
	return false
}
