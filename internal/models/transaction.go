package models

import "github.com/shopspring/decimal"

// Transaction represents a financial transaction owned by a single user.
// Status, transaction type and category are required; subcategory is
// optional. The subcategory must belong to the category and the category to
// the transaction type, which the service layer enforces on every write.
type Transaction struct {
	Base
	UserID            string          `gorm:"type:uuid;not null;index" json:"user_id"`
	StatusID          string          `gorm:"type:uuid;not null" json:"status_id"`
	TransactionTypeID string          `gorm:"type:uuid;not null" json:"transaction_type_id"`
	CategoryID        string          `gorm:"type:uuid;not null" json:"category_id"`
	SubcategoryID     *string         `gorm:"type:uuid" json:"subcategory_id,omitempty"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Comment           string          `gorm:"size:50" json:"comment,omitempty"`

	// Relationships
	Status          *Status          `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	TransactionType *TransactionType `gorm:"foreignKey:TransactionTypeID" json:"transaction_type,omitempty"`
	Category        *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory     *Subcategory     `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
}
