package models

// Category is a reference entity grouping transactions under a transaction
// type. Each allowed category name is statically mapped to exactly one
// transaction type; the service layer rejects any other pairing.
type Category struct {
	Base
	Name              string `gorm:"uniqueIndex;not null" json:"name"`
	TransactionTypeID string `gorm:"type:uuid;not null" json:"transaction_type_id"`

	// Relationships
	TransactionType *TransactionType `gorm:"foreignKey:TransactionTypeID" json:"transaction_type,omitempty"`
	Subcategories   []Subcategory    `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
	Transactions    []Transaction    `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
