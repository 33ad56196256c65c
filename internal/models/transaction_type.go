package models

// TransactionType is a reference entity classifying the direction of money
// movement (Income or Expense). Names come from a closed vocabulary.
type TransactionType struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Categories   []Category    `gorm:"foreignKey:TransactionTypeID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:TransactionTypeID" json:"transactions,omitempty"`
}
