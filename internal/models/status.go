package models

// Status is a reference entity labeling the purpose of a transaction
// (Business, Personal or Tax).
type Status struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:StatusID" json:"transactions,omitempty"`
}
