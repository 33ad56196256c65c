package models

// Subcategory is a reference entity refining a category. Each allowed
// subcategory name is statically mapped to exactly one category.
type Subcategory struct {
	Base
	Name       string `gorm:"uniqueIndex;not null" json:"name"`
	CategoryID string `gorm:"type:uuid;not null" json:"category_id"`

	// Relationships
	Category     *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:SubcategoryID" json:"transactions,omitempty"`
}
