// Package catalog holds the closed reference vocabularies and the static
// hierarchy maps between them. All data is compiled in; nothing here touches
// the database.
package catalog

// Kind identifies one of the reference entity kinds.
type Kind string

const (
	KindTransactionType Kind = "transaction_type"
	KindCategory        Kind = "category"
	KindSubcategory     Kind = "subcategory"
	KindStatus          Kind = "status"
)

// Transaction type names.
const (
	TransactionTypeIncome  = "Income"
	TransactionTypeExpense = "Expense"
)

// Category names.
const (
	CategoryInfrastructure = "Infrastructure"
	CategoryMarketing      = "Marketing"
	CategorySalary         = "Salary"
)

// Subcategory names.
const (
	SubcategoryVPS     = "VPS"
	SubcategoryProxy   = "Proxy"
	SubcategoryFarpost = "Farpost"
	SubcategoryAvito   = "Avito"
)

// Status names.
const (
	StatusBusiness = "Business"
	StatusPersonal = "Personal"
	StatusTax      = "Tax"
)

var validNames = map[Kind][]string{
	KindTransactionType: {TransactionTypeIncome, TransactionTypeExpense},
	KindCategory:        {CategoryInfrastructure, CategoryMarketing, CategorySalary},
	KindSubcategory:     {SubcategoryVPS, SubcategoryProxy, SubcategoryFarpost, SubcategoryAvito},
	KindStatus:          {StatusBusiness, StatusPersonal, StatusTax},
}

// categoryTransactionType maps each category name to the transaction type it
// must belong to.
var categoryTransactionType = map[string]string{
	CategoryInfrastructure: TransactionTypeExpense,
	CategoryMarketing:      TransactionTypeExpense,
	CategorySalary:         TransactionTypeIncome,
}

// subcategoryCategory maps each subcategory name to the category it must
// belong to.
var subcategoryCategory = map[string]string{
	SubcategoryVPS:     CategoryInfrastructure,
	SubcategoryProxy:   CategoryInfrastructure,
	SubcategoryFarpost: CategoryMarketing,
	SubcategoryAvito:   CategoryMarketing,
}

// ValidNames returns the allowed name set for a kind, in declaration order.
// The returned slice is a copy and safe to modify.
func ValidNames(kind Kind) []string {
	names := validNames[kind]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// IsValidName reports whether name belongs to the closed enumeration for kind.
func IsValidName(kind Kind, name string) bool {
	for _, n := range validNames[kind] {
		if n == name {
			return true
		}
	}
	return false
}

// RequiredParentName returns the mandated parent entity name for a category
// or subcategory name. The second return value is false when the name has no
// mapping entry, in which case only the enum-membership constraint applies.
func RequiredParentName(kind Kind, name string) (string, bool) {
	switch kind {
	case KindCategory:
		parent, ok := categoryTransactionType[name]
		return parent, ok
	case KindSubcategory:
		parent, ok := subcategoryCategory[name]
		return parent, ok
	default:
		return "", false
	}
}
