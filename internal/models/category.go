package models

import "strings"

// Category is one of the fixed labels the server accepts for a transaction.
// The set is closed: the client must never send a value outside of it.
type Category string

const (
	CategoryUncategorized Category = "Uncategorized"
	CategoryFoodDrink     Category = "Food & Drink"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryHousing       Category = "Housing"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEducation     Category = "Education"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

var allCategories = []Category{
	CategoryUncategorized,
	CategoryFoodDrink,
	CategoryTransport,
	CategoryShopping,
	CategoryHousing,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryEducation,
	CategoryIncome,
	CategoryOther,
}

// Categories returns the allowed labels in display order.
// The returned slice is a copy and safe to modify.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves user input to a member of the category set,
// matching case-insensitively. The second return value is false when
// the input matches nothing.
func ParseCategory(s string) (Category, bool) {
	for _, known := range allCategories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

func (c Category) String() string {
	return string(c)
}
