// Package models provides the data structures used throughout the application.
package models

import "fmt"

// Category is a closed classification label for a transaction.
type Category string

// The fixed category set. Any transaction with a positive amount resolves
// to CategoryIncome; everything else is scored against the rule table.
const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategorySubscriptions Category = "Subscriptions"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category in canonical order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategorySubscriptions,
	CategoryIncome,
	CategoryOther,
}

// ExpenseCategories lists the categories eligible for keyword scoring,
// in evaluation order. Income is excluded; it is assigned by sign alone.
var ExpenseCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategorySubscriptions,
	CategoryOther,
}

// ParseCategory validates a raw string against the fixed category set.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", raw)
}

// IsValidCategory reports whether raw names a member of the fixed set.
func IsValidCategory(raw string) bool {
	_, err := ParseCategory(raw)
	return err == nil
}

// String returns the category label.
func (c Category) String() string {
	return string(c)
}

// CategoryRule maps a category to the keywords that score toward it.
type CategoryRule struct {
	Name     Category `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RulesConfig is the structure of the categories YAML file.
type RulesConfig struct {
	Categories []CategoryRule `yaml:"categories"`
}
