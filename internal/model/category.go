package model

import "time"

// CategoryType indicates whether a category labels income or expense events.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a user-defined classification label.
//
// MonthlyBudget is only meaningful for expense categories; nil means
// "no limit" and excludes the category from budget status output.
type Category struct {
	CreatedAt     time.Time
	MonthlyBudget *int64 // minor units, expense categories only
	ID            string
	OwnerID       string
	Name          string
	Type          CategoryType
	Color         string
	Icon          string
	State         LifecycleState
}

// Budgeted reports whether this category participates in budget
// classification: an expense category with a non-nil monthly budget.
func (c *Category) Budgeted() bool {
	return c.Type == CategoryTypeExpense && c.MonthlyBudget != nil
}
