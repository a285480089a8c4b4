package model

import "time"

// Derived view records. These are computed on demand, never stored, and are
// plain data suitable for serialization. All amounts are integer minor units
// in the owner's base currency unless noted otherwise.

// MonthStatistics summarizes the current calendar month against the
// immediately preceding one.
type MonthStatistics struct {
	MonthStart       time.Time
	MonthEnd         time.Time
	Income           int64
	Expenses         int64
	PreviousIncome   int64
	PreviousExpenses int64
	// SavingsRate is (income − expenses) / income, 0 when income is 0.
	SavingsRate         float64
	PreviousSavingsRate float64
	// Trend fields are percent change versus the previous month, 0 when the
	// previous value is 0. A rising ExpensesTrend reads as bad in display,
	// but the formula is the same for all three.
	IncomeTrend      float64
	ExpensesTrend    float64
	SavingsRateTrend float64
}

// TrendPoint is one month's income/expense totals in a trailing series.
type TrendPoint struct {
	MonthStart time.Time
	Income     int64
	Expenses   int64
}

// NetWorthPoint is the cumulative net worth as of one month-end cutoff.
type NetWorthPoint struct {
	Cutoff   time.Time
	NetWorth int64
	// Change and ChangePercent are versus the previous point; both 0 for
	// the first point in a series.
	Change        int64
	ChangePercent float64
}

// BudgetTier classifies month-to-date spend against a monthly budget.
type BudgetTier string

// Budget tiers, ordered by urgency. Band edges are inclusive on the lower
// side: safe < 75, warning < 90, danger < 100, over >= 100.
const (
	BudgetSafe    BudgetTier = "safe"
	BudgetWarning BudgetTier = "warning"
	BudgetDanger  BudgetTier = "danger"
	BudgetOver    BudgetTier = "over"
)

// BudgetStatus reports one budgeted expense category's month-to-date health.
type BudgetStatus struct {
	CategoryID    string
	CategoryName  string
	Spent         int64
	MonthlyBudget int64
	Remaining     int64 // may be negative
	// Percentage is spent/budget × 100, not clamped; display layers clamp
	// the bar, not the value.
	Percentage float64
	Status     BudgetTier
}

// Overview composes every derived view for one owner, as fetched by the
// dashboard fan-out. Branches are independent; a failed branch fails the
// whole overview rather than rendering partial state as if final.
type Overview struct {
	Balances     map[string]int64 // account id → native-currency balance
	MonthStats   *MonthStatistics
	Budgets      []BudgetStatus
	Watchlist    []BudgetStatus
	Trends       []TrendPoint
	NetWorth     []NetWorthPoint
	TotalBalance int64 // base currency
	BaseCurrency string
}
