package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/testutil"
)

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		want       model.BudgetTier
	}{
		{"zero spend", 0, model.BudgetSafe},
		{"just under safe edge", 74.99, model.BudgetSafe},
		{"safe edge is warning", 75, model.BudgetWarning},
		{"just under danger edge", 89.99, model.BudgetWarning},
		{"danger edge", 90, model.BudgetDanger},
		{"just under over edge", 99.99, model.BudgetDanger},
		{"exactly at budget", 100, model.BudgetOver},
		{"well past budget", 150, model.BudgetOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTier(tt.percentage))
		})
	}
}

func TestBudgetStatuses(t *testing.T) {
	db, eng := newTestEngine(t)
	ctx := context.Background()

	account := db.SeedAccount("Checking", "IDR", 0)
	food := db.SeedCategory("Food", model.CategoryTypeExpense, int64Ptr(500000))
	transport := db.SeedCategory("Transport", model.CategoryTypeExpense, int64Ptr(200000))
	db.SeedCategory("Misc", model.CategoryTypeExpense, nil)          // unbudgeted
	db.SeedCategory("Salary", model.CategoryTypeIncome, nil)         // never budgeted
	db.SeedExpense(account, &food, 300000, "IDR", date(2024, 3, 5))  // 60%
	db.SeedExpense(account, &transport, 190000, "IDR", date(2024, 3, 8)) // 95%
	db.SeedExpense(account, nil, 999999, "IDR", date(2024, 3, 9))    // uncategorized
	db.SeedExpense(account, &food, 100000, "IDR", date(2024, 2, 20)) // previous month

	statuses, err := eng.BudgetStatuses(ctx, testutil.TestOwner, testNow)
	require.NoError(t, err)

	// Only budgeted expense categories, ordered by name.
	require.Len(t, statuses, 2)
	assert.Equal(t, "Food", statuses[0].CategoryName)
	assert.Equal(t, "Transport", statuses[1].CategoryName)

	assert.Equal(t, int64(300000), statuses[0].Spent)
	assert.Equal(t, int64(200000), statuses[0].Remaining)
	assert.InDelta(t, 60.0, statuses[0].Percentage, 1e-9)
	assert.Equal(t, model.BudgetSafe, statuses[0].Status)

	assert.Equal(t, int64(190000), statuses[1].Spent)
	assert.InDelta(t, 95.0, statuses[1].Percentage, 1e-9)
	assert.Equal(t, model.BudgetDanger, statuses[1].Status)
}

func TestBudgetStatuses_OverspentUnclamped(t *testing.T) {
	db, eng := newTestEngine(t)
	ctx := context.Background()

	account := db.SeedAccount("Checking", "IDR", 0)
	food := db.SeedCategory("Food", model.CategoryTypeExpense, int64Ptr(100000))
	db.SeedExpense(account, &food, 150000, "IDR", date(2024, 3, 5))

	statuses, err := eng.BudgetStatuses(ctx, testutil.TestOwner, testNow)
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	assert.InDelta(t, 150.0, statuses[0].Percentage, 1e-9)
	assert.Equal(t, int64(-50000), statuses[0].Remaining)
	assert.Equal(t, model.BudgetOver, statuses[0].Status)
}

func TestBudgetStatuses_DeactivatedCategoryExcluded(t *testing.T) {
	db, eng := newTestEngine(t)
	ctx := context.Background()

	account := db.SeedAccount("Checking", "IDR", 0)
	old := db.SeedCategory("Old Hobby", model.CategoryTypeExpense, int64Ptr(100000))
	db.SeedExpense(account, &old, 50000, "IDR", date(2024, 3, 5))
	require.NoError(t, db.Storage.DeactivateCategory(ctx, testutil.TestOwner, old))

	statuses, err := eng.BudgetStatuses(ctx, testutil.TestOwner, testNow)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestWatchlist_OrderingAndExclusion(t *testing.T) {
	db, eng := newTestEngine(t)
	ctx := context.Background()

	account := db.SeedAccount("Checking", "IDR", 0)
	groceries := db.SeedCategory("Groceries", model.CategoryTypeExpense, int64Ptr(100000))
	rent := db.SeedCategory("Rent", model.CategoryTypeExpense, int64Ptr(100000))
	fun := db.SeedCategory("Fun", model.CategoryTypeExpense, int64Ptr(100000))
	coffee := db.SeedCategory("Coffee", model.CategoryTypeExpense, int64Ptr(100000))

	db.SeedExpense(account, &groceries, 76000, "IDR", date(2024, 3, 5))  // 76% warning
	db.SeedExpense(account, &rent, 120000, "IDR", date(2024, 3, 5))      // 120% over
	db.SeedExpense(account, &fun, 50000, "IDR", date(2024, 3, 5))        // 50% safe
	db.SeedExpense(account, &coffee, 76000, "IDR", date(2024, 3, 5))     // 76% warning

	watchlist, err := eng.Watchlist(ctx, testutil.TestOwner, testNow)
	require.NoError(t, err)
	require.Len(t, watchlist, 3)

	// Highest percentage first; name breaks the 76% tie.
	assert.Equal(t, "Rent", watchlist[0].CategoryName)
	assert.Equal(t, "Coffee", watchlist[1].CategoryName)
	assert.Equal(t, "Groceries", watchlist[2].CategoryName)

	for _, status := range watchlist {
		assert.NotEqual(t, model.BudgetSafe, status.Status)
	}
}

func TestWatchlist_EmptyWhenAllSafe(t *testing.T) {
	db, eng := newTestEngine(t)
	ctx := context.Background()

	account := db.SeedAccount("Checking", "IDR", 0)
	food := db.SeedCategory("Food", model.CategoryTypeExpense, int64Ptr(500000))
	db.SeedExpense(account, &food, 100000, "IDR", date(2024, 3, 5))

	watchlist, err := eng.Watchlist(ctx, testutil.TestOwner, testNow)
	require.NoError(t, err)
	assert.Empty(t, watchlist)
}
