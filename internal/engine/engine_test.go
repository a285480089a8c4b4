package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimadewantoro/moneymate/internal/currency"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/testutil"
)

// testNow is the fixed reference instant for the temporal tests: mid-March,
// so the current window is 2024-03 and the previous is 2024-02.
var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T) (*testutil.TestDB, *Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	eng := New(db.Storage, currency.NewConverter(db.Storage))
	return db, eng
}

func int64Ptr(v int64) *int64 { return &v }

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return parsed
}

func TestOverview_EndToEnd(t *testing.T) {
	db, eng := newTestEngine(t)
	ctx := context.Background()

	account := db.SeedAccount("Checking", "IDR", 0)
	food := db.SeedCategory("Food", model.CategoryTypeExpense, int64Ptr(500000))
	db.SeedIncome(account, 1000000, "IDR", date(2024, 3, 5))
	db.SeedExpense(account, &food, 300000, "IDR", date(2024, 3, 10))

	overview, err := eng.Overview(ctx, testutil.TestOwner, testNow, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "IDR", overview.BaseCurrency)
	assert.Equal(t, int64(700000), overview.Balances[account])
	assert.Equal(t, int64(700000), overview.TotalBalance)

	require.NotNil(t, overview.MonthStats)
	assert.Equal(t, int64(1000000), overview.MonthStats.Income)
	assert.Equal(t, int64(300000), overview.MonthStats.Expenses)
	assert.InDelta(t, 0.7, overview.MonthStats.SavingsRate, 1e-9)

	require.Len(t, overview.Budgets, 1)
	assert.Equal(t, int64(300000), overview.Budgets[0].Spent)
	assert.InDelta(t, 60.0, overview.Budgets[0].Percentage, 1e-9)
	assert.Equal(t, model.BudgetSafe, overview.Budgets[0].Status)

	// 60% is safe, so nothing needs attention.
	assert.Empty(t, overview.Watchlist)

	require.Len(t, overview.Trends, DefaultConfig().TrendMonths)
	last := overview.Trends[len(overview.Trends)-1]
	assert.Equal(t, int64(1000000), last.Income)
	assert.Equal(t, int64(300000), last.Expenses)

	require.Len(t, overview.NetWorth, DefaultConfig().NetWorthMonths)
	assert.Equal(t, int64(700000), overview.NetWorth[len(overview.NetWorth)-1].NetWorth)
}

func TestOverview_EmptyLedger(t *testing.T) {
	_, eng := newTestEngine(t)
	ctx := context.Background()

	overview, err := eng.Overview(ctx, testutil.TestOwner, testNow, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, int64(0), overview.TotalBalance)
	assert.Equal(t, int64(0), overview.MonthStats.Income)
	assert.Zero(t, overview.MonthStats.SavingsRate)
	assert.Zero(t, overview.MonthStats.IncomeTrend)
	assert.Empty(t, overview.Budgets)
	assert.Empty(t, overview.Watchlist)

	// The series stay dense even with nothing recorded.
	assert.Len(t, overview.Trends, DefaultConfig().TrendMonths)
	assert.Len(t, overview.NetWorth, DefaultConfig().NetWorthMonths)
	for _, point := range overview.Trends {
		assert.Zero(t, point.Income)
		assert.Zero(t, point.Expenses)
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := monthWindow(testNow)

	assert.Equal(t, date(2024, 3, 1), start)
	assert.True(t, end.After(date(2024, 3, 31)), "end must cover the last day")
	assert.True(t, end.Before(date(2024, 4, 1)), "end must not leak into April")

	// February of a leap year.
	start, end = monthWindow(date(2024, 2, 29))
	assert.Equal(t, date(2024, 2, 1), start)
	assert.True(t, end.After(date(2024, 2, 29)))
	assert.True(t, end.Before(date(2024, 3, 1)))
}
