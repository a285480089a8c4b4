package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/service"
)

// percentChange is the guarded trend formula: (current − previous) /
// |previous| × 100, defined as 0 when previous is 0. This is a documented
// convention, not an arithmetic accident; it keeps first-month trends and
// empty ledgers NaN-free.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	diff := current - previous
	if previous < 0 {
		return diff / -previous * 100
	}
	return diff / previous * 100
}

// savingsRate is (income − expenses) / income, defined as 0 when income
// is 0.
func savingsRate(income, expenses int64) float64 {
	if income == 0 {
		return 0
	}
	return float64(income-expenses) / float64(income)
}

// sumWindow totals income and expense events in one window, converted to
// the base currency. Transfers move money between own accounts and count
// toward neither side.
func (e *Engine) sumWindow(ctx context.Context, ownerID, base string, start, end time.Time) (income, expenses int64, err error) {
	events, err := e.storage.ListTransactions(ctx, ownerID, service.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return 0, 0, err
	}

	for i := range events {
		txn := &events[i]
		switch txn.Type {
		case model.TransactionTypeIncome, model.TransactionTypeExpense:
		default:
			continue
		}

		amount, err := e.eventInBase(ctx, txn, base)
		if err != nil {
			return 0, 0, fmt.Errorf("transaction %s: %w", txn.ID, err)
		}

		if txn.Type == model.TransactionTypeIncome {
			income += amount
		} else {
			expenses += amount
		}
	}

	return income, expenses, nil
}

// MonthStatistics sums the calendar month containing now plus the
// immediately preceding month, and reports savings rate and percentage
// trend deltas for income, expenses, and savings rate. The expenses trend
// uses the same formula as the others; display layers invert its
// direction semantically (rising expenses read as bad).
func (e *Engine) MonthStatistics(ctx context.Context, ownerID string, now time.Time) (*model.MonthStatistics, error) {
	base, err := e.baseCurrency(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	start, end := monthWindow(now)
	prevStart, prevEnd := monthWindow(start.AddDate(0, 0, -1))

	income, expenses, err := e.sumWindow(ctx, ownerID, base, start, end)
	if err != nil {
		return nil, err
	}
	prevIncome, prevExpenses, err := e.sumWindow(ctx, ownerID, base, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	rate := savingsRate(income, expenses)
	prevRate := savingsRate(prevIncome, prevExpenses)

	return &model.MonthStatistics{
		MonthStart:          start,
		MonthEnd:            end,
		Income:              income,
		Expenses:            expenses,
		PreviousIncome:      prevIncome,
		PreviousExpenses:    prevExpenses,
		SavingsRate:         rate,
		PreviousSavingsRate: prevRate,
		IncomeTrend:         percentChange(float64(income), float64(prevIncome)),
		ExpensesTrend:       percentChange(float64(expenses), float64(prevExpenses)),
		SavingsRateTrend:    percentChange(rate, prevRate),
	}, nil
}

// MonthlyTrends computes per-month income and expense totals for the
// trailing months including the current one, oldest first. The series is
// dense: a month with no events yields a zero-filled row, never a gap, so
// chart consumers always get exactly `months` equal-length rows.
func (e *Engine) MonthlyTrends(ctx context.Context, ownerID string, months int, now time.Time) ([]model.TrendPoint, error) {
	if months <= 0 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}

	base, err := e.baseCurrency(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	seriesStart := monthStart(now, months-1)
	_, seriesEnd := monthWindow(now)

	events, err := e.storage.ListTransactions(ctx, ownerID, service.TransactionFilter{
		StartDate: &seriesStart,
		EndDate:   &seriesEnd,
	})
	if err != nil {
		return nil, err
	}

	points := make([]model.TrendPoint, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		start := monthStart(now, months-1-i)
		points[i] = model.TrendPoint{MonthStart: start}
		index[start.Format("2006-01")] = i
	}

	for i := range events {
		txn := &events[i]
		switch txn.Type {
		case model.TransactionTypeIncome, model.TransactionTypeExpense:
		default:
			continue
		}

		slot, ok := index[txn.Date.Format("2006-01")]
		if !ok {
			continue
		}

		amount, err := e.eventInBase(ctx, txn, base)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", txn.ID, err)
		}

		if txn.Type == model.TransactionTypeIncome {
			points[slot].Income += amount
		} else {
			points[slot].Expenses += amount
		}
	}

	return points, nil
}
