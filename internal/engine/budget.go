package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/service"
)

// classifyTier maps an unclamped percentage onto a budget tier. Band edges
// are inclusive on the lower side: 75.00 is already warning, 90.00 already
// danger, 100.00 already over.
func classifyTier(percentage float64) model.BudgetTier {
	switch {
	case percentage < 75:
		return model.BudgetSafe
	case percentage < 90:
		return model.BudgetWarning
	case percentage < 100:
		return model.BudgetDanger
	default:
		return model.BudgetOver
	}
}

// BudgetStatuses reports month-to-date budget health for every active
// expense category that has a monthly budget. Categories without a budget
// are excluded entirely, not treated as unlimited-safe. Spent amounts are
// in the owner's base currency; results are ordered by category name.
func (e *Engine) BudgetStatuses(ctx context.Context, ownerID string, now time.Time) ([]model.BudgetStatus, error) {
	base, err := e.baseCurrency(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	categories, err := e.storage.ListCategories(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}

	start, end := monthWindow(now)
	expenseType := model.TransactionTypeExpense
	events, err := e.storage.ListTransactions(ctx, ownerID, service.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
		Type:      expenseType,
	})
	if err != nil {
		return nil, err
	}

	spent := make(map[string]int64)
	for i := range events {
		txn := &events[i]
		if txn.CategoryID == nil {
			continue
		}
		amount, err := e.eventInBase(ctx, txn, base)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", txn.ID, err)
		}
		spent[*txn.CategoryID] += amount
	}

	var statuses []model.BudgetStatus
	for i := range categories {
		category := &categories[i]
		if !category.Budgeted() {
			continue
		}

		budget := *category.MonthlyBudget
		used := spent[category.ID]
		percentage := float64(used) / float64(budget) * 100

		statuses = append(statuses, model.BudgetStatus{
			CategoryID:    category.ID,
			CategoryName:  category.Name,
			Spent:         used,
			MonthlyBudget: budget,
			Remaining:     budget - used,
			Percentage:    percentage,
			Status:        classifyTier(percentage),
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].CategoryName < statuses[j].CategoryName
	})

	return statuses, nil
}

// Watchlist returns the budgeted categories currently above the safe
// threshold, most urgent first (highest percentage, name as tiebreak).
// Safe categories never appear, budget or not.
func (e *Engine) Watchlist(ctx context.Context, ownerID string, now time.Time) ([]model.BudgetStatus, error) {
	statuses, err := e.BudgetStatuses(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	return selectWatchlist(statuses), nil
}

// selectWatchlist filters and orders budget statuses for attention.
func selectWatchlist(statuses []model.BudgetStatus) []model.BudgetStatus {
	var watchlist []model.BudgetStatus
	for _, status := range statuses {
		if status.Status == model.BudgetSafe {
			continue
		}
		watchlist = append(watchlist, status)
	}

	sort.Slice(watchlist, func(i, j int) bool {
		if watchlist[i].Percentage != watchlist[j].Percentage {
			return watchlist[i].Percentage > watchlist[j].Percentage
		}
		return watchlist[i].CategoryName < watchlist[j].CategoryName
	})

	return watchlist
}
