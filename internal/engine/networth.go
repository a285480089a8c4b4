package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/bimadewantoro/moneymate/internal/model"
)

// NetWorthHistory computes cumulative net worth as of each of the trailing
// months' ends, oldest first, current month included. Each point refolds
// the ledger up to its cutoff (point-in-time-correct, not the current
// balance), converts every account's native balance to the base currency
// at that cutoff, and reports absolute and percentage change versus the
// previous point (0 for the first).
func (e *Engine) NetWorthHistory(ctx context.Context, ownerID string, months int, now time.Time) ([]model.NetWorthPoint, error) {
	if months <= 0 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}

	base, err := e.baseCurrency(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	_, latestCutoff := monthWindow(now)

	// One ledger read; the per-cutoff refolds run in memory.
	accounts, events, err := e.ownerLedger(ctx, ownerID, latestCutoff)
	if err != nil {
		return nil, err
	}

	points := make([]model.NetWorthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		cutoffMonth := monthStart(now, i)
		_, cutoff := monthWindow(cutoffMonth)

		total, err := e.netWorthAt(ctx, accounts, events, base, cutoff)
		if err != nil {
			return nil, err
		}

		point := model.NetWorthPoint{
			Cutoff:   cutoff,
			NetWorth: total,
		}
		if len(points) > 0 {
			previous := points[len(points)-1].NetWorth
			point.Change = total - previous
			point.ChangePercent = percentChange(float64(total), float64(previous))
		}
		points = append(points, point)
	}

	return points, nil
}

// netWorthAt folds balances at the cutoff and converts each account's
// native total to the base currency using the rates of the cutoff date.
func (e *Engine) netWorthAt(ctx context.Context, accounts []model.Account, events []model.Transaction, base string, cutoff time.Time) (int64, error) {
	balances := balancesAt(accounts, events, cutoff)

	var total int64
	for _, account := range accounts {
		converted, err := e.converter.Convert(ctx, balances[account.ID], account.Currency, base, cutoff)
		if err != nil {
			return 0, fmt.Errorf("account %s at %s: %w", account.ID, cutoff.Format("2006-01-02"), err)
		}
		total += converted
	}

	return total, nil
}
