// Package engine derives balances, month statistics, budget health, and
// net-worth history from the append-only ledger. Every operation is a pure
// read over the storage contract, parametrized by an explicit "now" so the
// temporal logic stays testable.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/bimadewantoro/moneymate/internal/currency"
	"github.com/bimadewantoro/moneymate/internal/model"

	"golang.org/x/sync/errgroup"
)

// Engine computes derived ledger state for one request at a time. It holds
// no mutable state and embeds no retry loops; failures surface to the
// caller as typed errors.
type Engine struct {
	storage   Storage
	converter *currency.Converter
}

// Config holds configuration options for the analytics engine.
type Config struct {
	TrendMonths    int
	NetWorthMonths int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TrendMonths:    6,
		NetWorthMonths: 6,
	}
}

// New creates an analytics engine over the given storage and converter.
func New(storage Storage, converter *currency.Converter) *Engine {
	return &Engine{
		storage:   storage,
		converter: converter,
	}
}

// baseCurrency resolves the owner's configured reporting currency.
func (e *Engine) baseCurrency(ctx context.Context, ownerID string) (string, error) {
	settings, err := e.storage.GetOwnerSettings(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to load owner settings: %w", err)
	}
	return settings.BaseCurrency, nil
}

// Overview runs the full dashboard fan-out: balances, month statistics,
// budget statuses with watchlist, trend series, and net-worth history.
// The branches are independent and fetched concurrently; any branch
// failure fails the overview, so partial results are never presented as
// final. The watchlist is composed from the budget branch inside that
// branch since it depends on its output.
func (e *Engine) Overview(ctx context.Context, ownerID string, now time.Time, cfg Config) (*model.Overview, error) {
	base, err := e.baseCurrency(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	overview := &model.Overview{BaseCurrency: base}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balances, err := e.BalancesForOwner(gctx, ownerID)
		if err != nil {
			return err
		}
		total, err := e.TotalBalance(gctx, ownerID, now)
		if err != nil {
			return err
		}
		overview.Balances = balances
		overview.TotalBalance = total
		return nil
	})

	g.Go(func() error {
		stats, err := e.MonthStatistics(gctx, ownerID, now)
		if err != nil {
			return err
		}
		overview.MonthStats = stats
		return nil
	})

	g.Go(func() error {
		budgets, err := e.BudgetStatuses(gctx, ownerID, now)
		if err != nil {
			return err
		}
		overview.Budgets = budgets
		overview.Watchlist = selectWatchlist(budgets)
		return nil
	})

	g.Go(func() error {
		trends, err := e.MonthlyTrends(gctx, ownerID, cfg.TrendMonths, now)
		if err != nil {
			return err
		}
		overview.Trends = trends
		return nil
	})

	g.Go(func() error {
		netWorth, err := e.NetWorthHistory(gctx, ownerID, cfg.NetWorthMonths, now)
		if err != nil {
			return err
		}
		overview.NetWorth = netWorth
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return overview, nil
}
