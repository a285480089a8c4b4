package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/bimadewantoro/moneymate/internal/currency"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/service"
)

// CurrentBalance derives one account's balance in its native currency by
// folding every ledger event that references it, deactivated or not. An
// unknown account id is a definite not-found failure, never zero.
func (e *Engine) CurrentBalance(ctx context.Context, ownerID, accountID string) (int64, error) {
	return e.storage.AccountBalance(ctx, ownerID, accountID)
}

// BalancesForOwner derives every account balance for the owner. The
// storage layer computes this with a bounded number of aggregate queries,
// not one query per account.
func (e *Engine) BalancesForOwner(ctx context.Context, ownerID string) (map[string]int64, error) {
	return e.storage.AccountBalances(ctx, ownerID)
}

// TotalBalance sums every account's current balance converted to the
// owner's base currency at the given date. Conversion happens only here,
// at the reporting boundary; per-account balances stay native.
func (e *Engine) TotalBalance(ctx context.Context, ownerID string, on time.Time) (int64, error) {
	base, err := e.baseCurrency(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	accounts, err := e.storage.ListAccounts(ctx, ownerID, true)
	if err != nil {
		return 0, err
	}

	balances, err := e.storage.AccountBalances(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, account := range accounts {
		converted, err := e.converter.Convert(ctx, balances[account.ID], account.Currency, base, on)
		if err != nil {
			return 0, fmt.Errorf("account %s: %w", account.ID, err)
		}
		total += converted
	}

	return total, nil
}

// eventInBase converts one ledger event's amount to the base currency. The
// rate recorded with the event wins; an unset (zero) recorded rate falls
// back to the historical lookup at the event date.
func (e *Engine) eventInBase(ctx context.Context, txn *model.Transaction, base string) (int64, error) {
	if txn.Currency == base {
		return txn.Amount, nil
	}
	if txn.ExchangeRate.IsPositive() {
		return currency.ApplyRate(txn.Amount, txn.ExchangeRate), nil
	}
	return e.converter.Convert(ctx, txn.Amount, txn.Currency, base, txn.Date)
}

// balancesAt folds the given events dated on/before the cutoff into
// native-currency balances per account. This is the naive full refold the
// net-worth series runs per cutoff; the NetWorthHistory contract hides the
// strategy so a running-total implementation can replace it.
func balancesAt(accounts []model.Account, events []model.Transaction, cutoff time.Time) map[string]int64 {
	balances := make(map[string]int64, len(accounts))
	for _, account := range accounts {
		balances[account.ID] = account.InitialBalance
	}

	for i := range events {
		txn := &events[i]
		if txn.Date.After(cutoff) {
			continue
		}
		if txn.ToAccountID != nil {
			if _, ok := balances[*txn.ToAccountID]; ok {
				balances[*txn.ToAccountID] += txn.Amount
			}
		}
		if txn.FromAccountID != nil {
			if _, ok := balances[*txn.FromAccountID]; ok {
				balances[*txn.FromAccountID] -= txn.Amount
			}
		}
	}

	return balances
}

// ownerLedger fetches the owner's accounts (deactivated included) and all
// events dated on/before the cutoff.
func (e *Engine) ownerLedger(ctx context.Context, ownerID string, cutoff time.Time) ([]model.Account, []model.Transaction, error) {
	accounts, err := e.storage.ListAccounts(ctx, ownerID, true)
	if err != nil {
		return nil, nil, err
	}

	events, err := e.storage.ListTransactions(ctx, ownerID, service.TransactionFilter{
		EndDate: &cutoff,
	})
	if err != nil {
		return nil, nil, err
	}

	return accounts, events, nil
}
