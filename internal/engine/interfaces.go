package engine

import (
	"context"

	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/service"
)

// Storage is the slice of the persistence contract the analytics engine
// reads through. Every read is scoped by owner id; cross-owner leakage is
// a correctness violation, not just a privacy one.
type Storage interface {
	ListAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]model.Account, error)
	AccountBalance(ctx context.Context, ownerID, accountID string) (int64, error)
	AccountBalances(ctx context.Context, ownerID string) (map[string]int64, error)
	ListCategories(ctx context.Context, ownerID string, includeInactive bool) ([]model.Category, error)
	ListTransactions(ctx context.Context, ownerID string, filter service.TransactionFilter) ([]model.Transaction, error)
	GetOwnerSettings(ctx context.Context, ownerID string) (*model.OwnerSettings, error)
}
