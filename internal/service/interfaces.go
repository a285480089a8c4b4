// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/shopspring/decimal"
)

// TransactionFilter defines filtering options for ledger queries. All
// queries are additionally scoped by owner id at the call site; the filter
// never widens that scope.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *string
	AccountID  *string // matches either side of the event
	Type       model.TransactionType
	Limit      int
	Offset     int
}

// Storage defines the contract for the ledger persistence layer.
//
// Every mutation is a single atomic operation against the underlying
// store: a concurrent reader observes either the pre- or post-mutation
// ledger, never a partially applied one.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	UpdateAccount(ctx context.Context, account *model.Account) error
	DeactivateAccount(ctx context.Context, ownerID, accountID string) error
	GetAccount(ctx context.Context, ownerID, accountID string) (*model.Account, error)
	ListAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]model.Account, error)

	// Balance aggregates. Balances are derived by full aggregation per
	// request; an incremental/materialized strategy may replace the
	// implementation without changing this contract.
	AccountBalance(ctx context.Context, ownerID, accountID string) (int64, error)
	AccountBalances(ctx context.Context, ownerID string) (map[string]int64, error)

	// Category operations
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	SetMonthlyBudget(ctx context.Context, ownerID, categoryID string, budget *int64) error
	DeactivateCategory(ctx context.Context, ownerID, categoryID string) error
	DeleteCategory(ctx context.Context, ownerID, categoryID string) error
	GetCategory(ctx context.Context, ownerID, categoryID string) (*model.Category, error)
	ListCategories(ctx context.Context, ownerID string, includeInactive bool) ([]model.Category, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, txnID string) error
	GetTransaction(ctx context.Context, ownerID, txnID string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]model.Transaction, error)

	// Exchange rate operations. LookupRate implements RateSource.
	SaveExchangeRate(ctx context.Context, rate *model.ExchangeRate) error
	ListExchangeRates(ctx context.Context, base, target string) ([]model.ExchangeRate, error)
	LookupRate(ctx context.Context, base, target string, on time.Time) (decimal.Decimal, error)

	// Owner settings
	GetOwnerSettings(ctx context.Context, ownerID string) (*model.OwnerSettings, error)
	SaveOwnerSettings(ctx context.Context, settings *model.OwnerSettings) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RateSource resolves a conversion rate for a currency pair on a date.
// It is the single injected dependency of the currency converter, so the
// engine can be tested against a fake rate table.
//
// Implementations pick the snapshot closest at-or-before the date, fall
// back to the earliest snapshot for the pair, and return a "rate
// unavailable" error when the pair has no snapshots at all.
type RateSource interface {
	LookupRate(ctx context.Context, base, target string, on time.Time) (decimal.Decimal, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
