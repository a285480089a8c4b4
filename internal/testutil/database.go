// Package testutil provides test helpers for exercising the ledger engine
// against a real in-memory database.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestOwner is the owner id used by all seeded test data.
const TestOwner = "owner-test"

// TestDB wraps an in-memory SQLite storage with ledger seeding helpers.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database with owner settings
// seeded (base currency IDR) and registers cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if err := store.SaveOwnerSettings(ctx, &model.OwnerSettings{
		OwnerID:      TestOwner,
		BaseCurrency: "IDR",
	}); err != nil {
		t.Fatalf("failed to seed owner settings: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedAccount creates an account and returns its id.
func (db *TestDB) SeedAccount(name, curr string, initialBalance int64) string {
	db.t.Helper()

	account := &model.Account{
		ID:             uuid.NewString(),
		OwnerID:        TestOwner,
		Name:           name,
		Type:           model.AccountTypeBank,
		Currency:       curr,
		InitialBalance: initialBalance,
		State:          model.StateActive,
	}
	if err := db.Storage.CreateAccount(context.Background(), account); err != nil {
		db.t.Fatalf("failed to seed account %q: %v", name, err)
	}
	return account.ID
}

// SeedCategory creates an expense category, optionally budgeted, and
// returns its id.
func (db *TestDB) SeedCategory(name string, categoryType model.CategoryType, monthlyBudget *int64) string {
	db.t.Helper()

	category := &model.Category{
		ID:            uuid.NewString(),
		OwnerID:       TestOwner,
		Name:          name,
		Type:          categoryType,
		MonthlyBudget: monthlyBudget,
		State:         model.StateActive,
	}
	if err := db.Storage.CreateCategory(context.Background(), category); err != nil {
		db.t.Fatalf("failed to seed category %q: %v", name, err)
	}
	return category.ID
}

// SeedIncome records an income event into the account and returns its id.
func (db *TestDB) SeedIncome(toAccountID string, amount int64, curr string, date time.Time) string {
	return db.seedTxn(&model.Transaction{
		Type:        model.TransactionTypeIncome,
		ToAccountID: &toAccountID,
		Amount:      amount,
		Currency:    curr,
		Date:        date,
	})
}

// SeedExpense records an expense event from the account, optionally
// categorized, and returns its id.
func (db *TestDB) SeedExpense(fromAccountID string, categoryID *string, amount int64, curr string, date time.Time) string {
	return db.seedTxn(&model.Transaction{
		Type:          model.TransactionTypeExpense,
		FromAccountID: &fromAccountID,
		CategoryID:    categoryID,
		Amount:        amount,
		Currency:      curr,
		Date:          date,
	})
}

// SeedTransfer records a transfer between two accounts and returns its id.
func (db *TestDB) SeedTransfer(fromAccountID, toAccountID string, amount int64, curr string, date time.Time) string {
	return db.seedTxn(&model.Transaction{
		Type:          model.TransactionTypeTransfer,
		FromAccountID: &fromAccountID,
		ToAccountID:   &toAccountID,
		Amount:        amount,
		Currency:      curr,
		Date:          date,
	})
}

// SeedRate stores an exchange-rate snapshot.
func (db *TestDB) SeedRate(base, target, rate string, effective time.Time) {
	db.t.Helper()

	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		db.t.Fatalf("invalid test rate %q: %v", rate, err)
	}
	if err := db.Storage.SaveExchangeRate(context.Background(), &model.ExchangeRate{
		Base:          base,
		Target:        target,
		Rate:          parsed,
		EffectiveDate: effective,
	}); err != nil {
		db.t.Fatalf("failed to seed rate %s/%s: %v", base, target, err)
	}
}

func (db *TestDB) seedTxn(txn *model.Transaction) string {
	db.t.Helper()

	txn.ID = uuid.NewString()
	txn.OwnerID = TestOwner
	if err := db.Storage.CreateTransaction(context.Background(), txn); err != nil {
		db.t.Fatalf("failed to seed transaction: %v", err)
	}
	return txn.ID
}
