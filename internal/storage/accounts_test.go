package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
)

func TestSQLiteStorage_AccountBalance(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 100000)

	// Empty ledger: the initial balance stands.
	balance, err := store.AccountBalance(ctx, testOwner, "acc-1")
	if err != nil {
		t.Fatalf("Failed to derive balance: %v", err)
	}
	if balance != 100000 {
		t.Errorf("Expected initial balance 100000, got %d", balance)
	}

	seedTxn(t, store, model.Transaction{
		ID:          "txn-in",
		Type:        model.TransactionTypeIncome,
		ToAccountID: ptr("acc-1"),
		Amount:      50000,
	})
	seedTxn(t, store, model.Transaction{
		ID:            "txn-out",
		Type:          model.TransactionTypeExpense,
		FromAccountID: ptr("acc-1"),
		Amount:        20000,
	})

	balance, err = store.AccountBalance(ctx, testOwner, "acc-1")
	if err != nil {
		t.Fatalf("Failed to derive balance: %v", err)
	}
	if balance != 130000 {
		t.Errorf("Expected balance 130000, got %d", balance)
	}

	if _, err := store.AccountBalance(ctx, testOwner, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing account, got %v", err)
	}
}

func TestSQLiteStorage_AccountBalances_TransferSymmetry(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 500000)
	seedAccount(t, store, "acc-2", 0)

	seedTxn(t, store, model.Transaction{
		ID:            "txn-move",
		Type:          model.TransactionTypeTransfer,
		FromAccountID: ptr("acc-1"),
		ToAccountID:   ptr("acc-2"),
		Amount:        150000,
	})

	balances, err := store.AccountBalances(ctx, testOwner)
	if err != nil {
		t.Fatalf("Failed to derive balances: %v", err)
	}
	if balances["acc-1"] != 350000 {
		t.Errorf("Expected source balance 350000, got %d", balances["acc-1"])
	}
	if balances["acc-2"] != 150000 {
		t.Errorf("Expected destination balance 150000, got %d", balances["acc-2"])
	}

	// A transfer never changes the combined total.
	if total := balances["acc-1"] + balances["acc-2"]; total != 500000 {
		t.Errorf("Expected combined total 500000, got %d", total)
	}
}

func TestSQLiteStorage_AccountBalances_IncludesDeactivated(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 100000)
	seedAccount(t, store, "acc-2", 25000)

	if err := store.DeactivateAccount(ctx, testOwner, "acc-2"); err != nil {
		t.Fatalf("Failed to deactivate account: %v", err)
	}

	// Deactivated accounts drop out of pickers but stay in balance math.
	active, err := store.ListAccounts(ctx, testOwner, false)
	if err != nil {
		t.Fatalf("Failed to list accounts: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("Expected 1 active account, got %d", len(active))
	}

	balances, err := store.AccountBalances(ctx, testOwner)
	if err != nil {
		t.Fatalf("Failed to derive balances: %v", err)
	}
	if len(balances) != 2 {
		t.Errorf("Expected balances for 2 accounts, got %d", len(balances))
	}
	if balances["acc-2"] != 25000 {
		t.Errorf("Expected deactivated account balance 25000, got %d", balances["acc-2"])
	}
}

func TestSQLiteStorage_UpdateAccount_ImmutableFields(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 100000)

	updated := &model.Account{
		ID:             "acc-1",
		OwnerID:        testOwner,
		Name:           "Renamed",
		Type:           model.AccountTypeEWallet,
		Currency:       "USD", // must not stick
		InitialBalance: 999999,
		State:          model.StateActive,
	}
	if err := store.UpdateAccount(ctx, updated); err != nil {
		t.Fatalf("Failed to update account: %v", err)
	}

	got, err := store.GetAccount(ctx, testOwner, "acc-1")
	if err != nil {
		t.Fatalf("Failed to get account: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("Expected name Renamed, got %s", got.Name)
	}
	if got.Currency != "IDR" {
		t.Errorf("Currency must be immutable, got %s", got.Currency)
	}
	if got.InitialBalance != 100000 {
		t.Errorf("Initial balance must be immutable, got %d", got.InitialBalance)
	}
}
