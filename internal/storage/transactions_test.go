package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/service"
)

func TestSQLiteStorage_CreateTransaction_RejectsMalformedShape(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 0)
	seedAccount(t, store, "acc-2", 0)
	seedCategory(t, store, "cat-1", model.CategoryTypeExpense, nil)

	tests := []struct {
		name string
		txn  model.Transaction
	}{
		{
			name: "income with source account",
			txn: model.Transaction{
				ID:            "bad-1",
				Type:          model.TransactionTypeIncome,
				ToAccountID:   ptr("acc-1"),
				FromAccountID: ptr("acc-2"),
				Amount:        1000,
			},
		},
		{
			name: "expense without source account",
			txn: model.Transaction{
				ID:          "bad-2",
				Type:        model.TransactionTypeExpense,
				ToAccountID: ptr("acc-1"),
				Amount:      1000,
			},
		},
		{
			name: "transfer with category",
			txn: model.Transaction{
				ID:            "bad-3",
				Type:          model.TransactionTypeTransfer,
				FromAccountID: ptr("acc-1"),
				ToAccountID:   ptr("acc-2"),
				CategoryID:    ptr("cat-1"),
				Amount:        1000,
			},
		},
		{
			name: "non-positive amount",
			txn: model.Transaction{
				ID:          "bad-4",
				Type:        model.TransactionTypeIncome,
				ToAccountID: ptr("acc-1"),
				Amount:      0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.txn.OwnerID = testOwner
			tt.txn.Currency = "IDR"
			tt.txn.Date = testDate(2024, 3, 10)

			err := store.CreateTransaction(ctx, &tt.txn)
			if !errors.Is(err, ErrInvalidTransaction) {
				t.Errorf("Expected ErrInvalidTransaction, got %v", err)
			}
		})
	}
}

func TestSQLiteStorage_ReadMalformedRow_LedgerCorrupted(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 0)

	// Bypass the write path to plant a structurally broken row: an income
	// with a source account. Reads must refuse to reinterpret it.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, owner_id, type, amount, currency, exchange_rate, from_account_id, to_account_id, date, note, created_at)
		VALUES ('broken-1', ?, 'income', 1000, 'IDR', '0', 'acc-1', 'acc-1', ?, '', ?)`,
		testOwner, testDate(2024, 3, 10), time.Now())
	if err != nil {
		t.Fatalf("Failed to plant malformed row: %v", err)
	}

	if _, err := store.GetTransaction(ctx, testOwner, "broken-1"); !errors.Is(err, common.ErrLedgerCorrupted) {
		t.Errorf("Expected ErrLedgerCorrupted from GetTransaction, got %v", err)
	}
	if _, err := store.ListTransactions(ctx, testOwner, service.TransactionFilter{}); !errors.Is(err, common.ErrLedgerCorrupted) {
		t.Errorf("Expected ErrLedgerCorrupted from ListTransactions, got %v", err)
	}
}

func TestSQLiteStorage_DeleteCategory_EventsSurviveUncategorized(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 100000)
	seedCategory(t, store, "cat-1", model.CategoryTypeExpense, nil)
	seedTxn(t, store, model.Transaction{
		ID:            "txn-1",
		Type:          model.TransactionTypeExpense,
		FromAccountID: ptr("acc-1"),
		CategoryID:    ptr("cat-1"),
		Amount:        30000,
	})

	if err := store.DeleteCategory(ctx, testOwner, "cat-1"); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}

	txn, err := store.GetTransaction(ctx, testOwner, "txn-1")
	if err != nil {
		t.Fatalf("Transaction must survive category deletion: %v", err)
	}
	if txn.CategoryID != nil {
		t.Errorf("Expected category reference cleared, got %v", *txn.CategoryID)
	}

	// The event still counts toward the balance.
	balance, err := store.AccountBalance(ctx, testOwner, "acc-1")
	if err != nil {
		t.Fatalf("Failed to derive balance: %v", err)
	}
	if balance != 70000 {
		t.Errorf("Expected balance 70000, got %d", balance)
	}
}

func TestSQLiteStorage_UpdateTransaction_MovesTheFold(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 0)
	seedAccount(t, store, "acc-2", 0)
	seedTxn(t, store, model.Transaction{
		ID:          "txn-1",
		Type:        model.TransactionTypeIncome,
		ToAccountID: ptr("acc-1"),
		Amount:      50000,
	})

	// Repoint the income at the other account with a new amount.
	err := store.UpdateTransaction(ctx, &model.Transaction{
		ID:          "txn-1",
		OwnerID:     testOwner,
		Type:        model.TransactionTypeIncome,
		ToAccountID: ptr("acc-2"),
		Amount:      80000,
		Currency:    "IDR",
		Date:        testDate(2024, 3, 12),
	})
	if err != nil {
		t.Fatalf("Failed to update transaction: %v", err)
	}

	balances, err := store.AccountBalances(ctx, testOwner)
	if err != nil {
		t.Fatalf("Failed to derive balances: %v", err)
	}
	if balances["acc-1"] != 0 {
		t.Errorf("Expected old account back to 0, got %d", balances["acc-1"])
	}
	if balances["acc-2"] != 80000 {
		t.Errorf("Expected new account at 80000, got %d", balances["acc-2"])
	}
}

func TestSQLiteStorage_DeleteTransaction_RemovesFromFold(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 100000)
	seedTxn(t, store, model.Transaction{
		ID:            "txn-1",
		Type:          model.TransactionTypeExpense,
		FromAccountID: ptr("acc-1"),
		Amount:        40000,
	})

	if err := store.DeleteTransaction(ctx, testOwner, "txn-1"); err != nil {
		t.Fatalf("Failed to delete transaction: %v", err)
	}

	balance, err := store.AccountBalance(ctx, testOwner, "acc-1")
	if err != nil {
		t.Fatalf("Failed to derive balance: %v", err)
	}
	if balance != 100000 {
		t.Errorf("Expected balance restored to 100000, got %d", balance)
	}
}

func TestSQLiteStorage_ListTransactions_Filters(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, store, "acc-1", 0)
	seedAccount(t, store, "acc-2", 0)
	seedCategory(t, store, "cat-food", model.CategoryTypeExpense, nil)

	seedTxn(t, store, model.Transaction{
		ID: "txn-jan", Type: model.TransactionTypeIncome,
		ToAccountID: ptr("acc-1"), Amount: 100000, Date: testDate(2024, 1, 15),
	})
	seedTxn(t, store, model.Transaction{
		ID: "txn-feb", Type: model.TransactionTypeExpense,
		FromAccountID: ptr("acc-1"), CategoryID: ptr("cat-food"),
		Amount: 20000, Date: testDate(2024, 2, 10),
	})
	seedTxn(t, store, model.Transaction{
		ID: "txn-mar", Type: model.TransactionTypeTransfer,
		FromAccountID: ptr("acc-1"), ToAccountID: ptr("acc-2"),
		Amount: 30000, Date: testDate(2024, 3, 5),
	})

	t.Run("date window", func(t *testing.T) {
		start := testDate(2024, 2, 1)
		end := testDate(2024, 2, 29)
		txns, err := store.ListTransactions(ctx, testOwner, service.TransactionFilter{
			StartDate: &start, EndDate: &end,
		})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(txns) != 1 || txns[0].ID != "txn-feb" {
			t.Errorf("Expected only txn-feb, got %d rows", len(txns))
		}
	})

	t.Run("by type", func(t *testing.T) {
		txns, err := store.ListTransactions(ctx, testOwner, service.TransactionFilter{
			Type: model.TransactionTypeTransfer,
		})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(txns) != 1 || txns[0].ID != "txn-mar" {
			t.Errorf("Expected only txn-mar, got %d rows", len(txns))
		}
	})

	t.Run("by category", func(t *testing.T) {
		txns, err := store.ListTransactions(ctx, testOwner, service.TransactionFilter{
			CategoryID: ptr("cat-food"),
		})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(txns) != 1 || txns[0].ID != "txn-feb" {
			t.Errorf("Expected only txn-feb, got %d rows", len(txns))
		}
	})

	t.Run("by account either side", func(t *testing.T) {
		txns, err := store.ListTransactions(ctx, testOwner, service.TransactionFilter{
			AccountID: ptr("acc-2"),
		})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(txns) != 1 || txns[0].ID != "txn-mar" {
			t.Errorf("Expected only txn-mar, got %d rows", len(txns))
		}
	})

	t.Run("date order with limit and offset", func(t *testing.T) {
		txns, err := store.ListTransactions(ctx, testOwner, service.TransactionFilter{
			Limit: 2, Offset: 1,
		})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(txns) != 2 || txns[0].ID != "txn-feb" || txns[1].ID != "txn-mar" {
			t.Errorf("Expected [txn-feb txn-mar], got %d rows", len(txns))
		}
	})

	t.Run("inverted date range rejected", func(t *testing.T) {
		start := testDate(2024, 3, 1)
		end := testDate(2024, 1, 1)
		_, err := store.ListTransactions(ctx, testOwner, service.TransactionFilter{
			StartDate: &start, EndDate: &end,
		})
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("Expected ErrInvalidDateRange, got %v", err)
		}
	})
}
