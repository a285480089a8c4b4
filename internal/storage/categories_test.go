package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func TestSQLiteStorage_CreateCategory_BudgetValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	tests := []struct {
		budget       *int64
		name         string
		categoryType model.CategoryType
		wantErr      bool
	}{
		{name: "expense with budget", categoryType: model.CategoryTypeExpense, budget: int64Ptr(500000)},
		{name: "expense without budget", categoryType: model.CategoryTypeExpense},
		{name: "income without budget", categoryType: model.CategoryTypeIncome},
		{name: "income with budget", categoryType: model.CategoryTypeIncome, budget: int64Ptr(500000), wantErr: true},
		{name: "expense with zero budget", categoryType: model.CategoryTypeExpense, budget: int64Ptr(0), wantErr: true},
		{name: "expense with negative budget", categoryType: model.CategoryTypeExpense, budget: int64Ptr(-100), wantErr: true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CreateCategory(ctx, &model.Category{
				ID:            "cat-" + string(rune('a'+i)),
				OwnerID:       testOwner,
				Name:          tt.name,
				Type:          tt.categoryType,
				MonthlyBudget: tt.budget,
			})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCategory) {
					t.Errorf("Expected ErrInvalidCategory, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSQLiteStorage_SetMonthlyBudget(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedCategory(t, store, "cat-exp", model.CategoryTypeExpense, nil)
	seedCategory(t, store, "cat-inc", model.CategoryTypeIncome, nil)

	if err := store.SetMonthlyBudget(ctx, testOwner, "cat-exp", int64Ptr(750000)); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}

	category, err := store.GetCategory(ctx, testOwner, "cat-exp")
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if category.MonthlyBudget == nil || *category.MonthlyBudget != 750000 {
		t.Errorf("Expected budget 750000, got %v", category.MonthlyBudget)
	}

	// Clearing with nil removes the budget.
	if err := store.SetMonthlyBudget(ctx, testOwner, "cat-exp", nil); err != nil {
		t.Fatalf("Failed to clear budget: %v", err)
	}
	category, err = store.GetCategory(ctx, testOwner, "cat-exp")
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if category.MonthlyBudget != nil {
		t.Errorf("Expected budget cleared, got %v", *category.MonthlyBudget)
	}

	// Income categories never carry budgets.
	if err := store.SetMonthlyBudget(ctx, testOwner, "cat-inc", int64Ptr(100000)); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for income category, got %v", err)
	}

	if err := store.SetMonthlyBudget(ctx, testOwner, "cat-exp", int64Ptr(-1)); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("Expected ErrInvalidCategory for negative budget, got %v", err)
	}
}

func TestSQLiteStorage_DeactivateCategory_HiddenFromPickers(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	seedCategory(t, store, "cat-1", model.CategoryTypeExpense, nil)
	seedCategory(t, store, "cat-2", model.CategoryTypeExpense, nil)

	if err := store.DeactivateCategory(ctx, testOwner, "cat-2"); err != nil {
		t.Fatalf("Failed to deactivate: %v", err)
	}

	active, err := store.ListCategories(ctx, testOwner, false)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(active) != 1 || active[0].ID != "cat-1" {
		t.Errorf("Expected only cat-1 active, got %d rows", len(active))
	}

	all, err := store.ListCategories(ctx, testOwner, true)
	if err != nil {
		t.Fatalf("Failed to list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 categories including inactive, got %d", len(all))
	}
}
