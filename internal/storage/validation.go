// Package storage provides the data persistence layer for the moneymate ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bimadewantoro/moneymate/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidRate        = errors.New("invalid exchange rate")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateAccount validates an account before it is written.
func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if strings.TrimSpace(account.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if strings.TrimSpace(account.OwnerID) == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidAccount)
	}
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	if !model.ValidAccountType(account.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAccount, account.Type)
	}
	if strings.TrimSpace(account.Currency) == "" {
		return fmt.Errorf("%w: missing currency", ErrInvalidAccount)
	}
	return nil
}

// validateCategory validates a category before it is written. A monthly
// budget is only meaningful for expense categories.
func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(category.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if strings.TrimSpace(category.OwnerID) == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidCategory)
	}
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	switch category.Type {
	case model.CategoryTypeIncome, model.CategoryTypeExpense:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, category.Type)
	}
	if category.MonthlyBudget != nil {
		if category.Type != model.CategoryTypeExpense {
			return fmt.Errorf("%w: monthly budget on non-expense category", ErrInvalidCategory)
		}
		if *category.MonthlyBudget <= 0 {
			return fmt.Errorf("%w: monthly budget must be positive", ErrInvalidCategory)
		}
	}
	return nil
}

// validateTransaction validates a ledger event before it is written,
// including the structural type/account-field invariant.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if strings.TrimSpace(txn.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.OwnerID) == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.Currency) == "" {
		return fmt.Errorf("%w: missing currency", ErrInvalidTransaction)
	}
	if txn.ExchangeRate.IsNegative() {
		return fmt.Errorf("%w: negative exchange rate", ErrInvalidTransaction)
	}
	if err := txn.CheckShape(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	return nil
}

// validateRate validates an exchange rate snapshot before it is written.
func validateRate(rate *model.ExchangeRate) error {
	if rate == nil {
		return fmt.Errorf("%w: rate", ErrNilParameter)
	}
	if strings.TrimSpace(rate.Base) == "" || strings.TrimSpace(rate.Target) == "" {
		return fmt.Errorf("%w: missing currency pair", ErrInvalidRate)
	}
	if !rate.Rate.IsPositive() {
		return fmt.Errorf("%w: rate must be positive", ErrInvalidRate)
	}
	if rate.EffectiveDate.IsZero() {
		return fmt.Errorf("%w: missing effective date", ErrInvalidRate)
	}
	return nil
}
