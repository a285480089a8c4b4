package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the shape of a ledger event.
type TransactionType string

// Transaction type constants.
const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// ErrMalformedEvent indicates a transaction whose type and account fields do
// not match the structural rule for its type. Such a row is a data-integrity
// fault: rejected on write, surfaced as a hard error on read.
var ErrMalformedEvent = errors.New("malformed ledger event")

// Transaction is an immutable ledger event recording a money movement.
//
// Amount is a positive count of minor currency units in Currency.
// ExchangeRate is the rate from Currency to the owner's base currency that
// was in effect when the event was recorded; conversions of this specific
// event prefer it over a fresh rate lookup.
//
// Structural rule by type:
//   - income:   ToAccountID set, FromAccountID nil
//   - expense:  FromAccountID set, ToAccountID nil
//   - transfer: both set; CategoryID not applicable
type Transaction struct {
	Date          time.Time
	CreatedAt     time.Time
	CategoryID    *string
	FromAccountID *string
	ToAccountID   *string
	ID            string
	OwnerID       string
	Currency      string
	Note          string
	Type          TransactionType
	ExchangeRate  decimal.Decimal
	Amount        int64 // minor units, always positive
}

// CheckShape verifies the structural invariant for the transaction's type.
// It returns an error wrapping ErrMalformedEvent on violation.
func (t *Transaction) CheckShape() error {
	switch t.Type {
	case TransactionTypeIncome:
		if t.ToAccountID == nil || t.FromAccountID != nil {
			return fmt.Errorf("%w: income must reference only a destination account", ErrMalformedEvent)
		}
	case TransactionTypeExpense:
		if t.FromAccountID == nil || t.ToAccountID != nil {
			return fmt.Errorf("%w: expense must reference only a source account", ErrMalformedEvent)
		}
	case TransactionTypeTransfer:
		if t.FromAccountID == nil || t.ToAccountID == nil {
			return fmt.Errorf("%w: transfer must reference both accounts", ErrMalformedEvent)
		}
		if t.CategoryID != nil {
			return fmt.Errorf("%w: transfer cannot carry a category", ErrMalformedEvent)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, t.Type)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrMalformedEvent)
	}
	return nil
}
