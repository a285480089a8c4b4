// Package model defines the core domain models used throughout the application.
package model

import "time"

// AccountType indicates what kind of store of value an account is.
type AccountType string

// Account type constants.
const (
	AccountTypeBank       AccountType = "bank"
	AccountTypeCash       AccountType = "cash"
	AccountTypeEWallet    AccountType = "e-wallet"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// LifecycleState is the tagged active/inactive state shared by accounts and
// categories. Inactive records are hidden from pickers but their historical
// ledger events still count toward balances and totals.
type LifecycleState string

const (
	// StateActive marks a record as selectable for new transactions.
	StateActive LifecycleState = "ACTIVE"
	// StateInactive marks a soft-deactivated record that is still referenced
	// by historical transactions.
	StateInactive LifecycleState = "INACTIVE"
)

// IsActive reports whether the state is StateActive.
func (s LifecycleState) IsActive() bool {
	return s == StateActive
}

// Account represents an owned store of value.
//
// InitialBalance is fixed at creation; ledger events only ever produce
// deltas on top of it. Currency is immutable after creation.
type Account struct {
	CreatedAt      time.Time
	ID             string
	OwnerID        string
	Name           string
	Type           AccountType
	Currency       string
	State          LifecycleState
	InitialBalance int64 // minor units
}

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeBank, AccountTypeCash, AccountTypeEWallet, AccountTypeInvestment, AccountTypeOther:
		return true
	default:
		return false
	}
}
