package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a dated snapshot of a base→target conversion rate,
// supplied by an external refresh job. Snapshots accumulate over time;
// lookups pick the closest one at-or-before the requested date.
type ExchangeRate struct {
	EffectiveDate time.Time
	Base          string
	Target        string
	Rate          decimal.Decimal
}

// OwnerSettings holds per-owner reporting preferences.
type OwnerSettings struct {
	OwnerID      string
	BaseCurrency string
}
