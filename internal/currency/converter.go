// Package currency converts minor-unit amounts between currencies using
// dated exchange-rate snapshots.
package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/bimadewantoro/moneymate/internal/service"
	"github.com/shopspring/decimal"
)

// Converter resolves amounts into other currencies via an injected
// RateSource, so it can run against the SQLite rate table or a fake.
//
// All conversions round half-to-even (banker's rounding) to the nearest
// minor unit; this is the single rounding rule for every call site.
type Converter struct {
	source service.RateSource
}

// NewConverter creates a converter backed by the given rate source.
func NewConverter(source service.RateSource) *Converter {
	return &Converter{source: source}
}

// Convert converts a minor-unit amount from one currency to another as of
// the given date. An identical pair returns the amount unchanged without
// consulting the rate table. A pair with no snapshots at all propagates
// the source's "rate unavailable" failure; callers choose the display
// fallback.
func (c *Converter) Convert(ctx context.Context, amount int64, from, to string, on time.Time) (int64, error) {
	if from == to {
		return amount, nil
	}

	rate, err := c.source.LookupRate(ctx, from, to, on)
	if err != nil {
		return 0, fmt.Errorf("convert %s to %s: %w", from, to, err)
	}

	return ApplyRate(amount, rate), nil
}

// ApplyRate multiplies a minor-unit amount by a decimal rate and rounds
// half-to-even to the nearest minor unit. Used directly when a transaction
// carries its recorded rate, which is preferred over a fresh lookup for
// conversions of that specific event.
func ApplyRate(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).RoundBank(0).IntPart()
}
