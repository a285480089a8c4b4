package currency

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/shopspring/decimal"
)

// MemorySource is an in-memory RateSource with the same lookup policy as
// the SQLite rate table: closest snapshot at-or-before the date, else the
// earliest snapshot for the pair, else rate unavailable. It backs engine
// tests and callers that have no database at hand.
type MemorySource struct {
	mu        sync.RWMutex
	snapshots map[string][]model.ExchangeRate // "BASE/TARGET" → sorted by date
}

// NewMemorySource creates an empty in-memory rate source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		snapshots: make(map[string][]model.ExchangeRate),
	}
}

// Add records a snapshot, keeping the pair's snapshots date-ordered.
func (m *MemorySource) Add(rate model.ExchangeRate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey(rate.Base, rate.Target)
	m.snapshots[key] = append(m.snapshots[key], rate)
	sort.SliceStable(m.snapshots[key], func(i, j int) bool {
		return m.snapshots[key][i].EffectiveDate.Before(m.snapshots[key][j].EffectiveDate)
	})
}

// LookupRate implements service.RateSource.
func (m *MemorySource) LookupRate(_ context.Context, base, target string, on time.Time) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rates := m.snapshots[pairKey(base, target)]
	if len(rates) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", common.ErrRateUnavailable, base, target)
	}

	// Closest at-or-before; the stable sort keeps same-day duplicates in
	// insertion order so the latest insert wins.
	best := -1
	for i, rate := range rates {
		if rate.EffectiveDate.After(on) {
			break
		}
		best = i
	}
	if best == -1 {
		// Nothing at-or-before: earliest snapshot for the pair
		return rates[0].Rate, nil
	}

	return rates[best].Rate, nil
}

func pairKey(base, target string) string {
	return base + "/" + target
}
