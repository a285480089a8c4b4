package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/shopspring/decimal"
)

// SaveExchangeRate stores one dated rate snapshot. The external refresh job
// supplies roughly one snapshot per day per pair; nothing enforces
// uniqueness, lookups pick deterministically instead.
func (s *SQLiteStorage) SaveExchangeRate(ctx context.Context, rate *model.ExchangeRate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRate(rate); err != nil {
		return err
	}

	query := `
		INSERT INTO exchange_rates (base_currency, target_currency, rate, effective_date)
		VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rate.Base, rate.Target, rate.Rate.String(), rate.EffectiveDate)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to save exchange rate: %w", err))
	}

	slog.Debug("saved exchange rate", "pair", rate.Base+"/"+rate.Target,
		"rate", rate.Rate.String(), "date", rate.EffectiveDate.Format("2006-01-02"))
	return nil
}

// ListExchangeRates returns all snapshots for a pair, oldest first.
func (s *SQLiteStorage) ListExchangeRates(ctx context.Context, base, target string) ([]model.ExchangeRate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(base, "base"); err != nil {
		return nil, err
	}
	if err := validateString(target, "target"); err != nil {
		return nil, err
	}

	query := `
		SELECT base_currency, target_currency, rate, effective_date
		FROM exchange_rates
		WHERE base_currency = ? AND target_currency = ?
		ORDER BY effective_date, id`

	rows, err := s.db.QueryContext(ctx, query, base, target)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []model.ExchangeRate
	for rows.Next() {
		var rate model.ExchangeRate
		var raw string
		if err := rows.Scan(&rate.Base, &rate.Target, &raw, &rate.EffectiveDate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("unparseable stored rate %q: %w", raw, err)
		}
		rate.Rate = parsed
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}

	return rates, nil
}

// LookupRate resolves the rate for a pair on a date: the snapshot closest
// at-or-before the date wins; with none at-or-before, the earliest snapshot
// for the pair; with no snapshot at all it fails with ErrRateUnavailable
// rather than guessing 1:1. The id tiebreak keeps same-day duplicates
// deterministic.
func (s *SQLiteStorage) LookupRate(ctx context.Context, base, target string, on time.Time) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}
	if err := validateString(base, "base"); err != nil {
		return decimal.Zero, err
	}
	if err := validateString(target, "target"); err != nil {
		return decimal.Zero, err
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT rate FROM exchange_rates
		WHERE base_currency = ? AND target_currency = ? AND effective_date <= ?
		ORDER BY effective_date DESC, id DESC
		LIMIT 1`, base, target, on).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		// Fall back to the earliest snapshot for the pair
		err = s.db.QueryRowContext(ctx, `
			SELECT rate FROM exchange_rates
			WHERE base_currency = ? AND target_currency = ?
			ORDER BY effective_date, id
			LIMIT 1`, base, target).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: %s/%s", common.ErrRateUnavailable, base, target)
		}
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to look up rate: %w", err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable stored rate %q: %w", raw, err)
	}

	return rate, nil
}
