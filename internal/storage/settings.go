package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
)

// GetOwnerSettings returns the owner's reporting preferences.
func (s *SQLiteStorage) GetOwnerSettings(ctx context.Context, ownerID string) (*model.OwnerSettings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	var settings model.OwnerSettings
	err := s.db.QueryRowContext(ctx,
		`SELECT owner_id, base_currency FROM owner_settings WHERE owner_id = ?`,
		ownerID).Scan(&settings.OwnerID, &settings.BaseCurrency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: settings for owner %s", common.ErrNotFound, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query owner settings: %w", err)
	}

	return &settings, nil
}

// SaveOwnerSettings upserts the owner's reporting preferences.
func (s *SQLiteStorage) SaveOwnerSettings(ctx context.Context, settings *model.OwnerSettings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if settings == nil {
		return fmt.Errorf("%w: settings", ErrNilParameter)
	}
	if err := validateString(settings.OwnerID, "ownerID"); err != nil {
		return err
	}
	if err := validateString(settings.BaseCurrency, "baseCurrency"); err != nil {
		return err
	}

	query := `
		INSERT INTO owner_settings (owner_id, base_currency)
		VALUES (?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET base_currency = excluded.base_currency`

	if _, err := s.db.ExecContext(ctx, query, settings.OwnerID, settings.BaseCurrency); err != nil {
		return wrapWriteErr(fmt.Errorf("failed to save owner settings: %w", err))
	}

	return nil
}
