package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/currency"
	"github.com/bimadewantoro/moneymate/internal/engine"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion
// and migrations applied.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/moneymate/moneymate.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine wires the analytics engine over the storage-backed rate table.
func initEngine(store *storage.SQLiteStorage) *engine.Engine {
	return engine.New(store, currency.NewConverter(store))
}

// currentOwner resolves the owner id and makes sure its settings row
// exists, defaulting the base currency from config on first use.
func currentOwner(ctx context.Context, store *storage.SQLiteStorage) (string, error) {
	ownerID := viper.GetString("owner.id")
	if ownerID == "" {
		return "", common.NewUserError("no owner configured", common.ErrMissingConfig)
	}

	if _, err := store.GetOwnerSettings(ctx, ownerID); err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return "", err
		}
		settings := &model.OwnerSettings{
			OwnerID:      ownerID,
			BaseCurrency: viper.GetString("owner.base_currency"),
		}
		if err := store.SaveOwnerSettings(ctx, settings); err != nil {
			return "", err
		}
	}

	return ownerID, nil
}

// expandPath expands ~ and environment variables in a file path.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// parseAmount converts a user-entered decimal amount into integer minor
// units. Converting between major and minor units is strictly a
// presentation concern; the engine only ever sees minor units.
func parseAmount(input string) (int64, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	if !parsed.IsPositive() {
		return 0, fmt.Errorf("amount must be positive, got %q", input)
	}
	minor := parsed.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", input)
	}
	return minor.IntPart(), nil
}

// formatMinor renders integer minor units as a major-unit decimal string.
func formatMinor(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// parseDate parses a YYYY-MM-DD event date.
func parseDate(input string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", input, err)
	}
	return t, nil
}
