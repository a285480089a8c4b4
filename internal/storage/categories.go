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
)

// CreateCategory inserts a new category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	if category.State == "" {
		category.State = model.StateActive
	}

	query := `
		INSERT INTO categories (id, owner_id, name, type, color, icon, monthly_budget, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.OwnerID, category.Name, string(category.Type),
		category.Color, category.Icon, category.MonthlyBudget, string(category.State), category.CreatedAt)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to create category: %w", err))
	}

	slog.Info("created category", "id", category.ID, "name", category.Name, "type", category.Type)
	return nil
}

// UpdateCategory updates a category's mutable fields, including its budget.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET name = ?, type = ?, color = ?, icon = ?, monthly_budget = ?, state = ?
		WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query,
		category.Name, string(category.Type), category.Color, category.Icon,
		category.MonthlyBudget, string(category.State),
		category.ID, category.OwnerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to update category: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, category.ID)
	}

	return nil
}

// SetMonthlyBudget sets or clears (nil) a category's monthly budget.
// Budgets only apply to expense categories.
func (s *SQLiteStorage) SetMonthlyBudget(ctx context.Context, ownerID, categoryID string, budget *int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return err
	}
	if budget != nil && *budget <= 0 {
		return fmt.Errorf("%w: monthly budget must be positive", ErrInvalidCategory)
	}

	query := `
		UPDATE categories
		SET monthly_budget = ?
		WHERE id = ? AND owner_id = ? AND type = 'expense'`

	result, err := s.db.ExecContext(ctx, query, budget, categoryID, ownerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to set monthly budget: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: expense category %s", common.ErrNotFound, categoryID)
	}

	slog.Info("updated monthly budget", "category", categoryID, "budget", budget)
	return nil
}

// DeactivateCategory soft-deactivates a category, keeping historical
// transaction references intact.
func (s *SQLiteStorage) DeactivateCategory(ctx context.Context, ownerID, categoryID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return err
	}

	query := `UPDATE categories SET state = ? WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query, string(model.StateInactive), categoryID, ownerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to deactivate category: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, categoryID)
	}

	return nil
}

// DeleteCategory removes a category entirely. Referencing transactions
// survive with their category reference cleared (ON DELETE SET NULL).
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return err
	}

	query := `DELETE FROM categories WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query, categoryID, ownerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to delete category: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, categoryID)
	}

	slog.Info("deleted category", "id", categoryID)
	return nil
}

// GetCategory returns one category scoped by owner.
func (s *SQLiteStorage) GetCategory(ctx context.Context, ownerID, categoryID string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, owner_id, name, type, color, icon, monthly_budget, state, created_at
		FROM categories
		WHERE id = ? AND owner_id = ?`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, categoryID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return category, nil
}

// ListCategories returns the owner's categories, optionally including
// deactivated ones.
func (s *SQLiteStorage) ListCategories(ctx context.Context, ownerID string, includeInactive bool) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, owner_id, name, type, color, icon, monthly_budget, state, created_at
		FROM categories
		WHERE owner_id = ?`
	if !includeInactive {
		query += ` AND state = 'ACTIVE'`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "owner", ownerID, "count", len(categories))
	return categories, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var category model.Category
	var categoryType, state string
	var budget sql.NullInt64
	if err := row.Scan(
		&category.ID, &category.OwnerID, &category.Name, &categoryType,
		&category.Color, &category.Icon, &budget, &state, &category.CreatedAt,
	); err != nil {
		return nil, err
	}
	category.Type = model.CategoryType(categoryType)
	category.State = model.LifecycleState(state)
	if budget.Valid {
		category.MonthlyBudget = &budget.Int64
	}
	return &category, nil
}
