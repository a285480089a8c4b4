package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/service"
	"github.com/shopspring/decimal"
)

// CreateTransaction appends a ledger event. Referenced accounts and the
// category must belong to the same owner; the reference checks and the
// insert run in one database transaction so readers never observe a
// partially applied mutation.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkReferences(ctx, tx, txn); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions
			(id, owner_id, type, amount, currency, exchange_rate, category_id,
			 from_account_id, to_account_id, date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		txn.ID, txn.OwnerID, string(txn.Type), txn.Amount, txn.Currency,
		txn.ExchangeRate.String(), txn.CategoryID, txn.FromAccountID,
		txn.ToAccountID, txn.Date, txn.Note, txn.CreatedAt)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to insert transaction: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return wrapWriteErr(fmt.Errorf("failed to commit transaction: %w", err))
	}

	slog.Debug("recorded ledger event", "id", txn.ID, "type", txn.Type, "amount", txn.Amount)
	return nil
}

// UpdateTransaction replaces an event's authoritative state. In fold terms
// this removes the old event and inserts the new one; balances always
// reflect the current ledger.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkReferences(ctx, tx, txn); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET type = ?, amount = ?, currency = ?, exchange_rate = ?, category_id = ?,
			from_account_id = ?, to_account_id = ?, date = ?, note = ?
		WHERE id = ? AND owner_id = ?`

	result, err := tx.ExecContext(ctx, query,
		string(txn.Type), txn.Amount, txn.Currency, txn.ExchangeRate.String(),
		txn.CategoryID, txn.FromAccountID, txn.ToAccountID, txn.Date, txn.Note,
		txn.ID, txn.OwnerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to update transaction: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, txn.ID)
	}

	if err := tx.Commit(); err != nil {
		return wrapWriteErr(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// DeleteTransaction removes an event from the fold.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, ownerID, txnID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}
	if err := validateString(txnID, "txnID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner_id = ?`, txnID, ownerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to delete transaction: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, txnID)
	}

	slog.Debug("deleted ledger event", "id", txnID)
	return nil
}

// GetTransaction returns one event scoped by owner.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, ownerID, txnID string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if err := validateString(txnID, "txnID"); err != nil {
		return nil, err
	}

	query := transactionSelect + ` WHERE id = ? AND owner_id = ?`

	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, txnID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, txnID)
	}
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ListTransactions returns the owner's events matching the filter, ordered
// by date ascending then id for determinism.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, ownerID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, filter.StartDate, filter.EndDate)
	}

	var conditions []string
	args := []any{ownerID}
	conditions = append(conditions, "owner_id = ?")

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.AccountID != nil {
		conditions = append(conditions, "(from_account_id = ? OR to_account_id = ?)")
		args = append(args, *filter.AccountID, *filter.AccountID)
	}

	query := transactionSelect + ` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY date, id`

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "owner", ownerID, "count", len(transactions))
	return transactions, nil
}

const transactionSelect = `
	SELECT id, owner_id, type, amount, currency, exchange_rate, category_id,
		from_account_id, to_account_id, date, note, created_at
	FROM transactions`

// scanTransaction reads one row and verifies the structural invariant.
// A malformed row is a data-integrity fault surfaced as ledger corruption,
// never silently reinterpreted.
func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType, rate string
	var categoryID, fromAccountID, toAccountID sql.NullString
	if err := row.Scan(
		&txn.ID, &txn.OwnerID, &txnType, &txn.Amount, &txn.Currency, &rate,
		&categoryID, &fromAccountID, &toAccountID, &txn.Date, &txn.Note, &txn.CreatedAt,
	); err != nil {
		return nil, err
	}

	txn.Type = model.TransactionType(txnType)
	if categoryID.Valid {
		txn.CategoryID = &categoryID.String
	}
	if fromAccountID.Valid {
		txn.FromAccountID = &fromAccountID.String
	}
	if toAccountID.Valid {
		txn.ToAccountID = &toAccountID.String
	}

	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction %s has unparseable exchange rate %q", common.ErrLedgerCorrupted, txn.ID, rate)
	}
	txn.ExchangeRate = parsed

	if err := txn.CheckShape(); err != nil {
		return nil, fmt.Errorf("%w: transaction %s: %v", common.ErrLedgerCorrupted, txn.ID, err)
	}

	return &txn, nil
}

// checkReferences verifies that every account and category the event
// references exists and belongs to the event's owner.
func checkReferences(ctx context.Context, tx *sql.Tx, txn *model.Transaction) error {
	for _, accountID := range []*string{txn.FromAccountID, txn.ToAccountID} {
		if accountID == nil {
			continue
		}
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM accounts WHERE id = ? AND owner_id = ?`,
			*accountID, txn.OwnerID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: account %s", common.ErrNotFound, *accountID)
		}
		if err != nil {
			return fmt.Errorf("failed to check account reference: %w", err)
		}
	}

	if txn.CategoryID != nil {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM categories WHERE id = ? AND owner_id = ?`,
			*txn.CategoryID, txn.OwnerID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: category %s", common.ErrNotFound, *txn.CategoryID)
		}
		if err != nil {
			return fmt.Errorf("failed to check category reference: %w", err)
		}
	}

	return nil
}
