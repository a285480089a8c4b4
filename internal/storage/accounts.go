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

// CreateAccount inserts a new account. The initial balance is fixed here
// and never mutated by ledger events.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	if account.State == "" {
		account.State = model.StateActive
	}

	query := `
		INSERT INTO accounts (id, owner_id, name, type, currency, initial_balance, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.OwnerID, account.Name, string(account.Type),
		account.Currency, account.InitialBalance, string(account.State), account.CreatedAt)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to create account: %w", err))
	}

	slog.Info("created account", "id", account.ID, "name", account.Name, "currency", account.Currency)
	return nil
}

// UpdateAccount updates an account's name, type, and state. Currency and
// initial balance are immutable after creation.
func (s *SQLiteStorage) UpdateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	query := `
		UPDATE accounts
		SET name = ?, type = ?, state = ?
		WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query,
		account.Name, string(account.Type), string(account.State),
		account.ID, account.OwnerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to update account: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, account.ID)
	}

	return nil
}

// DeactivateAccount soft-deactivates an account. Historical events keep
// referencing it and still count toward balances.
func (s *SQLiteStorage) DeactivateAccount(ctx context.Context, ownerID, accountID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return err
	}

	query := `UPDATE accounts SET state = ? WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query, string(model.StateInactive), accountID, ownerID)
	if err != nil {
		return wrapWriteErr(fmt.Errorf("failed to deactivate account: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, accountID)
	}

	slog.Info("deactivated account", "id", accountID)
	return nil
}

// GetAccount returns one account scoped by owner.
func (s *SQLiteStorage) GetAccount(ctx context.Context, ownerID, accountID string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, owner_id, name, type, currency, initial_balance, state, created_at
		FROM accounts
		WHERE id = ? AND owner_id = ?`

	var account model.Account
	var accountType, state string
	err := s.db.QueryRowContext(ctx, query, accountID, ownerID).Scan(
		&account.ID, &account.OwnerID, &account.Name, &accountType,
		&account.Currency, &account.InitialBalance, &state, &account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	account.Type = model.AccountType(accountType)
	account.State = model.LifecycleState(state)
	return &account, nil
}

// ListAccounts returns the owner's accounts, optionally including
// deactivated ones. Inactive accounts are excluded from pickers but their
// events always count in balance math.
func (s *SQLiteStorage) ListAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, owner_id, name, type, currency, initial_balance, state, created_at
		FROM accounts
		WHERE owner_id = ?`
	if !includeInactive {
		query += ` AND state = 'ACTIVE'`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var account model.Account
		var accountType, state string
		if err := rows.Scan(
			&account.ID, &account.OwnerID, &account.Name, &accountType,
			&account.Currency, &account.InitialBalance, &state, &account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.Type = model.AccountType(accountType)
		account.State = model.LifecycleState(state)
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	slog.Debug("retrieved accounts", "owner", ownerID, "count", len(accounts))
	return accounts, nil
}

// balanceSelect folds every ledger event referencing the account on top of
// its initial balance, in the account's native currency. Income and
// transfers-in arrive through to_account_id, expenses and transfers-out
// leave through from_account_id, so two aggregate subqueries cover all
// three event shapes.
const balanceSelect = `
	a.initial_balance
	+ COALESCE((SELECT SUM(t.amount) FROM transactions t
		WHERE t.owner_id = a.owner_id AND t.to_account_id = a.id), 0)
	- COALESCE((SELECT SUM(t.amount) FROM transactions t
		WHERE t.owner_id = a.owner_id AND t.from_account_id = a.id), 0)`

// AccountBalance derives one account's current balance by aggregation over
// the live ledger. An empty ledger yields the initial balance unchanged.
func (s *SQLiteStorage) AccountBalance(ctx context.Context, ownerID, accountID string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return 0, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return 0, err
	}

	query := `SELECT ` + balanceSelect + `
		FROM accounts a
		WHERE a.id = ? AND a.owner_id = ?`

	var balance int64
	err := s.db.QueryRowContext(ctx, query, accountID, ownerID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: account %s", common.ErrNotFound, accountID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to derive balance: %w", err)
	}

	return balance, nil
}

// AccountBalances derives every account balance for the owner in a single
// aggregate query, deactivated accounts included.
func (s *SQLiteStorage) AccountBalances(ctx context.Context, ownerID string) (map[string]int64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	query := `SELECT a.id, ` + balanceSelect + `
		FROM accounts a
		WHERE a.owner_id = ?`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]int64)
	for rows.Next() {
		var id string
		var balance int64
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances[id] = balance
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances: %w", err)
	}

	return balances, nil
}
