package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bimadewantoro/moneymate/internal/cli"
	"github.com/bimadewantoro/moneymate/internal/common"
	"github.com/bimadewantoro/moneymate/internal/model"
	"github.com/bimadewantoro/moneymate/internal/service"
	"github.com/bimadewantoro/moneymate/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and inspect ledger transactions",
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		txType       string
		amount       string
		currencyCode string
		fromAccount  string
		toAccount    string
		categoryID   string
		date         string
		note         string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record an income, expense, or transfer event.

income requires --to, expense requires --from, transfer requires both.
Transfers cannot carry a category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ownerID, err := currentOwner(ctx, store)
			if err != nil {
				return err
			}

			minor, err := parseAmount(amount)
			if err != nil {
				return err
			}

			eventDate := time.Now()
			if date != "" {
				eventDate, err = parseDate(date)
				if err != nil {
					return err
				}
			}

			txn := &model.Transaction{
				ID:       uuid.NewString(),
				OwnerID:  ownerID,
				Type:     model.TransactionType(txType),
				Amount:   minor,
				Currency: strings.ToUpper(currencyCode),
				Date:     eventDate,
				Note:     note,
			}
			if fromAccount != "" {
				txn.FromAccountID = &fromAccount
			}
			if toAccount != "" {
				txn.ToAccountID = &toAccount
			}
			if categoryID != "" {
				txn.CategoryID = &categoryID
			}

			// Snapshot the rate in effect now so later conversions of this
			// event stay stable even as the rate table refreshes.
			if err := stampRecordingRate(ctx, store, ownerID, txn); err != nil {
				return err
			}

			// The write is atomic; retry only if the store reports a
			// transient condition.
			err = common.WithRetry(ctx, func() error {
				return store.CreateTransaction(ctx, txn)
			}, service.RetryOptions{MaxAttempts: 3})
			if err != nil {
				return fmt.Errorf("failed to record transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded %s of %s %s (%s)",
				txn.Type, formatMinor(txn.Amount), txn.Currency, txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", string(model.TransactionTypeExpense), "transaction type (income, expense, transfer)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in major units (e.g. 250.00)")
	cmd.Flags().StringVar(&currencyCode, "currency", "IDR", "transaction currency code")
	cmd.Flags().StringVar(&fromAccount, "from", "", "source account id")
	cmd.Flags().StringVar(&toAccount, "to", "", "destination account id")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id")
	cmd.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// stampRecordingRate stores the currency→base rate in effect at recording
// time. A pair with no snapshots leaves the rate unset; report-level
// conversions will fall back to the historical lookup instead of guessing.
func stampRecordingRate(ctx context.Context, store *storage.SQLiteStorage, ownerID string, txn *model.Transaction) error {
	settings, err := store.GetOwnerSettings(ctx, ownerID)
	if err != nil {
		return err
	}
	if txn.Currency == settings.BaseCurrency {
		return nil
	}

	rate, err := store.LookupRate(ctx, txn.Currency, settings.BaseCurrency, txn.Date)
	if err != nil {
		if errors.Is(err, common.ErrRateUnavailable) {
			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf(
				"! No %s/%s rate available; conversions will use the rate table when populated",
				txn.Currency, settings.BaseCurrency)))
			return nil
		}
		return err
	}

	txn.ExchangeRate = rate
	return nil
}

func listTxCmd() *cobra.Command {
	var (
		txType string
		from   string
		to     string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ownerID, err := currentOwner(ctx, store)
			if err != nil {
				return err
			}

			filter := service.TransactionFilter{Limit: limit}
			if txType != "" {
				filter.Type = model.TransactionType(txType)
			}
			if from != "" {
				start, err := parseDate(from)
				if err != nil {
					return err
				}
				filter.StartDate = &start
			}
			if to != "" {
				end, err := parseDate(to)
				if err != nil {
					return err
				}
				// Include the whole end day
				end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
				filter.EndDate = &end
			}

			transactions, err := store.ListTransactions(ctx, ownerID, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Note"),
				cli.HeaderStyle.Render("ID"))

			for i := range transactions {
				txn := &transactions[i]
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\n",
					txn.Date.Format("2006-01-02"), txn.Type,
					formatMinor(txn.Amount), txn.Currency, txn.Note,
					cli.SubtleStyle.Render(txn.ID))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "filter by type (income, expense, transfer)")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows")
	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Long:  `Remove an event from the ledger. Balances immediately reflect the removal.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ownerID, err := currentOwner(ctx, store)
			if err != nil {
				return err
			}

			if err := store.DeleteTransaction(ctx, ownerID, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transaction deleted"))
			return nil
		},
	}
}
