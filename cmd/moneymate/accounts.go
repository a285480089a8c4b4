package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bimadewantoro/moneymate/internal/cli"
	"github.com/bimadewantoro/moneymate/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, and deactivate the accounts money moves through.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(deactivateAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with derived balances",
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

			accounts, err := store.ListAccounts(ctx, ownerID, includeInactive)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts found. Use 'moneymate accounts add' to create one."))
				return nil
			}

			eng := initEngine(store)
			balances, err := eng.BalancesForOwner(ctx, ownerID)
			if err != nil {
				return fmt.Errorf("failed to derive balances: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Balance"),
				cli.HeaderStyle.Render("State"))

			for _, account := range accounts {
				state := string(account.State)
				if !account.State.IsActive() {
					state = cli.SubtleStyle.Render(state)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
					account.ID, account.Name, account.Type,
					formatMinor(balances[account.ID]), account.Currency, state)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "include deactivated accounts")
	return cmd
}

func addAccountCmd() *cobra.Command {
	var (
		accountType    string
		currencyCode   string
		initialBalance string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
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

			var initial int64
			if initialBalance != "" {
				initial, err = parseAmount(initialBalance)
				if err != nil {
					return err
				}
			}

			account := &model.Account{
				ID:             uuid.NewString(),
				OwnerID:        ownerID,
				Name:           args[0],
				Type:           model.AccountType(accountType),
				Currency:       strings.ToUpper(currencyCode),
				InitialBalance: initial,
				State:          model.StateActive,
			}

			if err := store.CreateAccount(ctx, account); err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created account %q (%s)", account.Name, account.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeBank), "account type (bank, cash, e-wallet, investment, other)")
	cmd.Flags().StringVar(&currencyCode, "currency", "IDR", "account currency code")
	cmd.Flags().StringVar(&initialBalance, "initial", "", "initial balance in major units (e.g. 1500.00)")
	return cmd
}

func deactivateAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-deactivate an account",
		Long: `Mark an account inactive. Historical transactions keep referencing it
and still count toward balances; the account just stops appearing in pickers.`,
		Args: cobra.ExactArgs(1),
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

			if err := store.DeactivateAccount(ctx, ownerID, args[0]); err != nil {
				return fmt.Errorf("failed to deactivate account: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Account deactivated"))
			return nil
		},
	}
}
