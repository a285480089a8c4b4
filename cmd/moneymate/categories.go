package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bimadewantoro/moneymate/internal/cli"
	"github.com/bimadewantoro/moneymate/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
		Long:  `List, add, budget, deactivate, and delete classification categories.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(deactivateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
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

			categories, err := store.ListCategories(ctx, ownerID, includeInactive)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'moneymate categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Monthly Budget"))

			for _, category := range categories {
				budget := cli.SubtleStyle.Render("(none)")
				if category.MonthlyBudget != nil {
					budget = formatMinor(*category.MonthlyBudget)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", category.ID, category.Name, category.Type, budget)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "include deactivated categories")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		categoryType string
		color        string
		icon         string
		budget       string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
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

			category := &model.Category{
				ID:      uuid.NewString(),
				OwnerID: ownerID,
				Name:    args[0],
				Type:    model.CategoryType(categoryType),
				Color:   color,
				Icon:    icon,
				State:   model.StateActive,
			}

			if budget != "" {
				minor, err := parseAmount(budget)
				if err != nil {
					return err
				}
				category.MonthlyBudget = &minor
			}

			if err := store.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created category %q (%s)", category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryType, "type", string(model.CategoryTypeExpense), "category type (income, expense)")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	cmd.Flags().StringVar(&budget, "budget", "", "monthly budget in major units (expense categories only)")
	return cmd
}

func setBudgetCmd() *cobra.Command {
	var (
		budget string
		clear  bool
	)

	cmd := &cobra.Command{
		Use:   "set-budget <id>",
		Short: "Set or clear a category's monthly budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if budget == "" && !clear {
				return fmt.Errorf("either --budget or --clear is required")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ownerID, err := currentOwner(ctx, store)
			if err != nil {
				return err
			}

			var value *int64
			if !clear {
				minor, err := parseAmount(budget)
				if err != nil {
					return err
				}
				value = &minor
			}

			if err := store.SetMonthlyBudget(ctx, ownerID, args[0], value); err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}

			if clear {
				fmt.Println(cli.SuccessStyle.Render("✓ Budget cleared"))
			} else {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Budget set to %s", budget)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "monthly budget in major units")
	cmd.Flags().BoolVar(&clear, "clear", false, "remove the budget (no limit)")
	return cmd
}

func deactivateCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-deactivate a category",
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

			if err := store.DeactivateCategory(ctx, ownerID, args[0]); err != nil {
				return fmt.Errorf("failed to deactivate category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Category deactivated"))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category permanently. Transactions that referenced it survive
and become uncategorized.`,
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

			if err := store.DeleteCategory(ctx, ownerID, args[0]); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Category deleted"))
			return nil
		},
	}
}
