package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/bimadewantoro/moneymate/internal/cli"
	"github.com/bimadewantoro/moneymate/internal/engine"
	"github.com/bimadewantoro/moneymate/internal/model"

	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the full financial overview",
		Long: `Derive and display the complete overview: balances, current-month
statistics with trends, budget health, the watchlist, and the trailing
trend and net-worth series.`,
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

			cfg := engine.DefaultConfig()
			if months > 0 {
				cfg.TrendMonths = months
				cfg.NetWorthMonths = months
			}

			eng := initEngine(store)
			overview, err := eng.Overview(ctx, ownerID, time.Now(), cfg)
			if err != nil {
				return fmt.Errorf("failed to build overview: %w", err)
			}

			renderOverview(overview)
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "trailing months for trend and net-worth series (default 6)")
	return cmd
}

func renderOverview(overview *model.Overview) {
	fmt.Println(cli.TitleStyle.Render("Overview"))
	fmt.Printf("Total balance: %s %s\n\n",
		cli.BoldStyle.Render(formatMinor(overview.TotalBalance)), overview.BaseCurrency)

	renderMonthStats(overview.MonthStats)
	renderBudgets(overview.Budgets)
	renderWatchlist(overview.Watchlist)
	renderTrends(overview.Trends)
	renderNetWorth(overview.NetWorth)
}

func renderMonthStats(stats *model.MonthStatistics) {
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("This Month (%s)", stats.MonthStart.Format("January 2006"))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Income\t%s\t%s\n", formatMinor(stats.Income), formatTrend(stats.IncomeTrend, false))
	fmt.Fprintf(w, "Expenses\t%s\t%s\n", formatMinor(stats.Expenses), formatTrend(stats.ExpensesTrend, true))
	fmt.Fprintf(w, "Savings rate\t%.1f%%\t%s\n", stats.SavingsRate*100, formatTrend(stats.SavingsRateTrend, false))
	w.Flush()
	fmt.Println()
}

// formatTrend renders a percent delta; inverted flags metrics where a rise
// is bad (expenses).
func formatTrend(delta float64, inverted bool) string {
	if delta == 0 {
		return cli.SubtleStyle.Render("→ 0.0%")
	}

	rising := delta > 0
	good := rising != inverted
	arrow := "↓"
	if rising {
		arrow = "↑"
	}

	text := fmt.Sprintf("%s %.1f%%", arrow, delta)
	if good {
		return cli.SuccessStyle.Render(text)
	}
	return cli.ErrorStyle.Render(text)
}

func renderBudgets(budgets []model.BudgetStatus) {
	fmt.Println(cli.TitleStyle.Render("Budgets"))
	if len(budgets) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No budgeted categories."))
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Spent"),
		cli.HeaderStyle.Render("Budget"),
		cli.HeaderStyle.Render("Used"),
		cli.HeaderStyle.Render("Status"))

	for _, status := range budgets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%%\t%s\n",
			status.CategoryName,
			formatMinor(status.Spent),
			formatMinor(status.MonthlyBudget),
			status.Percentage,
			cli.TierStyle(status.Status).Render(string(status.Status)))
	}
	w.Flush()
	fmt.Println()
}

func renderWatchlist(watchlist []model.BudgetStatus) {
	fmt.Println(cli.TitleStyle.Render("Watchlist"))
	if len(watchlist) == 0 {
		fmt.Println(cli.SuccessStyle.Render("All budgets are in the safe zone."))
		fmt.Println()
		return
	}

	for _, status := range watchlist {
		remaining := formatMinor(status.Remaining)
		if status.Remaining < 0 {
			remaining = cli.ErrorStyle.Render(remaining + " over")
		}
		fmt.Printf("%s %s — %.1f%% used, %s remaining\n",
			cli.TierStyle(status.Status).Render("●"),
			status.CategoryName, status.Percentage, remaining)
	}
	fmt.Println()
}

func renderTrends(trends []model.TrendPoint) {
	fmt.Println(cli.TitleStyle.Render("Monthly Trends"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Month"),
		cli.HeaderStyle.Render("Income"),
		cli.HeaderStyle.Render("Expenses"))
	for _, point := range trends {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			point.MonthStart.Format("Jan 2006"),
			formatMinor(point.Income),
			formatMinor(point.Expenses))
	}
	w.Flush()
	fmt.Println()
}

func renderNetWorth(points []model.NetWorthPoint) {
	fmt.Println(cli.TitleStyle.Render("Net Worth"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.HeaderStyle.Render("As of"),
		cli.HeaderStyle.Render("Net worth"),
		cli.HeaderStyle.Render("Change"))
	for _, point := range points {
		change := cli.SubtleStyle.Render("—")
		if point.Change != 0 {
			change = fmt.Sprintf("%s (%.1f%%)", formatMinor(point.Change), point.ChangePercent)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			point.Cutoff.Format("2006-01-02"),
			formatMinor(point.NetWorth),
			change)
	}
	w.Flush()
}
