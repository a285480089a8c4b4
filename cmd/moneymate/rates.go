package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/bimadewantoro/moneymate/internal/cli"
	"github.com/bimadewantoro/moneymate/internal/model"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage exchange-rate snapshots",
		Long: `Inspect and import the dated exchange-rate snapshots the analytics
engine converts with. In production a scheduled job populates these;
'rates import' loads the same data from a CSV export.`,
	}

	cmd.AddCommand(importRatesCmd())
	cmd.AddCommand(listRatesCmd())

	return cmd
}

func importRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import rate snapshots from a CSV file",
		Long: `Import exchange-rate snapshots from a CSV file with the columns
base,target,rate,date (date as YYYY-MM-DD, no header row).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			info, err := file.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", args[0], err)
			}

			bar := progressbar.DefaultBytes(info.Size(), "importing rates")
			reader := csv.NewReader(io.TeeReader(file, bar))
			reader.FieldsPerRecord = 4

			var imported int
			for {
				record, err := reader.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("failed to read CSV: %w", err)
				}

				rate, err := decimal.NewFromString(record[2])
				if err != nil {
					return fmt.Errorf("row %d: invalid rate %q: %w", imported+1, record[2], err)
				}
				effective, err := parseDate(record[3])
				if err != nil {
					return fmt.Errorf("row %d: %w", imported+1, err)
				}

				snapshot := &model.ExchangeRate{
					Base:          record[0],
					Target:        record[1],
					Rate:          rate,
					EffectiveDate: effective,
				}
				if err := store.SaveExchangeRate(ctx, snapshot); err != nil {
					return fmt.Errorf("row %d: %w", imported+1, err)
				}
				imported++
			}

			_ = bar.Finish()
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d rate snapshots", imported)))
			return nil
		},
	}
}

func listRatesCmd() *cobra.Command {
	var (
		base   string
		target string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rate snapshots for a currency pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rates, err := store.ListExchangeRates(ctx, base, target)
			if err != nil {
				return fmt.Errorf("failed to list rates: %w", err)
			}

			if len(rates) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No snapshots for %s/%s.", base, target)))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Rate"))
			for _, rate := range rates {
				fmt.Fprintf(w, "%s\t%s\n",
					rate.EffectiveDate.Format("2006-01-02"), rate.Rate.String())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base currency code")
	cmd.Flags().StringVar(&target, "target", "", "target currency code")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
