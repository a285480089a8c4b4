package main

import (
	"fmt"

	"github.com/bimadewantoro/moneymate/internal/cli"
	"github.com/bimadewantoro/moneymate/internal/storage"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// initStorage already migrates; this command exists to do it
			// explicitly and report the resulting version.
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Database schema at version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}
