package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/layby/internal/export"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
)

var exportCmd = &cobra.Command{
	Use:   "export <purchase-id>",
	Short: "Write a purchase's invoices to disk and print a statement",
	Example: `  ledgerctl export 3f0a... --out ./statements/3f0a`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("out", "./exports", "Directory the invoice files are written to")
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid purchase id: %w", err)
	}

	out, _ := cmd.Flags().GetString("out")

	return withLedger(cmd.Context(), func(ctx context.Context, svc *ledger.Service) error {
		view, items, err := export.NewService(svc).Export(ctx, id, out)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), export.Statement(view, items))

		return nil
	})
}
