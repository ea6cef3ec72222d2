package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
)

var statusCmd = &cobra.Command{
	Use:   "status <purchase-id>",
	Short: "Show a purchase's effective status and installment plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var defaultCmd = &cobra.Command{
	Use:   "default <purchase-id>",
	Short: "Write off a purchase as defaulted",
	Long: `Marks an active or overdue purchase as DEFAULTED on behalf of an owner.
Money already paid stays on the purchase; no further payments are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runDefault,
}

func init() {
	rootCmd.AddCommand(statusCmd, defaultCmd)

	defaultCmd.Flags().String("as", "", "Owner user ID recorded as acting")
	_ = defaultCmd.MarkFlagRequired("as")
}

func runStatus(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid purchase id: %w", err)
	}

	return withLedger(cmd.Context(), func(ctx context.Context, svc *ledger.Service) error {
		v, err := svc.GetPurchase(ctx, id)
		if err != nil {
			return err
		}

		p := v.Purchase
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

		fmt.Fprintf(w, "Purchase\t%s\n", p.ID)
		fmt.Fprintf(w, "Type\t%s\n", p.Type)
		fmt.Fprintf(w, "Status\t%s\n", v.Status)
		fmt.Fprintf(w, "Total\t%s\n", p.Total.StringFixed(2))
		fmt.Fprintf(w, "Paid\t%s\n", p.AmountPaid.StringFixed(2))
		fmt.Fprintf(w, "Outstanding\t%s\n", p.Outstanding().StringFixed(2))

		if p.DueDate != nil {
			fmt.Fprintf(w, "Due\t%s\n", p.DueDate.Format("2006-01-02"))
		}

		for _, in := range v.Schedule {
			fmt.Fprintf(w, "  #%d\t%s\t%s\n", in.Number, in.DueDate.Format("2006-01-02"), in.Amount.StringFixed(2))
		}

		return w.Flush()
	})
}

func runDefault(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid purchase id: %w", err)
	}

	asFlag, _ := cmd.Flags().GetString("as")

	userID, err := uuid.Parse(asFlag)
	if err != nil {
		return fmt.Errorf("invalid --as: %w", err)
	}

	actor := auth.Actor{UserID: userID, Role: auth.RoleOwner}

	return withLedger(cmd.Context(), func(ctx context.Context, svc *ledger.Service) error {
		p, err := svc.MarkDefaulted(ctx, actor, id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "purchase %s is now %s with %s outstanding\n",
			p.ID, p.Status, p.Outstanding().StringFixed(2))

		return nil
	})
}
