package cli

import (
	"fmt"
	"text/tabwriter"

	"proxym-fin/internal/dashboard"
	"proxym-fin/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newDashboardCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show balance, recommendations and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := e.requireLogin()
			if err != nil {
				return err
			}

			d := dashboard.New(e.rc, p.ID, e.logger)
			snap, err := d.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s — balance $%s, income $%s/mo, risk %s\n\n",
				snap.User.Name,
				snap.User.Balance.StringFixed(2),
				snap.User.MonthlyIncome.StringFixed(2),
				snap.User.RiskProfile,
			)

			fmt.Fprintln(out, "Recommended products:")
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, rec := range snap.Recommendations {
				fmt.Fprintf(w, "  %s\t%s\t%.2f%%\tfrom $%s\n",
					rec.Name, rec.Type, rec.InterestRate, rec.MinimumEntry.StringFixed(2))
			}
			w.Flush()

			fmt.Fprintln(out, "\nRecent transactions:")
			w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, tx := range snap.Transactions {
				fmt.Fprintf(w, "  %s\t%s\t$%s\t%s\n",
					tx.Date.Format("2006-01-02"), tx.Category, tx.Amount.StringFixed(2), tx.Description)
			}
			w.Flush()
			return nil
		},
	}
}

func newSpendCmd(e *env) *cobra.Command {
	var (
		amount      string
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Record a transaction and update the balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := e.requireLogin()
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			d := dashboard.New(e.rc, p.ID, e.logger)
			snap, err := d.Spend(cmd.Context(), dto.Transaction{
				Amount:      amt,
				Category:    category,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded $%s (%s). New balance: $%s\n",
				amt.StringFixed(2), category, snap.User.Balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount spent")
	cmd.Flags().StringVarP(&category, "category", "c", "Food", "Category (Food, Rent, Investment, Subscription, Entertainment)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-form description")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newChatCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the financial assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.requireLogin()
			if err != nil {
				return err
			}

			d := dashboard.New(e.rc, p.ID, e.logger)
			// Context fetch failures are tolerable here; the assistant just
			// answers without the profile summary.
			if _, err := d.Refresh(cmd.Context()); err != nil {
				e.logger.Warn("Chat context unavailable")
			}

			answer, err := d.Ask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}
