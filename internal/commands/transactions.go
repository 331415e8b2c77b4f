package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/display"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// ErrUnknownCategory is returned when a transaction names a category the
// workspace does not have.
var ErrUnknownCategory = errors.New("unknown category")

// txFlags are the fields of a transaction given on the command line.
type txFlags struct {
	date        string
	description string
	amount      string
	category    string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date, e.g. 2024-01-05 (required)")
	cmd.Flags().StringVar(&f.description, "description", "", "description (required)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount; negative for expenses (required)")
	cmd.Flags().StringVar(&f.category, "category", "", "category (required)")
	for _, name := range []string{"date", "description", "amount", "category"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (f *txFlags) transaction() (model.Transaction, error) {
	return ledger.NewTransaction(f.date, f.description, f.amount, f.category)
}

func newAddCommand(g *globals) *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, g, f)
		},
	}
	f.register(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, g *globals, f txFlags) error {
	ws, err := g.open()
	if err != nil {
		return err
	}
	tx, err := f.transaction()
	if err != nil {
		return err
	}
	if !ws.Ledger.HasCategory(tx.Category) {
		return fmt.Errorf("%w %q (add it with: tally categories add %q)", ErrUnknownCategory, tx.Category, tx.Category)
	}
	if err := ws.Ledger.Add(tx); err != nil {
		return err
	}
	if err := ws.Persist(activity.ActionAdd, describe(tx)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s\n",
		display.FormatDate(tx.Date), tx.Description, display.FormatCurrency(tx.Amount, ws.Config.Business.Currency))
	return nil
}

func newDeleteCommand(g *globals) *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the first transaction equal to the one given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, g, f)
		},
	}
	f.register(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, g *globals, f txFlags) error {
	ws, err := g.open()
	if err != nil {
		return err
	}
	tx, err := f.transaction()
	if err != nil {
		return err
	}
	if !ws.Ledger.Delete(tx) {
		return fmt.Errorf("no transaction matches %s", describe(tx))
	}
	if err := ws.Persist(activity.ActionDelete, describe(tx)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", describe(tx))
	return nil
}

func newListCommand(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, g, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many transactions (0 for all)")

	return cmd
}

func runList(cmd *cobra.Command, g *globals, limit int) error {
	ws, err := g.open()
	if err != nil {
		return err
	}
	txns := ws.Ledger.Sorted()
	if len(txns) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
		return nil
	}
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
	for _, row := range display.Rows(txns, ws.Config.Business.Currency) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.DisplayDate, row.Description, row.Category, row.DisplayAmount)
	}
	return tw.Flush()
}

func describe(tx model.Transaction) string {
	return fmt.Sprintf("%s %s %s (%s)", tx.Date, tx.Description, tx.Amount, tx.Category)
}
