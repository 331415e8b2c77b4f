package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/display"
	"github.com/cleared-dev/tally/internal/reconcile"
)

func newReconcileCommand(g *globals) *cobra.Command {
	var auto bool
	var addUnmatched bool
	var category string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile the ledger against the demo bank statement",
		Long: "Walk the reconciliation wizard against the built-in demo statement:\n" +
			"auto-match entries with a single candidate, optionally add the rest to\n" +
			"the ledger, and print the summary.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, g, auto, addUnmatched, category)
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", true, "match entries that have exactly one candidate")
	cmd.Flags().BoolVar(&addUnmatched, "add-unmatched", false, "add unmatched entries to the ledger")
	cmd.Flags().StringVar(&category, "category", "", "category for added entries when no rule matches")

	return cmd
}

func runReconcile(cmd *cobra.Command, g *globals, auto, addUnmatched bool, category string) error {
	ws, err := g.open()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	sym := ws.Config.Business.Currency
	wiz := reconcile.New(ws.Ledger, reconcile.MockStatement())

	if _, err := wiz.Next(); err != nil {
		return err
	}
	if auto {
		made, err := wiz.AutoMatch()
		if err != nil {
			return err
		}
		for _, m := range made {
			fmt.Fprintf(out, "matched %s -> %s %s\n", m.BankEntryID, m.Transaction.Date, m.Transaction.Description)
		}
	}

	if _, err := wiz.Next(); err != nil {
		return err
	}
	added := 0
	for _, e := range wiz.Unmatched() {
		if !addUnmatched {
			fmt.Fprintf(out, "unmatched %s %s %s %s\n", e.ID, display.FormatDate(e.Date), e.Description, display.FormatCurrency(e.Amount, sym))
			continue
		}
		cat := category
		if c, ok := ws.Rules.Categorize(e.Description); ok {
			cat = c
		}
		tx, err := wiz.Add(e.ID, cat)
		if err != nil {
			return err
		}
		added++
		fmt.Fprintf(out, "added %s as %s (%s)\n", e.ID, tx.Description, tx.Category)
	}

	if _, err := wiz.Next(); err != nil {
		return err
	}
	s := wiz.Summary()
	fmt.Fprintf(out, "\nEntries:    %d\n", s.Entries)
	fmt.Fprintf(out, "Matched:    %d\n", s.Matched)
	fmt.Fprintf(out, "Added:      %d\n", s.Added)
	fmt.Fprintf(out, "Unmatched:  %d\n", s.Unmatched)
	fmt.Fprintf(out, "Statement:  %s\n", display.FormatCurrency(s.StatementTotal, sym))
	fmt.Fprintf(out, "Unresolved: %s\n", display.FormatCurrency(s.UnresolvedTotal, sym))
	if s.Complete {
		fmt.Fprintln(out, "Reconciliation complete.")
	}

	if added > 0 {
		details := fmt.Sprintf("%d matched, %d added", s.Matched, s.Added)
		if err := ws.Persist(activity.ActionReconcile, details); err != nil {
			return err
		}
	}
	return nil
}
