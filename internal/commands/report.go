package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/display"
	"github.com/cleared-dev/tally/internal/workspace"
)

func newReportCommand(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show expense and revenue reports",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	reports := []struct {
		use, short string
		run        func(w io.Writer, ws *workspace.Workspace, asJSON bool) error
	}{
		{"expenses", "Expenses by category", reportExpenses},
		{"monthly", "Revenue and expenses by month", reportMonthly},
		{"summary", "Totals for the whole ledger", reportSummary},
	}
	for _, r := range reports {
		cmd.AddCommand(&cobra.Command{
			Use:   r.use,
			Short: r.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := g.open()
				if err != nil {
					return err
				}
				return r.run(cmd.OutOrStdout(), ws, asJSON)
			},
		})
	}

	return cmd
}

func reportExpenses(w io.Writer, ws *workspace.Workspace, asJSON bool) error {
	totals := aggregate.ExpensesByCategory(ws.Ledger.All())
	if asJSON {
		if totals == nil {
			totals = []aggregate.CategoryTotal{}
		}
		return writeJSON(w, totals)
	}
	if len(totals) == 0 {
		fmt.Fprintln(w, "No expenses.")
		return nil
	}
	sym := ws.Config.Business.Currency
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%s\n", t.Category, display.FormatCurrency(t.Total, sym))
	}
	return tw.Flush()
}

func reportMonthly(w io.Writer, ws *workspace.Workspace, asJSON bool) error {
	months := aggregate.MonthlySeries(ws.Ledger.All())
	if asJSON {
		if months == nil {
			months = []aggregate.MonthTotal{}
		}
		return writeJSON(w, months)
	}
	if len(months) == 0 {
		fmt.Fprintln(w, "No dated transactions.")
		return nil
	}
	sym := ws.Config.Business.Currency
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tREVENUE\tEXPENSES\tNET")
	for _, m := range months {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Month,
			display.FormatCurrency(m.Revenue, sym),
			display.FormatCurrency(m.Expenses, sym),
			display.FormatCurrency(m.Net(), sym))
	}
	return tw.Flush()
}

func reportSummary(w io.Writer, ws *workspace.Workspace, asJSON bool) error {
	s := aggregate.Summarize(ws.Ledger.All())
	if asJSON {
		return writeJSON(w, s)
	}
	sym := ws.Config.Business.Currency
	fmt.Fprintf(w, "Transactions: %d\n", s.Count)
	fmt.Fprintf(w, "Revenue:      %s\n", display.FormatCurrency(s.Revenue, sym))
	fmt.Fprintf(w, "Expenses:     %s\n", display.FormatCurrency(s.Expenses, sym))
	fmt.Fprintf(w, "Net:          %s\n", display.FormatCurrency(s.Net, sym))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
