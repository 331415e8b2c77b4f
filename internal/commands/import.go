package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/importer"
)

func newImportCommand(g *globals) *cobra.Command {
	var format string
	var inbox bool

	cmd := &cobra.Command{
		Use:   "import [file.csv...]",
		Short: "Import transactions from CSV files",
		Long: "Import transactions from CSV files. With --inbox, every CSV in the\n" +
			"workspace import/ directory is imported and moved to import/processed/.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inbox == (len(args) > 0) {
				return errors.New("give either CSV files or --inbox")
			}
			return runImport(cmd, g, format, args, inbox)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "CSV layout (generic, chase); defaults to import.default_format")
	cmd.Flags().BoolVar(&inbox, "inbox", false, "import the CSV files waiting in import/")

	return cmd
}

func runImport(cmd *cobra.Command, g *globals, format string, paths []string, inbox bool) error {
	ws, err := g.open()
	if err != nil {
		return err
	}
	if format == "" {
		format = ws.Config.Import.DefaultFormat
	}
	reg := ws.Registry()
	p := reg.Get(format)
	if p == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(reg.Formats(), ", "))
	}

	var names []string
	if inbox {
		files, err := importer.Scan(ws.Root)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No CSV files in import/.")
			return nil
		}
		paths = paths[:0]
		for _, f := range files {
			paths = append(paths, f.Path)
			names = append(names, f.Name)
		}
	}

	results, err := importer.ParseFiles(cmd.Context(), p, paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	for i, res := range results {
		n := ws.Ledger.AddAll(res.Transactions)
		skipped := res.Skipped + len(res.Transactions) - n
		total += n
		g.log.Debug().Str("file", paths[i]).Int("imported", n).Int("skipped", skipped).Msg("parsed import file")
		fmt.Fprintf(out, "%s: %d imported, %d skipped\n", filepath.Base(paths[i]), n, skipped)
	}

	if total > 0 {
		details := fmt.Sprintf("%d transactions from %d file(s) (%s)", total, len(paths), p.Format())
		if err := ws.Persist(activity.ActionImport, details); err != nil {
			return err
		}
	}

	for _, name := range names {
		if err := importer.MarkProcessed(ws.Root, name); err != nil {
			return err
		}
	}
	return nil
}
