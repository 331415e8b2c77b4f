package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/workspace"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	repo     string
	logLevel string
	log      zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Small business bookkeeping",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setupLogger(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.repo, "repo", ".", "workspace directory")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(g),
		newAddCommand(g),
		newDeleteCommand(g),
		newListCommand(g),
		newImportCommand(g),
		newCategoriesCommand(g),
		newReportCommand(g),
		newReconcileCommand(g),
		newServeCommand(g),
	)

	return rootCmd
}

func (g *globals) setupLogger(cmd *cobra.Command) error {
	level := g.logLevel
	if level == "" {
		level = os.Getenv(config.EnvLogLevel)
	}
	if level == "" {
		level = "warn"
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	g.log = logging.NewConsole(cmd.ErrOrStderr(), lvl)
	return nil
}

// open loads the workspace named by --repo.
func (g *globals) open() (*workspace.Workspace, error) {
	root, err := filepath.Abs(g.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	ws, err := workspace.Open(root, g.log)
	if err != nil {
		return nil, fmt.Errorf("opening workspace %s: %w", root, err)
	}
	return ws, nil
}
