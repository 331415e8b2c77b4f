package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/server"
)

func newServeCommand(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, g, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address; defaults to server.addr")

	return cmd
}

func runServe(cmd *cobra.Command, g *globals, addr string) error {
	ws, err := g.open()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = ws.Config.Server.Addr
	}

	level := g.logLevel
	if level == "" {
		level = ws.Config.Log.Level
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	log := logging.New(cmd.ErrOrStderr(), lvl)

	opts := server.Options{
		Store:         ws.Ledger,
		Registry:      ws.Registry(),
		Symbol:        ws.Config.Business.Currency,
		DefaultFormat: ws.Config.Import.DefaultFormat,
		Logger:        log,
	}
	if ws.Config.Server.Persist {
		opts.Persister = ws
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(opts).ListenAndServe(ctx, addr)
}
