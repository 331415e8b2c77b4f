package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/activity"
)

func newCategoriesCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := g.open()
			if err != nil {
				return err
			}
			for _, name := range ws.Ledger.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.AddCommand(newCategoriesAddCommand(g))
	return cmd
}

func newCategoriesAddCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesAdd(cmd, g, args[0])
		},
	}
}

func runCategoriesAdd(cmd *cobra.Command, g *globals, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name is empty")
	}
	ws, err := g.open()
	if err != nil {
		return err
	}
	if !ws.Ledger.AddCategory(name) {
		fmt.Fprintf(cmd.OutOrStdout(), "Category %q already exists\n", name)
		return nil
	}
	if err := ws.Persist(activity.ActionAddCategory, name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added category %q\n", name)
	return nil
}
