package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hirexpand/internal/builtin"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List builtin macros hirexpand can expand",
	Args:  cobra.NoArgs,
	RunE:  runBuiltins,
}

func init() {
	builtinsCmd.Flags().Bool("plain", false, "print one name per line")
}

func runBuiltins(cmd *cobra.Command, args []string) error {
	plain, err := cmd.Flags().GetBool("plain")
	if err != nil {
		return fmt.Errorf("failed to get plain flag: %w", err)
	}
	out := cmd.OutOrStdout()
	if plain {
		for _, name := range builtin.Names() {
			if _, err := fmt.Fprintf(out, "%s!\n", name); err != nil {
				return err
			}
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Macro", "Expands to"})
	for _, name := range builtin.Names() {
		t.AppendRow(table.Row{name + "!", builtin.Describe(name)})
	}
	t.Render()
	return nil
}
