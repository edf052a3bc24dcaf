package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/modalcore/internal/input/mode"
)

func newKeysCmd(a *app) *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the key bindings of a mode",
		Long: `List the bindings in effect for a mode after keymap files are merged.

Examples:
  modalcore keys
  modalcore keys --mode insert
  modalcore keys -k ~/.config/modalcore/keys.toml --mode op`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, ok := mode.Parse(modeName)
			if !ok {
				return fmt.Errorf("unknown mode %q", modeName)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEYS\tACTION\tDESCRIPTION")
			for _, b := range a.table.Bindings(m) {
				desc := b.Description
				if b.Operator != "" && desc == "" {
					desc = "operator " + b.Operator
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.Keys, b.Action, desc)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", mode.NameNormal, "mode: normal, insert, visual or operator-pending")
	return cmd
}
