package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available operators and analyzers",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Operators:")
		for _, name := range e.registry.Operators() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintln(out, "Analyzers:")
		for _, name := range e.registry.Analyzers() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
