package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded operator results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded results, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		store, err := e.openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("history is disabled")
		}
		defer store.Close()

		entries, err := store.List()
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d outputs\n",
				entry.ID, entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.Plugin, len(entry.Containers))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the recallable plugin state of a recorded result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		e, err := setup()
		if err != nil {
			return err
		}
		store, err := e.openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("history is disabled")
		}
		defer store.Close()

		entry, err := store.Get(id)
		if err != nil {
			return err
		}
		state, err := entry.State.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "plugin: %s\nstate: %s\n", entry.Plugin, state)
		for _, c := range entry.Containers {
			fmt.Fprintf(cmd.OutOrStdout(), "output: %s (%d bits)\n", c.Name, c.Bits)
		}
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
