// History commands for the archived checkout log.
package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JLJones1696/Vehicle-Manager/internal/logger"
)

var historyClearForce bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the checkout history log",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived checkout cycles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entries, err := backend.History().ListAll()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), entries)
		}
		printHistoryTable(cmd.OutOrStdout(), entries)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase the entire checkout history",
	Long: `Clear erases every archived checkout cycle and removes the history file.
Confirmation is asked twice; --force skips the prompts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()
		if historyClearForce {
			logger.Warn("skipping confirmation prompts", "command", "history clear")
		} else {
			if !confirm(in, out, "Clear the entire checkout history?") {
				fmt.Fprintln(out, "Aborted")
				return nil
			}
			if !confirm(in, out, "This cannot be undone. Are you absolutely sure?") {
				fmt.Fprintln(out, "Aborted")
				return nil
			}
		}
		if err := backend.History().ClearAll(); err != nil {
			return err
		}
		logger.Info("history cleared")
		fmt.Fprintln(out, "History cleared")
		return nil
	},
}

func init() {
	historyClearCmd.Flags().BoolVar(&historyClearForce, "force", false, "skip confirmation prompts")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
