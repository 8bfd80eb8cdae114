// Delete command removes ledger records.
package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JLJones1696/Vehicle-Manager/internal/logger"
	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

var deleteFlags struct {
	vehicle string
	all     bool
	force   bool
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a vehicle record, or wipe the whole fleet",
	Long: `Delete removes one vehicle's ledger record and its service
configurations, or with --all wipes the ledger, history log, and service
registry entirely. Deleting everything asks for confirmation twice;
--force skips the prompts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deleteFlags.all == (deleteFlags.vehicle != "") {
			return fmt.Errorf("%w: exactly one of --vehicle or --all is required", types.ErrValidation)
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		if deleteFlags.all {
			if deleteFlags.force {
				logger.Warn("skipping confirmation prompts", "command", "delete --all")
			} else {
				if !confirm(in, out, "Delete ALL vehicles, history, and service records?") {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
				if !confirm(in, out, "This cannot be undone. Are you absolutely sure?") {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
			}
			if err := backend.Ledger().DeleteAllVehicles(); err != nil {
				return err
			}
			logger.Info("deleted all fleet data")
			fmt.Fprintln(out, "Deleted all fleet data")
			return nil
		}

		if !deleteFlags.force {
			prompt := fmt.Sprintf("Delete vehicle %s and its service records?", deleteFlags.vehicle)
			if !confirm(in, out, prompt) {
				fmt.Fprintln(out, "Aborted")
				return nil
			}
		}
		if err := backend.Ledger().DeleteVehicle(deleteFlags.vehicle); err != nil {
			return err
		}
		logger.Info("deleted vehicle", "vehicle", deleteFlags.vehicle)
		fmt.Fprintf(out, "Deleted %s\n", deleteFlags.vehicle)
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteFlags.vehicle, "vehicle", "", "vehicle ID to delete")
	deleteCmd.Flags().BoolVar(&deleteFlags.all, "all", false, "delete every vehicle, the history log, and all service records")
	deleteCmd.Flags().BoolVar(&deleteFlags.force, "force", false, "skip confirmation prompts")
}
