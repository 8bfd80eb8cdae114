// Vehicles command lists ledger records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var vehiclesFlagActive bool

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List vehicles in the fleet ledger",
	Long: `Vehicles lists every ledger record in file order. With --active only the
IDs of vehicles currently checked out are printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if vehiclesFlagActive {
			ids, err := backend.Ledger().ListActiveVehicles()
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), ids)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}

		vehicles, err := backend.Ledger().ListAll()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), vehicles)
		}
		printVehicleTable(cmd.OutOrStdout(), vehicles)
		return nil
	},
}

func init() {
	vehiclesCmd.Flags().BoolVar(&vehiclesFlagActive, "active", false, "only IDs of currently checked out vehicles")
}
