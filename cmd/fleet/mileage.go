// Mileage command reports the last recorded odometer reading.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mileageFlagVehicle string

var mileageCmd = &cobra.Command{
	Use:   "mileage",
	Short: "Print the last recorded mileage for a vehicle",
	Long: `Mileage prints the odometer reading remembered from the vehicle's last
check in. Vehicles with no reading on record report 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		m, err := backend.Ledger().CurrentMileage(mileageFlagVehicle)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"vehicle_id": mileageFlagVehicle,
				"mileage":    m,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), m)
		return nil
	},
}

func init() {
	mileageCmd.Flags().StringVar(&mileageFlagVehicle, "vehicle", "", "vehicle ID")
	mileageCmd.MarkFlagRequired("vehicle")
}
