// Checkin command closes out an active checkout.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JLJones1696/Vehicle-Manager/internal/sqlite"
)

var checkinFlags struct {
	vehicle  string
	date     string
	mileage  string
	fuel     string
	comments string
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check a vehicle back in",
	Long: `Checkin records a vehicle returning. The full pre-check-in record is
archived to the history log, then the ledger row is cleared down to the
vehicle ID, INACTIVE status, and the new odometer reading.

The mileage must not be below the last recorded reading, and the date must
not precede the check out date.

Example:
  fleet checkin --vehicle TRUCK-1 --date 2024-05-09 --mileage 12400 --fuel 75`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entry, err := backend.Ledger().CheckIn(sqlite.CheckInParams{
			VehicleID:     checkinFlags.vehicle,
			ActualCheckIn: checkinFlags.date,
			FuelPercent:   checkinFlags.fuel,
			Comments:      checkinFlags.comments,
			Mileage:       checkinFlags.mileage,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), entry)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Checked in %s on %s at %s miles\n",
			entry.VehicleID, entry.ActualCheckIn, entry.Mileage)
		return nil
	},
}

func init() {
	checkinCmd.Flags().StringVar(&checkinFlags.vehicle, "vehicle", "", "vehicle ID")
	checkinCmd.Flags().StringVar(&checkinFlags.date, "date", "", "actual check in date")
	checkinCmd.Flags().StringVar(&checkinFlags.mileage, "mileage", "", "odometer reading at check in")
	checkinCmd.Flags().StringVar(&checkinFlags.fuel, "fuel", "", "fuel percent remaining (0-100)")
	checkinCmd.Flags().StringVar(&checkinFlags.comments, "comments", "", "free-form comments")
	checkinCmd.MarkFlagRequired("vehicle")
	checkinCmd.MarkFlagRequired("date")
	checkinCmd.MarkFlagRequired("mileage")
}
