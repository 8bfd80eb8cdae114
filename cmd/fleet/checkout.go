// Checkout command records a vehicle going out.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JLJones1696/Vehicle-Manager/internal/sqlite"
)

var checkoutFlags struct {
	vehicle string
	purpose string
	user    string
	out     string
	due     string
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check a vehicle out",
	Long: `Checkout records a vehicle leaving with a user. All fields are required.
Dates accept YYYY-MM-DD, MM/DD/YYYY, DD-MM-YYYY, or DD/MM/YYYY and are
stored as YYYY-MM-DD.

A checkout for a vehicle that already has a ledger record replaces that
record entirely, including an in-progress checkout.

Example:
  fleet checkout --vehicle TRUCK-1 --purpose Deliveries --user Alex \
    --out 2024-04-28 --due 2024-05-10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		v, err := backend.Ledger().Checkout(sqlite.CheckoutParams{
			VehicleID:        checkoutFlags.vehicle,
			Purpose:          checkoutFlags.purpose,
			User:             checkoutFlags.user,
			CheckedOut:       checkoutFlags.out,
			EstimatedCheckIn: checkoutFlags.due,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), v)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Checked out %s to %s (due %s, status %s)\n",
			v.VehicleID, v.User, v.EstimatedCheckIn, v.Status)
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutFlags.vehicle, "vehicle", "", "vehicle ID")
	checkoutCmd.Flags().StringVar(&checkoutFlags.purpose, "purpose", "", "purpose of the trip")
	checkoutCmd.Flags().StringVar(&checkoutFlags.user, "user", "", "user taking the vehicle")
	checkoutCmd.Flags().StringVar(&checkoutFlags.out, "out", "", "check out date")
	checkoutCmd.Flags().StringVar(&checkoutFlags.due, "due", "", "estimated check in date")
	checkoutCmd.MarkFlagRequired("vehicle")
	checkoutCmd.MarkFlagRequired("purpose")
	checkoutCmd.MarkFlagRequired("user")
	checkoutCmd.MarkFlagRequired("out")
	checkoutCmd.MarkFlagRequired("due")
}
