// Service commands manage the maintenance service registry.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/JLJones1696/Vehicle-Manager/internal/sqlite"
	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage maintenance service schedules",
}

var serviceAddFlags struct {
	vehicle         string
	item            string
	mileageInterval string
	timeInterval    string
	lastDate        string
	lastMileage     string
}

var serviceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a service schedule for a vehicle",
	Long: `Add creates a service schedule for a vehicle, or replaces the existing
one for the same vehicle and service item.

When both interval flags are omitted, the intervals are copied from any
existing schedule with the same item name (matched case-insensitively
across all vehicles). An omitted --last-date defaults to today; an omitted
--last-mileage defaults to the vehicle's last recorded mileage.

Example:
  fleet service add --vehicle TRUCK-1 --item "Oil Change" \
    --mileage-interval 5000 --time-interval 90 \
    --last-date 2024-01-15 --last-mileage 10000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		p := sqlite.UpsertParams{
			VehicleID:          serviceAddFlags.vehicle,
			ServiceItem:        serviceAddFlags.item,
			MileageInterval:    serviceAddFlags.mileageInterval,
			TimeInterval:       serviceAddFlags.timeInterval,
			LastServiceDate:    serviceAddFlags.lastDate,
			LastServiceMileage: serviceAddFlags.lastMileage,
		}

		if p.MileageInterval == "" && p.TimeInterval == "" {
			tmpl, found, err := backend.Services().AutoFillFromItemName(p.ServiceItem)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: no existing schedule named %q to copy intervals from; pass --mileage-interval and --time-interval",
					types.ErrValidation, p.ServiceItem)
			}
			p.MileageInterval = strconv.Itoa(tmpl.MileageInterval)
			p.TimeInterval = strconv.Itoa(tmpl.TimeInterval)
		}
		if p.LastServiceDate == "" {
			p.LastServiceDate = time.Now().Format(types.DateLayout)
		}
		if p.LastServiceMileage == "" {
			m, err := backend.Ledger().CurrentMileage(p.VehicleID)
			if err != nil {
				return err
			}
			p.LastServiceMileage = strconv.Itoa(m)
		}

		cfg, err := backend.Services().Upsert(p)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), cfg)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s for %s every %d miles / %d days\n",
			cfg.ServiceItem, cfg.VehicleID, cfg.MileageInterval, cfg.TimeInterval)
		return nil
	},
}

var serviceCompleteFlags struct {
	vehicle string
	item    string
	mileage string
}

var serviceCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Record a service as performed today",
	Long: `Complete stamps the schedule with today's date and the supplied odometer
reading, resetting its due status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		cfg, err := backend.Services().MarkComplete(
			serviceCompleteFlags.vehicle, serviceCompleteFlags.item, serviceCompleteFlags.mileage)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), cfg)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed %s for %s on %s at %d miles\n",
			cfg.ServiceItem, cfg.VehicleID, cfg.LastServiceDate, cfg.LastServiceMileage)
		return nil
	},
}

var serviceDeleteFlags struct {
	vehicle string
	item    string
}

var serviceDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a service schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.Services().Delete(serviceDeleteFlags.vehicle, serviceDeleteFlags.item); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s for %s\n",
			serviceDeleteFlags.item, serviceDeleteFlags.vehicle)
		return nil
	},
}

var serviceListFlags struct {
	vehicle string
	filter  string
	sort    string
}

var serviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service schedules with their due status",
	Long: `List evaluates every schedule for a vehicle against today's date and the
vehicle's last recorded mileage.

Filters: All, Due, OK.
Sort keys: service-item, mileage-interval, time-interval, last-service-date,
last-service-mileage, status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		results, err := backend.Services().Query(
			serviceListFlags.vehicle,
			types.StatusFilter(serviceListFlags.filter),
			types.SortKey(serviceListFlags.sort),
		)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), results)
		}
		printServiceTable(cmd.OutOrStdout(), results)
		return nil
	},
}

func init() {
	serviceAddCmd.Flags().StringVar(&serviceAddFlags.vehicle, "vehicle", "", "vehicle ID")
	serviceAddCmd.Flags().StringVar(&serviceAddFlags.item, "item", "", "service item name")
	serviceAddCmd.Flags().StringVar(&serviceAddFlags.mileageInterval, "mileage-interval", "", "miles between services")
	serviceAddCmd.Flags().StringVar(&serviceAddFlags.timeInterval, "time-interval", "", "days between services")
	serviceAddCmd.Flags().StringVar(&serviceAddFlags.lastDate, "last-date", "", "date last performed (default: today)")
	serviceAddCmd.Flags().StringVar(&serviceAddFlags.lastMileage, "last-mileage", "", "mileage last performed (default: last recorded)")
	serviceAddCmd.MarkFlagRequired("vehicle")
	serviceAddCmd.MarkFlagRequired("item")

	serviceCompleteCmd.Flags().StringVar(&serviceCompleteFlags.vehicle, "vehicle", "", "vehicle ID")
	serviceCompleteCmd.Flags().StringVar(&serviceCompleteFlags.item, "item", "", "service item name")
	serviceCompleteCmd.Flags().StringVar(&serviceCompleteFlags.mileage, "mileage", "", "odometer reading at service")
	serviceCompleteCmd.MarkFlagRequired("vehicle")
	serviceCompleteCmd.MarkFlagRequired("item")
	serviceCompleteCmd.MarkFlagRequired("mileage")

	serviceDeleteCmd.Flags().StringVar(&serviceDeleteFlags.vehicle, "vehicle", "", "vehicle ID")
	serviceDeleteCmd.Flags().StringVar(&serviceDeleteFlags.item, "item", "", "service item name")
	serviceDeleteCmd.MarkFlagRequired("vehicle")
	serviceDeleteCmd.MarkFlagRequired("item")

	serviceListCmd.Flags().StringVar(&serviceListFlags.vehicle, "vehicle", "", "vehicle ID")
	serviceListCmd.Flags().StringVar(&serviceListFlags.filter, "filter", string(types.FilterAll), "status filter (All, Due, OK)")
	serviceListCmd.Flags().StringVar(&serviceListFlags.sort, "sort", string(types.SortServiceItem), "sort key")
	serviceListCmd.MarkFlagRequired("vehicle")

	serviceCmd.AddCommand(serviceAddCmd)
	serviceCmd.AddCommand(serviceCompleteCmd)
	serviceCmd.AddCommand(serviceDeleteCmd)
	serviceCmd.AddCommand(serviceListCmd)
}
