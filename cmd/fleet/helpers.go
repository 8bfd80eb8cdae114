// Shared helpers for fleet CLI commands.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JLJones1696/Vehicle-Manager/internal/logger"
	"github.com/JLJones1696/Vehicle-Manager/internal/sqlite"
	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	logger.Debug("backend attached", "data_dir", dataDir)
	return backend, nil
}

// classifyExit maps an error to a process exit code. Validation failures and
// missing records are the user's to fix; everything else is a system fault.
func classifyExit(err error) int {
	if errors.Is(err, types.ErrValidation) || errors.Is(err, types.ErrNotFound) {
		return exitUserError
	}
	return exitSysError
}

// printJSON renders v as indented JSON on stdout.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// confirm prints a prompt and reads one line from in. Only an explicit
// "y" or "yes" (any case) counts as consent. Commands that prompt more than
// once must pass the same reader to every call: a buffered reader consumes
// ahead of the line it returns, so a fresh reader per prompt would drop
// answers already sitting in the first reader's buffer.
func confirm(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// printVehicleTable renders ledger records as an aligned table.
func printVehicleTable(w io.Writer, vehicles []types.Vehicle) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE\tSTATUS\tUSER\tPURPOSE\tOUT\tDUE\tMILEAGE")
	for _, v := range vehicles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.VehicleID, v.Status, v.User, v.Purpose, v.CheckedOut, v.EstimatedCheckIn, v.Mileage)
	}
	tw.Flush()
}

// printServiceTable renders evaluated service items as an aligned table.
func printServiceTable(w io.Writer, results []types.ServiceStatus) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE\tSERVICE\tMILEAGE INT\tTIME INT\tLAST DATE\tLAST MILEAGE\tSTATUS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%d\t%s\n",
			r.VehicleID, r.ServiceItem, r.MileageInterval, r.TimeInterval,
			r.LastServiceDate, r.LastServiceMileage, r.StatusText)
	}
	tw.Flush()
}

// printHistoryTable renders archived checkout cycles as an aligned table.
func printHistoryTable(w io.Writer, entries []types.HistoryEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE\tUSER\tPURPOSE\tOUT\tIN\tFUEL\tMILEAGE\tCOMMENTS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.VehicleID, e.User, e.Purpose, e.CheckedOut, e.ActualCheckIn,
			e.FuelPercent, e.Mileage, e.Comments)
	}
	tw.Flush()
}
