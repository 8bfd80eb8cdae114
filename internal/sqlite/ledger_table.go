// This file implements the Fleet Ledger store: current checkout state,
// one row per vehicle.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

// vehicleRow pairs a ledger record with its file-order sequence in the
// SQLite mirror.
type vehicleRow struct {
	Seq int64 `db:"seq"`
	types.Vehicle
}

// LedgerTable provides the Fleet Ledger operations. All methods are safe to
// call from a single goroutine at a time; the backend mutex enforces it.
type LedgerTable struct {
	backend *Backend
}

// CheckoutParams carries the raw checkout form input. All fields are
// required; dates accept any of the recognized formats.
type CheckoutParams struct {
	VehicleID        string
	Purpose          string
	User             string
	CheckedOut       string
	EstimatedCheckIn string
}

// CheckInParams carries the raw check-in form input. FuelPercent and
// Comments are optional.
type CheckInParams struct {
	VehicleID     string
	ActualCheckIn string
	FuelPercent   string
	Comments      string
	Mileage       string
}

// Checkout records a vehicle going out. The record is upserted keyed by
// vehicle ID: a pre-existing row for the same vehicle is fully overwritten,
// including its remembered mileage. Checking out an already-active vehicle
// therefore silently discards the in-progress checkout without archiving
// it, matching the historical behavior of this system.
func (t *LedgerTable) Checkout(p CheckoutParams) (*types.Vehicle, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	vehicleID := strings.TrimSpace(p.VehicleID)
	purpose := strings.TrimSpace(p.Purpose)
	user := strings.TrimSpace(p.User)
	outStr := strings.TrimSpace(p.CheckedOut)
	dueStr := strings.TrimSpace(p.EstimatedCheckIn)
	if vehicleID == "" || purpose == "" || user == "" || outStr == "" || dueStr == "" {
		return nil, fmt.Errorf("%w: all checkout fields are required", types.ErrValidation)
	}

	out, err := types.ParseDate(outStr)
	if err != nil {
		return nil, fmt.Errorf("%w: check out date %q: %v", types.ErrValidation, outStr, err)
	}
	due, err := types.ParseDate(dueStr)
	if err != nil {
		return nil, fmt.Errorf("%w: estimated check in date %q: %v", types.ErrValidation, dueStr, err)
	}
	if out.After(due) {
		return nil, fmt.Errorf("%w: check out date cannot be after estimated check in date", types.ErrValidation)
	}

	v := types.Vehicle{
		VehicleID:        vehicleID,
		Purpose:          purpose,
		User:             user,
		CheckedOut:       out.Format(types.DateLayout),
		EstimatedCheckIn: due.Format(types.DateLayout),
	}
	v.Status = v.DeriveStatus(b.today())

	if err := t.upsert(v); err != nil {
		return nil, err
	}
	if err := t.persist(); err != nil {
		return nil, err
	}
	return &v, nil
}

// CheckIn closes out an active checkout: the full pre-check-in record is
// frozen into the History Log with the supplied check-in data, then the
// ledger row is cleared down to vehicle ID, INACTIVE status, and the new
// odometer reading.
func (t *LedgerTable) CheckIn(p CheckInParams) (*types.HistoryEntry, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	vehicleID := strings.TrimSpace(p.VehicleID)
	if vehicleID == "" {
		return nil, fmt.Errorf("%w: vehicle is required", types.ErrValidation)
	}

	mileageStr := strings.TrimSpace(p.Mileage)
	if mileageStr == "" {
		return nil, fmt.Errorf("%w: mileage at check in is required", types.ErrValidation)
	}
	mileage, err := strconv.Atoi(mileageStr)
	if err != nil || mileage < 0 {
		return nil, fmt.Errorf("%w: mileage at check in must be a non-negative whole number", types.ErrValidation)
	}

	actual, err := types.ParseDate(strings.TrimSpace(p.ActualCheckIn))
	if err != nil {
		return nil, fmt.Errorf("%w: actual check in date %q: %v", types.ErrValidation, p.ActualCheckIn, err)
	}

	fuel := ""
	if s := strings.TrimSpace(p.FuelPercent); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: fuel percent must be a number", types.ErrValidation)
		}
		if f < 0 || f > 100 {
			return nil, fmt.Errorf("%w: fuel percent must be between 0 and 100", types.ErrValidation)
		}
		fuel = strconv.FormatFloat(f, 'g', -1, 64)
	}

	current, err := t.get(vehicleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no active record for vehicle %q", types.ErrNotFound, vehicleID)
	}
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, fmt.Errorf("%w: no active record for vehicle %q", types.ErrNotFound, vehicleID)
	}

	if out, perr := types.ParseDate(current.CheckedOut); perr == nil && actual.Before(out) {
		return nil, fmt.Errorf("%w: actual check in date cannot be before the check out date", types.ErrValidation)
	}
	if current.Mileage != "" {
		if prev, perr := strconv.Atoi(current.Mileage); perr == nil && mileage < prev {
			return nil, fmt.Errorf("%w: mileage at check in cannot be less than the mileage at check out", types.ErrValidation)
		}
	}

	entry := types.Snapshot(
		current.Vehicle,
		actual.Format(types.DateLayout),
		fuel,
		strings.TrimSpace(p.Comments),
		strconv.Itoa(mileage),
	)

	// Archive first, then rewrite the ledger row.
	if err := b.history.append(entry); err != nil {
		return nil, err
	}

	_, err = b.db.Exec(
		`UPDATE vehicles
		 SET purpose = '', user_name = '', checked_out = '', estimated_check_in = '',
		     status = ?, actual_check_in = '', fuel_percent = '', comments = '', mileage = ?
		 WHERE seq = ?`,
		types.StatusInactive, strconv.Itoa(mileage), current.Seq,
	)
	if err != nil {
		return nil, fmt.Errorf("clearing ledger row for %s: %w", vehicleID, err)
	}
	if err := t.persist(); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Get returns the ledger record for a vehicle.
func (t *LedgerTable) Get(vehicleID string) (*types.Vehicle, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	row, err := t.get(vehicleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: vehicle %q", types.ErrNotFound, vehicleID)
	}
	if err != nil {
		return nil, err
	}
	return &row.Vehicle, nil
}

// ListAll returns every ledger record in file order.
func (t *LedgerTable) ListAll() ([]types.Vehicle, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var rows []vehicleRow
	if err := b.db.Select(&rows, "SELECT * FROM vehicles ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	vehicles := make([]types.Vehicle, 0, len(rows))
	for _, r := range rows {
		vehicles = append(vehicles, r.Vehicle)
	}
	return vehicles, nil
}

// ListActiveVehicles returns the IDs of vehicles currently checked out, in
// file order.
func (t *LedgerTable) ListActiveVehicles() ([]string, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var ids []string
	err := b.db.Select(&ids,
		"SELECT vehicle_id FROM vehicles WHERE checked_out != '' AND actual_check_in = '' ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("listing active vehicles: %w", err)
	}
	return ids, nil
}

// ListAllVehicleIDs returns the distinct set of vehicle IDs ever seen,
// ascending.
func (t *LedgerTable) ListAllVehicleIDs() ([]string, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var ids []string
	err := b.db.Select(&ids, "SELECT DISTINCT vehicle_id FROM vehicles ORDER BY vehicle_id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing vehicle IDs: %w", err)
	}
	return ids, nil
}

// CurrentMileage returns the last recorded check-in mileage for the
// vehicle, or 0 when none is on record.
func (t *LedgerTable) CurrentMileage(vehicleID string) (int, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrStoreDetached
	}
	return t.currentMileage(vehicleID)
}

// DeleteVehicle removes the ledger record and cascades to the vehicle's
// service configurations. Deleting an absent vehicle is a no-op.
func (t *LedgerTable) DeleteVehicle(vehicleID string) error {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	res, err := b.db.Exec("DELETE FROM vehicles WHERE vehicle_id = ?", vehicleID)
	if err != nil {
		return fmt.Errorf("deleting vehicle %s: %w", vehicleID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if err := t.persist(); err != nil {
			return err
		}
	}

	res, err = b.db.Exec("DELETE FROM services WHERE vehicle_id = ?", vehicleID)
	if err != nil {
		return fmt.Errorf("deleting services for %s: %w", vehicleID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if err := b.services.persist(); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAllVehicles clears the Fleet Ledger, History Log, and Service
// Registry, then re-initializes an empty Service Registry with header only.
// Destructive and irreversible; the caller is responsible for confirming
// before invoking.
func (t *LedgerTable) DeleteAllVehicles() error {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	for _, stmt := range []string{
		"DELETE FROM vehicles",
		"DELETE FROM history",
		"DELETE FROM services",
	} {
		if _, err := b.db.Exec(stmt); err != nil {
			return fmt.Errorf("clearing mirror: %w", err)
		}
	}

	for _, path := range []string{b.ledgerPath(), b.historyPath(), b.servicesPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return b.initServicesFile()
}

// get fetches one ledger row by vehicle ID. Caller holds the lock.
func (t *LedgerTable) get(vehicleID string) (vehicleRow, error) {
	var row vehicleRow
	err := t.backend.db.Get(&row, "SELECT * FROM vehicles WHERE vehicle_id = ?", vehicleID)
	return row, err
}

// currentMileage reads the remembered odometer column without locking.
// Absent vehicles and blank or unparsable values all read as 0.
func (t *LedgerTable) currentMileage(vehicleID string) (int, error) {
	var m string
	err := t.backend.db.Get(&m, "SELECT mileage FROM vehicles WHERE vehicle_id = ?", vehicleID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading mileage for %s: %w", vehicleID, err)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// upsert writes one full ledger row, replacing any existing row for the
// same vehicle in place. Caller holds the lock.
func (t *LedgerTable) upsert(v types.Vehicle) error {
	db := t.backend.db

	var seq int64
	err := db.Get(&seq, "SELECT seq FROM vehicles WHERE vehicle_id = ?", v.VehicleID)
	switch {
	case err == nil:
		_, err = db.Exec(
			`UPDATE vehicles
			 SET purpose = ?, user_name = ?, checked_out = ?, estimated_check_in = ?,
			     status = ?, actual_check_in = ?, fuel_percent = ?, comments = ?, mileage = ?
			 WHERE seq = ?`,
			v.Purpose, v.User, v.CheckedOut, v.EstimatedCheckIn,
			v.Status, v.ActualCheckIn, v.FuelPercent, v.Comments, v.Mileage, seq,
		)
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(
			`INSERT INTO vehicles
			 (vehicle_id, purpose, user_name, checked_out, estimated_check_in,
			  status, actual_check_in, fuel_percent, comments, mileage)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.VehicleID, v.Purpose, v.User, v.CheckedOut, v.EstimatedCheckIn,
			v.Status, v.ActualCheckIn, v.FuelPercent, v.Comments, v.Mileage,
		)
	}
	if err != nil {
		return fmt.Errorf("persisting vehicle %s: %w", v.VehicleID, err)
	}
	return nil
}

// persist rewrites the full ledger CSV from the mirror. Caller holds the lock.
func (t *LedgerTable) persist() error {
	var rows []vehicleRow
	if err := t.backend.db.Select(&rows, "SELECT * FROM vehicles ORDER BY seq"); err != nil {
		return fmt.Errorf("dehydrating ledger: %w", err)
	}
	out := make([][]string, 0, len(rows)+1)
	out = append(out, types.LedgerHeader)
	for _, r := range rows {
		out = append(out, vehicleToRow(r.Vehicle))
	}
	return writeTable(t.backend.ledgerPath(), out)
}

// vehicleToRow renders a ledger record in contract column order.
func vehicleToRow(v types.Vehicle) []string {
	return []string{
		v.VehicleID, v.Purpose, v.User, v.CheckedOut, v.EstimatedCheckIn,
		v.Status, v.ActualCheckIn, v.FuelPercent, v.Comments, v.Mileage,
	}
}

// vehicleFromRow parses a CSV row in contract column order. Short rows are
// padded with empty fields.
func vehicleFromRow(row []string) types.Vehicle {
	row = padRow(row, len(types.LedgerHeader))
	return types.Vehicle{
		VehicleID:        row[0],
		Purpose:          row[1],
		User:             row[2],
		CheckedOut:       row[3],
		EstimatedCheckIn: row[4],
		Status:           row[5],
		ActualCheckIn:    row[6],
		FuelPercent:      row[7],
		Comments:         row[8],
		Mileage:          row[9],
	}
}
