// This file hydrates the SQLite mirror from the CSV stores on Attach.
package sqlite

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

// loadAll hydrates all three stores. Caller holds the lock.
func (b *Backend) loadAll() error {
	if err := b.loadLedger(); err != nil {
		return err
	}
	if err := b.loadHistory(); err != nil {
		return err
	}
	return b.loadServices()
}

// loadLedger reads the Fleet Ledger CSV into the mirror. The first row is
// the header. Rows with a blank vehicle ID are skipped; duplicate IDs keep
// the first occurrence.
func (b *Backend) loadLedger() error {
	rows, err := readTable(b.ledgerPath())
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		v := vehicleFromRow(row)
		if v.VehicleID == "" {
			continue
		}
		_, err := b.db.Exec(
			`INSERT OR IGNORE INTO vehicles
			 (vehicle_id, purpose, user_name, checked_out, estimated_check_in,
			  status, actual_check_in, fuel_percent, comments, mileage)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.VehicleID, v.Purpose, v.User, v.CheckedOut, v.EstimatedCheckIn,
			v.Status, v.ActualCheckIn, v.FuelPercent, v.Comments, v.Mileage,
		)
		if err != nil {
			return fmt.Errorf("loading ledger row %d: %w", i, err)
		}
	}
	return nil
}

// loadHistory reads the History Log CSV into the mirror. Entries keep file
// order and receive mirror-only identities.
func (b *Backend) loadHistory() error {
	rows, err := readTable(b.historyPath())
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		v := vehicleFromRow(row)
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating entry ID: %w", err)
		}
		_, err = b.db.Exec(
			`INSERT INTO history
			 (entry_id, vehicle_id, purpose, user_name, checked_out, estimated_check_in,
			  status, actual_check_in, fuel_percent, comments, mileage)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), v.VehicleID, v.Purpose, v.User, v.CheckedOut, v.EstimatedCheckIn,
			v.Status, v.ActualCheckIn, v.FuelPercent, v.Comments, v.Mileage,
		)
		if err != nil {
			return fmt.Errorf("loading history row %d: %w", i, err)
		}
	}
	return nil
}

// loadServices reads the Service Registry CSV into the mirror. Rows whose
// numeric columns do not parse are rejected at the boundary rather than
// carried as raw text. Duplicate (vehicle, item) pairs keep the first.
func (b *Backend) loadServices() error {
	rows, err := readTable(b.servicesPath())
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		row = padRow(row, len(types.ServicesHeader))
		if row[0] == "" || row[1] == "" {
			continue
		}
		mileageInterval, err1 := strconv.Atoi(row[2])
		timeInterval, err2 := strconv.Atoi(row[3])
		lastServiceMileage, err3 := strconv.Atoi(row[5])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		_, err := b.db.Exec(
			`INSERT OR IGNORE INTO services
			 (vehicle_id, service_item, mileage_interval, time_interval, last_service_date, last_service_mileage)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			row[0], row[1], mileageInterval, timeInterval, row[4], lastServiceMileage,
		)
		if err != nil {
			return fmt.Errorf("loading service row %d: %w", i, err)
		}
	}
	return nil
}
