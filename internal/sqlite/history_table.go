// This file implements the History Log store: an append-only archive of
// completed checkout cycles.
package sqlite

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

// historyRow pairs an archived record with its mirror identity. EntryID and
// Seq exist only in the mirror; the CSV carries the bare record.
type historyRow struct {
	Seq     int64  `db:"seq"`
	EntryID string `db:"entry_id"`
	types.Vehicle
}

// HistoryTable provides the History Log operations.
type HistoryTable struct {
	backend *Backend
}

// Append adds one frozen entry to the archive, creating the store file with
// its header if absent.
func (t *HistoryTable) Append(entry types.HistoryEntry) error {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}
	return t.append(entry)
}

// ListAll returns every archived entry in insertion order.
func (t *HistoryTable) ListAll() ([]types.HistoryEntry, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var rows []historyRow
	if err := b.db.Select(&rows, "SELECT * FROM history ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	entries := make([]types.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, types.HistoryEntry{Vehicle: r.Vehicle})
	}
	return entries, nil
}

// ClearAll destructively empties the archive and removes its file. The
// caller is responsible for confirming before invoking.
func (t *HistoryTable) ClearAll() error {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	if _, err := b.db.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history mirror: %w", err)
	}
	if err := os.Remove(b.historyPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}

// append inserts one entry and rewrites the file. Caller holds the lock.
func (t *HistoryTable) append(entry types.HistoryEntry) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating entry ID: %w", err)
	}

	v := entry.Vehicle
	_, err = t.backend.db.Exec(
		`INSERT INTO history
		 (entry_id, vehicle_id, purpose, user_name, checked_out, estimated_check_in,
		  status, actual_check_in, fuel_percent, comments, mileage)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), v.VehicleID, v.Purpose, v.User, v.CheckedOut, v.EstimatedCheckIn,
		v.Status, v.ActualCheckIn, v.FuelPercent, v.Comments, v.Mileage,
	)
	if err != nil {
		return fmt.Errorf("archiving entry for %s: %w", v.VehicleID, err)
	}
	return t.persist()
}

// persist rewrites the full history CSV from the mirror. Caller holds the lock.
func (t *HistoryTable) persist() error {
	var rows []historyRow
	if err := t.backend.db.Select(&rows, "SELECT * FROM history ORDER BY seq"); err != nil {
		return fmt.Errorf("dehydrating history: %w", err)
	}
	out := make([][]string, 0, len(rows)+1)
	out = append(out, types.HistoryHeader)
	for _, r := range rows {
		out = append(out, vehicleToRow(r.Vehicle))
	}
	return writeTable(t.backend.historyPath(), out)
}
