// This file implements the Service Registry store and its due-status
// queries: per-vehicle maintenance items keyed by (vehicle, service item).
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

// serviceRow pairs a registry record with its file-order sequence.
type serviceRow struct {
	Seq int64 `db:"seq"`
	types.ServiceConfig
}

// ServicesTable provides the Service Registry operations.
type ServicesTable struct {
	backend *Backend
}

// UpsertParams carries the raw service form input. All fields are required.
type UpsertParams struct {
	VehicleID          string
	ServiceItem        string
	MileageInterval    string
	TimeInterval       string
	LastServiceDate    string
	LastServiceMileage string
}

// Upsert creates or overwrites the configuration for a (vehicle, service
// item) pair. The item name matches case-sensitively; an existing row is
// replaced in place, otherwise a new row is appended.
func (t *ServicesTable) Upsert(p UpsertParams) (*types.ServiceConfig, error) {
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
	item := strings.TrimSpace(p.ServiceItem)
	miStr := strings.TrimSpace(p.MileageInterval)
	tiStr := strings.TrimSpace(p.TimeInterval)
	dateStr := strings.TrimSpace(p.LastServiceDate)
	lsmStr := strings.TrimSpace(p.LastServiceMileage)
	if item == "" || miStr == "" || tiStr == "" || dateStr == "" || lsmStr == "" {
		return nil, fmt.Errorf("%w: all service item fields are required", types.ErrValidation)
	}

	mileageInterval, err1 := strconv.Atoi(miStr)
	timeInterval, err2 := strconv.Atoi(tiStr)
	lastServiceMileage, err3 := strconv.Atoi(lsmStr)
	if err1 != nil || err2 != nil || err3 != nil ||
		mileageInterval <= 0 || timeInterval <= 0 || lastServiceMileage < 0 {
		return nil, fmt.Errorf("%w: intervals must be positive and last service mileage non-negative", types.ErrValidation)
	}

	lastServiceDate, err := types.NormalizeDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: last service date %q: %v", types.ErrValidation, dateStr, err)
	}

	cfg := types.ServiceConfig{
		VehicleID:          vehicleID,
		ServiceItem:        item,
		MileageInterval:    mileageInterval,
		TimeInterval:       timeInterval,
		LastServiceDate:    lastServiceDate,
		LastServiceMileage: lastServiceMileage,
	}

	var seq int64
	err = b.db.Get(&seq,
		"SELECT seq FROM services WHERE vehicle_id = ? AND service_item = ?",
		vehicleID, item)
	switch {
	case err == nil:
		_, err = b.db.Exec(
			`UPDATE services
			 SET mileage_interval = ?, time_interval = ?, last_service_date = ?, last_service_mileage = ?
			 WHERE seq = ?`,
			mileageInterval, timeInterval, lastServiceDate, lastServiceMileage, seq,
		)
	case errors.Is(err, sql.ErrNoRows):
		_, err = b.db.Exec(
			`INSERT INTO services
			 (vehicle_id, service_item, mileage_interval, time_interval, last_service_date, last_service_mileage)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			vehicleID, item, mileageInterval, timeInterval, lastServiceDate, lastServiceMileage,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("persisting service %s/%s: %w", vehicleID, item, err)
	}

	if err := t.persist(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MarkComplete records a completed service: the last-service date becomes
// today and the last-service mileage becomes the supplied reading.
func (t *ServicesTable) MarkComplete(vehicleID, serviceItem, currentMileage string) (*types.ServiceConfig, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	mileage, err := strconv.Atoi(strings.TrimSpace(currentMileage))
	if err != nil || mileage < 0 {
		return nil, fmt.Errorf("%w: current mileage must be a non-negative whole number", types.ErrValidation)
	}

	today := b.today().Format(types.DateLayout)
	res, err := b.db.Exec(
		`UPDATE services SET last_service_date = ?, last_service_mileage = ?
		 WHERE vehicle_id = ? AND service_item = ?`,
		today, mileage, vehicleID, serviceItem,
	)
	if err != nil {
		return nil, fmt.Errorf("marking %s/%s complete: %w", vehicleID, serviceItem, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: service %q for vehicle %q", types.ErrNotFound, serviceItem, vehicleID)
	}

	if err := t.persist(); err != nil {
		return nil, err
	}

	var row serviceRow
	if err := b.db.Get(&row,
		"SELECT * FROM services WHERE vehicle_id = ? AND service_item = ?",
		vehicleID, serviceItem); err != nil {
		return nil, fmt.Errorf("rereading service %s/%s: %w", vehicleID, serviceItem, err)
	}
	return &row.ServiceConfig, nil
}

// Delete removes one service configuration.
func (t *ServicesTable) Delete(vehicleID, serviceItem string) error {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	res, err := b.db.Exec(
		"DELETE FROM services WHERE vehicle_id = ? AND service_item = ?",
		vehicleID, serviceItem,
	)
	if err != nil {
		return fmt.Errorf("deleting service %s/%s: %w", vehicleID, serviceItem, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: service %q for vehicle %q", types.ErrNotFound, serviceItem, vehicleID)
	}
	return t.persist()
}

// AutoFillFromItemName looks up any configuration, for any vehicle, whose
// item name matches case-insensitively, and returns it as interval defaults
// for a new entry. First match in file order wins. Best-effort: no match is
// not an error.
func (t *ServicesTable) AutoFillFromItemName(serviceItem string) (*types.ServiceConfig, bool, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, false, types.ErrStoreDetached
	}

	item := strings.TrimSpace(serviceItem)
	if item == "" {
		return nil, false, nil
	}

	var row serviceRow
	err := b.db.Get(&row,
		"SELECT * FROM services WHERE lower(service_item) = lower(?) ORDER BY seq LIMIT 1",
		item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("looking up service item %q: %w", item, err)
	}
	return &row.ServiceConfig, true, nil
}

// ListForVehicle returns the raw configurations for one vehicle in file order.
func (t *ServicesTable) ListForVehicle(vehicleID string) ([]types.ServiceConfig, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := t.listForVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	configs := make([]types.ServiceConfig, 0, len(rows))
	for _, r := range rows {
		configs = append(configs, r.ServiceConfig)
	}
	return configs, nil
}

// Query evaluates the due status of every service item configured for a
// vehicle, filters by status, and sorts by the requested key. The vehicle's
// current mileage is sourced from the Fleet Ledger.
func (t *ServicesTable) Query(vehicleID string, filter types.StatusFilter, sortKey types.SortKey) ([]types.ServiceStatus, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	switch filter {
	case "", types.FilterAll, types.FilterDue, types.FilterOK:
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", types.ErrValidation, filter)
	}

	rows, err := t.listForVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	currentMileage, err := b.ledger.currentMileage(vehicleID)
	if err != nil {
		return nil, err
	}
	today := b.today()

	results := make([]types.ServiceStatus, 0, len(rows))
	for _, r := range rows {
		st := r.ServiceConfig.Evaluate(currentMileage, today)
		switch filter {
		case types.FilterDue:
			if !st.IsDue {
				continue
			}
		case types.FilterOK:
			if st.IsDue {
				continue
			}
		}
		results = append(results, st)
	}

	sortServiceStatuses(results, sortKey)
	return results, nil
}

// listForVehicle fetches one vehicle's rows in file order. Caller holds the lock.
func (t *ServicesTable) listForVehicle(vehicleID string) ([]serviceRow, error) {
	var rows []serviceRow
	err := t.backend.db.Select(&rows,
		"SELECT * FROM services WHERE vehicle_id = ? ORDER BY seq", vehicleID)
	if err != nil {
		return nil, fmt.Errorf("listing services for %s: %w", vehicleID, err)
	}
	return rows, nil
}

// sortServiceStatuses orders query results in place. Unknown keys fall back
// to the service-item sort.
func sortServiceStatuses(results []types.ServiceStatus, key types.SortKey) {
	less := func(i, j types.ServiceStatus) bool {
		return strings.ToLower(i.ServiceItem) < strings.ToLower(j.ServiceItem)
	}

	switch key {
	case types.SortMileageInterval:
		less = func(i, j types.ServiceStatus) bool { return i.MileageInterval < j.MileageInterval }
	case types.SortTimeInterval:
		less = func(i, j types.ServiceStatus) bool { return i.TimeInterval < j.TimeInterval }
	case types.SortLastServiceMileage:
		less = func(i, j types.ServiceStatus) bool { return i.LastServiceMileage < j.LastServiceMileage }
	case types.SortLastServiceDate:
		less = func(i, j types.ServiceStatus) bool {
			return dateOrMin(i.LastServiceDate).Before(dateOrMin(j.LastServiceDate))
		}
	case types.SortStatus:
		// Due items sort before OK items, then alphabetical by label.
		group := func(s types.ServiceStatus) int {
			if s.IsDue {
				return 0
			}
			return 1
		}
		less = func(i, j types.ServiceStatus) bool {
			if group(i) != group(j) {
				return group(i) < group(j)
			}
			return i.StatusText < j.StatusText
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return less(results[i], results[j]) })
}

// dateOrMin parses a date for sorting; unparsable dates sort first.
func dateOrMin(s string) time.Time {
	t, err := types.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// persist rewrites the full services CSV from the mirror. Caller holds the lock.
func (t *ServicesTable) persist() error {
	var rows []serviceRow
	if err := t.backend.db.Select(&rows, "SELECT * FROM services ORDER BY seq"); err != nil {
		return fmt.Errorf("dehydrating services: %w", err)
	}
	out := make([][]string, 0, len(rows)+1)
	out = append(out, types.ServicesHeader)
	for _, r := range rows {
		out = append(out, serviceToRow(r.ServiceConfig))
	}
	return writeTable(t.backend.servicesPath(), out)
}

// serviceToRow renders a registry record in contract column order.
func serviceToRow(c types.ServiceConfig) []string {
	return []string{
		c.VehicleID,
		c.ServiceItem,
		strconv.Itoa(c.MileageInterval),
		strconv.Itoa(c.TimeInterval),
		c.LastServiceDate,
		strconv.Itoa(c.LastServiceMileage),
	}
}
