package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

// addService upserts one config with sane defaults.
func addService(t *testing.T, b *Backend, vehicleID, item, mileageInterval, timeInterval, lastDate, lastMileage string) {
	t.Helper()
	_, err := b.Services().Upsert(UpsertParams{
		VehicleID:          vehicleID,
		ServiceItem:        item,
		MileageInterval:    mileageInterval,
		TimeInterval:       timeInterval,
		LastServiceDate:    lastDate,
		LastServiceMileage: lastMileage,
	})
	require.NoError(t, err)
}

func TestUpsertValidation(t *testing.T) {
	valid := UpsertParams{
		VehicleID:          "TRUCK-1",
		ServiceItem:        "Oil Change",
		MileageInterval:    "5000",
		TimeInterval:       "90",
		LastServiceDate:    "2024-01-01",
		LastServiceMileage: "10000",
	}

	tests := []struct {
		name   string
		mutate func(*UpsertParams)
	}{
		{name: "blank vehicle", mutate: func(p *UpsertParams) { p.VehicleID = "" }},
		{name: "blank item", mutate: func(p *UpsertParams) { p.ServiceItem = "" }},
		{name: "zero mileage interval", mutate: func(p *UpsertParams) { p.MileageInterval = "0" }},
		{name: "negative time interval", mutate: func(p *UpsertParams) { p.TimeInterval = "-30" }},
		{name: "non-numeric interval", mutate: func(p *UpsertParams) { p.MileageInterval = "5k" }},
		{name: "negative last mileage", mutate: func(p *UpsertParams) { p.LastServiceMileage = "-1" }},
		{name: "unparsable date", mutate: func(p *UpsertParams) { p.LastServiceDate = "last spring" }},
		{name: "blank date", mutate: func(p *UpsertParams) { p.LastServiceDate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			p := valid
			tt.mutate(&p)
			_, err := b.Services().Upsert(p)
			assert.ErrorIs(t, err, types.ErrValidation)
		})
	}
}

func TestUpsertOverwritesInPlace(t *testing.T) {
	b := setupBackend(t)
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-01-01", "10000")
	addService(t, b, "TRUCK-1", "Brakes", "20000", "365", "2024-01-01", "10000")

	// Overwriting an existing pair keeps the store size and row position.
	addService(t, b, "TRUCK-1", "Oil Change", "7500", "120", "2024-03-01", "11000")

	configs, err := b.Services().ListForVehicle("TRUCK-1")
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "Oil Change", configs[0].ServiceItem)
	assert.Equal(t, 7500, configs[0].MileageInterval)
	assert.Equal(t, 120, configs[0].TimeInterval)
	assert.Equal(t, "2024-03-01", configs[0].LastServiceDate)
	assert.Equal(t, 11000, configs[0].LastServiceMileage)
	assert.Equal(t, "Brakes", configs[1].ServiceItem)
}

func TestUpsertItemNameIsCaseSensitive(t *testing.T) {
	b := setupBackend(t)
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-01-01", "10000")
	addService(t, b, "TRUCK-1", "oil change", "6000", "100", "2024-01-01", "10000")

	configs, err := b.Services().ListForVehicle("TRUCK-1")
	require.NoError(t, err)
	assert.Len(t, configs, 2, "different casing is a different item")
}

func TestMarkComplete(t *testing.T) {
	b := setupBackend(t)
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-01-01", "10000")

	cfg, err := b.Services().MarkComplete("TRUCK-1", "Oil Change", "14000")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", cfg.LastServiceDate, "stamped with the backend clock")
	assert.Equal(t, 14000, cfg.LastServiceMileage)
	assert.Equal(t, 5000, cfg.MileageInterval, "intervals unchanged")

	_, err = b.Services().MarkComplete("TRUCK-1", "Transmission", "14000")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.Services().MarkComplete("TRUCK-1", "Oil Change", "-3")
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestDeleteService(t *testing.T) {
	b := setupBackend(t)
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-01-01", "10000")

	require.NoError(t, b.Services().Delete("TRUCK-1", "Oil Change"))

	configs, err := b.Services().ListForVehicle("TRUCK-1")
	require.NoError(t, err)
	assert.Empty(t, configs)

	assert.ErrorIs(t, b.Services().Delete("TRUCK-1", "Oil Change"), types.ErrNotFound)
}

func TestAutoFillFromItemName(t *testing.T) {
	b := setupBackend(t)
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-01-01", "10000")
	addService(t, b, "VAN-2", "Oil Change", "6000", "120", "2024-02-01", "20000")

	// Case-insensitive, any vehicle, first match in file order wins.
	cfg, found, err := b.Services().AutoFillFromItemName("oil change")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "TRUCK-1", cfg.VehicleID)
	assert.Equal(t, 5000, cfg.MileageInterval)
	assert.Equal(t, 90, cfg.TimeInterval)

	_, found, err = b.Services().AutoFillFromItemName("Transmission")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = b.Services().AutoFillFromItemName("  ")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQueryFilters(t *testing.T) {
	// Clock is 2024-05-01; TRUCK-1 has no mileage on record.
	b := setupBackend(t)
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-01-01", "10000")  // time due
	addService(t, b, "TRUCK-1", "Brakes", "20000", "365", "2024-04-01", "10000")    // ok
	addService(t, b, "VAN-2", "Oil Change", "5000", "90", "2024-01-01", "10000")    // other vehicle

	all, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortServiceItem)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	due, err := b.Services().Query("TRUCK-1", types.FilterDue, types.SortServiceItem)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Oil Change", due[0].ServiceItem)
	assert.Equal(t, types.ServiceDueTime, due[0].StatusText)

	ok, err := b.Services().Query("TRUCK-1", types.FilterOK, types.SortServiceItem)
	require.NoError(t, err)
	require.Len(t, ok, 1)
	assert.Equal(t, "Brakes", ok[0].ServiceItem)

	_, err = b.Services().Query("TRUCK-1", "Overdue", types.SortServiceItem)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestQuerySourcesMileageFromLedger(t *testing.T) {
	dataDir := t.TempDir()
	rows := [][]string{
		types.LedgerHeader,
		{"TRUCK-1", "", "", "", "", "INACTIVE", "", "", "", "16000"},
	}
	require.NoError(t, writeTable(filepath.Join(dataDir, types.LedgerFile), rows))
	b := setupBackendAt(t, dataDir)

	// Recent service date, but 6000 miles elapsed against a 5000 interval.
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-04-20", "10000")

	results, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortServiceItem)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsDue)
	assert.Equal(t, types.ServiceDueMileage, results[0].StatusText)
}

func TestQuerySorting(t *testing.T) {
	b := setupBackend(t)
	addService(t, b, "TRUCK-1", "brakes", "20000", "365", "2024-04-01", "30000")
	addService(t, b, "TRUCK-1", "Air Filter", "15000", "180", "2024-04-10", "20000")
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "2024-01-01", "10000") // time due

	items := func(results []types.ServiceStatus) []string {
		out := make([]string, len(results))
		for i, r := range results {
			out[i] = r.ServiceItem
		}
		return out
	}

	byItem, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortServiceItem)
	require.NoError(t, err)
	assert.Equal(t, []string{"Air Filter", "brakes", "Oil Change"}, items(byItem), "case-insensitive alphabetical")

	byMileage, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortMileageInterval)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oil Change", "Air Filter", "brakes"}, items(byMileage))

	byTime, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortTimeInterval)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oil Change", "Air Filter", "brakes"}, items(byTime))

	byDate, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortLastServiceDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oil Change", "brakes", "Air Filter"}, items(byDate))

	byLastMileage, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortLastServiceMileage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oil Change", "Air Filter", "brakes"}, items(byLastMileage))

	byStatus, err := b.Services().Query("TRUCK-1", types.FilterAll, types.SortStatus)
	require.NoError(t, err)
	require.Len(t, byStatus, 3)
	assert.Equal(t, "Oil Change", byStatus[0].ServiceItem, "due items sort before OK items")
	assert.True(t, byStatus[0].IsDue)
	assert.False(t, byStatus[1].IsDue)
	assert.False(t, byStatus[2].IsDue)
}

func TestServicesFileRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	b := setupBackendAt(t, dataDir)
	addService(t, b, "TRUCK-1", "Oil Change", "5000", "90", "01/15/2024", "10000")

	rows, err := readTable(filepath.Join(dataDir, types.ServicesFile))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, types.ServicesHeader, rows[0])
	assert.Equal(t, []string{"TRUCK-1", "Oil Change", "5000", "90", "2024-01-15", "10000"}, rows[1])
}
