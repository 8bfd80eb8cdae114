package types

// HistoryEntry is one History Log row: a frozen copy of a Vehicle record
// taken at the moment of check-in, with all check-in fields populated.
// Entries are append-only and have no natural key; duplicates are permitted.
type HistoryEntry struct {
	Vehicle
}

// Snapshot freezes a vehicle record into a history entry with the supplied
// check-in data filled in. The source record is not modified.
func Snapshot(v Vehicle, actualCheckIn, fuelPercent, comments, mileage string) HistoryEntry {
	v.Status = StatusInactive
	v.ActualCheckIn = actualCheckIn
	v.FuelPercent = fuelPercent
	v.Comments = comments
	v.Mileage = mileage
	return HistoryEntry{Vehicle: v}
}
