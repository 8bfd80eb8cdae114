package types

import (
	"strconv"
	"time"
)

// Vehicle statuses. Status is derived from the date fields, never set
// independently.
const (
	StatusActive   = "ACTIVE"
	StatusOverdue  = "OVERDUE"
	StatusInactive = "INACTIVE"
)

// Vehicle is one Fleet Ledger row: the current checkout state for a single
// vehicle, keyed by VehicleID. Date fields hold normalized YYYY-MM-DD
// strings; the empty string means absent. Mileage holds the odometer reading
// recorded at the last check-in and doubles as the vehicle's remembered
// current mileage while it sits idle.
type Vehicle struct {
	VehicleID        string `json:"vehicle_id" db:"vehicle_id"`
	Purpose          string `json:"purpose" db:"purpose"`
	User             string `json:"user" db:"user_name"`
	CheckedOut       string `json:"checked_out" db:"checked_out"`
	EstimatedCheckIn string `json:"estimated_check_in" db:"estimated_check_in"`
	Status           string `json:"status" db:"status"`
	ActualCheckIn    string `json:"actual_check_in" db:"actual_check_in"`
	FuelPercent      string `json:"fuel_percent" db:"fuel_percent"`
	Comments         string `json:"comments" db:"comments"`
	Mileage          string `json:"mileage_at_check_in" db:"mileage"`
}

// DeriveStatus recomputes the vehicle status for the given day: INACTIVE
// once an actual check-in date is set, otherwise OVERDUE when today is past
// the estimated check-in date, otherwise ACTIVE. An unparsable estimated
// date also yields INACTIVE.
func (v Vehicle) DeriveStatus(today time.Time) string {
	if v.ActualCheckIn != "" {
		return StatusInactive
	}
	est, err := ParseDate(v.EstimatedCheckIn)
	if err != nil {
		return StatusInactive
	}
	if Midnight(today).After(est) {
		return StatusOverdue
	}
	return StatusActive
}

// IsActive reports whether the vehicle is currently checked out: a checkout
// date is on record and no actual check-in has been entered. A checked-in
// vehicle has its checkout fields cleared, so it is never active even though
// its actual check-in column is also empty.
func (v Vehicle) IsActive() bool {
	return v.CheckedOut != "" && v.ActualCheckIn == ""
}

// MileageValue returns the remembered odometer reading, or 0 when the field
// is empty or unparsable.
func (v Vehicle) MileageValue() int {
	if v.Mileage == "" {
		return 0
	}
	n, err := strconv.Atoi(v.Mileage)
	if err != nil {
		return 0
	}
	return n
}
