package types

import "time"

// Service status labels produced by Evaluate.
const (
	ServiceOK             = "OK"
	ServiceDueTime        = "DUE (Time)"
	ServiceDueMileage     = "DUE (Mileage)"
	ServiceDueBoth        = "DUE (Time & Mileage)"
	ServiceDueDateMissing = "DUE (Date Missing)"
)

// StatusFilter selects which service items a registry query returns.
type StatusFilter string

const (
	FilterAll StatusFilter = "All"
	FilterDue StatusFilter = "Due"
	FilterOK  StatusFilter = "OK"
)

// SortKey orders the results of a registry query.
type SortKey string

const (
	SortServiceItem        SortKey = "service-item"
	SortMileageInterval    SortKey = "mileage-interval"
	SortTimeInterval       SortKey = "time-interval"
	SortLastServiceDate    SortKey = "last-service-date"
	SortLastServiceMileage SortKey = "last-service-mileage"
	SortStatus             SortKey = "status"
)

// ServiceConfig is one Service Registry row: the maintenance schedule for a
// single (vehicle, service item) pair, keyed by that pair case-sensitively.
// LastServiceDate keeps whatever string is on disk; an unparsable value
// surfaces as "DUE (Date Missing)" rather than being rejected.
type ServiceConfig struct {
	VehicleID          string `json:"vehicle_id" db:"vehicle_id"`
	ServiceItem        string `json:"service_item" db:"service_item"`
	MileageInterval    int    `json:"mileage_interval" db:"mileage_interval"`
	TimeInterval       int    `json:"time_interval" db:"time_interval"`
	LastServiceDate    string `json:"last_service_date" db:"last_service_date"`
	LastServiceMileage int    `json:"last_service_mileage" db:"last_service_mileage"`
}

// ServiceStatus is a ServiceConfig plus its derived due state. Derived
// fields are recomputed on every read and never persisted.
type ServiceStatus struct {
	ServiceConfig
	IsDue      bool   `json:"is_due"`
	StatusText string `json:"status"`
}

// Evaluate computes the due state of a service item from its configuration,
// the vehicle's current odometer reading, and today's date.
//
// The time condition is checked first; the mileage condition is only
// consulted when the item is not already due. When the last-service date
// parses and both conditions hold independently, the label is upgraded to
// "DUE (Time & Mileage)". A missing or unparsable last-service date makes
// the item due outright.
func (c ServiceConfig) Evaluate(currentMileage int, today time.Time) ServiceStatus {
	st := ServiceStatus{ServiceConfig: c, StatusText: ServiceOK}
	today = Midnight(today)

	timeDue := false
	last, err := ParseDate(c.LastServiceDate)
	if err != nil {
		st.IsDue = true
		st.StatusText = ServiceDueDateMissing
	} else if today.After(last.AddDate(0, 0, c.TimeInterval)) {
		timeDue = true
		st.IsDue = true
		st.StatusText = ServiceDueTime
	}

	mileageDue := currentMileage-c.LastServiceMileage >= c.MileageInterval
	if !st.IsDue && mileageDue {
		st.IsDue = true
		st.StatusText = ServiceDueMileage
	}

	if timeDue && mileageDue {
		st.StatusText = ServiceDueBoth
	}
	return st
}
