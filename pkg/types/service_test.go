package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServiceConfigEvaluate(t *testing.T) {
	base := ServiceConfig{
		VehicleID:          "TRUCK-1",
		ServiceItem:        "Oil Change",
		MileageInterval:    5000,
		TimeInterval:       90,
		LastServiceDate:    "2024-01-01",
		LastServiceMileage: 10000,
	}

	day := func(s string) time.Time {
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			t.Fatalf("bad test date %q", s)
		}
		return d
	}

	tests := []struct {
		name    string
		config  ServiceConfig
		mileage int
		today   string
		isDue   bool
		status  string
	}{
		{
			name:    "both elapsed",
			config:  base,
			mileage: 15000,
			today:   "2024-05-01",
			isDue:   true,
			status:  ServiceDueBoth,
		},
		{
			name:    "neither elapsed",
			config:  base,
			mileage: 11000,
			today:   "2024-02-01",
			isDue:   false,
			status:  ServiceOK,
		},
		{
			name:    "time elapsed only",
			config:  base,
			mileage: 11000,
			today:   "2024-05-01",
			isDue:   true,
			status:  ServiceDueTime,
		},
		{
			name:    "mileage elapsed only",
			config:  base,
			mileage: 15000,
			today:   "2024-02-01",
			isDue:   true,
			status:  ServiceDueMileage,
		},
		{
			name:    "mileage exactly at interval is due",
			config:  base,
			mileage: 15000,
			today:   "2024-01-15",
			isDue:   true,
			status:  ServiceDueMileage,
		},
		{
			name:    "due date itself is not yet due",
			config:  base,
			mileage: 10000,
			today:   "2024-03-31",
			isDue:   false,
			status:  ServiceOK,
		},
		{
			name:    "day after due date is due",
			config:  base,
			mileage: 10000,
			today:   "2024-04-01",
			isDue:   true,
			status:  ServiceDueTime,
		},
		{
			name: "missing date is due regardless",
			config: ServiceConfig{
				MileageInterval:    5000,
				TimeInterval:       90,
				LastServiceDate:    "",
				LastServiceMileage: 10000,
			},
			mileage: 10000,
			today:   "2024-01-02",
			isDue:   true,
			status:  ServiceDueDateMissing,
		},
		{
			name: "missing date keeps its label even when mileage elapsed",
			config: ServiceConfig{
				MileageInterval:    5000,
				TimeInterval:       90,
				LastServiceDate:    "someday",
				LastServiceMileage: 10000,
			},
			mileage: 20000,
			today:   "2024-01-02",
			isDue:   true,
			status:  ServiceDueDateMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.Evaluate(tt.mileage, day(tt.today))
			assert.Equal(t, tt.isDue, got.IsDue)
			assert.Equal(t, tt.status, got.StatusText)
			assert.Equal(t, tt.config, got.ServiceConfig)
		})
	}
}

func TestServiceConfigEvaluateWestOfUTC(t *testing.T) {
	cfg := ServiceConfig{
		MileageInterval:    5000,
		TimeInterval:       90,
		LastServiceDate:    "2024-01-01",
		LastServiceMileage: 10000,
	}

	// The due date is 2024-03-31. Evening of that day on a clock five hours
	// behind UTC is still the due date itself, not past it.
	today := time.Date(2024, 3, 31, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	got := cfg.Evaluate(10000, today)
	assert.False(t, got.IsDue)
	assert.Equal(t, ServiceOK, got.StatusText)
}
