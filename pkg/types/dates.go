package types

import (
	"errors"
	"time"
)

// DateLayout is the canonical on-disk date format. Every date the system
// writes is normalized to this layout.
const DateLayout = "2006-01-02"

// dateLayouts are the accepted input formats, tried in order. First match
// wins, so ambiguous strings like 03/04/2024 parse as month-first.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02-01-2006",
	"02/01/2006",
}

// errDateFormat reports a date string that matches none of the accepted
// layouts. Stores wrap it in ErrValidation before surfacing it.
var errDateFormat = errors.New("unrecognized date format")

// ParseDate parses a date string against the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errDateFormat
}

// NormalizeDate parses a date string and re-renders it in DateLayout.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// Midnight returns the UTC midnight of t's calendar day. Parsed dates are
// UTC instants, so day-granularity comparisons must put the clock in UTC
// too; truncating in the local zone would shift the day boundary.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
