package types

// On-disk store file names. Each store is a header-first CSV table; the
// header text and column order are part of the persistence contract.
const (
	LedgerFile   = "vehicle_info.csv"
	HistoryFile  = "vehicle_history.csv"
	ServicesFile = "vehicle_services.csv"
)

// LedgerHeader is the column set of the Fleet Ledger. The History Log uses
// the identical columns.
var LedgerHeader = []string{
	"Vehicle",
	"Purpose",
	"User",
	"Checked Out",
	"Estimated Check In",
	"Status",
	"Actual Check In",
	"Fuel (%)",
	"Comments",
	"Mileage at Check In",
}

// HistoryHeader is the column set of the History Log.
var HistoryHeader = LedgerHeader

// ServicesHeader is the column set of the Service Registry.
var ServicesHeader = []string{
	"Vehicle",
	"Service Item",
	"Mileage Interval (miles)",
	"Time Interval (days)",
	"Last Service Date (YYYY-MM-DD)",
	"Last Service Mileage",
}
