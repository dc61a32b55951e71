package service

// Business rule constants.
const (
	// DefaultMaxTripsPerDay caps how many trips one driver may perform on
	// a single calendar day.
	DefaultMaxTripsPerDay = 2

	// DefaultOverhaulYearsThreshold is how many years after manufacture
	// or the last overhaul a bus becomes due for the next one.
	DefaultOverhaulYearsThreshold = 10

	// seniorDriverMinExperience marks a driver as senior.
	seniorDriverMinExperience = 10

	// topPerformingTripsCount is the default top-N size for trip reports.
	topPerformingTripsCount = 10

	// defaultReportDays is the default reporting window.
	defaultReportDays = 30

	// Thresholds qualifying a trip as profitable.
	profitableMinTickets          = 20
	profitableMinRevenuePerTicket = 100.0
)
