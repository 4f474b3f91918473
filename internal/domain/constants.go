package domain

// DurationUntilClose is the booking-duration sentinel meaning "until the
// room closes". It is resolved against the room's closing time before any
// interval arithmetic.
const DurationUntilClose = -1

// Default configuration values
const (
	DefaultSlotStepMinutes        = 30
	DefaultBookingDurationMinutes = 120
)

// Business validation constants
const (
	MinPartySize            = 1
	MaxPartySize            = 100
	MinDurationMinutes      = 15
	MaxDurationMinutes      = 24 * 60
	MaxCombinationTables    = 6
	MaxNotesLength          = 500
	MaxCustomerNameLength   = 200
	MaxCancelReasonLength   = 500
)

// AdjacencyThresholdUnits is the maximum center-to-center distance, in
// floor-plan layout units, at which two tables count as adjacent.
const AdjacencyThresholdUnits = 150.0

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
