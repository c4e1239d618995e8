package domain

// Business validation constants
const (
	MinSeatCount                 = 1
	DefaultMaxReservationMinutes = 720 // 12 hours
	MaxNotesLength               = 500
	MaxCancellationReasonLength  = 500
	MaxBlockReasonLength         = 500
	DaysPerWeek                  = 7
)

// Availability scan constants
const (
	AvailabilityStepMinutes   = 15
	AvailabilityWindowMinutes = 60
	AvailabilityHorizonHours  = 12
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
