package domain

// Default configuration values
const (
	DefaultTimezone      = "Europe/Berlin"
	DefaultSlotMinutes   = 30
	DefaultHorizonDays   = 30
	DefaultRetentionDays = 14
)

// Business validation constants
const (
	MinNameLength  = 2
	MaxNameLength  = 50
	MaxEmailLength = 254
	MaxNotesLength = 500
)

