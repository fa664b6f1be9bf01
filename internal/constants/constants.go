package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// PeriodicityDaily and PeriodicityWeekly are the supported habit cadences,
	// expressed as a day count.
	PeriodicityDaily  = 1
	PeriodicityWeekly = 7

	// MaxNameLength and MaxDescriptionLength bound free-text habit fields.
	MaxNameLength        = 20
	MaxDescriptionLength = 30

	// MaxTimeMinutes is the largest time value accepted for a single event
	// (24 hours).
	MaxTimeMinutes = 1440

	// DefaultDBFile is the database used when no --db flag is given.
	DefaultDBFile = "main.db"

	// SampleDBFile is the database the seed command writes to.
	SampleDBFile = "sample.db"

	// SampleDays is the default simulation length of the seed command.
	SampleDays = 31
)
