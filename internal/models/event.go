package models

import "time"

// HabitEvent is one recorded outcome for a habit in one periodicity window.
// Exactly one event exists per closed window; backfilled failures are
// inserted by the tracker for windows that elapsed unrecorded.
type HabitEvent struct {
	ID      int64
	HabitID int64
	// Completed is the outcome for the window. When false, Time is 0.
	Completed bool
	// Time is the minutes credited to the event.
	Time int
	// ChangeDate is the date the event was recorded or computed. Backfilled
	// events carry the missed window's start date.
	ChangeDate time.Time
	// PeriodicityDate is the window's reference date (its start), used to
	// locate "the event for window X" independent of when it was written.
	PeriodicityDate time.Time
}
