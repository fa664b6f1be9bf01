package models

import "time"

// Habit is a tracked recurring commitment. IDs are assigned by storage on
// insert; Name is unique among habits (enforced by the tracker before any
// write, not by a schema constraint).
type Habit struct {
	ID          int64
	Name        string
	Description string
	// Periodicity is the cadence in days (1 = daily, 7 = weekly).
	Periodicity int
	// DefaultTime is the minute value credited to a successful event when
	// the caller supplies none.
	DefaultTime int
	CreatedDate time.Time
	// NextDueDate is the date by which the next event is due. It is always
	// after CreatedDate and only ever advances.
	NextDueDate time.Time
	Finished    bool
	FinishDate  time.Time
}

// WindowStart returns the start of the habit's current reconciliation
// window, one periodicity before the due date.
func (h Habit) WindowStart() time.Time {
	return h.NextDueDate.AddDate(0, 0, -h.Periodicity)
}
