package tracker

import (
	"time"

	"github.com/subpair/habit-tracker/internal/logger"
	"github.com/subpair/habit-tracker/internal/models"
	"github.com/subpair/habit-tracker/internal/utils"
)

// Status classifies a reconciliation attempt relative to the habit's
// current due-date window.
type Status int

const (
	// StatusNormal is an on-time update: one event written, due date
	// advanced once.
	StatusNormal Status = iota
	// StatusTooEarly is a premature attempt: nothing written.
	StatusTooEarly
	// StatusWithFill is a late update: failure events were backfilled for
	// every fully elapsed window before the caller's outcome was recorded.
	StatusWithFill
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusTooEarly:
		return "too early"
	case StatusWithFill:
		return "with fill"
	default:
		return "unknown"
	}
}

// Result reports what a reconciliation call decided. WindowStart is the
// start of the window the outcome was recorded against; for a premature
// attempt it is the earliest date an update becomes legal. Missed holds the
// start dates of backfilled windows in chronological order.
type Result struct {
	Status      Status
	WindowStart time.Time
	Missed      []time.Time
}

// Reconcile records an outcome for a habit's current window, keeping the
// stored due date consistent with the decision.
//
// The window runs from one periodicity before the due date up to the due
// date itself. A change date inside the window closes it with the caller's
// outcome. An earlier date is rejected without side effects. A later date
// means whole windows elapsed unrecorded: each one is closed with a
// synthetic failure before the caller's outcome closes the then-current
// window. Every event write is immediately followed by the due-date
// persist, so a crash mid-backfill leaves the due date pointing exactly at
// the next unwritten window and a retry resumes correctly.
func (t *Tracker) Reconcile(habitID int64, changeDate time.Time, completed bool, minutes int) (Result, error) {
	periodicity, due, defaultTime, err := t.habitState(habitID)
	if err != nil {
		return Result{}, err
	}

	changeDate = utils.Normalize(changeDate)
	windowStart := due.AddDate(0, 0, -periodicity)

	switch {
	case changeDate.Before(windowStart):
		return Result{Status: StatusTooEarly, WindowStart: windowStart}, nil

	case !changeDate.After(due):
		if err := t.writeEvent(habitID, completed, minutes, defaultTime, changeDate, windowStart, due, periodicity); err != nil {
			return Result{}, err
		}
		return Result{Status: StatusNormal, WindowStart: windowStart}, nil

	default:
		missed, err := t.backfill(habitID, windowStart, due, periodicity)
		if err != nil {
			return Result{}, err
		}
		// The current window start has moved past every filled window; the
		// caller's outcome closes it, dated at its start.
		finalStart := missed.windowStart
		if err := t.writeEvent(habitID, completed, minutes, defaultTime, finalStart, finalStart, missed.due, periodicity); err != nil {
			return Result{}, err
		}
		logger.Debug("reconciled with fill", "habit", habitID, "missed", len(missed.dates))
		return Result{Status: StatusWithFill, WindowStart: finalStart, Missed: missed.dates}, nil
	}
}

type fillState struct {
	windowStart time.Time
	due         time.Time
	dates       []time.Time
}

// backfill writes one failure event per fully elapsed window, advancing the
// due date after each write, and returns the state of the then-current
// window. The count of elapsed windows is floor division on whole days;
// with Today exactly one periodicity past the due date it counts exactly
// one miss, never two (the boundary case both historical formulas aimed
// for).
func (t *Tracker) backfill(habitID int64, windowStart, due time.Time, periodicity int) (fillState, error) {
	missed := utils.DaysBetween(windowStart, t.Today.AddDate(0, 0, -periodicity)) / periodicity
	if missed < 0 {
		missed = 0
	}

	dates := make([]time.Time, 0, missed)
	for i := 0; i < missed; i++ {
		dates = append(dates, windowStart)
		if err := t.writeEvent(habitID, false, 0, 0, windowStart, windowStart, due, periodicity); err != nil {
			return fillState{}, err
		}
		due = due.AddDate(0, 0, periodicity)
		windowStart = due.AddDate(0, 0, -periodicity)
	}
	return fillState{windowStart: windowStart, due: due, dates: dates}, nil
}

// writeEvent persists one event and immediately advances the stored due
// date, the ordering the crash-consistency argument relies on. A zero
// minute value on a success falls back to the habit's default time; a
// failure always stores zero.
func (t *Tracker) writeEvent(habitID int64, completed bool, minutes, defaultTime int, changeDate, periodicityDate, due time.Time, periodicity int) error {
	if minutes == 0 {
		minutes = defaultTime
	}
	if !completed {
		minutes = 0
	}

	_, err := t.store.CreateEvent(models.HabitEvent{
		HabitID:         habitID,
		Completed:       completed,
		Time:            minutes,
		ChangeDate:      changeDate,
		PeriodicityDate: periodicityDate,
	})
	if err != nil {
		return err
	}
	return t.store.UpdateDueDate(habitID, due.AddDate(0, 0, periodicity))
}
