// Package tracker holds the habit tracking core: reconciling recorded
// outcomes against periodicity windows and deriving streak and time
// aggregates from the resulting event history. All durable state lives in
// the storage provider; a Tracker only carries the injected clock.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/subpair/habit-tracker/internal/logger"
	"github.com/subpair/habit-tracker/internal/models"
	"github.com/subpair/habit-tracker/internal/storage"
	"github.com/subpair/habit-tracker/internal/utils"
)

// ErrDuplicateName rejects creating or renaming a habit to a name that is
// already taken. Names are compared case-sensitively.
var ErrDuplicateName = errors.New("a habit with this name already exists")

// Tracker is the reconciliation and analytics engine. Today is an explicit
// clock value rather than a call to the real clock, so reconciliation is
// fully deterministic given (stored state, change date, Today); the seed
// command and the tests move it freely.
type Tracker struct {
	store storage.Provider
	Today time.Time
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store, Today: utils.Today()}
}

// TravelDays offsets the tracker's clock by the given number of days.
func (t *Tracker) TravelDays(offset int) {
	t.Today = t.Today.AddDate(0, 0, offset)
}

// Exists reports whether a habit with the given name is stored.
func (t *Tracker) Exists(name string) (bool, error) {
	_, err := t.store.HabitIDByName(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Resolve maps a habit name to its storage id.
func (t *Tracker) Resolve(name string) (int64, error) {
	return t.store.HabitIDByName(name)
}

// Habit returns the full stored record for an id.
func (t *Tracker) Habit(id int64) (models.Habit, error) {
	return t.store.HabitByID(id)
}

// Create stores a new habit. The first due date is exactly one periodicity
// after the creation date, so the first reconciliation call is evaluated
// against that window like any other.
func (t *Tracker) Create(name, description string, periodicity, defaultTime int) (models.Habit, error) {
	exists, err := t.Exists(name)
	if err != nil {
		return models.Habit{}, err
	}
	if exists {
		return models.Habit{}, ErrDuplicateName
	}

	h := models.Habit{
		Name:        name,
		Description: description,
		Periodicity: periodicity,
		DefaultTime: defaultTime,
		CreatedDate: t.Today,
		NextDueDate: t.Today.AddDate(0, 0, periodicity),
	}
	h.ID, err = t.store.CreateHabit(h)
	if err != nil {
		return models.Habit{}, err
	}
	logger.Debug("created habit", "id", h.ID, "name", name, "periodicity", periodicity)
	return h, nil
}

// Delete removes a habit and all its events.
func (t *Tracker) Delete(id int64) error {
	if err := t.store.DeleteHabitAndEvents(id); err != nil {
		return err
	}
	logger.Debug("deleted habit", "id", id)
	return nil
}

// EventCount returns the number of recorded events for a habit.
func (t *Tracker) EventCount(id int64) (int, error) {
	events, err := t.store.Events(id)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// AlterName renames a habit, re-checking name uniqueness.
func (t *Tracker) AlterName(id int64, name string) error {
	exists, err := t.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateName
	}
	return t.store.UpdateName(id, name)
}

// AlterDescription replaces a habit's description.
func (t *Tracker) AlterDescription(id int64, description string) error {
	return t.store.UpdateDescription(id, description)
}

// AlterDefaultTime replaces a habit's default time value.
func (t *Tracker) AlterDefaultTime(id int64, minutes int) error {
	return t.store.UpdateDefaultTime(id, minutes)
}

// EventForWindow locates the event recorded for the window whose reference
// date is periodicityDate.
func (t *Tracker) EventForWindow(habitID int64, periodicityDate time.Time) (models.HabitEvent, error) {
	eventID, err := t.store.EventIDByWindow(habitID, periodicityDate)
	if err != nil {
		return models.HabitEvent{}, err
	}
	return t.store.EventByID(eventID)
}

// AlterEventCompletion rewrites the outcome of a located event. A failed
// event keeps no time, a newly successful one keeps whatever time was
// recorded. The change date is stamped with the tracker's clock.
func (t *Tracker) AlterEventCompletion(eventID int64, completed bool) error {
	if err := t.store.UpdateEventCompletion(eventID, completed, t.Today); err != nil {
		return err
	}
	if !completed {
		return t.store.UpdateEventTime(eventID, 0, t.Today)
	}
	return nil
}

// AlterEventTime rewrites the minute value of a located event.
func (t *Tracker) AlterEventTime(eventID int64, minutes int) error {
	return t.store.UpdateEventTime(eventID, minutes, t.Today)
}

// ActiveHabits lists habits not yet retired, in id order.
func (t *Tracker) ActiveHabits() ([]models.Habit, error) {
	return t.store.ActiveHabits()
}

// HabitsByPeriodicity lists active habits sharing a cadence, in id order.
func (t *Tracker) HabitsByPeriodicity(days int) ([]models.Habit, error) {
	return t.store.HabitsByPeriodicity(days)
}

func (t *Tracker) habitState(id int64) (periodicity int, due time.Time, defaultTime int, err error) {
	periodicity, err = t.store.Periodicity(id)
	if err != nil {
		return 0, time.Time{}, 0, fmt.Errorf("failed to load habit %d: %w", id, err)
	}
	due, err = t.store.DueDate(id)
	if err != nil {
		return 0, time.Time{}, 0, fmt.Errorf("failed to load habit %d: %w", id, err)
	}
	defaultTime, err = t.store.DefaultTime(id)
	if err != nil {
		return 0, time.Time{}, 0, fmt.Errorf("failed to load habit %d: %w", id, err)
	}
	return periodicity, due, defaultTime, nil
}
