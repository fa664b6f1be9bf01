package storage

import (
	"errors"
	"time"

	"github.com/subpair/habit-tracker/internal/models"
)

// ErrNotFound is returned when a referenced habit or event has no record.
// It is the only "legitimate absence" signal; every other error means the
// underlying store failed the operation.
var ErrNotFound = errors.New("record not found")

// Provider is the persistence contract consumed by the tracker. The store
// owns two record types, habits and their events, and exposes the narrow
// read/write surface the reconciliation and analytics logic needs.
type Provider interface {
	Init() error
	Load() error
	Close() error
	Path() string

	// CreateHabit inserts a habit and returns its storage-assigned id.
	CreateHabit(h models.Habit) (int64, error)
	// CreateEvent inserts an event and returns its storage-assigned id.
	CreateEvent(e models.HabitEvent) (int64, error)

	HabitIDByName(name string) (int64, error)
	HabitByID(id int64) (models.Habit, error)
	Periodicity(id int64) (int, error)
	DueDate(id int64) (time.Time, error)
	DefaultTime(id int64) (int, error)

	// Events returns a habit's events in insertion order, which the tracker
	// guarantees matches chronological window order.
	Events(habitID int64) ([]models.HabitEvent, error)
	EventByID(id int64) (models.HabitEvent, error)
	// EventIDByWindow locates the event recorded for the window whose
	// reference date is periodicityDate.
	EventIDByWindow(habitID int64, periodicityDate time.Time) (int64, error)

	UpdateDueDate(id int64, due time.Time) error
	UpdateName(id int64, name string) error
	UpdateDescription(id int64, description string) error
	UpdateDefaultTime(id int64, minutes int) error
	UpdateEventCompletion(eventID int64, completed bool, changeDate time.Time) error
	UpdateEventTime(eventID int64, minutes int, changeDate time.Time) error

	// DeleteHabitAndEvents removes a habit and all its events. The cascade
	// is explicit, not delegated to foreign keys.
	DeleteHabitAndEvents(id int64) error

	ActiveHabits() ([]models.Habit, error)
	HabitsByPeriodicity(days int) ([]models.Habit, error)
	AllHabitIDs() ([]int64, error)
}
