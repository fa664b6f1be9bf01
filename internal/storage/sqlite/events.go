package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/subpair/habit-tracker/internal/models"
	"github.com/subpair/habit-tracker/internal/storage"
	"github.com/subpair/habit-tracker/internal/utils"
)

const eventColumns = "change_id, habit_id, completed, time, change_date, periodicity_date"

func (s *Store) CreateEvent(e models.HabitEvent) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO habit_events (habit_id, completed, time, change_date, periodicity_date)
		VALUES (?, ?, ?, ?, ?)`,
		e.HabitID, e.Completed, e.Time,
		utils.FormatDate(e.ChangeDate), utils.FormatDate(e.PeriodicityDate))
	if err != nil {
		return 0, fmt.Errorf("failed to insert event for habit %d: %w", e.HabitID, err)
	}
	return res.LastInsertId()
}

// Events returns a habit's events ordered by insertion, which matches
// chronological window order because the tracker always appends windows in
// order.
func (s *Store) Events(habitID int64) ([]models.HabitEvent, error) {
	rows, err := s.db.Query("SELECT "+eventColumns+" FROM habit_events WHERE habit_id = ? ORDER BY change_id", habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to read events of habit %d: %w", habitID, err)
	}
	defer rows.Close()

	var events []models.HabitEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) EventByID(id int64) (models.HabitEvent, error) {
	row := s.db.QueryRow("SELECT "+eventColumns+" FROM habit_events WHERE change_id = ?", id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitEvent{}, storage.ErrNotFound
		}
		return models.HabitEvent{}, fmt.Errorf("failed to read event %d: %w", id, err)
	}
	return e, nil
}

func (s *Store) EventIDByWindow(habitID int64, periodicityDate time.Time) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		"SELECT change_id FROM habit_events WHERE habit_id = ? AND periodicity_date = ?",
		habitID, utils.FormatDate(periodicityDate)).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("failed to look up event of habit %d for window %s: %w",
			habitID, utils.FormatDate(periodicityDate), err)
	}
	return id, nil
}

func (s *Store) UpdateEventCompletion(eventID int64, completed bool, changeDate time.Time) error {
	return s.updateEvent(eventID,
		"UPDATE habit_events SET completed = ?, change_date = ? WHERE change_id = ?",
		completed, utils.FormatDate(changeDate), eventID)
}

func (s *Store) UpdateEventTime(eventID int64, minutes int, changeDate time.Time) error {
	return s.updateEvent(eventID,
		"UPDATE habit_events SET time = ?, change_date = ? WHERE change_id = ?",
		minutes, utils.FormatDate(changeDate), eventID)
}

func (s *Store) updateEvent(eventID int64, query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", eventID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanEvent(row rowScanner) (models.HabitEvent, error) {
	var e models.HabitEvent
	var change, window string

	err := row.Scan(&e.ID, &e.HabitID, &e.Completed, &e.Time, &change, &window)
	if err != nil {
		return models.HabitEvent{}, err
	}

	e.ChangeDate, err = utils.ParseDate(change)
	if err != nil {
		return models.HabitEvent{}, fmt.Errorf("failed to parse change_date for event %d: %w", e.ID, err)
	}
	e.PeriodicityDate, err = utils.ParseDate(window)
	if err != nil {
		return models.HabitEvent{}, fmt.Errorf("failed to parse periodicity_date for event %d: %w", e.ID, err)
	}
	return e, nil
}
