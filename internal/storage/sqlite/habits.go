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

const habitColumns = "unique_id, name, description, periodicity, default_time, created_date, next_periodicity_due_date, finish_date, finished"

func (s *Store) CreateHabit(h models.Habit) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO habits (name, description, periodicity, default_time, created_date, next_periodicity_due_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.Name, h.Description, h.Periodicity, h.DefaultTime,
		utils.FormatDate(h.CreatedDate), utils.FormatDate(h.NextDueDate))
	if err != nil {
		return 0, fmt.Errorf("failed to insert habit: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) HabitIDByName(name string) (int64, error) {
	var id int64
	err := s.db.QueryRow("SELECT unique_id FROM habits WHERE name = ?", name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("failed to look up habit %q: %w", name, err)
	}
	return id, nil
}

func (s *Store) HabitByID(id int64) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE unique_id = ?", id)
	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, fmt.Errorf("failed to read habit %d: %w", id, err)
	}
	return h, nil
}

func (s *Store) Periodicity(id int64) (int, error) {
	var days int
	err := s.db.QueryRow("SELECT periodicity FROM habits WHERE unique_id = ?", id).Scan(&days)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("failed to read periodicity of habit %d: %w", id, err)
	}
	return days, nil
}

func (s *Store) DueDate(id int64) (time.Time, error) {
	var due string
	err := s.db.QueryRow("SELECT next_periodicity_due_date FROM habits WHERE unique_id = ?", id).Scan(&due)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, storage.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to read due date of habit %d: %w", id, err)
	}
	d, err := utils.ParseDate(due)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse due date of habit %d: %w", id, err)
	}
	return d, nil
}

func (s *Store) DefaultTime(id int64) (int, error) {
	var minutes int
	err := s.db.QueryRow("SELECT default_time FROM habits WHERE unique_id = ?", id).Scan(&minutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("failed to read default time of habit %d: %w", id, err)
	}
	return minutes, nil
}

func (s *Store) UpdateDueDate(id int64, due time.Time) error {
	return s.updateHabitField(id, "next_periodicity_due_date", utils.FormatDate(due))
}

func (s *Store) UpdateName(id int64, name string) error {
	return s.updateHabitField(id, "name", name)
}

func (s *Store) UpdateDescription(id int64, description string) error {
	return s.updateHabitField(id, "description", description)
}

func (s *Store) UpdateDefaultTime(id int64, minutes int) error {
	return s.updateHabitField(id, "default_time", minutes)
}

func (s *Store) updateHabitField(id int64, column string, value any) error {
	// column is always one of our own identifiers, never user input
	res, err := s.db.Exec("UPDATE habits SET "+column+" = ? WHERE unique_id = ?", value, id)
	if err != nil {
		return fmt.Errorf("failed to update %s of habit %d: %w", column, id, err)
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

func (s *Store) DeleteHabitAndEvents(id int64) error {
	if _, err := s.db.Exec("DELETE FROM habits WHERE unique_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete habit %d: %w", id, err)
	}
	if _, err := s.db.Exec("DELETE FROM habit_events WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete events of habit %d: %w", id, err)
	}
	return nil
}

func (s *Store) ActiveHabits() ([]models.Habit, error) {
	return s.queryHabits("SELECT "+habitColumns+" FROM habits WHERE finished = ? ORDER BY unique_id", false)
}

func (s *Store) HabitsByPeriodicity(days int) ([]models.Habit, error) {
	return s.queryHabits("SELECT "+habitColumns+" FROM habits WHERE finished = ? AND periodicity = ? ORDER BY unique_id", false, days)
}

func (s *Store) AllHabitIDs() ([]int64, error) {
	rows, err := s.db.Query("SELECT unique_id FROM habits ORDER BY unique_id")
	if err != nil {
		return nil, fmt.Errorf("failed to read habit ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) queryHabits(query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var created, finish string
	var due sql.NullString

	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Periodicity, &h.DefaultTime,
		&created, &due, &finish, &h.Finished)
	if err != nil {
		return models.Habit{}, err
	}

	h.CreatedDate, err = utils.ParseDate(created)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_date for habit %d: %w", h.ID, err)
	}
	if due.Valid {
		h.NextDueDate, err = utils.ParseDate(due.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse due date for habit %d: %w", h.ID, err)
		}
	}
	h.FinishDate, err = utils.ParseDate(finish)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse finish_date for habit %d: %w", h.ID, err)
	}
	return h, nil
}
