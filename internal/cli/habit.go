package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/subpair/habit-tracker/internal/constants"
	"github.com/subpair/habit-tracker/internal/models"
	storageerrors "github.com/subpair/habit-tracker/internal/storage"
	"github.com/subpair/habit-tracker/internal/tracker"
	"github.com/subpair/habit-tracker/internal/utils"
	"github.com/subpair/habit-tracker/internal/validation"
)

// HabitCmd groups the habit management subcommands.
type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Create a new habit."`
	Update HabitUpdateCmd `cmd:"" help:"Record an outcome for a habit's current window."`
	List   HabitListCmd   `cmd:"" help:"List tracked habits."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all its events."`
	Alter  HabitAlterCmd  `cmd:"" help:"Change a habit's details or correct a recorded event."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name (max 20 characters)."`
	Description string `help:"Habit description (max 30 characters)." default:""`
	Periodicity string `help:"Cadence: daily or weekly." enum:"daily,weekly" default:"daily"`
	Time        int    `help:"Default time in minutes credited to a success." default:"0"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := validation.MaxLength(constants.MaxNameLength).Validate(c.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	if c.Description != "" {
		if err := validation.MaxLength(constants.MaxDescriptionLength).Validate(c.Description); err != nil {
			return fmt.Errorf("invalid description: %w", err)
		}
	}
	if err := validation.Range(0, constants.MaxTimeMinutes).Validate(fmt.Sprint(c.Time)); err != nil {
		return fmt.Errorf("invalid time: %w", err)
	}

	h, err := ctx.Tracker.Create(c.Name, c.Description, PeriodicityDays(c.Periodicity), c.Time)
	if err != nil {
		if errors.Is(err, tracker.ErrDuplicateName) {
			return fmt.Errorf("a habit with the name %q already exists, please choose another name", c.Name)
		}
		return err
	}

	fmt.Println("Successfully created the habit with details:")
	fmt.Print(FormatHabitTable([]models.Habit{h}))
	return nil
}

type HabitUpdateCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Failed bool   `help:"Record the window as failed instead of successful."`
	Time   int    `help:"Time in minutes; 0 uses the habit's default time." default:"0"`
	Date   string `help:"Change date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitUpdateCmd) Run(ctx *Context) error {
	if err := validation.Range(0, constants.MaxTimeMinutes).Validate(fmt.Sprint(c.Time)); err != nil {
		return fmt.Errorf("invalid time: %w", err)
	}

	changeDate := ctx.Tracker.Today
	if c.Date != "" {
		d := validation.Date()
		if err := d.Validate(c.Date); err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		changeDate = d.Date(c.Date)
	}

	return recordOutcome(ctx, c.Name, !c.Failed, c.Time, changeDate)
}

// recordOutcome resolves a habit by name, reconciles the requested outcome
// and prints the per-status report. Shared by the update command and the
// interactive menu.
func recordOutcome(ctx *Context, name string, completed bool, minutes int, changeDate time.Time) error {
	id, err := ctx.Tracker.Resolve(name)
	if err != nil {
		if errors.Is(err, storageerrors.ErrNotFound) {
			fmt.Printf("The habit %q does not exist!\n", name)
			return nil
		}
		return err
	}

	periodicity, err := ctx.Store.Periodicity(id)
	if err != nil {
		return err
	}

	res, err := ctx.Tracker.Reconcile(id, changeDate, completed, minutes)
	if err != nil {
		return err
	}

	switch res.Status {
	case tracker.StatusTooEarly:
		fmt.Printf("You cannot update the habit %q at the moment!\nThe next time will be on the %q.\n",
			name, utils.FormatDate(res.WindowStart))
		return nil

	case tracker.StatusWithFill:
		if len(res.Missed) == 1 {
			fmt.Println("The habit was broken once since your last update!")
		} else {
			fmt.Printf("The habit was broken %d times!\n", len(res.Missed))
		}
		for i, windowStart := range res.Missed {
			// Window starts are reported as the due dates the user missed.
			missedDue := windowStart.AddDate(0, 0, periodicity)
			fmt.Printf("Detected %d. break of the habit %q. Marking as \"failed\" for due date %q.\n",
				i+1, name, utils.FormatDate(missedDue))
		}
	}

	due, err := ctx.Store.DueDate(id)
	if err != nil {
		return err
	}
	if minutes == 0 && completed {
		if minutes, err = ctx.Store.DefaultTime(id); err != nil {
			return err
		}
	}
	if !completed {
		minutes = 0
	}

	fmt.Printf("Successfully updated the habit %q.\n", name)
	fmt.Printf("Marked it as %q for due date %q.\n",
		OutcomeName(completed), utils.FormatDate(res.WindowStart.AddDate(0, 0, periodicity)))
	fmt.Printf("Added %d minute/s.\n", minutes)
	fmt.Printf("The next routine for this habit needs to be checked until the end of the date %q.\n",
		utils.FormatDate(due))
	return nil
}

type HabitListCmd struct {
	Periodicity string `help:"Only list habits with this cadence." enum:"daily,weekly," default:""`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	var habits []models.Habit
	var err error
	if c.Periodicity != "" {
		habits, err = ctx.Tracker.HabitsByPeriodicity(PeriodicityDays(c.Periodicity))
	} else {
		habits, err = ctx.Tracker.ActiveHabits()
	}
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("There are currently no habits! Please create at-least one first!")
		return nil
	}
	fmt.Print(FormatHabitTable(habits))
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	id, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		if errors.Is(err, storageerrors.ErrNotFound) {
			fmt.Printf("The habit %q does not exist!\n", c.Name)
			return nil
		}
		return err
	}

	if !c.Yes {
		count, err := ctx.Tracker.EventCount(id)
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Delete habit %q and its %d recorded event/s?", c.Name, count))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Removal was aborted.")
			return nil
		}
	}

	if err := ctx.Tracker.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Successfully removed the habit %q.\n", c.Name)
	return nil
}
