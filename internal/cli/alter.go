package cli

import (
	"errors"
	"fmt"

	"github.com/subpair/habit-tracker/internal/constants"
	storageerrors "github.com/subpair/habit-tracker/internal/storage"
	"github.com/subpair/habit-tracker/internal/tracker"
	"github.com/subpair/habit-tracker/internal/utils"
	"github.com/subpair/habit-tracker/internal/validation"
)

// HabitAlterCmd groups the correction paths: habit details and recorded
// task records.
type HabitAlterCmd struct {
	Name        AlterNameCmd        `cmd:"" help:"Rename a habit."`
	Description AlterDescriptionCmd `cmd:"" help:"Change a habit's description."`
	Time        AlterTimeCmd        `cmd:"" help:"Change a habit's default time."`
	Task        AlterTaskCmd        `cmd:"" help:"Correct a recorded event."`
}

func resolveOrReport(ctx *Context, name string) (int64, bool, error) {
	id, err := ctx.Tracker.Resolve(name)
	if err != nil {
		if errors.Is(err, storageerrors.ErrNotFound) {
			fmt.Printf("The habit %q does not exist!\n", name)
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

type AlterNameCmd struct {
	Name    string `arg:"" help:"Current habit name."`
	NewName string `arg:"" help:"New habit name."`
}

func (c *AlterNameCmd) Run(ctx *Context) error {
	if err := validation.MaxLength(constants.MaxNameLength).Validate(c.NewName); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	id, ok, err := resolveOrReport(ctx, c.Name)
	if err != nil || !ok {
		return err
	}

	if err := ctx.Tracker.AlterName(id, c.NewName); err != nil {
		if errors.Is(err, tracker.ErrDuplicateName) {
			fmt.Println("There is already a habit with this name!\nPlease choose another name!")
			return nil
		}
		return err
	}
	fmt.Printf("Successfully changed the name of habit %q to %q.\n", c.Name, c.NewName)
	return nil
}

type AlterDescriptionCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `arg:"" help:"New description."`
}

func (c *AlterDescriptionCmd) Run(ctx *Context) error {
	if err := validation.MaxLength(constants.MaxDescriptionLength).Validate(c.Description); err != nil {
		return fmt.Errorf("invalid description: %w", err)
	}
	id, ok, err := resolveOrReport(ctx, c.Name)
	if err != nil || !ok {
		return err
	}

	if err := ctx.Tracker.AlterDescription(id, c.Description); err != nil {
		return err
	}
	fmt.Printf("Successfully changed the description of habit %q to %q.\n", c.Name, c.Description)
	return nil
}

type AlterTimeCmd struct {
	Name    string `arg:"" help:"Habit name."`
	Minutes int    `arg:"" help:"New default time in minutes."`
}

func (c *AlterTimeCmd) Run(ctx *Context) error {
	if err := validation.Range(0, constants.MaxTimeMinutes).Validate(fmt.Sprint(c.Minutes)); err != nil {
		return fmt.Errorf("invalid time: %w", err)
	}
	id, ok, err := resolveOrReport(ctx, c.Name)
	if err != nil || !ok {
		return err
	}

	if err := ctx.Tracker.AlterDefaultTime(id, c.Minutes); err != nil {
		return err
	}
	fmt.Printf("Successfully changed the default time of habit %q to %d minute/s.\n", c.Name, c.Minutes)
	return nil
}

type AlterTaskCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Date      string `arg:"" help:"The window's reference date (YYYY-MM-DD)."`
	Completed *bool  `help:"Rewrite the completion status."`
	Time      *int   `help:"Rewrite the recorded minutes."`
}

func (c *AlterTaskCmd) Run(ctx *Context) error {
	dateRule := validation.Date()
	if err := dateRule.Validate(c.Date); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	if c.Completed == nil && c.Time == nil {
		return fmt.Errorf("nothing to alter: pass --completed and/or --time")
	}
	if c.Time != nil {
		if err := validation.Range(0, constants.MaxTimeMinutes).Validate(fmt.Sprint(*c.Time)); err != nil {
			return fmt.Errorf("invalid time: %w", err)
		}
	}

	id, ok, err := resolveOrReport(ctx, c.Name)
	if err != nil || !ok {
		return err
	}

	event, err := ctx.Tracker.EventForWindow(id, dateRule.Date(c.Date))
	if err != nil {
		if errors.Is(err, storageerrors.ErrNotFound) {
			fmt.Println("There was no record found for this date!\nPlease keep in mind that the next periodicity date is a due date and is therefore most times 1 periodicity ahead!")
			return nil
		}
		return err
	}

	fmt.Printf("There was a task found for the date %s.\nIt was marked as %s and a time of %d minute/s was recorded.\n",
		utils.FormatDate(event.PeriodicityDate), OutcomeName(event.Completed), event.Time)

	if c.Completed != nil {
		if err := ctx.Tracker.AlterEventCompletion(event.ID, *c.Completed); err != nil {
			return err
		}
		fmt.Printf("Successfully changed the completion value of habit %q for the date %s to %q.\n",
			c.Name, utils.FormatDate(event.PeriodicityDate), OutcomeName(*c.Completed))
	}
	if c.Time != nil && (c.Completed == nil || *c.Completed) {
		if err := ctx.Tracker.AlterEventTime(event.ID, *c.Time); err != nil {
			return err
		}
		fmt.Printf("Successfully changed the time value of habit %q for the date %s to %d minute/s.\n",
			c.Name, utils.FormatDate(event.PeriodicityDate), *c.Time)
	}
	return nil
}
