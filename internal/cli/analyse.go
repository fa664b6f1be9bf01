package cli

import (
	"errors"
	"fmt"

	storageerrors "github.com/subpair/habit-tracker/internal/storage"
)

// minStreak is the smallest count reported as a streak. A single success is
// not a streak by this design's convention; it needs at least two
// consecutive successful windows.
const minStreak = 2

// AnalyseCmd groups the reporting subcommands.
type AnalyseCmd struct {
	Active      AnalyseActiveCmd      `cmd:"" help:"Show all currently tracked habits."`
	Periodicity AnalysePeriodicityCmd `cmd:"" help:"Show all habits sharing a cadence."`
	StreakAll   AnalyseStreakAllCmd   `cmd:"" name:"streak-all" help:"Show the longest run streak across all habits."`
	Streak      AnalyseStreakCmd      `cmd:"" help:"Show the longest run streak of one habit."`
	Time        AnalyseTimeCmd        `cmd:"" help:"Show the time invested into a habit."`
}

type AnalyseActiveCmd struct{}

func (c *AnalyseActiveCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.ActiveHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("There are currently no habits! Please create at-least one first!")
		return nil
	}

	fmt.Println("Showing all currently tracked habits:")
	if len(habits) == 1 {
		fmt.Println("There is currently 1 habit:")
	} else {
		fmt.Printf("There are currently %d habits:\n", len(habits))
	}
	fmt.Print(FormatHabitTable(habits))
	return nil
}

type AnalysePeriodicityCmd struct {
	Periodicity string `arg:"" help:"Cadence: daily or weekly." enum:"daily,weekly"`
}

func (c *AnalysePeriodicityCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.HabitsByPeriodicity(PeriodicityDays(c.Periodicity))
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Printf("There are currently no habits with a %s periodicity! Please create one first!\n", c.Periodicity)
		return nil
	}

	fmt.Printf("Showing all currently tracked habits with the same periodicity of %q:\n", c.Periodicity)
	fmt.Print(FormatHabitTable(habits))
	return nil
}

type AnalyseStreakAllCmd struct{}

func (c *AnalyseStreakAllCmd) Run(ctx *Context) error {
	ids, err := ctx.Store.AllHabitIDs()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("There are currently no habits! Please create at-least one first!")
		return nil
	}

	bestID, streak, err := ctx.Tracker.LongestStreakAll()
	if err != nil {
		return err
	}
	if bestID == 0 || streak < minStreak {
		fmt.Println("There is currently no streak ongoing at all!")
		return nil
	}

	habit, err := ctx.Tracker.Habit(bestID)
	if err != nil {
		return err
	}
	fmt.Println("Showing the longest streak of all habits:")
	fmt.Printf("The habit %q is currently your best habit with a run streak of %d %s in a row.\n",
		habit.Name, streak, PeriodicityUnit(habit.Periodicity))
	return nil
}

type AnalyseStreakCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *AnalyseStreakCmd) Run(ctx *Context) error {
	id, ok, err := resolveOrReport(ctx, c.Name)
	if err != nil || !ok {
		return err
	}

	streak, err := ctx.Tracker.LongestStreak(id)
	if err != nil {
		return err
	}
	if streak < minStreak {
		fmt.Printf("The habit %q does not have a streak currently!\n", c.Name)
		return nil
	}

	periodicity, err := ctx.Store.Periodicity(id)
	if err != nil {
		return err
	}
	fmt.Println("Showing the longest streak for given habit:")
	fmt.Printf("The habit %q best run streak is %d consecutive %s in a row.\n",
		c.Name, streak, PeriodicityUnit(periodicity))
	return nil
}

type AnalyseTimeCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *AnalyseTimeCmd) Run(ctx *Context) error {
	id, ok, err := resolveOrReport(ctx, c.Name)
	if err != nil || !ok {
		return err
	}

	total, hasEvents, err := ctx.Tracker.TimeInvested(id)
	if err != nil {
		if errors.Is(err, storageerrors.ErrNotFound) {
			fmt.Printf("The habit %q does not exist!\n", c.Name)
			return nil
		}
		return err
	}

	switch {
	case !hasEvents:
		fmt.Println("There are currently no events for this habit! Please first update this habit at-least once!")
	case total == 0:
		fmt.Printf("There is currently no time tracked for the habit %q!\n", c.Name)
	default:
		fmt.Println("Showing the time summary for given habit:")
		fmt.Printf("You already spent on the habit %q %s.\n", c.Name, FormatTimeSummary(total))
	}
	return nil
}
