package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/subpair/habit-tracker/internal/constants"
	"github.com/subpair/habit-tracker/internal/logger"
	"github.com/subpair/habit-tracker/internal/models"
	storageerrors "github.com/subpair/habit-tracker/internal/storage"
	"github.com/subpair/habit-tracker/internal/tracker"
	"github.com/subpair/habit-tracker/internal/utils"
	"github.com/subpair/habit-tracker/internal/validation"
)

// errExitMenu unwinds the menu loop when the user picks Exit.
var errExitMenu = errors.New("exit menu")

// MenuItem binds one selectable menu entry to its handler. The menu is an
// explicit value built once and passed into the loop; handlers never reach
// back into the table.
type MenuItem struct {
	Label string
	Run   func(ctx *Context) error
}

// MenuCmd runs the interactive shell: a main menu over the habit dialogs
// and an analyse submenu over the reporting views.
type MenuCmd struct{}

func (c *MenuCmd) Run(ctx *Context) error {
	return runMenu(ctx, "main", mainMenu())
}

func mainMenu() []MenuItem {
	return []MenuItem{
		{Label: "Create a habit", Run: menuCreate},
		{Label: "Update a habit", Run: menuUpdate},
		{Label: "Analyse habits", Run: func(ctx *Context) error {
			err := runMenu(ctx, "analyse", analyseMenu())
			if errors.Is(err, errExitMenu) {
				return nil
			}
			return err
		}},
		{Label: "Delete a habit", Run: menuDelete},
		{Label: "Alter a habit", Run: menuAlter},
		{Label: "Exit the application", Run: func(*Context) error { return errExitMenu }},
	}
}

func analyseMenu() []MenuItem {
	return []MenuItem{
		{Label: "Show all currently tracked habits", Run: func(ctx *Context) error {
			return (&AnalyseActiveCmd{}).Run(ctx)
		}},
		{Label: "Show all habits with the same periodicity", Run: menuAnalysePeriodicity},
		{Label: "Return the longest run streak of all defined habits", Run: func(ctx *Context) error {
			return (&AnalyseStreakAllCmd{}).Run(ctx)
		}},
		{Label: "Return the longest run streak for a given habit", Run: menuAnalyseStreak},
		{Label: "Return the time invested into a given habit", Run: menuAnalyseTime},
		{Label: "Return to main menu", Run: func(*Context) error { return errExitMenu }},
	}
}

// runMenu loops a selection prompt over the command table until a handler
// asks to exit. Handler failures are reported and logged, never fatal: the
// user stays in the menu.
func runMenu(ctx *Context, name string, items []MenuItem) error {
	for {
		var choice int
		options := make([]huh.Option[int], len(items))
		for i, item := range items {
			options[i] = huh.NewOption(item.Label, i)
		}

		err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("You are in the %s menu. The options are:", name)).
				Options(options...).
				Value(&choice),
		)).Run()
		if err != nil {
			// Ctrl+C inside a prompt leaves the menu cleanly.
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		if err := items[choice].Run(ctx); err != nil {
			if errors.Is(err, errExitMenu) {
				if name == "main" {
					return nil
				}
				return err
			}
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			logger.Error("menu action failed", "menu", name, "action", items[choice].Label, "error", err)
			fmt.Println(dangerStyle.Render(messageError))
		}
	}
}

func menuCreate(ctx *Context) error {
	var name, description, periodicity, timeInput string

	nameRule := validation.MaxLength(constants.MaxNameLength)
	descriptionRule := validation.MaxLength(constants.MaxDescriptionLength)
	timeRule := validation.Range(0, constants.MaxTimeMinutes)

	printTitle("Habit creating dialog")
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Description(fmt.Sprintf("Any text is valid up to %d letters", constants.MaxNameLength)).
			Validate(nameRule.Validate).
			Value(&name),
		huh.NewInput().
			Title("Description").
			Description(fmt.Sprintf("Any text is valid up to %d letters", constants.MaxDescriptionLength)).
			Validate(descriptionRule.Validate).
			Value(&description),
		huh.NewSelect[string]().
			Title("Periodicity").
			Options(huh.NewOption("daily", "daily"), huh.NewOption("weekly", "weekly")).
			Value(&periodicity),
		huh.NewInput().
			Title("Default time").
			Description("Any number up to 1440 is valid. This is optional, if you want to skip this enter 0").
			Validate(timeRule.Validate).
			Value(&timeInput),
	)).Run()
	if err != nil {
		return err
	}

	h, err := ctx.Tracker.Create(name, description, PeriodicityDays(periodicity), timeRule.Int(timeInput))
	if err != nil {
		if errors.Is(err, tracker.ErrDuplicateName) {
			fmt.Printf("A habit with the name %q already exists!\nPlease choose another name!\n", name)
			return nil
		}
		return err
	}

	fmt.Println("Successfully created the habit with details:")
	fmt.Print(FormatHabitTable([]models.Habit{h}))
	return nil
}

func menuUpdate(ctx *Context) error {
	var name, timeInput string
	completed := true

	timeRule := validation.Range(0, constants.MaxTimeMinutes)

	printTitle("Habit update dialog")
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Validate(validation.MaxLength(constants.MaxNameLength).Validate).
			Value(&name),
		huh.NewInput().
			Title("Time").
			Description("Any number up to 1440 is valid. This is optional, if you want to skip this enter 0").
			Validate(timeRule.Validate).
			Value(&timeInput),
		huh.NewConfirm().
			Title("Did you complete this habit?").
			Affirmative("Yes").
			Negative("No").
			Value(&completed),
	)).Run()
	if err != nil {
		return err
	}

	return recordOutcome(ctx, name, completed, timeRule.Int(timeInput), ctx.Tracker.Today)
}

func menuDelete(ctx *Context) error {
	var name string

	printTitle("Habit removal dialog")
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Validate(validation.MaxLength(constants.MaxNameLength).Validate).
			Value(&name),
	)).Run()
	if err != nil {
		return err
	}

	cmd := HabitDeleteCmd{Name: name}
	return cmd.Run(ctx)
}

func menuAlter(ctx *Context) error {
	var name, choice string

	printTitle("Habit alter dialog")
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Validate(validation.MaxLength(constants.MaxNameLength).Validate).
			Value(&name),
		huh.NewSelect[string]().
			Title("What do you want to alter?").
			Options(
				huh.NewOption("name", "name"),
				huh.NewOption("description", "description"),
				huh.NewOption("default time", "default time"),
				huh.NewOption("an existing task record", "task"),
			).
			Value(&choice),
	)).Run()
	if err != nil {
		return err
	}

	switch choice {
	case "name":
		newName, err := promptText("New name", constants.MaxNameLength)
		if err != nil {
			return err
		}
		cmd := AlterNameCmd{Name: name, NewName: newName}
		return cmd.Run(ctx)

	case "description":
		description, err := promptText("New description", constants.MaxDescriptionLength)
		if err != nil {
			return err
		}
		cmd := AlterDescriptionCmd{Name: name, Description: description}
		return cmd.Run(ctx)

	case "default time":
		minutes, err := promptNumber("New default time")
		if err != nil {
			return err
		}
		cmd := AlterTimeCmd{Name: name, Minutes: minutes}
		return cmd.Run(ctx)

	default:
		return menuAlterTask(ctx, name)
	}
}

func menuAlterTask(ctx *Context, name string) error {
	id, ok, err := resolveOrReport(ctx, name)
	if err != nil || !ok {
		return err
	}

	var dateInput string
	dateRule := validation.Date()
	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Date").
			Description("A valid date in the form YYYY-MM-DD (e.g. 2022-01-31)").
			Validate(dateRule.Validate).
			Value(&dateInput),
	)).Run()
	if err != nil {
		return err
	}

	event, err := ctx.Tracker.EventForWindow(id, dateRule.Date(dateInput))
	if err != nil {
		if errors.Is(err, storageerrors.ErrNotFound) {
			fmt.Println("There was no record found for this date!\nPlease keep in mind that the next periodicity date is a due date and is therefore most times 1 periodicity ahead!")
			return nil
		}
		return err
	}

	fmt.Printf("There was a task found for the date %s.\nIt was marked as %s and a time of %d minute/s was recorded.\n",
		utils.FormatDate(event.PeriodicityDate), OutcomeName(event.Completed), event.Time)

	var taskChoice string
	err = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("What do you want to alter?").
			Options(
				huh.NewOption("completion status", "completion"),
				huh.NewOption("the time of the record", "time"),
			).
			Value(&taskChoice),
	)).Run()
	if err != nil {
		return err
	}

	if taskChoice == "completion" {
		completed, err := confirm("Did you complete this habit?")
		if err != nil {
			return err
		}
		if err := ctx.Tracker.AlterEventCompletion(event.ID, completed); err != nil {
			return err
		}
		fmt.Printf("Successfully changed the completion value of habit %q for the date %s to %q.\n",
			name, utils.FormatDate(event.PeriodicityDate), OutcomeName(completed))
		return nil
	}

	minutes, err := promptNumber("New time value")
	if err != nil {
		return err
	}
	if err := ctx.Tracker.AlterEventTime(event.ID, minutes); err != nil {
		return err
	}
	fmt.Printf("Successfully changed the time value of habit %q for the date %s to %d minute/s.\n",
		name, utils.FormatDate(event.PeriodicityDate), minutes)
	return nil
}

func menuAnalysePeriodicity(ctx *Context) error {
	var periodicity string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Periodicity").
			Options(huh.NewOption("daily", "daily"), huh.NewOption("weekly", "weekly")).
			Value(&periodicity),
	)).Run()
	if err != nil {
		return err
	}
	cmd := AnalysePeriodicityCmd{Periodicity: periodicity}
	return cmd.Run(ctx)
}

func menuAnalyseStreak(ctx *Context) error {
	name, err := promptText("Name", constants.MaxNameLength)
	if err != nil {
		return err
	}
	cmd := AnalyseStreakCmd{Name: name}
	return cmd.Run(ctx)
}

func menuAnalyseTime(ctx *Context) error {
	name, err := promptText("Name", constants.MaxNameLength)
	if err != nil {
		return err
	}
	cmd := AnalyseTimeCmd{Name: name}
	return cmd.Run(ctx)
}

func promptText(title string, maxLength int) (string, error) {
	var value string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Validate(validation.MaxLength(maxLength).Validate).
			Value(&value),
	)).Run()
	return value, err
}

func promptNumber(title string) (int, error) {
	var value string
	rule := validation.Range(0, constants.MaxTimeMinutes)
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(fmt.Sprintf("A number between 0 and %d", constants.MaxTimeMinutes)).
			Validate(rule.Validate).
			Value(&value),
	)).Run()
	if err != nil {
		return 0, err
	}
	return rule.Int(value), nil
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).Run()
	return ok, err
}
