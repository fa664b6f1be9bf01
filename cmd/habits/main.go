package main

import (
	"github.com/alecthomas/kong"

	"github.com/subpair/habit-tracker/internal/cli"
	apperrors "github.com/subpair/habit-tracker/internal/errors"
	"github.com/subpair/habit-tracker/internal/logger"
	"github.com/subpair/habit-tracker/internal/storage/sqlite"
	"github.com/subpair/habit-tracker/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Path of the habit database file." default:"main.db"`
	LogDir  string `help:"Directory for log files." default:"."`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize habit storage."`
	Migrate cli.MigrateCmd `cmd:"" help:"Run database migrations."`
	Menu    cli.MenuCmd    `cmd:"" help:"Launch the interactive menu." default:"1"`
	Habit   cli.HabitCmd   `cmd:"" help:"Manage habits and record outcomes."`
	Analyse cli.AnalyseCmd `cmd:"" help:"Analyse tracked habits."`
	Seed    cli.SeedCmd    `cmd:"" help:"Generate a sample database with simulated history."`
}

// selfLoading names the commands that manage the store's lifecycle on their
// own and must not have the database loaded for them.
var selfLoading = map[string]bool{
	"init": true, "migrate": true, "seed": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habits"),
		kong.Description("Habit tracker with due-date reconciliation and streak analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v1.0.0"},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogDir: CLI.LogDir}); err != nil {
		apperrors.Fatal(err)
	}

	store := sqlite.NewStore(CLI.DB)
	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.New(store),
	}

	if ctx.Selected() == nil || !selfLoading[ctx.Selected().Name] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	apperrors.Fatal(ctx.Run(appCtx))
}
