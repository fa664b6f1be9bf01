package cli

import (
	"fmt"
	"time"

	"github.com/subpair/habit-tracker/internal/logger"
	"github.com/subpair/habit-tracker/internal/sample"
	"github.com/subpair/habit-tracker/internal/storage/sqlite"
	"github.com/subpair/habit-tracker/internal/tracker"
)

// SeedCmd builds a demo database with five predefined habits and a
// simulated event history, kept separate from the user's own data.
type SeedCmd struct {
	File string `help:"Path of the database to seed." default:"sample.db"`
	Days int    `help:"How many days of history to simulate." default:"31"`
	Seed int64  `help:"Random seed for the simulation; 0 draws one from the clock." default:"0"`
}

func (c *SeedCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	store := sqlite.NewStore(c.File)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to initialize sample database: %w", err)
	}
	defer store.Close()

	t := tracker.New(store)
	gen := sample.NewGenerator(t, c.Days, c.Seed)

	fmt.Printf("Generating %d days of sample data for %d habits...\n", c.Days, len(sample.Definitions))
	if err := gen.Run(); err != nil {
		return err
	}

	logger.Info("sample data generated", "file", c.File, "days", c.Days, "seed", c.Seed)
	fmt.Printf("Successfully seeded %s.\n", c.File)
	fmt.Printf("Explore it with: habits --db %s menu\n", c.File)
	return nil
}
