// Package sample seeds a database with five predefined habits and a
// simulated event history, so the analytics have something to chew on
// before the user has tracked anything themselves.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/subpair/habit-tracker/internal/tracker"
	"github.com/subpair/habit-tracker/internal/utils"
)

// Definition describes one simulated habit: its stored properties plus the
// percentage weights steering the random outcome per day.
type Definition struct {
	Name        string
	Description string
	Periodicity int
	DefaultTime int
	// CompletedPct is the chance a recorded day counts as a success.
	CompletedPct int
	// UseTimePct is the chance an explicit time value is recorded instead
	// of falling back to the default.
	UseTimePct int
	// RecordPct is the chance the user records the day at all; skipped days
	// become backfilled failures on the next recorded one.
	RecordPct int
	// MaxMinutes bounds the randomly drawn explicit time value.
	MaxMinutes int
	MinMinutes int
}

// Definitions are the five stock habits, mirroring a plausible month of a
// single user's tracking behaviour.
var Definitions = []Definition{
	{Name: "practice guitar", Description: "for at least 30min", Periodicity: 1, DefaultTime: 30,
		CompletedPct: 50, UseTimePct: 90, RecordPct: 50, MaxMinutes: 240},
	{Name: "sleep 6 hours", Description: "at least 6 hours per day", Periodicity: 1, DefaultTime: 360,
		CompletedPct: 95, UseTimePct: 25, RecordPct: 99, MaxMinutes: 720},
	{Name: "read a book", Description: "every week a little bit", Periodicity: 7, DefaultTime: 0,
		CompletedPct: 30, UseTimePct: 75, RecordPct: 95, MaxMinutes: 120},
	{Name: "do code challenges", Description: "at least 30 min", Periodicity: 1, DefaultTime: 30,
		CompletedPct: 75, UseTimePct: 75, RecordPct: 60, MaxMinutes: 180},
	{Name: "study daily", Description: "without interruptions", Periodicity: 1, DefaultTime: 120,
		CompletedPct: 99, UseTimePct: 95, RecordPct: 99, MinMinutes: 120, MaxMinutes: 480},
}

// Generator replays Definitions against a tracker whose clock it moves day
// by day, producing a history that ends today.
type Generator struct {
	tracker *tracker.Tracker
	rng     *rand.Rand
	days    int
}

func NewGenerator(t *tracker.Tracker, days int, seed int64) *Generator {
	return &Generator{tracker: t, rng: rand.New(rand.NewSource(seed)), days: days}
}

// Run creates the stock habits dated `days` ago and simulates their events
// forward to today. The tracker's clock is restored afterwards.
func (g *Generator) Run() error {
	base := utils.Today()
	defer func() { g.tracker.Today = base }()

	start := base.AddDate(0, 0, -g.days)

	ids := make([]int64, 0, len(Definitions))
	g.tracker.Today = start
	for _, def := range Definitions {
		h, err := g.tracker.Create(def.Name, def.Description, def.Periodicity, def.DefaultTime)
		if err != nil {
			return fmt.Errorf("failed to create sample habit %q: %w", def.Name, err)
		}
		ids = append(ids, h.ID)
	}

	for i, def := range Definitions {
		if err := g.simulate(ids[i], def, start); err != nil {
			return fmt.Errorf("failed to simulate events for %q: %w", def.Name, err)
		}
	}
	return nil
}

func (g *Generator) simulate(habitID int64, def Definition, start time.Time) error {
	for day := 1; day <= g.days; day++ {
		g.tracker.Today = start.AddDate(0, 0, day)

		if !g.chance(def.RecordPct) {
			continue
		}

		completed := g.chance(def.CompletedPct)
		minutes := 0
		if g.chance(def.UseTimePct) {
			minutes = def.MinMinutes + g.rng.Intn(def.MaxMinutes-def.MinMinutes+1)
		}

		res, err := g.tracker.Reconcile(habitID, g.tracker.Today, completed, minutes)
		if err != nil {
			return err
		}
		if res.Status == tracker.StatusTooEarly {
			// Weekly habits are only due every seventh day.
			continue
		}
	}
	return nil
}

func (g *Generator) chance(pct int) bool {
	return g.rng.Intn(100) < pct
}
