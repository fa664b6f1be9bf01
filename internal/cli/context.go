package cli

import (
	"github.com/subpair/habit-tracker/internal/storage"
	"github.com/subpair/habit-tracker/internal/tracker"
)

// Context is handed to every kong command. It carries the open store and
// the tracker built on top of it.
type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
}
