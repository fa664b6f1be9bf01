package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/subpair/habit-tracker/internal/models"
	"github.com/subpair/habit-tracker/internal/utils"
)

func TestPeriodicityNames(t *testing.T) {
	if got := PeriodicityName(1); got != "daily" {
		t.Errorf("PeriodicityName(1) = %q", got)
	}
	if got := PeriodicityName(7); got != "weekly" {
		t.Errorf("PeriodicityName(7) = %q", got)
	}
	if got := PeriodicityName(3); got != "every 3 days" {
		t.Errorf("PeriodicityName(3) = %q", got)
	}

	if got := PeriodicityUnit(1); got != "days" {
		t.Errorf("PeriodicityUnit(1) = %q", got)
	}
	if got := PeriodicityUnit(7); got != "weeks" {
		t.Errorf("PeriodicityUnit(7) = %q", got)
	}
}

func TestPeriodicityDays(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"daily", 1},
		{"weekly", 7},
		{"Daily", 1},
		{" WEEKLY ", 7},
		{"monthly", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := PeriodicityDays(tt.input); got != tt.want {
			t.Errorf("PeriodicityDays(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestOutcomeName(t *testing.T) {
	if got := OutcomeName(true); got != "successful" {
		t.Errorf("OutcomeName(true) = %q", got)
	}
	if got := OutcomeName(false); got != "failed" {
		t.Errorf("OutcomeName(false) = %q", got)
	}
}

func TestFormatTimeSummary(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 minute/s"},
		{45, "45 minute/s"},
		{60, "60 minute/s"},
		{90, "1.50 hour/s"},
		{1440, "24.00 hour/s"},
		{2880, "2.00 day/s"},
	}
	for _, tt := range tests {
		if got := FormatTimeSummary(tt.minutes); got != tt.want {
			t.Errorf("FormatTimeSummary(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatHabitTable(t *testing.T) {
	habits := []models.Habit{
		{
			Name:        "drink water",
			Description: "two litres",
			Periodicity: 1,
			DefaultTime: 5,
			CreatedDate: utils.Date(2025, time.March, 1),
			NextDueDate: utils.Date(2025, time.March, 2),
		},
		{
			Name:        "clean flat",
			Periodicity: 7,
			CreatedDate: utils.Date(2025, time.March, 1),
			NextDueDate: utils.Date(2025, time.March, 8),
		},
	}

	out := FormatHabitTable(habits)
	for _, want := range []string{"drink water", "two litres", "daily", "clean flat", "weekly", "2025-03-02", "2025-03-08"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, separator and one line per habit.
	if len(lines) != 4 {
		t.Errorf("table has %d lines, want 4", len(lines))
	}
}
