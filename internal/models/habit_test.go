package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindowStart(t *testing.T) {
	daily := Habit{Periodicity: 1, NextDueDate: date(2025, time.March, 2)}
	if got, want := daily.WindowStart(), date(2025, time.March, 1); !got.Equal(want) {
		t.Errorf("daily window start = %v, want %v", got, want)
	}

	weekly := Habit{Periodicity: 7, NextDueDate: date(2025, time.March, 8)}
	if got, want := weekly.WindowStart(), date(2025, time.March, 1); !got.Equal(want) {
		t.Errorf("weekly window start = %v, want %v", got, want)
	}
}
