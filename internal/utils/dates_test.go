package utils

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	noisy := time.Date(2025, time.June, 15, 23, 59, 58, 123, time.UTC)
	got := Normalize(noisy)
	if want := Date(2025, time.June, 15); !got.Equal(want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2022-01-31")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if want := Date(2022, time.January, 31); !d.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", d, want)
	}
	if got := FormatDate(d); got != "2022-01-31" {
		t.Errorf("FormatDate = %q, want %q", got, "2022-01-31")
	}

	if _, err := ParseDate("2022-02-30"); err == nil {
		t.Error("expected error for impossible date")
	}
	if _, err := ParseDate("31.01.2022"); err == nil {
		t.Error("expected error for wrong format")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", Date(2025, time.May, 1), Date(2025, time.May, 1), 0},
		{"one day", Date(2025, time.May, 1), Date(2025, time.May, 2), 1},
		{"one week", Date(2025, time.May, 1), Date(2025, time.May, 8), 7},
		{"negative", Date(2025, time.May, 8), Date(2025, time.May, 1), -7},
		{"across month end", Date(2025, time.January, 30), Date(2025, time.February, 2), 3},
		{"across year end", Date(2024, time.December, 30), Date(2025, time.January, 2), 3},
		{"ignores time of day", Date(2025, time.May, 1), time.Date(2025, time.May, 2, 23, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2022-01-31") {
		t.Error("well-formed date rejected")
	}
	if ValidDate("2022-13-01") {
		t.Error("impossible month accepted")
	}
	if ValidDate("") {
		t.Error("empty string accepted")
	}
}
