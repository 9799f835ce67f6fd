package gamification

import (
	"testing"
	"time"
)

// TestSeasonIDForDay verifies the 8-ISO-week season blocks, including the
// ISO-year edges around New Year.
func TestSeasonIDForDay(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2024-01-01", "2024_S1"}, // ISO week 1
		{"2024-02-20", "2024_S1"}, // ISO week 8, last week of S1
		{"2024-02-26", "2024_S2"}, // ISO week 9
		{"2024-04-22", "2024_S3"}, // ISO week 17
		{"2024-12-31", "2025_S1"}, // ISO week 1 of 2025
		{"2023-01-01", "2022_S7"}, // ISO week 52 of 2022
	}
	for _, tc := range cases {
		if got := SeasonIDForDay(tc.day); got != tc.want {
			t.Errorf("SeasonIDForDay(%q) = %q, want %q", tc.day, got, tc.want)
		}
	}
}

// TestSeasonIDForDay_Invalid verifies an unparseable day yields an empty id.
func TestSeasonIDForDay_Invalid(t *testing.T) {
	if got := SeasonIDForDay("not-a-day"); got != "" {
		t.Errorf("SeasonIDForDay = %q, want empty", got)
	}
}

// TestSeasonIDForTime_UsesUTC verifies instants are bucketed by their UTC
// date.
func TestSeasonIDForTime_UsesUTC(t *testing.T) {
	loc := time.FixedZone("plus12", 12*3600)
	// 2024-12-31 08:00 +12 is 2024-12-30 20:00 UTC, still ISO week 1 of 2025.
	instant := time.Date(2024, 12, 31, 8, 0, 0, 0, loc)
	if got := SeasonIDForTime(instant); got != "2025_S1" {
		t.Errorf("SeasonIDForTime = %q, want 2025_S1", got)
	}
}

// TestWeekIDForDay verifies the ISO week id used for active-week counting.
func TestWeekIDForDay(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2024-02-12", "2024-W7"},
		{"2024-12-31", "2025-W1"},
		{"bogus", ""},
	}
	for _, tc := range cases {
		if got := WeekIDForDay(tc.day); got != tc.want {
			t.Errorf("WeekIDForDay(%q) = %q, want %q", tc.day, got, tc.want)
		}
	}
}
