package gamification

import (
	"fmt"
	"time"
)

// SeasonWeeks is the length of a competitive season in ISO weeks.
const SeasonWeeks = 8

// SeasonIDForDay returns the season id for a local-day key, e.g. "2024_S1".
// Seasons are 8-ISO-week blocks; the ISO year/week of the day (week of its
// Thursday) decide the block, so days around New Year can belong to the
// adjacent ISO year's first season.
func SeasonIDForDay(dateLocal string) string {
	t, ok := parseDay(dateLocal)
	if !ok {
		return ""
	}
	return SeasonIDForTime(t)
}

// SeasonIDForTime returns the season id for an instant (UTC date is used).
func SeasonIDForTime(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d_S%d", year, (week-1)/SeasonWeeks+1)
}

// CurrentSeasonID returns the season id for today (UTC).
func CurrentSeasonID() string {
	return SeasonIDForTime(time.Now())
}

// WeekIDForDay returns the ISO week id ("2024-W7") for a local-day key,
// used to count distinct active weeks. Empty for an unparseable day.
func WeekIDForDay(dateLocal string) string {
	t, ok := parseDay(dateLocal)
	if !ok {
		return ""
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%d", year, week)
}
