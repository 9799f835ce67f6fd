package gamification

import "time"

// dayLayout is the canonical local-day key format.
const dayLayout = "2006-01-02"

// StreakInfo is the derived consecutive-day training streak.
type StreakInfo struct {
	StreakDays           int
	LastWorkoutDateLocal string
}

func parseDay(local string) (time.Time, bool) {
	t, err := time.Parse(dayLayout, local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// isPreviousDay reports whether prev is exactly one calendar day before cur.
func isPreviousDay(prev, cur string) bool {
	p, ok1 := parseDay(prev)
	c, ok2 := parseDay(cur)
	if !ok1 || !ok2 {
		return false
	}
	return c.Sub(p) == 24*time.Hour
}

// ComputeStreak walks workout local-days from most recent backward.
// Multiple workouts on the same day collapse to one; the streak grows only
// while each day is exactly one calendar day before the previous, and the
// walk stops at the first gap. days must be sorted descending.
func ComputeStreak(daysDescending []string) StreakInfo {
	var info StreakInfo
	prevDay := ""
	for _, day := range daysDescending {
		if day == "" {
			continue
		}
		if info.LastWorkoutDateLocal == "" {
			info.LastWorkoutDateLocal = day
			prevDay = day
			info.StreakDays = 1
			continue
		}
		if day == prevDay {
			continue
		}
		if isPreviousDay(day, prevDay) {
			info.StreakDays++
			prevDay = day
			continue
		}
		break
	}
	return info
}

// ProjectStreak projects the streak forward for a candidate workout on
// candidateDay that is not yet part of the history behind info. Same day as
// the last workout leaves the streak unchanged, the next calendar day
// increments it, anything else resets to 1. A user with no history starts at 1.
func ProjectStreak(info StreakInfo, candidateDay string) int {
	if info.LastWorkoutDateLocal == "" {
		return 1
	}
	switch {
	case candidateDay == info.LastWorkoutDateLocal:
		if info.StreakDays > 0 {
			return info.StreakDays
		}
		return 1
	case isPreviousDay(info.LastWorkoutDateLocal, candidateDay):
		return info.StreakDays + 1
	default:
		return 1
	}
}
