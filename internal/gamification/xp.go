package gamification

import "gymbuddy/app/internal/domain"

const (
	xpBase         = 100
	xpPerSet       = 5
	xpBuddyBonus   = 30
	xpWorkoutCap   = 300
	xpDurationCap  = 60
	dailyAwardCap  = 2 // other XP-awarding workouts allowed per local day
	streakBonusLow = 10
	streakBonusTop = 20
)

// XPInput carries everything the XP award depends on. DailyAwardedBefore is
// the number of *other* workouts with XP > 0 on the same local day;
// StreakDaysAfter is the projected streak including this workout.
type XPInput struct {
	Exercises          []domain.ExerciseEntry
	DurationMinutes    int
	WithBuddy          bool
	PREventCount       int
	DailyAwardedBefore int
	StreakDaysAfter    int
}

func setCount(exercises []domain.ExerciseEntry) int {
	n := 0
	for _, ex := range exercises {
		n += len(ex.Sets)
	}
	return n
}

// ComputeXP produces the full XP breakdown for one workout. The raw sum is
// capped at 300; if the user already has two or more XP-awarding workouts on
// the same local day the award is forced to 0. A zero-awarded workout still
// counts for volume and workout totals, and does not count toward later
// daily caps.
func ComputeXP(in XPInput) domain.XPBreakdown {
	b := domain.XPBreakdown{Base: xpBase}

	b.SetBonus = xpPerSet * setCount(in.Exercises)

	dur := in.DurationMinutes
	if dur < 0 {
		dur = 0
	}
	if dur > xpDurationCap {
		dur = xpDurationCap
	}
	b.DurationBonus = dur

	if in.WithBuddy {
		b.BuddyBonus = xpBuddyBonus
	}

	switch {
	case in.StreakDaysAfter >= 8:
		b.StreakBonus = streakBonusTop
	case in.StreakDaysAfter >= 2:
		b.StreakBonus = streakBonusLow
	}

	prs := in.PREventCount
	if prs > MaxPREventsPerWorkout {
		prs = MaxPREventsPerWorkout
	}
	b.PRBonus = 50 * prs

	b.XPRaw = b.Base + b.SetBonus + b.DurationBonus + b.BuddyBonus + b.StreakBonus + b.PRBonus
	b.XPCapped = b.XPRaw
	if b.XPCapped > xpWorkoutCap {
		b.XPCapped = xpWorkoutCap
	}

	b.DailyCapApplied = in.DailyAwardedBefore >= dailyAwardCap
	if b.DailyCapApplied {
		b.XPAwarded = 0
	} else {
		b.XPAwarded = b.XPCapped
	}
	return b
}
