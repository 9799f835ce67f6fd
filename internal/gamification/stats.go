package gamification

import "gymbuddy/app/internal/domain"

// WorkoutPatch carries the recomputed per-workout metrics produced during a
// replay, to be written back so stored workouts stay consistent with the
// derived aggregate.
type WorkoutPatch struct {
	Workout     *domain.Workout
	PREvents    []domain.PREvent
	TotalVolume float64
}

// ReplayResult is the aggregate produced by a full history replay, plus the
// per-workout patches the replay implies.
type ReplayResult struct {
	Stats   domain.UserStats
	Patches []WorkoutPatch
}

// ReplayHistory recomputes the user aggregate from scratch over the full
// workout history in chronological order. The best-weight table is rebuilt
// by the replay rather than patched, which makes the recompute idempotent
// and the designated recovery path after any partial failure. The streak is
// derived separately from the day walk (newest first) by the caller's query;
// here it is recomputed from the same ascending sequence.
func ReplayHistory(ascending []*domain.Workout) ReplayResult {
	var res ReplayResult
	best := map[string]float64{}
	activeWeeks := map[string]struct{}{}

	for _, w := range ascending {
		res.Stats.TotalWorkouts++
		m := ComputeMetrics(w.Exercises, best)
		best = m.BestWeightByExercise
		res.Stats.TotalVolumeLifetime += m.TotalVolume
		res.Stats.PRTotal += len(m.PREvents)
		if w.WithBuddy() {
			res.Stats.BuddyWorkouts++
		}
		if wk := WeekIDForDay(w.DateLocal); wk != "" {
			activeWeeks[wk] = struct{}{}
		}
		res.Patches = append(res.Patches, WorkoutPatch{
			Workout:     w,
			PREvents:    m.PREvents,
			TotalVolume: m.TotalVolume,
		})
	}

	res.Stats.BestWeightByExercise = best
	res.Stats.WeeksActiveCount = len(activeWeeks)

	days := make([]string, 0, len(ascending))
	for i := len(ascending) - 1; i >= 0; i-- {
		days = append(days, ascending[i].DateLocal)
	}
	streak := ComputeStreak(days)
	res.Stats.StreakDays = streak.StreakDays
	res.Stats.LastWorkoutDateLocal = streak.LastWorkoutDateLocal

	return res
}
