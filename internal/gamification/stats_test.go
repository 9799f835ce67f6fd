package gamification

import (
	"testing"

	"gymbuddy/app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func replayWorkout(day string, buddy bool, exercises ...domain.ExerciseEntry) *domain.Workout {
	w := &domain.Workout{DateLocal: day, Exercises: exercises}
	if buddy {
		id := primitive.NewObjectID()
		w.BuddyUserID = &id
	}
	return w
}

// TestReplayHistory_BestTableIsTrueMax verifies the rebuilt best-weight table
// holds the true per-exercise maximum over the whole history.
func TestReplayHistory_BestTableIsTrueMax(t *testing.T) {
	history := []*domain.Workout{
		replayWorkout("2024-03-01", false, entry("bench_press", domain.Set{Reps: 5, Weight: 80})),
		replayWorkout("2024-03-02", false, entry("bench_press", domain.Set{Reps: 5, Weight: 95})),
		replayWorkout("2024-03-03", false, entry("bench_press", domain.Set{Reps: 5, Weight: 90})),
	}
	res := ReplayHistory(history)

	if got := res.Stats.BestWeightByExercise["bench_press"]; got != 95 {
		t.Errorf("best bench_press = %v, want 95", got)
	}
}

// TestReplayHistory_PRTotalAcrossWorkouts verifies PR totals accumulate per
// workout with the per-workout event cap applied.
func TestReplayHistory_PRTotalAcrossWorkouts(t *testing.T) {
	history := []*domain.Workout{
		// three rising sets: only two PR events count
		replayWorkout("2024-03-01", false, entry("back_squat",
			domain.Set{Reps: 5, Weight: 100},
			domain.Set{Reps: 5, Weight: 105},
			domain.Set{Reps: 5, Weight: 110},
		)),
		// one more PR the next day
		replayWorkout("2024-03-02", false, entry("back_squat", domain.Set{Reps: 3, Weight: 120})),
		// no PR: below the true max
		replayWorkout("2024-03-03", false, entry("back_squat", domain.Set{Reps: 5, Weight: 115})),
	}
	res := ReplayHistory(history)

	if res.Stats.PRTotal != 3 {
		t.Errorf("PRTotal = %d, want 3", res.Stats.PRTotal)
	}
	if len(res.Patches) != 3 {
		t.Fatalf("Patches = %d, want 3", len(res.Patches))
	}
	if len(res.Patches[0].PREvents) != 2 || len(res.Patches[1].PREvents) != 1 || len(res.Patches[2].PREvents) != 0 {
		t.Errorf("per-workout PR events = %d/%d/%d, want 2/1/0",
			len(res.Patches[0].PREvents), len(res.Patches[1].PREvents), len(res.Patches[2].PREvents))
	}
}

// TestReplayHistory_Totals verifies workout count, volume, buddy count,
// active weeks and streak over a small history.
func TestReplayHistory_Totals(t *testing.T) {
	history := []*domain.Workout{
		replayWorkout("2024-02-12", true, entry("bench_press", domain.Set{Reps: 10, Weight: 50})),  // week 7
		replayWorkout("2024-02-20", false, entry("bench_press", domain.Set{Reps: 10, Weight: 50})), // week 8
		replayWorkout("2024-02-21", false, entry("bench_press", domain.Set{Reps: 10, Weight: 50})),
	}
	res := ReplayHistory(history)

	if res.Stats.TotalWorkouts != 3 {
		t.Errorf("TotalWorkouts = %d, want 3", res.Stats.TotalWorkouts)
	}
	if res.Stats.TotalVolumeLifetime != 1500 {
		t.Errorf("TotalVolumeLifetime = %v, want 1500", res.Stats.TotalVolumeLifetime)
	}
	if res.Stats.BuddyWorkouts != 1 {
		t.Errorf("BuddyWorkouts = %d, want 1", res.Stats.BuddyWorkouts)
	}
	if res.Stats.WeeksActiveCount != 2 {
		t.Errorf("WeeksActiveCount = %d, want 2", res.Stats.WeeksActiveCount)
	}
	if res.Stats.StreakDays != 2 {
		t.Errorf("StreakDays = %d, want 2", res.Stats.StreakDays)
	}
	if res.Stats.LastWorkoutDateLocal != "2024-02-21" {
		t.Errorf("LastWorkoutDateLocal = %q, want 2024-02-21", res.Stats.LastWorkoutDateLocal)
	}
}

// TestReplayHistory_Idempotent verifies replaying the same history twice
// produces identical aggregates.
func TestReplayHistory_Idempotent(t *testing.T) {
	history := []*domain.Workout{
		replayWorkout("2024-03-01", false, entry("deadlift", domain.Set{Reps: 3, Weight: 150})),
		replayWorkout("2024-03-02", false, entry("deadlift", domain.Set{Reps: 3, Weight: 160})),
	}
	first := ReplayHistory(history)
	second := ReplayHistory(history)

	if first.Stats.PRTotal != second.Stats.PRTotal ||
		first.Stats.TotalVolumeLifetime != second.Stats.TotalVolumeLifetime ||
		first.Stats.BestWeightByExercise["deadlift"] != second.Stats.BestWeightByExercise["deadlift"] {
		t.Errorf("replays differ: %+v vs %+v", first.Stats, second.Stats)
	}
}

// TestReplayHistory_Empty verifies an empty history produces a zero aggregate
// with an initialized best-weight table.
func TestReplayHistory_Empty(t *testing.T) {
	res := ReplayHistory(nil)
	if res.Stats.TotalWorkouts != 0 || len(res.Patches) != 0 {
		t.Errorf("got %+v, want zero aggregate", res.Stats)
	}
	if res.Stats.BestWeightByExercise == nil {
		t.Error("BestWeightByExercise is nil, want empty map")
	}
}
