// Package gamification holds the pure engine behind the workout ledger:
// volume and PR metrics, streaks, XP awards, seasons, ranks, achievement
// rules and the full-replay stats recompute. Nothing here touches storage.
package gamification

import "gymbuddy/app/internal/domain"

// MaxPREventsPerWorkout caps how many PR events a single workout may record.
// The cap limits the XP bonus, not the best-weight table.
const MaxPREventsPerWorkout = 2

// Metrics is the result of evaluating one workout's exercises against the
// user's pre-workout best-weight table.
type Metrics struct {
	TotalVolume float64
	PREvents    []domain.PREvent
	// BestWeightByExercise is the merged table after the workout: the true
	// per-exercise maximum, unaffected by the PR event cap.
	BestWeightByExercise map[string]float64
}

// ComputeMetrics computes total volume, PR events and the updated best-weight
// table for one workout. Volume sums reps*weight over every set, warm-ups
// included. PR detection walks sets in input order against a running best
// seeded from bestBefore: a set whose weight strictly exceeds the running
// best records an event (until the cap) and raises the running best either
// way, so a later set of the same exercise must beat the earlier one, not
// the pre-workout value.
func ComputeMetrics(exercises []domain.ExerciseEntry, bestBefore map[string]float64) Metrics {
	running := make(map[string]float64, len(bestBefore))
	for k, v := range bestBefore {
		running[k] = v
	}

	var totalVolume float64
	var prEvents []domain.PREvent

	for _, ex := range exercises {
		if ex.ExerciseKey == "" {
			continue
		}
		for _, set := range ex.Sets {
			weight := set.Weight
			reps := set.Reps
			if weight > 0 && reps > 0 {
				totalVolume += weight * float64(reps)
			}
			if weight > running[ex.ExerciseKey] {
				if len(prEvents) < MaxPREventsPerWorkout {
					prEvents = append(prEvents, domain.PREvent{
						ExerciseKey: ex.ExerciseKey,
						Name:        ex.Name,
						Weight:      weight,
					})
				}
				running[ex.ExerciseKey] = weight
			}
		}
	}

	merged := make(map[string]float64, len(running))
	for k, v := range running {
		merged[k] = v
		if prev, ok := bestBefore[k]; ok && prev > v {
			merged[k] = prev
		}
	}

	return Metrics{TotalVolume: totalVolume, PREvents: prEvents, BestWeightByExercise: merged}
}
