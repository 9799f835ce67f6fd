package gamification

import (
	"testing"

	"gymbuddy/app/internal/domain"
)

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// TestSatisfiedKeys_Thresholds verifies each rule family fires at its
// threshold and not below it.
func TestSatisfiedKeys_Thresholds(t *testing.T) {
	stats := domain.UserStats{
		TotalWorkouts:    25,
		PRTotal:          10,
		BuddyWorkouts:    4,
		WeeksActiveCount: 12,
		StreakDays:       7,
	}
	keys := SatisfiedKeys(stats, 5)

	for _, want := range []string{
		"workouts_10", "workouts_25",
		"prs_10",
		"streak_3", "streak_7",
		"weeks_active_4", "weeks_active_12",
		"friends_1", "friends_5",
	} {
		if !containsKey(keys, want) {
			t.Errorf("missing key %q in %v", want, keys)
		}
	}
	for _, not := range []string{
		"workouts_50", "prs_25", "streak_14",
		"train_with_buddy_5", "weeks_active_24", "friends_10",
	} {
		if containsKey(keys, not) {
			t.Errorf("unexpected key %q in %v", not, keys)
		}
	}
}

// TestSatisfiedKeys_ZeroStats verifies a new user satisfies nothing.
func TestSatisfiedKeys_ZeroStats(t *testing.T) {
	if keys := SatisfiedKeys(domain.UserStats{}, 0); len(keys) != 0 {
		t.Errorf("SatisfiedKeys = %v, want none", keys)
	}
}

// TestSatisfiedKeys_SeasonKeysNeverFromStats verifies placement achievements
// are never produced by the threshold rules.
func TestSatisfiedKeys_SeasonKeysNeverFromStats(t *testing.T) {
	stats := domain.UserStats{TotalWorkouts: 1000, PRTotal: 1000, StreakDays: 365, BuddyWorkouts: 1000, WeeksActiveCount: 100}
	keys := SatisfiedKeys(stats, 100)
	for _, k := range keys {
		if k == "season_top_1_friends" || k == "season_top_3_friends" || k == "season_top_10_friends" {
			t.Errorf("placement key %q produced by threshold rules", k)
		}
	}
}

// TestPlacementKeys verifies the placement tiers stack: first place earns all
// three, fourth place only top-10, eleventh nothing.
func TestPlacementKeys(t *testing.T) {
	cases := []struct {
		placement int
		want      int
	}{
		{1, 3},
		{2, 2},
		{3, 2},
		{4, 1},
		{10, 1},
		{11, 0},
	}
	for _, tc := range cases {
		if got := PlacementKeys(tc.placement); len(got) != tc.want {
			t.Errorf("PlacementKeys(%d) = %v, want %d keys", tc.placement, got, tc.want)
		}
	}
	if keys := PlacementKeys(1); !containsKey(keys, "season_top_1_friends") {
		t.Errorf("PlacementKeys(1) = %v, missing season_top_1_friends", keys)
	}
}

// TestThresholdRulesMatchCatalog verifies every threshold rule key exists in
// the catalog, so unlocks always join to a catalog entry.
func TestThresholdRulesMatchCatalog(t *testing.T) {
	byKey := map[string]bool{}
	for _, a := range AchievementsCatalog {
		byKey[a.Key] = true
	}
	for _, r := range thresholdRules {
		if !byKey[r.key] {
			t.Errorf("rule key %q not in catalog", r.key)
		}
	}
}
