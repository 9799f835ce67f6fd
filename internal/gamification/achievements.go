package gamification

import "gymbuddy/app/internal/domain"

// AchievementsCatalog is the fixed, versioned achievement catalog.
var AchievementsCatalog = []domain.Achievement{
	{Key: "streak_3", Name: "Streak 3", Category: domain.CategoryStreak, Description: "Log workouts on 3 consecutive days."},
	{Key: "streak_7", Name: "Streak 7", Category: domain.CategoryStreak, Description: "Log workouts on 7 consecutive days."},
	{Key: "streak_14", Name: "Streak 14", Category: domain.CategoryStreak, Description: "Log workouts on 14 consecutive days."},
	{Key: "streak_30", Name: "Streak 30", Category: domain.CategoryStreak, Description: "Log workouts on 30 consecutive days."},
	{Key: "streak_100", Name: "Streak 100", Category: domain.CategoryStreak, Description: "Log workouts on 100 consecutive days."},
	{Key: "workouts_10", Name: "Workouts 10", Category: domain.CategoryWorkouts, Description: "Log 10 workouts in total."},
	{Key: "workouts_25", Name: "Workouts 25", Category: domain.CategoryWorkouts, Description: "Log 25 workouts in total."},
	{Key: "workouts_50", Name: "Workouts 50", Category: domain.CategoryWorkouts, Description: "Log 50 workouts in total."},
	{Key: "workouts_100", Name: "Workouts 100", Category: domain.CategoryWorkouts, Description: "Log 100 workouts in total."},
	{Key: "workouts_250", Name: "Workouts 250", Category: domain.CategoryWorkouts, Description: "Log 250 workouts in total."},
	{Key: "workouts_500", Name: "Workouts 500", Category: domain.CategoryWorkouts, Description: "Log 500 workouts in total."},
	{Key: "prs_10", Name: "PRs 10", Category: domain.CategoryPRs, Description: "Reach 10 new personal records."},
	{Key: "prs_25", Name: "PRs 25", Category: domain.CategoryPRs, Description: "Reach 25 new personal records."},
	{Key: "prs_50", Name: "PRs 50", Category: domain.CategoryPRs, Description: "Reach 50 new personal records."},
	{Key: "prs_100", Name: "PRs 100", Category: domain.CategoryPRs, Description: "Reach 100 new personal records."},
	{Key: "prs_250", Name: "PRs 250", Category: domain.CategoryPRs, Description: "Reach 250 new personal records."},
	{Key: "friends_1", Name: "Friends 1", Category: domain.CategorySocial, Description: "Confirm 1 friendship."},
	{Key: "friends_5", Name: "Friends 5", Category: domain.CategorySocial, Description: "Confirm 5 friendships."},
	{Key: "friends_10", Name: "Friends 10", Category: domain.CategorySocial, Description: "Confirm 10 friendships."},
	{Key: "friends_25", Name: "Friends 25", Category: domain.CategorySocial, Description: "Confirm 25 friendships."},
	{Key: "train_with_buddy_5", Name: "Buddy Sessions 5", Category: domain.CategorySocial, Description: "Log 5 workouts with a buddy."},
	{Key: "train_with_buddy_25", Name: "Buddy Sessions 25", Category: domain.CategorySocial, Description: "Log 25 workouts with a buddy."},
	{Key: "train_with_buddy_100", Name: "Buddy Sessions 100", Category: domain.CategorySocial, Description: "Log 100 workouts with a buddy."},
	{Key: "weeks_active_4", Name: "Weeks Active 4", Category: domain.CategoryConsistency, Description: "At least 1 workout per week in 4 weeks."},
	{Key: "weeks_active_12", Name: "Weeks Active 12", Category: domain.CategoryConsistency, Description: "At least 1 workout per week in 12 weeks."},
	{Key: "weeks_active_24", Name: "Weeks Active 24", Category: domain.CategoryConsistency, Description: "At least 1 workout per week in 24 weeks."},
	{Key: "season_top_10_friends", Name: "Season Top 10", Category: domain.CategorySeason, Description: "Top 10 of the friends season leaderboard."},
	{Key: "season_top_3_friends", Name: "Season Top 3", Category: domain.CategorySeason, Description: "Top 3 of the friends season leaderboard."},
	{Key: "season_top_1_friends", Name: "Season Winner", Category: domain.CategorySeason, Description: "First place on the friends season leaderboard."},
}

type thresholdRule struct {
	key  string
	need int
	stat func(stats domain.UserStats, friendCount int) int
}

var thresholdRules = []thresholdRule{
	{"streak_3", 3, func(s domain.UserStats, _ int) int { return s.StreakDays }},
	{"streak_7", 7, func(s domain.UserStats, _ int) int { return s.StreakDays }},
	{"streak_14", 14, func(s domain.UserStats, _ int) int { return s.StreakDays }},
	{"streak_30", 30, func(s domain.UserStats, _ int) int { return s.StreakDays }},
	{"streak_100", 100, func(s domain.UserStats, _ int) int { return s.StreakDays }},
	{"workouts_10", 10, func(s domain.UserStats, _ int) int { return s.TotalWorkouts }},
	{"workouts_25", 25, func(s domain.UserStats, _ int) int { return s.TotalWorkouts }},
	{"workouts_50", 50, func(s domain.UserStats, _ int) int { return s.TotalWorkouts }},
	{"workouts_100", 100, func(s domain.UserStats, _ int) int { return s.TotalWorkouts }},
	{"workouts_250", 250, func(s domain.UserStats, _ int) int { return s.TotalWorkouts }},
	{"workouts_500", 500, func(s domain.UserStats, _ int) int { return s.TotalWorkouts }},
	{"prs_10", 10, func(s domain.UserStats, _ int) int { return s.PRTotal }},
	{"prs_25", 25, func(s domain.UserStats, _ int) int { return s.PRTotal }},
	{"prs_50", 50, func(s domain.UserStats, _ int) int { return s.PRTotal }},
	{"prs_100", 100, func(s domain.UserStats, _ int) int { return s.PRTotal }},
	{"prs_250", 250, func(s domain.UserStats, _ int) int { return s.PRTotal }},
	{"train_with_buddy_5", 5, func(s domain.UserStats, _ int) int { return s.BuddyWorkouts }},
	{"train_with_buddy_25", 25, func(s domain.UserStats, _ int) int { return s.BuddyWorkouts }},
	{"train_with_buddy_100", 100, func(s domain.UserStats, _ int) int { return s.BuddyWorkouts }},
	{"weeks_active_4", 4, func(s domain.UserStats, _ int) int { return s.WeeksActiveCount }},
	{"weeks_active_12", 12, func(s domain.UserStats, _ int) int { return s.WeeksActiveCount }},
	{"weeks_active_24", 24, func(s domain.UserStats, _ int) int { return s.WeeksActiveCount }},
	{"friends_1", 1, func(_ domain.UserStats, f int) int { return f }},
	{"friends_5", 5, func(_ domain.UserStats, f int) int { return f }},
	{"friends_10", 10, func(_ domain.UserStats, f int) int { return f }},
	{"friends_25", 25, func(_ domain.UserStats, f int) int { return f }},
}

// SatisfiedKeys evaluates every threshold rule against the aggregate stats
// and the friend count, returning the keys whose thresholds are met. The
// caller unlocks them idempotently; already-unlocked keys are harmless here.
func SatisfiedKeys(stats domain.UserStats, friendCount int) []string {
	var keys []string
	for _, r := range thresholdRules {
		if r.stat(stats, friendCount) >= r.need {
			keys = append(keys, r.key)
		}
	}
	return keys
}

// PlacementKeys returns the season-placement achievement keys earned by a
// 1-based leaderboard placement.
func PlacementKeys(placement int) []string {
	var keys []string
	if placement <= 1 {
		keys = append(keys, "season_top_1_friends")
	}
	if placement <= 3 {
		keys = append(keys, "season_top_3_friends")
	}
	if placement <= 10 {
		keys = append(keys, "season_top_10_friends")
	}
	return keys
}
