package service

import (
	"context"
	"testing"

	"gymbuddy/app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestGetRank_MapsLifetimeXP verifies the rank endpoint maps stored lifetime
// XP onto the ladder and recomputes the season window.
func TestGetRank_MapsLifetimeXP(t *testing.T) {
	users := newFakeUserRepo()
	workouts := newFakeWorkoutRepo()
	achievements := newFakeAchievementRepo()
	ctx := context.Background()

	userID, _ := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com"})
	users.users[userID].LifetimeXP = 1500

	svc := NewRankService(workouts, users, achievements)
	status, err := svc.GetRank(ctx, userID)
	if err != nil {
		t.Fatalf("GetRank: %v", err)
	}

	if status.Rank.Key != "grinder" {
		t.Errorf("Rank.Key = %q, want grinder", status.Rank.Key)
	}
	if status.SeasonID == "" {
		t.Error("SeasonID is empty, want current season")
	}
	if status.SeasonXP != 0 {
		t.Errorf("SeasonXP = %d, want 0 with no workouts this season", status.SeasonXP)
	}
}

// TestFriendsSeasonLeaderboard verifies ordering by season XP and the
// placement achievement unlocks for the top entries.
func TestFriendsSeasonLeaderboard(t *testing.T) {
	users := newFakeUserRepo()
	workouts := newFakeWorkoutRepo()
	achievements := newFakeAchievementRepo()
	ctx := context.Background()

	meID, _ := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com"})
	topID, _ := users.Create(ctx, &domain.User{Name: "Kim", Email: "kim@example.com"})
	midID, _ := users.Create(ctx, &domain.User{Name: "Sam", Email: "sam@example.com"})

	users.users[meID].Friends = []primitive.ObjectID{topID, midID}
	users.users[topID].SeasonXP = 900
	users.users[midID].SeasonXP = 400

	svc := NewRankService(workouts, users, achievements)
	seasonID, entries, err := svc.FriendsSeasonLeaderboard(ctx, meID)
	if err != nil {
		t.Fatalf("FriendsSeasonLeaderboard: %v", err)
	}

	if seasonID == "" {
		t.Error("seasonID is empty")
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].UserID != topID || entries[1].UserID != midID || entries[2].UserID != meID {
		t.Errorf("order = %v, %v, %v; want Kim, Sam, Ada", entries[0].Name, entries[1].Name, entries[2].Name)
	}

	topUnlocks, _ := achievements.GetByUser(ctx, topID)
	if !hasUnlock(topUnlocks, "season_top_1_friends") {
		t.Error("first place missing season_top_1_friends")
	}
	meUnlocks, _ := achievements.GetByUser(ctx, meID)
	if hasUnlock(meUnlocks, "season_top_1_friends") {
		t.Error("third place wrongly earned season_top_1_friends")
	}
	if !hasUnlock(meUnlocks, "season_top_3_friends") {
		t.Error("third place missing season_top_3_friends")
	}
}

func hasUnlock(unlocks []domain.UserAchievement, key string) bool {
	for _, u := range unlocks {
		if u.Key == key {
			return true
		}
	}
	return false
}
