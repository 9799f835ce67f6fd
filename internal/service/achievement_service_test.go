package service

import (
	"context"
	"testing"

	"gymbuddy/app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUnlockFromStats_Idempotent verifies that evaluating the same stats
// twice unlocks each satisfied key exactly once.
func TestUnlockFromStats_Idempotent(t *testing.T) {
	repo := newFakeAchievementRepo()
	svc := NewAchievementService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	stats := domain.UserStats{TotalWorkouts: 10, StreakDays: 3}

	first, err := svc.UnlockFromStats(ctx, userID, stats, 0)
	if err != nil {
		t.Fatalf("first UnlockFromStats: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first unlock = %v, want workouts_10 and streak_3", first)
	}

	second, err := svc.UnlockFromStats(ctx, userID, stats, 0)
	if err != nil {
		t.Fatalf("second UnlockFromStats: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second unlock = %v, want none", second)
	}
}

// TestGetForUser_JoinsCatalog verifies unlocks are joined with their catalog
// entries and stale keys are dropped.
func TestGetForUser_JoinsCatalog(t *testing.T) {
	repo := newFakeAchievementRepo()
	svc := NewAchievementService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if _, err := repo.UnlockIfAbsent(ctx, userID, []string{"workouts_10", "retired_key"}); err != nil {
		t.Fatalf("seed unlocks: %v", err)
	}

	catalog, unlocked, err := svc.GetForUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("catalog is empty")
	}
	if len(unlocked) != 1 {
		t.Fatalf("unlocked = %d entries, want 1 (retired key dropped)", len(unlocked))
	}
	if unlocked[0].Key != "workouts_10" || unlocked[0].Name == "" {
		t.Errorf("unlocked[0] = %+v, want joined workouts_10 entry", unlocked[0])
	}
}
