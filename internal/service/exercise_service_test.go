package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gymbuddy/app/internal/catalog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestCreateCustomExercise verifies a valid entry is stored and resolvable
// through the combined catalog.
func TestCreateCustomExercise(t *testing.T) {
	repo := newFakeUserExerciseRepo()
	svc := NewExerciseService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	ex, err := svc.CreateCustomExercise(ctx, userID, "sled_push", "Sled Push", "legs", "sled", false)
	if err != nil {
		t.Fatalf("CreateCustomExercise: %v", err)
	}
	if ex.Key != "sled_push" || ex.Name != "Sled Push" {
		t.Errorf("entry = %+v", ex)
	}

	cat, err := svc.GetCatalog(ctx, userID)
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if _, ok := cat.Resolve("sled_push"); !ok {
		t.Error("custom entry not resolvable through combined catalog")
	}
}

// TestCreateCustomExercise_Validation verifies key/name screening.
func TestCreateCustomExercise_Validation(t *testing.T) {
	svc := NewExerciseService(newFakeUserExerciseRepo())
	ctx := context.Background()
	userID := primitive.NewObjectID()

	cases := []struct {
		key, name string
		want      error
	}{
		{"", "Sled Push", ErrInvalidExercise},
		{"sled_push", "", ErrInvalidExercise},
		{"sled.push", "Sled Push", ErrUnsafeInput},
		{"sled$push", "Sled Push", ErrUnsafeInput},
		{"sled_push", "Sled $ Push", ErrUnsafeInput},
	}
	for _, tc := range cases {
		_, err := svc.CreateCustomExercise(ctx, userID, tc.key, tc.name, "", "", false)
		if !errors.Is(err, tc.want) {
			t.Errorf("(%q, %q) err = %v, want %v", tc.key, tc.name, err, tc.want)
		}
	}
}

// TestCreateCustomExercise_Duplicate verifies duplicate keys are rejected.
func TestCreateCustomExercise_Duplicate(t *testing.T) {
	svc := NewExerciseService(newFakeUserExerciseRepo())
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if _, err := svc.CreateCustomExercise(ctx, userID, "sled_push", "Sled Push", "", "", false); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateCustomExercise(ctx, userID, "sled_push", "Sled Push Again", "", "", false); !errors.Is(err, ErrDuplicateExercise) {
		t.Errorf("err = %v, want ErrDuplicateExercise", err)
	}
}

// TestCreateCustomExercise_CatalogBound verifies the per-user custom entry
// limit.
func TestCreateCustomExercise_CatalogBound(t *testing.T) {
	repo := newFakeUserExerciseRepo()
	svc := NewExerciseService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	for i := 0; i < catalog.MaxCustomExercises; i++ {
		key := fmt.Sprintf("custom_%d", i)
		if _, err := svc.CreateCustomExercise(ctx, userID, key, key, "", "", false); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := svc.CreateCustomExercise(ctx, userID, "one_too_many", "One Too Many", "", "", false); !errors.Is(err, ErrCatalogFull) {
		t.Errorf("err = %v, want ErrCatalogFull", err)
	}
}
