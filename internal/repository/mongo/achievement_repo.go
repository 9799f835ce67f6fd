package mongo

import (
	"context"
	"time"

	"gymbuddy/app/internal/domain"
	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const achievementCollectionName = "userAchievements"

// mongoAchievementRepository implements repository.AchievementRepository
type mongoAchievementRepository struct {
	collection *mongo.Collection
}

// NewMongoAchievementRepository creates a new achievement repository.
func NewMongoAchievementRepository(db *mongo.Database) repository.AchievementRepository {
	return &mongoAchievementRepository{
		collection: db.Collection(achievementCollectionName),
	}
}

// UnlockIfAbsent upserts each (user, key) pair, setting the unlock timestamp
// only on first insert. Already-unlocked keys match the filter and the
// $setOnInsert becomes a no-op, which makes repeated evaluation idempotent.
// Returns the keys that were newly inserted.
func (r *mongoAchievementRepository) UnlockIfAbsent(ctx context.Context, userID primitive.ObjectID, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	var unlocked []string
	for _, key := range keys {
		filter := bson.M{"userId": userID, "key": key}
		update := bson.M{"$setOnInsert": bson.M{"userId": userID, "key": key, "unlockedAt": now}}
		result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			// A concurrent unlock of the same key trips the unique index;
			// the key is unlocked either way, just not by us.
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return unlocked, mapErr(err)
		}
		if result.UpsertedCount > 0 {
			unlocked = append(unlocked, key)
		}
	}
	return unlocked, nil
}

// GetByUser returns all unlocks for a user.
func (r *mongoAchievementRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.UserAchievement, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var unlocks []domain.UserAchievement
	if err := cursor.All(ctx, &unlocks); err != nil {
		return nil, mapErr(err)
	}
	return unlocks, nil
}

// EnsureAchievementIndexes creates necessary indexes. Call during startup.
// The unique (userId, key) index backs the set-once unlock semantics.
func EnsureAchievementIndexes(ctx context.Context, collection *mongo.Collection) {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
