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

const statsCollectionName = "userStats"

// mongoStatsRepository implements repository.StatsRepository
type mongoStatsRepository struct {
	collection *mongo.Collection
}

// NewMongoStatsRepository creates a new stats repository.
func NewMongoStatsRepository(db *mongo.Database) repository.StatsRepository {
	return &mongoStatsRepository{
		collection: db.Collection(statsCollectionName),
	}
}

// GetByUser returns the stored aggregate, ErrNotFound when the user has none yet.
func (r *mongoStatsRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error) {
	var stats domain.UserStats
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&stats); err != nil {
		return nil, mapErr(err)
	}
	return &stats, nil
}

// Upsert replaces the aggregate wholesale. The aggregate is derived state;
// the replay always writes all fields, so a $set of everything is correct.
func (r *mongoStatsRepository) Upsert(ctx context.Context, stats *domain.UserStats) error {
	if stats.BestWeightByExercise == nil {
		stats.BestWeightByExercise = map[string]float64{}
	}
	stats.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": stats.UserID},
		bson.M{"$set": stats},
		options.Update().SetUpsert(true),
	)
	return mapErr(err)
}

// EnsureStatsIndexes creates necessary indexes. Call during startup.
func EnsureStatsIndexes(ctx context.Context, collection *mongo.Collection) {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
