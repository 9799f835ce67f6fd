package mongo

import (
	"context"
	"errors"
	"time"

	"gymbuddy/app/internal/domain"
	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.DateLocal == "" {
		return primitive.NilObjectID, errors.New("workout requires userId and dateLocal")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a workout owned by the given user.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id, "userId": userID}
	if err := r.collection.FindOne(ctx, filter).Decode(&workout); err != nil {
		return nil, mapErr(err)
	}
	return &workout, nil
}

// Update overwrites the mutable fields of a workout.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}
	filter := bson.M{"_id": workout.ID, "userId": workout.UserID}
	updateDoc := bson.M{
		"$set": bson.M{
			"date":            workout.Date,
			"dateLocal":       workout.DateLocal,
			"seasonId":        workout.SeasonID,
			"durationMinutes": workout.DurationMinutes,
			"notes":           workout.Notes,
			"location":        workout.Location,
			"buddyUserId":     workout.BuddyUserID,
			"buddyName":       workout.BuddyName,
			"exercises":       workout.Exercises,
			"prEvents":        workout.PREvents,
			"totalVolume":     workout.TotalVolume,
			"xpAwarded":       workout.XPAwarded,
			"xpBreakdown":     workout.XPBreakdown,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a workout owned by the given user.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return mapErr(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkoutRepository) findByUser(ctx context.Context, userID primitive.ObjectID, sort bson.D) ([]*domain.Workout, error) {
	var workouts []*domain.Workout
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(sort))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, mapErr(err)
	}
	return workouts, nil
}

// GetByUserAscending returns the full history in chronological order, the
// order the aggregate replay depends on.
func (r *mongoWorkoutRepository) GetByUserAscending(ctx context.Context, userID primitive.ObjectID) ([]*domain.Workout, error) {
	sort := bson.D{{Key: "date", Value: 1}, {Key: "dateLocal", Value: 1}, {Key: "createdAt", Value: 1}}
	return r.findByUser(ctx, userID, sort)
}

// GetByUserDescending returns the history newest first, for listings.
func (r *mongoWorkoutRepository) GetByUserDescending(ctx context.Context, userID primitive.ObjectID) ([]*domain.Workout, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}
	return r.findByUser(ctx, userID, sort)
}

// RecentDays returns up to limit local-day keys, newest first.
func (r *mongoWorkoutRepository) RecentDays(ctx context.Context, userID, exclude primitive.ObjectID, limit int) ([]string, error) {
	filter := bson.M{"userId": userID}
	if exclude != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	findOptions := options.Find().
		SetProjection(bson.M{"dateLocal": 1}).
		SetSort(bson.D{{Key: "dateLocal", Value: -1}, {Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var days []string
	for cursor.Next(ctx) {
		var doc struct {
			DateLocal string `bson:"dateLocal"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapErr(err)
		}
		days = append(days, doc.DateLocal)
	}
	if err := cursor.Err(); err != nil {
		return nil, mapErr(err)
	}
	return days, nil
}

// CountAwarding counts XP-awarding workouts on a local day. Workouts forced
// to 0 XP by the daily cap do not count toward later caps.
func (r *mongoWorkoutRepository) CountAwarding(ctx context.Context, userID primitive.ObjectID, dateLocal string, exclude primitive.ObjectID) (int, error) {
	filter := bson.M{
		"userId":    userID,
		"dateLocal": dateLocal,
		"xpAwarded": bson.M{"$gt": 0},
	}
	if exclude != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, mapErr(err)
	}
	return int(count), nil
}

// SumSeasonXP sums awarded XP over all workouts tagged with the season id.
func (r *mongoWorkoutRepository) SumSeasonXP(ctx context.Context, userID primitive.ObjectID, seasonID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID, "seasonId": seasonID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "totalXp": bson.M{"$sum": "$xpAwarded"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, mapErr(err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalXP int `bson:"totalXp"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, mapErr(err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalXP, nil
}

// PatchMetrics writes back replay-recomputed PR events and volume.
func (r *mongoWorkoutRepository) PatchMetrics(ctx context.Context, id primitive.ObjectID, prEvents []domain.PREvent, totalVolume float64) error {
	if prEvents == nil {
		prEvents = []domain.PREvent{}
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"prEvents": prEvents, "totalVolume": totalVolume}},
	)
	return mapErr(err)
}

// SetPhotoObjectKey attaches (or clears) the progress-photo object key.
func (r *mongoWorkoutRepository) SetPhotoObjectKey(ctx context.Context, id, userID primitive.ObjectID, objectKey string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"photoObjectKey": objectKey, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "dateLocal", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "seasonId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
