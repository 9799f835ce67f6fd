package mongo

import (
	"context"
	"errors"
	"time"

	"gymbuddy/app/internal/catalog"
	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userExerciseCollectionName = "userExercises"

// userExerciseDoc wraps a catalog entry with its owner.
type userExerciseDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	CreatedAt time.Time          `bson:"createdAt"`
	catalog.Exercise `bson:",inline"`
}

// mongoUserExerciseRepository implements repository.UserExerciseRepository
type mongoUserExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoUserExerciseRepository creates a new custom-exercise repository.
func NewMongoUserExerciseRepository(db *mongo.Database) repository.UserExerciseRepository {
	return &mongoUserExerciseRepository{
		collection: db.Collection(userExerciseCollectionName),
	}
}

// ListByUser returns the user's custom catalog entries sorted by name.
func (r *mongoUserExerciseRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]catalog.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var docs []userExerciseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapErr(err)
	}
	exercises := make([]catalog.Exercise, len(docs))
	for i, doc := range docs {
		exercises[i] = doc.Exercise
	}
	return exercises, nil
}

// CountByUser counts the user's custom entries (100-entry bound check).
func (r *mongoUserExerciseRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, mapErr(err)
	}
	return int(count), nil
}

// Create inserts a custom catalog entry; ErrDuplicate when the key exists.
func (r *mongoUserExerciseRepository) Create(ctx context.Context, userID primitive.ObjectID, exercise catalog.Exercise) error {
	if exercise.Key == "" || exercise.Name == "" {
		return errors.New("custom exercise requires key and name")
	}
	doc := userExerciseDoc{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Exercise:  exercise,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	return nil
}

// EnsureUserExerciseIndexes creates necessary indexes. Call during startup.
func EnsureUserExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
