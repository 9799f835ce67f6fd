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

const notificationCollectionName = "notifications"

// maxNotificationsPerUser caps the feed; the oldest entries beyond the cap
// are pruned after each insert.
const maxNotificationsPerUser = 200

// mongoNotificationRepository implements repository.NotificationRepository
type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new notification repository.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
	}
}

// Create inserts a notification and prunes the user's feed to the cap.
func (r *mongoNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, notification); err != nil {
		return mapErr(err)
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": notification.UserID})
	if err != nil {
		return mapErr(err)
	}
	if count <= maxNotificationsPerUser {
		return nil
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(count - maxNotificationsPerUser).
		SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": notification.UserID}, findOptions)
	if err != nil {
		return mapErr(err)
	}
	defer cursor.Close(ctx)

	var stale []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return mapErr(err)
		}
		stale = append(stale, doc.ID)
	}
	if len(stale) > 0 {
		if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stale}}); err != nil {
			return mapErr(err)
		}
	}
	return nil
}

// ListByUser returns the newest notifications first.
func (r *mongoNotificationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.Notification, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var notifications []domain.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, mapErr(err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read.
func (r *mongoNotificationRepository) MarkRead(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": notificationID, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureNotificationIndexes creates necessary indexes. Call during startup.
func EnsureNotificationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index()},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}}, Options: options.Index()},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
