package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scamwatch/backend/internal/models"
)

type MongoNotificationService struct {
	col *mongo.Collection
}

type mongoNotificationDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Message   string    `bson:"message"`
	Read      bool      `bson:"read"`
	CreatedAt time.Time `bson:"created_at"`
}

func NewMongoNotificationService(ctx context.Context, db *mongo.Database) (*MongoNotificationService, error) {
	col := db.Collection("notifications")

	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})

	return &MongoNotificationService{col: col}, nil
}

func (s *MongoNotificationService) Create(ctx context.Context, userID, message string) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	doc := mongoNotificationDoc{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &models.Notification{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Message:   doc.Message,
		Read:      doc.Read,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *MongoNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100)
	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []models.Notification{}
	for cursor.Next(ctx) {
		var doc mongoNotificationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		list = append(list, models.Notification{
			ID:        doc.ID,
			UserID:    doc.UserID,
			Message:   doc.Message,
			Read:      doc.Read,
			CreatedAt: doc.CreatedAt,
		})
	}
	return list, cursor.Err()
}

func (s *MongoNotificationService) MarkRead(ctx context.Context, userID string, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if len(ids) > 0 {
		filter["_id"] = bson.M{"$in": ids}
	}

	_, err := s.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	return err
}
