package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scamwatch/backend/internal/models"
)

type MongoContactService struct {
	col *mongo.Collection
}

type mongoContactDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"created_at"`
}

func NewMongoContactService(ctx context.Context, db *mongo.Database) (*MongoContactService, error) {
	col := db.Collection("contact_messages")

	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})

	return &MongoContactService{col: col}, nil
}

func (s *MongoContactService) Create(ctx context.Context, email, message string) (*models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	doc := mongoContactDoc{
		ID:        uuid.New().String(),
		Email:     strings.TrimSpace(email),
		Message:   strings.TrimSpace(message),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &models.ContactMessage{
		ID:        doc.ID,
		Email:     doc.Email,
		Message:   doc.Message,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *MongoContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(200)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []models.ContactMessage{}
	for cursor.Next(ctx) {
		var doc mongoContactDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		list = append(list, models.ContactMessage{
			ID:        doc.ID,
			Email:     doc.Email,
			Message:   doc.Message,
			CreatedAt: doc.CreatedAt,
		})
	}
	return list, cursor.Err()
}
