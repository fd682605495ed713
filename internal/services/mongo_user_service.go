package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/scamwatch/backend/internal/models"
)

type MongoUserService struct {
	col *mongo.Collection
}

type mongoUserDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Name         string    `bson:"name"`
	Role         string    `bson:"role"`
	FirebaseUID  string    `bson:"firebase_uid,omitempty"`
	DeviceToken  string    `bson:"device_token,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func NewMongoUserService(ctx context.Context, db *mongo.Database) (*MongoUserService, error) {
	col := db.Collection("users")

	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "firebase_uid", Value: 1}}},
	})

	return &MongoUserService{col: col}, nil
}

func userDocToModel(d mongoUserDoc) *models.User {
	return &models.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Role:         d.Role,
		FirebaseUID:  d.FirebaseUID,
		DeviceToken:  d.DeviceToken,
		CreatedAt:    d.CreatedAt,
	}
}

func (s *MongoUserService) Register(ctx context.Context, req *models.RegisterRequest, role string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.col.FindOne(ctx, bson.M{"email": email}).Err(); err == nil {
		return nil, ErrEmailExists
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	doc := mongoUserDoc{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return userDocToModel(doc), nil
}

func (s *MongoUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var doc mongoUserDoc
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidLogin
	}
	return userDocToModel(doc), nil
}

func (s *MongoUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var doc mongoUserDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return userDocToModel(doc), nil
}

// GetByFirebaseUID resolves a user from a verified Firebase ID token,
// provisioning a record on first sight so Firebase-authenticated users get
// the default role.
func (s *MongoUserService) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var doc mongoUserDoc
	err := s.col.FindOne(ctx, bson.M{"firebase_uid": uid}).Decode(&doc)
	if err == nil {
		return userDocToModel(doc), nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	doc = mongoUserDoc{
		ID:          uuid.New().String(),
		Role:        models.RoleUser,
		FirebaseUID: uid,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return userDocToModel(doc), nil
}

func (s *MongoUserService) UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{"name": strings.TrimSpace(req.Name)}
	if strings.TrimSpace(req.DeviceToken) != "" {
		set["device_token"] = strings.TrimSpace(req.DeviceToken)
	}

	res := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var doc mongoUserDoc
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return userDocToModel(doc), nil
}
