package services

import (
	"context"
	"crypto/tls"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scamwatch/backend/internal/models"
)

type MongoReportService struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

type mongoReportDoc struct {
	ID              string    `bson:"_id"`
	ReporterID      string    `bson:"reporter_id"`
	ScammerUsername string    `bson:"scammer_username"`
	Platform        string    `bson:"platform"`
	ScamType        string    `bson:"scam_type"`
	Description     string    `bson:"description"`
	Status          string    `bson:"status"`
	RiskScore       int       `bson:"risk_score"`
	KnownScam       bool      `bson:"known_scam"`
	CommunityVotes  int       `bson:"community_votes"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func NewMongoReportService(ctx context.Context, mongoURI, dbName string) (*MongoReportService, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless we force TLS 1.2.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("scam_reports")

	// Best-effort indexes. The scoring engine's history lookups hit
	// (scammer_username, status) on every submission.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "scammer_username", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "reporter_id", Value: 1}}},
	})

	log.Printf("MongoDB connected: db=%s", dbName)
	return &MongoReportService{client: client, db: db, col: col}, nil
}

func (s *MongoReportService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the underlying handle so sibling services can share one
// connection pool.
func (s *MongoReportService) Database() *mongo.Database {
	return s.db
}

func reportDocToModel(d mongoReportDoc) *models.ScamReport {
	return &models.ScamReport{
		ID:              d.ID,
		ReporterID:      d.ReporterID,
		ScammerUsername: d.ScammerUsername,
		Platform:        d.Platform,
		ScamType:        d.ScamType,
		Description:     d.Description,
		Status:          d.Status,
		RiskScore:       d.RiskScore,
		KnownScam:       d.KnownScam,
		CommunityVotes:  d.CommunityVotes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (s *MongoReportService) Create(ctx context.Context, reporterID string, req *models.CreateReportRequest, riskScore int, knownScam bool, status string) (*models.ScamReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoReportDoc{
		ID:              uuid.New().String(),
		ReporterID:      reporterID,
		ScammerUsername: strings.TrimSpace(req.ScammerUsername),
		Platform:        strings.ToLower(strings.TrimSpace(req.Platform)),
		ScamType:        strings.ToLower(strings.TrimSpace(req.ScamType)),
		Description:     strings.TrimSpace(req.Description),
		Status:          status,
		RiskScore:       riskScore,
		KnownScam:       knownScam,
		CommunityVotes:  0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return reportDocToModel(doc), nil
}

func (s *MongoReportService) GetByID(ctx context.Context, id string) (*models.ScamReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var doc mongoReportDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return reportDocToModel(doc), nil
}

func (s *MongoReportService) Search(ctx context.Context, search string, page int, includeAll bool) (*models.ReportListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}

	filter := bson.M{}
	if term := strings.TrimSpace(search); term != "" {
		pattern := regexp.QuoteMeta(term)
		filter["$or"] = bson.A{
			bson.M{"scammer_username": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"platform": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"scam_type": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if !includeAll {
		filter["status"] = models.StatusConfirmed
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * ReportsPageSize)).
		SetLimit(ReportsPageSize)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.ScamReport{}
	for cursor.Next(ctx) {
		var doc mongoReportDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reports = append(reports, *reportDocToModel(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return &models.ReportListResponse{
		Reports:     reports,
		TotalPages:  int(math.Ceil(float64(total) / float64(ReportsPageSize))),
		CurrentPage: page,
	}, nil
}

func (s *MongoReportService) Vote(ctx context.Context, id string, delta int) (*models.ScamReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"community_votes": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var doc mongoReportDoc
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return reportDocToModel(doc), nil
}

func (s *MongoReportService) UpdateStatus(ctx context.Context, id, status string) (*models.ScamReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var doc mongoReportDoc
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return reportDocToModel(doc), nil
}

func (s *MongoReportService) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	pending, err := s.col.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return nil, err
	}
	confirmed, err := s.col.CountDocuments(ctx, bson.M{"status": models.StatusConfirmed})
	if err != nil {
		return nil, err
	}
	escalated, err := s.col.CountDocuments(ctx, bson.M{"status": models.StatusEscalated})
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(50)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.ScamReport{}
	for cursor.Next(ctx) {
		var doc mongoReportDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reports = append(reports, *reportDocToModel(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return &models.DashboardResponse{
		Stats: models.DashboardStats{
			TotalReports:   total,
			PendingReview:  pending,
			ConfirmedScams: confirmed,
			EscalatedCases: escalated,
		},
		Reports: reports,
	}, nil
}

func (s *MongoReportService) ListByStatus(ctx context.Context, status string) ([]models.ScamReport, error) {
	cursor, err := s.col.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.ScamReport{}
	for cursor.Next(ctx) {
		var doc mongoReportDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reports = append(reports, *reportDocToModel(doc))
	}
	return reports, cursor.Err()
}

func (s *MongoReportService) UpdateRiskScore(ctx context.Context, id string, score int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := s.col.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"risk_score": score, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrReportNotFound
	}
	return nil
}

// CountConfirmed and CountConfirmedOnOtherPlatforms implement
// scoring.ReportHistory; usernames are matched case-insensitively.

func (s *MongoReportService) CountConfirmed(ctx context.Context, username string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.col.CountDocuments(ctx, bson.M{
		"scammer_username": caseInsensitiveEquals(username),
		"status":           models.StatusConfirmed,
	})
}

func (s *MongoReportService) CountConfirmedOnOtherPlatforms(ctx context.Context, username, platform string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.col.CountDocuments(ctx, bson.M{
		"scammer_username": caseInsensitiveEquals(username),
		"platform":         bson.M{"$ne": strings.ToLower(strings.TrimSpace(platform))},
		"status":           models.StatusConfirmed,
	})
}

func caseInsensitiveEquals(value string) bson.M {
	return bson.M{
		"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$",
		"$options": "i",
	}
}
