package services

import (
	"context"
	"errors"

	"github.com/scamwatch/backend/internal/models"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already registered")
	ErrInvalidLogin   = errors.New("invalid email or password")
)

// ReportsPageSize is the page size of the report search endpoint.
const ReportsPageSize = 10

// ReportService is the persistence contract for scam reports.
type ReportService interface {
	Create(ctx context.Context, reporterID string, req *models.CreateReportRequest, riskScore int, knownScam bool, status string) (*models.ScamReport, error)
	GetByID(ctx context.Context, id string) (*models.ScamReport, error)
	// Search returns a page of reports matching the search term on
	// username, platform or scam type. When includeAll is false only
	// Confirmed reports are visible (non-admin callers).
	Search(ctx context.Context, search string, page int, includeAll bool) (*models.ReportListResponse, error)
	// Vote adjusts the community vote counter by delta (+1 or -1) and
	// returns the updated report.
	Vote(ctx context.Context, id string, delta int) (*models.ScamReport, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.ScamReport, error)
	Dashboard(ctx context.Context) (*models.DashboardResponse, error)
	// ListByStatus returns every report currently in the given status,
	// used by the batch score refresh.
	ListByStatus(ctx context.Context, status string) ([]models.ScamReport, error)
	UpdateRiskScore(ctx context.Context, id string, score int) error
}

// UserService is the persistence contract for accounts.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest, role string) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error)
}

// NotificationService stores per-user notifications.
type NotificationService interface {
	Create(ctx context.Context, userID, message string) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
}

// ContactService stores contact-form messages.
type ContactService interface {
	Create(ctx context.Context, email, message string) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
}
