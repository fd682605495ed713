package models

import (
	"strings"
	"time"
)

// Report statuses. "Confirmed" is the terminal state that counts as
// corroborating evidence in risk scoring.
const (
	StatusPending     = "Pending"
	StatusUnderReview = "Under Review"
	StatusConfirmed   = "Confirmed"
	StatusRejected    = "Rejected"
	StatusEscalated   = "Escalated"
)

// ValidStatuses lists every status an admin may set on a report.
var ValidStatuses = []string{
	StatusPending,
	StatusUnderReview,
	StatusConfirmed,
	StatusRejected,
	StatusEscalated,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ScamReport is a user-submitted claim that an account on a platform
// engaged in a scam.
type ScamReport struct {
	ID              string    `json:"id"`
	ReporterID      string    `json:"reporterId"`
	ScammerUsername string    `json:"scammerUsername"`
	Platform        string    `json:"platform"`
	ScamType        string    `json:"scamType"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	RiskScore       int       `json:"riskScore"`
	KnownScam       bool      `json:"knownScam"`
	CommunityVotes  int       `json:"communityVotes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateReportRequest struct {
	ScammerUsername string `json:"scammerUsername"`
	Platform        string `json:"platform"`
	ScamType        string `json:"scamType"`
	Description     string `json:"description"`
}

type VoteRequest struct {
	VoteType string `json:"voteType"` // "up" or "down"
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ReportListResponse is the paginated search result payload.
type ReportListResponse struct {
	Reports     []ScamReport `json:"reports"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
}

// DashboardStats summarizes report counts for the admin dashboard.
type DashboardStats struct {
	TotalReports   int64 `json:"totalReports"`
	PendingReview  int64 `json:"pendingReview"`
	ConfirmedScams int64 `json:"confirmedScams"`
	EscalatedCases int64 `json:"escalatedCases"`
}

type DashboardResponse struct {
	Stats   DashboardStats `json:"stats"`
	Reports []ScamReport   `json:"reports"`
}

func (r *CreateReportRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.ScammerUsername) == "" {
		errors["scammerUsername"] = "Username is required"
	}
	if strings.TrimSpace(r.Platform) == "" {
		errors["platform"] = "Platform is required"
	}
	if strings.TrimSpace(r.ScamType) == "" {
		errors["scamType"] = "Scam type is required"
	}
	if len(strings.TrimSpace(r.Description)) < 10 {
		errors["description"] = "Description must be at least 10 characters"
	}

	return errors
}

func (r *VoteRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.VoteType != "up" && r.VoteType != "down" {
		errors["voteType"] = "Vote type must be 'up' or 'down'"
	}

	return errors
}

func (r *UpdateStatusRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if !IsValidStatus(r.Status) {
		errors["status"] = "Invalid status provided"
	}

	return errors
}
