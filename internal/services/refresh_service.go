package services

import (
	"context"
	"log"

	"github.com/scamwatch/backend/internal/models"
	"github.com/scamwatch/backend/internal/scoring"
)

// RefreshSummary reports the outcome of one batch score refresh.
type RefreshSummary struct {
	Processed int      `json:"processed"`
	Updated   int      `json:"updated"`
	FailedIDs []string `json:"failedIds,omitempty"`
}

// RefreshService recomputes risk scores for Confirmed reports in bulk.
// Each report is an independent unit of work: a failure is logged, counted
// and skipped, never aborts the pass. Running it twice with no intervening
// data changes yields identical scores.
type RefreshService struct {
	reports ReportService
	engine  *scoring.Engine
}

func NewRefreshService(reports ReportService, engine *scoring.Engine) *RefreshService {
	return &RefreshService{reports: reports, engine: engine}
}

func (s *RefreshService) Refresh(ctx context.Context) (*RefreshSummary, error) {
	reports, err := s.reports.ListByStatus(ctx, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	summary := &RefreshSummary{}
	for _, report := range reports {
		summary.Processed++

		score, err := s.engine.Score(ctx, scoring.Candidate{
			Username:    report.ScammerUsername,
			Platform:    report.Platform,
			ScamType:    report.ScamType,
			Description: report.Description,
			CreatedAt:   report.CreatedAt,
		})
		if err != nil {
			log.Printf("[Refresh] scoring failed report=%s err=%v", report.ID, err)
			summary.FailedIDs = append(summary.FailedIDs, report.ID)
			continue
		}

		if score == report.RiskScore {
			continue
		}

		if err := s.reports.UpdateRiskScore(ctx, report.ID, score); err != nil {
			log.Printf("[Refresh] update failed report=%s err=%v", report.ID, err)
			summary.FailedIDs = append(summary.FailedIDs, report.ID)
			continue
		}
		summary.Updated++
	}

	log.Printf("[Refresh] done processed=%d updated=%d failed=%d",
		summary.Processed, summary.Updated, len(summary.FailedIDs))
	return summary, nil
}
