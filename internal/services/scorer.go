package services

import (
	"context"
	"log"
	"time"

	"github.com/scamwatch/backend/internal/models"
	"github.com/scamwatch/backend/internal/scoring"
)

// ReportScorer runs a submitted report through the risk engine and the
// external reputation source and decides the report's initial status.
type ReportScorer struct {
	engine     *scoring.Engine
	reputation scoring.ReputationChecker
}

func NewReportScorer(engine *scoring.Engine, reputation scoring.ReputationChecker) *ReportScorer {
	if reputation == nil {
		reputation = scoring.StubReputationChecker{}
	}
	return &ReportScorer{engine: engine, reputation: reputation}
}

// ScoreCandidate returns the risk score and whether the username is already
// known to the reputation source. A scoring failure (history store down) is
// returned to the caller; a reputation failure is not — the check fails
// open to "not known" so a dead provider never blocks a submission.
func (s *ReportScorer) ScoreCandidate(ctx context.Context, c scoring.Candidate) (int, bool, error) {
	score, err := s.engine.Score(ctx, c)
	if err != nil {
		return 0, false, err
	}

	repCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	known, err := s.reputation.IsKnownScam(repCtx, c.Username)
	if err != nil {
		log.Printf("[Scorer] reputation check failed username=%s err=%v", c.Username, err)
		known = false
	}

	return score, known, nil
}

// InitialStatus maps the reputation verdict to a report's starting status:
// usernames already known to an intelligence source skip triage.
func InitialStatus(knownScam bool) string {
	if knownScam {
		return models.StatusConfirmed
	}
	return models.StatusPending
}
