package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/models"
	"github.com/scamwatch/backend/internal/scoring"
)

// fakeReportStore is an in-memory ReportService for exercising the batch
// refresh and the scorer without a database.
type fakeReportStore struct {
	reports     map[string]*models.ScamReport
	failUpdates map[string]error
	historyErr  error
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{
		reports:     map[string]*models.ScamReport{},
		failUpdates: map[string]error{},
	}
}

func (f *fakeReportStore) add(r models.ScamReport) {
	f.reports[r.ID] = &r
}

func (f *fakeReportStore) Create(ctx context.Context, reporterID string, req *models.CreateReportRequest, riskScore int, knownScam bool, status string) (*models.ScamReport, error) {
	r := &models.ScamReport{
		ID:              "r" + reporterID,
		ReporterID:      reporterID,
		ScammerUsername: req.ScammerUsername,
		Platform:        req.Platform,
		ScamType:        req.ScamType,
		Description:     req.Description,
		Status:          status,
		RiskScore:       riskScore,
		KnownScam:       knownScam,
		CreatedAt:       time.Now().UTC(),
	}
	f.reports[r.ID] = r
	return r, nil
}

func (f *fakeReportStore) GetByID(ctx context.Context, id string) (*models.ScamReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return r, nil
}

func (f *fakeReportStore) Search(ctx context.Context, search string, page int, includeAll bool) (*models.ReportListResponse, error) {
	return &models.ReportListResponse{CurrentPage: page}, nil
}

func (f *fakeReportStore) Vote(ctx context.Context, id string, delta int) (*models.ScamReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	r.CommunityVotes += delta
	return r, nil
}

func (f *fakeReportStore) UpdateStatus(ctx context.Context, id, status string) (*models.ScamReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	r.Status = status
	return r, nil
}

func (f *fakeReportStore) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	return &models.DashboardResponse{}, nil
}

func (f *fakeReportStore) ListByStatus(ctx context.Context, status string) ([]models.ScamReport, error) {
	list := []models.ScamReport{}
	for _, r := range f.reports {
		if r.Status == status {
			list = append(list, *r)
		}
	}
	return list, nil
}

func (f *fakeReportStore) UpdateRiskScore(ctx context.Context, id string, score int) error {
	if err := f.failUpdates[id]; err != nil {
		return err
	}
	r, ok := f.reports[id]
	if !ok {
		return ErrReportNotFound
	}
	r.RiskScore = score
	return nil
}

// scoring.ReportHistory backed by the same fake store.
func (f *fakeReportStore) CountConfirmed(ctx context.Context, username string) (int64, error) {
	if f.historyErr != nil {
		return 0, f.historyErr
	}
	var n int64
	for _, r := range f.reports {
		if r.ScammerUsername == username && r.Status == models.StatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (f *fakeReportStore) CountConfirmedOnOtherPlatforms(ctx context.Context, username, platform string) (int64, error) {
	if f.historyErr != nil {
		return 0, f.historyErr
	}
	var n int64
	for _, r := range f.reports {
		if r.ScammerUsername == username && r.Platform != platform && r.Status == models.StatusConfirmed {
			n++
		}
	}
	return n, nil
}

func TestRefreshRecomputesConfirmedReports(t *testing.T) {
	store := newFakeReportStore()
	old := time.Now().UTC().AddDate(-1, 0, 0)

	// Two confirmed reports for the same username on different platforms:
	// after refresh each sees the other as history (50 repeat + 30 cross).
	store.add(models.ScamReport{ID: "a", ScammerUsername: "bobscam", Platform: "facebook",
		ScamType: "other", Description: "took payment and vanished", Status: models.StatusConfirmed,
		RiskScore: 0, CreatedAt: old})
	store.add(models.ScamReport{ID: "b", ScammerUsername: "bobscam", Platform: "twitter",
		ScamType: "other", Description: "same pattern as elsewhere", Status: models.StatusConfirmed,
		RiskScore: 0, CreatedAt: old})
	store.add(models.ScamReport{ID: "c", ScammerUsername: "alice", Platform: "facebook",
		ScamType: "other", Description: "still pending, must be ignored", Status: models.StatusPending,
		RiskScore: 0, CreatedAt: old})

	engine := scoring.NewEngine(store)
	svc := NewRefreshService(store, engine)

	summary, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Updated)
	assert.Empty(t, summary.FailedIDs)

	assert.Equal(t, 80, store.reports["a"].RiskScore)
	assert.Equal(t, 80, store.reports["b"].RiskScore)
	assert.Equal(t, 0, store.reports["c"].RiskScore)
}

func TestRefreshIsIdempotent(t *testing.T) {
	store := newFakeReportStore()
	old := time.Now().UTC().AddDate(-1, 0, 0)
	store.add(models.ScamReport{ID: "a", ScammerUsername: "bobscam", Platform: "facebook",
		ScamType: "phishing", Description: "fake bank login page", Status: models.StatusConfirmed,
		RiskScore: 0, CreatedAt: old})

	engine := scoring.NewEngine(store)
	svc := NewRefreshService(store, engine)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	scoreAfterFirst := store.reports["a"].RiskScore

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Processed, second.Processed)
	assert.Equal(t, scoreAfterFirst, store.reports["a"].RiskScore)
	// Nothing changed between passes, so the second pass writes nothing.
	assert.Equal(t, 0, second.Updated)
}

func TestRefreshSkipsFailedReports(t *testing.T) {
	store := newFakeReportStore()
	old := time.Now().UTC().AddDate(-1, 0, 0)
	store.add(models.ScamReport{ID: "a", ScammerUsername: "bobscam", Platform: "facebook",
		ScamType: "phishing", Description: "first report", Status: models.StatusConfirmed,
		RiskScore: 0, CreatedAt: old})
	store.add(models.ScamReport{ID: "b", ScammerUsername: "carolcon", Platform: "twitter",
		ScamType: "phishing", Description: "second report", Status: models.StatusConfirmed,
		RiskScore: 0, CreatedAt: old})
	store.failUpdates["b"] = errors.New("write timeout")

	engine := scoring.NewEngine(store)
	svc := NewRefreshService(store, engine)

	summary, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, []string{"b"}, summary.FailedIDs)
}
