package scoring

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrMissingUsername is returned when a candidate has no username; the
// history queries are meaningless without one.
var ErrMissingUsername = errors.New("scoring: candidate username is required")

// Candidate is the report payload handed to the engine. It is never
// mutated; the caller owns the persisted report derived from it.
type Candidate struct {
	Username    string
	Platform    string
	ScamType    string
	Description string
	CreatedAt   time.Time
}

// ReportHistory exposes the two read queries the engine issues against
// prior reports. Only Confirmed reports count as corroborating evidence.
type ReportHistory interface {
	// CountConfirmed returns the number of Confirmed reports for username.
	CountConfirmed(ctx context.Context, username string) (int64, error)
	// CountConfirmedOnOtherPlatforms returns the number of Confirmed
	// reports for username on platforms other than the given one.
	CountConfirmedOnOtherPlatforms(ctx context.Context, username, platform string) (int64, error)
}

// Signal weights. Summed independently, then clamped to MaxScore.
const (
	MaxScore = 100

	freshReportWindow = 7 * 24 * time.Hour

	freshReportPoints    = 20
	keywordPoints        = 10
	suspiciousLinkPoints = 15
	scamTypePoints       = 20
	repeatOffenderPoints = 50
	crossPlatformPoints  = 30
)

// suspiciousKeywords are matched by substring containment against the
// lower-cased description; each distinct phrase scores once.
var suspiciousKeywords = []string{
	"free money",
	"get rich quick",
	"investment opportunity",
	"limited time offer",
}

// suspiciousLinkPatterns match common URL shorteners; any hit scores the
// link signal once.
var suspiciousLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`bit\.ly`),
	regexp.MustCompile(`goo\.gl`),
	regexp.MustCompile(`tinyurl\.com`),
}

// highRiskScamTypes score the scam-type signal, compared case-insensitively.
var highRiskScamTypes = map[string]bool{
	"phishing":        true,
	"financial_fraud": true,
	"identity_theft":  true,
}

// Engine computes a risk score in [0, MaxScore] for a report candidate.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	history ReportHistory
	now     func() time.Time
}

// NewEngine creates an engine backed by the given report history.
func NewEngine(history ReportHistory) *Engine {
	return &Engine{
		history: history,
		now:     time.Now,
	}
}

// NewEngineWithClock is NewEngine with an injected clock, for tests.
func NewEngineWithClock(history ReportHistory, now func() time.Time) *Engine {
	return &Engine{
		history: history,
		now:     now,
	}
}

// Score accumulates the triggered signals for the candidate and clamps the
// sum to MaxScore. Given the same candidate and the same history snapshot
// the result is deterministic. A history lookup failure is returned as-is;
// it is never silently scored as zero.
func (e *Engine) Score(ctx context.Context, c Candidate) (int, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		return 0, ErrMissingUsername
	}

	score := 0

	// Newly authored reports correlate with burst scam campaigns.
	if age := e.now().Sub(c.CreatedAt); age >= 0 && age < freshReportWindow {
		score += freshReportPoints
	}

	description := strings.ToLower(c.Description)
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(description, keyword) {
			score += keywordPoints
		}
	}

	for _, pattern := range suspiciousLinkPatterns {
		if pattern.MatchString(description) {
			score += suspiciousLinkPoints
			break
		}
	}

	if highRiskScamTypes[strings.ToLower(strings.TrimSpace(c.ScamType))] {
		score += scamTypePoints
	}

	confirmed, err := e.history.CountConfirmed(ctx, username)
	if err != nil {
		return 0, err
	}
	if confirmed > 0 {
		score += repeatOffenderPoints
	}

	crossPlatform, err := e.history.CountConfirmedOnOtherPlatforms(ctx, username, c.Platform)
	if err != nil {
		return 0, err
	}
	if crossPlatform > 0 {
		score += crossPlatformPoints
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}
