package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	confirmed     int64
	crossPlatform int64
	err           error
}

func (f *fakeHistory) CountConfirmed(ctx context.Context, username string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.confirmed, nil
}

func (f *fakeHistory) CountConfirmedOnOtherPlatforms(ctx context.Context, username, platform string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.crossPlatform, nil
}

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(h ReportHistory) *Engine {
	return NewEngineWithClock(h, func() time.Time { return testNow })
}

func TestScoreCleanReport(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	score, err := engine.Score(context.Background(), Candidate{
		Username:    "alice123",
		Platform:    "facebook",
		ScamType:    "other",
		Description: "They asked me to pay upfront for a laptop and never delivered it.",
		CreatedAt:   testNow.AddDate(-2, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestScoreFreshReportWithKeyword(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	score, err := engine.Score(context.Background(), Candidate{
		Username:    "alice123",
		Platform:    "facebook",
		ScamType:    "other",
		Description: "They promised free money if I sent them a deposit first.",
		CreatedAt:   testNow,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, score) // 20 freshness + 10 keyword
}

func TestScoreKeywordCountedOncePerPhrase(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	once, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		Description: "free money for everyone who signs up today",
		CreatedAt:   testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)

	twice, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		Description: "free money and free money again",
		CreatedAt:   testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, 10, twice)
}

func TestScoreDistinctKeywordsStack(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	score, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		Description: "Free money! A limited time offer, act now.",
		CreatedAt:   testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, score)
}

func TestScoreSuspiciousLinkScoresOnce(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	score, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		Description: "Click bit.ly/xyz or tinyurl.com/abc to claim your prize",
		CreatedAt:   testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 15, score)
}

func TestScoreHighRiskScamType(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	for _, scamType := range []string{"phishing", "PHISHING", "financial_fraud", "identity_theft"} {
		score, err := engine.Score(context.Background(), Candidate{
			Username:    "bob",
			Platform:    "twitter",
			ScamType:    scamType,
			Description: "Sent me a link pretending to be my bank's login page.",
			CreatedAt:   testNow.AddDate(0, -1, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, 20, score, "scamType=%s", scamType)
	}
}

func TestScoreUnknownScamTypeIsLowRisk(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	score, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		ScamType:    "romance",
		Description: "Long con over several months, kept asking for gift cards.",
		CreatedAt:   testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestScoreRepeatOffenderCrossPlatform(t *testing.T) {
	// One prior Confirmed report on facebook; candidate is on twitter, so
	// both the repeat-offender and cross-platform signals trigger.
	engine := newTestEngine(&fakeHistory{confirmed: 1, crossPlatform: 1})

	score, err := engine.Score(context.Background(), Candidate{
		Username:    "bobscam",
		Platform:    "twitter",
		ScamType:    "other",
		Description: "Same seller that scammed people on another site last year.",
		CreatedAt:   testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 80, score) // 50 repeat offender + 30 cross-platform
}

func TestScoreClampsAtMax(t *testing.T) {
	engine := newTestEngine(&fakeHistory{confirmed: 3, crossPlatform: 2})

	// Every signal at once: fresh, two keywords, shortener link, high-risk
	// type, repeat offender, cross-platform. Raw sum 155.
	score, err := engine.Score(context.Background(), Candidate{
		Username:    "bobscam",
		Platform:    "twitter",
		ScamType:    "phishing",
		Description: "free money, a limited time offer: bit.ly/claim-now",
		CreatedAt:   testNow,
	})
	require.NoError(t, err)
	assert.Equal(t, MaxScore, score)
}

func TestScoreMonotonicInFreshness(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	old, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		Description: "Asked for payment up front and vanished.",
		CreatedAt:   testNow.AddDate(0, 0, -30),
	})
	require.NoError(t, err)

	fresh, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		Description: "Asked for payment up front and vanished.",
		CreatedAt:   testNow.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, fresh, old)
}

func TestScoreRangeInvariant(t *testing.T) {
	histories := []*fakeHistory{
		{},
		{confirmed: 1},
		{confirmed: 5, crossPlatform: 5},
	}
	descriptions := []string{
		"",
		"free money get rich quick investment opportunity limited time offer bit.ly",
		"nothing suspicious here",
	}

	for _, h := range histories {
		engine := newTestEngine(h)
		for _, desc := range descriptions {
			score, err := engine.Score(context.Background(), Candidate{
				Username:    "someone",
				Platform:    "facebook",
				ScamType:    "phishing",
				Description: desc,
				CreatedAt:   testNow,
			})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, MaxScore)
		}
	}
}

func TestScoreMissingUsername(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	_, err := engine.Score(context.Background(), Candidate{
		Username:    "   ",
		Platform:    "facebook",
		Description: "A report without a username cannot be correlated.",
		CreatedAt:   testNow,
	})
	assert.ErrorIs(t, err, ErrMissingUsername)
}

func TestScorePropagatesHistoryFailure(t *testing.T) {
	lookupErr := errors.New("connection refused")
	engine := newTestEngine(&fakeHistory{err: lookupErr})

	_, err := engine.Score(context.Background(), Candidate{
		Username:    "bob",
		Platform:    "twitter",
		Description: "A perfectly ordinary description of the incident.",
		CreatedAt:   testNow,
	})
	assert.ErrorIs(t, err, lookupErr)
}

func TestScoreEmptyDescriptionContributesZero(t *testing.T) {
	engine := newTestEngine(&fakeHistory{})

	score, err := engine.Score(context.Background(), Candidate{
		Username:  "bob",
		Platform:  "twitter",
		CreatedAt: testNow.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}
