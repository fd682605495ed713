package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ReputationChecker answers whether a username is already known to an
// external scam-intelligence source. Callers on the submission path must
// treat errors as "not known" so a slow or dead provider never blocks a
// report (see services.ReportScorer).
type ReputationChecker interface {
	IsKnownScam(ctx context.Context, username string) (bool, error)
}

// HTTPReputationChecker queries a scam-intelligence REST endpoint of the
// shape GET <endpoint>/check?username=<username>.
type HTTPReputationChecker struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

type reputationCheckResponse struct {
	IsScammer bool `json:"isScammer"`
}

func NewHTTPReputationChecker(endpoint, apiKey string) *HTTPReputationChecker {
	return &HTTPReputationChecker{
		Endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		APIKey:   strings.TrimSpace(apiKey),
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *HTTPReputationChecker) IsKnownScam(ctx context.Context, username string) (bool, error) {
	if c.Endpoint == "" {
		return false, nil
	}

	checkURL := c.Endpoint + "/check?username=" + url.QueryEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return false, err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("reputation check http %d", resp.StatusCode)
	}

	var out reputationCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.IsScammer, nil
}

// StubReputationChecker is used when no external provider is configured.
// It reports every username as unknown.
type StubReputationChecker struct{}

func (StubReputationChecker) IsKnownScam(ctx context.Context, username string) (bool, error) {
	return false, nil
}
