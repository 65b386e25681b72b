// Package portal acquires raw schedule and timecard payloads from the
// workforce-management portal, either through its REST API or by driving a
// headless browser against the web UI. It hands raw bundles to the
// normalizer and does no canonicalization of its own.
package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"shiftwatch/internal/config"
	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/normalize"
)

// Client is an authenticated portal API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient authenticates against the portal token endpoint and returns an
// API client. Refreshed tokens are persisted as a side effect of use.
func NewClient(ctx context.Context, cfg config.PortalConfig, password string) (*Client, error) {
	tok, oc, err := authenticate(ctx, cfg, password)
	if err != nil {
		return nil, err
	}
	ts := oc.TokenSource(ctx, tok)
	return &Client{
		httpClient: oauth2.NewClient(ctx, &savingTokenSource{ts: ts}),
		baseURL:    cfg.BaseURL,
	}, nil
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts oauth2.TokenSource
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	// Best-effort save; ignore errors.
	_ = saveToken(tok)
	return tok, nil
}

// FetchScheduleBundle fetches the raw schedule payload covering [from, to].
// The response carries regular shifts, holidays and time-off requests; any
// subset may be absent and decodes as empty.
func (c *Client) FetchScheduleBundle(ctx context.Context, from, to time.Time) (normalize.ScheduleBundle, error) {
	endpoint := fmt.Sprintf("%s/myschedule?startDate=%s&endDate=%s",
		c.baseURL,
		url.QueryEscape(from.Format(dateutil.ISODate)),
		url.QueryEscape(to.Format(dateutil.ISODate)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return normalize.ScheduleBundle{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return normalize.ScheduleBundle{}, fmt.Errorf("portal API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return normalize.ScheduleBundle{}, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return normalize.ScheduleBundle{}, fmt.Errorf("portal API error %d: %s", resp.StatusCode, string(body))
	}

	var bundle normalize.ScheduleBundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return normalize.ScheduleBundle{}, fmt.Errorf("decoding portal response: %w", err)
	}
	return bundle, nil
}
