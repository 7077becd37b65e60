package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"wikiplot/internal/core"
)

// Client is the HTTP implementation of Transport against the MediaWiki
// Action API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new API client. Empty baseURL and userAgent fall
// back to the en.wikipedia.org defaults.
func NewClient(baseURL, userAgent string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = core.DefaultAPIBaseURL
	}
	if userAgent == "" {
		userAgent = core.DefaultUserAgent
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Revisions performs one revisions query round trip.
func (c *Client) Revisions(ctx context.Context, q RevisionQuery) (*QueryResponse, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("titles", q.Title)
	params.Set("rvprop", "timestamp|userid")
	params.Set("rvdir", "newer")
	params.Set("format", "json")

	limit := q.Limit
	if limit <= 0 {
		limit = core.PageLimit
	}
	params.Set("rvlimit", strconv.Itoa(limit))

	if q.Start != "" {
		params.Set("rvstart", q.Start+"T00:00:00Z")
	}
	if q.Cursor != nil {
		params.Set("continue", q.Cursor.Continue)
		params.Set("rvcontinue", q.Cursor.RvContinue)
	}

	urlStr := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	c.logger.Debug("GET", "url", urlStr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	var decoded QueryResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	c.logger.Debug("response", "status", resp.StatusCode, "bytes", len(body))
	return &decoded, nil
}
