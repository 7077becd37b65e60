package wiki

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// InMemoryTransport is a lightweight simulation of the revisions endpoint,
// sufficient for unit testing pagination and cache logic. It serves a
// single article seeded with revision timestamps.
type InMemoryTransport struct {
	title      string
	timestamps []string
	RequestLog []RevisionQuery
}

// NewInMemoryTransport creates an in-memory transport serving one article.
// Queries for any other title get the missing-page marker.
func NewInMemoryTransport(title string) *InMemoryTransport {
	return &InMemoryTransport{
		title:      title,
		RequestLog: make([]RevisionQuery, 0),
	}
}

// Seed adds revision timestamps (RFC3339 or any YYYY-MM-DD... prefix) to
// the simulated history. Timestamps are kept in chronological order.
func (t *InMemoryTransport) Seed(timestamps ...string) {
	t.timestamps = append(t.timestamps, timestamps...)
	sort.Strings(t.timestamps)
}

// RequestsMade returns the number of requests made to this transport.
func (t *InMemoryTransport) RequestsMade() int {
	return len(t.RequestLog)
}

// Reset clears all stored timestamps and recorded requests.
func (t *InMemoryTransport) Reset() {
	t.timestamps = nil
	t.RequestLog = make([]RevisionQuery, 0)
}

// Revisions simulates one revisions query round trip.
func (t *InMemoryTransport) Revisions(_ context.Context, q RevisionQuery) (*QueryResponse, error) {
	t.RequestLog = append(t.RequestLog, q)

	if q.Title != t.title {
		missing := ""
		return &QueryResponse{
			Query: &QueryBody{
				Pages: map[string]PageBody{
					"-1": {Title: q.Title, Missing: &missing},
				},
			},
		}, nil
	}

	subset := t.timestamps
	if q.Start != "" {
		floor := q.Start + "T00:00:00Z"
		idx := sort.SearchStrings(subset, floor)
		subset = subset[idx:]
	}

	startIdx := 0
	if q.Cursor != nil && q.Cursor.RvContinue != "" {
		if idx, err := strconv.Atoi(q.Cursor.RvContinue); err == nil {
			startIdx = idx
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 3
	}
	endIdx := startIdx + limit
	if endIdx > len(subset) {
		endIdx = len(subset)
	}
	if startIdx > len(subset) {
		startIdx = len(subset)
	}

	revisions := make([]Revision, 0, endIdx-startIdx)
	for i := startIdx; i < endIdx; i++ {
		revisions = append(revisions, Revision{Timestamp: subset[i], UserID: int64(i)})
	}

	resp := &QueryResponse{
		Query: &QueryBody{
			Pages: map[string]PageBody{
				"42": {PageID: 42, Title: t.title, Revisions: revisions},
			},
		},
	}
	if endIdx < len(subset) {
		resp.Continue = &Continuation{
			Continue:   "||",
			RvContinue: fmt.Sprintf("%d", endIdx),
		}
	}

	return resp, nil
}

// FixtureTransport serves scripted responses in order, for deterministic
// pagination tests and error injection.
type FixtureTransport struct {
	Pages      []*QueryResponse
	Errs       []error
	RequestLog []RevisionQuery
	next       int
}

// NewFixtureTransport creates a transport that replays the given pages.
func NewFixtureTransport(pages ...*QueryResponse) *FixtureTransport {
	return &FixtureTransport{
		Pages:      pages,
		RequestLog: make([]RevisionQuery, 0),
	}
}

// FailAt schedules err to be returned for the i-th request (0-based).
func (t *FixtureTransport) FailAt(i int, err error) {
	for len(t.Errs) <= i {
		t.Errs = append(t.Errs, nil)
	}
	t.Errs[i] = err
}

// Revisions replays the next scripted response.
func (t *FixtureTransport) Revisions(_ context.Context, q RevisionQuery) (*QueryResponse, error) {
	t.RequestLog = append(t.RequestLog, q)

	i := t.next
	t.next++

	if i < len(t.Errs) && t.Errs[i] != nil {
		return nil, t.Errs[i]
	}
	if i < len(t.Pages) {
		return t.Pages[i], nil
	}

	return &QueryResponse{
		Query: &QueryBody{Pages: map[string]PageBody{"42": {PageID: 42, Title: q.Title}}},
	}, nil
}
