// Package wiki provides the MediaWiki Action API client and the revision
// history fetcher.
package wiki

import "context"

// RevisionQuery describes one revisions request: a page title, a batch
// size, an optional day-granularity start floor, and an optional
// continuation cursor from the previous response.
type RevisionQuery struct {
	Title  string
	Limit  int
	Start  string // YYYY-MM-DD; requests revisions at or after this day
	Cursor *Continuation
}

// Continuation is the opaque pagination token pair the API returns while
// more pages of results remain.
type Continuation struct {
	Continue   string `json:"continue"`
	RvContinue string `json:"rvcontinue"`
}

// Revision is a single historical edit event.
type Revision struct {
	Timestamp string `json:"timestamp"`
	UserID    int64  `json:"userid"`
}

// PageBody is one entry of the query.pages map. Missing pages carry the
// "missing" marker (an empty string in the JSON format).
type PageBody struct {
	PageID    int64      `json:"pageid"`
	Title     string     `json:"title"`
	Missing   *string    `json:"missing,omitempty"`
	Revisions []Revision `json:"revisions"`
}

// QueryBody wraps the pages map of a query response.
type QueryBody struct {
	Pages map[string]PageBody `json:"pages"`
}

// QueryResponse is the response envelope for action=query requests.
type QueryResponse struct {
	Continue *Continuation `json:"continue,omitempty"`
	Query    *QueryBody    `json:"query"`
}

// Transport is the interface for executing revision queries. The default
// implementation is Client; tests use the in-memory transports in mock.go.
type Transport interface {
	Revisions(ctx context.Context, q RevisionQuery) (*QueryResponse, error)
}
