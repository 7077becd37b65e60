package wiki

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"wikiplot/internal/core"
)

// Fetcher retrieves the full revision history of a page, walking the
// API's continuation cursor transparently. It holds no state across calls.
type Fetcher struct {
	transport Transport
	limit     int
	throttle  time.Duration
	logger    *log.Logger
}

// FetcherOptions tune batch size and inter-page throttle.
// Zero values select the defaults (500 revisions per page, 200ms pause).
type FetcherOptions struct {
	PageLimit int
	Throttle  time.Duration
}

// NewFetcher creates a fetcher over the given transport.
func NewFetcher(transport Transport, opts FetcherOptions, logger *log.Logger) *Fetcher {
	limit := opts.PageLimit
	if limit <= 0 {
		limit = core.PageLimit
	}
	throttle := opts.Throttle
	if throttle == 0 {
		throttle = core.DefaultThrottleMs * time.Millisecond
	}
	return &Fetcher{
		transport: transport,
		limit:     limit,
		throttle:  throttle,
		logger:    logger,
	}
}

// Walker pages through a single fetch operation one request at a time.
// Termination condition: the response carries no continuation token.
type Walker struct {
	f      *Fetcher
	title  string
	start  string
	cursor *Continuation
	page   int
	done   bool
}

// Walk starts a pagination walk for the given title. If resume is a
// non-empty YYYY-MM-DD date, the first request is floored to the start of
// that day. The resume day itself is re-fetched in full; the cache merge
// reconciles the overlap.
func (f *Fetcher) Walk(title, resume string) *Walker {
	return &Walker{f: f, title: title, start: resume}
}

// Next fetches the next page of revision dates. The second return is false
// once pagination is exhausted. An empty first page with no continuation is
// a valid outcome (page unchanged since the resume point).
func (w *Walker) Next(ctx context.Context) ([]string, bool, error) {
	if w.done {
		return nil, false, nil
	}

	if w.page > 0 && w.f.throttle > 0 {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(w.f.throttle):
		}
	}

	resp, err := w.f.transport.Revisions(ctx, RevisionQuery{
		Title:  w.title,
		Limit:  w.f.limit,
		Start:  w.start,
		Cursor: w.cursor,
	})
	if err != nil {
		return nil, false, err
	}
	w.page++

	body, err := pageOf(resp, w.title)
	if err != nil {
		return nil, false, err
	}

	dates := make([]string, 0, len(body.Revisions))
	for _, rev := range body.Revisions {
		day := core.DayOf(rev.Timestamp)
		if day == "" {
			return nil, false, &MalformedResponseError{
				Reason: "revision timestamp missing or truncated",
			}
		}
		dates = append(dates, day)
	}

	if resp.Continue != nil && resp.Continue.RvContinue != "" {
		w.cursor = resp.Continue
	} else {
		w.done = true
	}

	return dates, true, nil
}

// FetchSince returns the day-truncated date of every revision at or after
// the resume point, in chronological order. An empty resume point fetches
// the whole history.
func (f *Fetcher) FetchSince(ctx context.Context, title, resume string) ([]string, error) {
	w := f.Walk(title, resume)

	var dates []string
	for {
		page, more, err := w.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		dates = append(dates, page...)
		f.logger.Debug("page fetched", "page", w.page, "revisions", len(page), "total", len(dates))
	}

	f.logger.Info("fetch complete", "title", title, "pages", w.page, "revisions", len(dates))
	return dates, nil
}

// pageOf resolves the single page body of a one-title query, surfacing the
// missing-page marker and structural problems.
func pageOf(resp *QueryResponse, title string) (*PageBody, error) {
	if resp == nil || resp.Query == nil || resp.Query.Pages == nil {
		return nil, &MalformedResponseError{Reason: "response missing query.pages"}
	}

	for id, body := range resp.Query.Pages {
		if id == "-1" || body.Missing != nil {
			return nil, &PageNotFoundError{Title: title}
		}
		b := body
		return &b, nil
	}

	return nil, &MalformedResponseError{Reason: "query.pages is empty"}
}
