package store

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"wikiplot/internal/core"
	"wikiplot/internal/page"
)

// Store owns a page's persisted revision-date log: loading it, computing
// the resume point for the next fetch, merging fetched dates in, and
// persisting the result.
type Store struct {
	backend Backend
	logger  *log.Logger
}

// New creates a store over the given backend. A nil backend selects the
// default filesystem backend.
func New(backend Backend, logger *log.Logger) *Store {
	if backend == nil {
		backend = NewFilesystemBackend("")
	}
	return &Store{backend: backend, logger: logger}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Load returns the cached date log for the page. A missing, unreadable,
// or malformed cache degrades to an empty log; the latter two are logged
// as warnings. Load never fails.
func (s *Store) Load(id page.Identity) []string {
	entry, err := s.backend.Read(id.Key())
	if err != nil {
		s.logger.Warn("cache unreadable, starting fresh", "page", id.Display(), "err", err)
		return nil
	}
	if entry == nil {
		return nil
	}

	dates := entry.Dates
	for _, d := range dates {
		if !core.IsDate(d) {
			s.logger.Warn("cache contains invalid dates, starting fresh", "page", id.Display(), "entry", d)
			return nil
		}
	}
	if !sort.StringsAreSorted(dates) {
		dates = append([]string(nil), dates...)
		sort.Strings(dates)
	}
	return dates
}

// ResumePoint returns the latest date in the log, or "" when it is empty.
func ResumePoint(dates []string) string {
	if len(dates) == 0 {
		return ""
	}
	return dates[len(dates)-1]
}

// Merge folds freshly fetched dates into the cached log and reports how
// many entries the log grew by.
//
// The fetch re-covers the resume day from start-of-day, so fetched is
// authoritative for every date at or after the resume point: cached
// entries from the resume day on are replaced by the fetched ones, and any
// fetched date before the resume point (out-of-order responses) is
// dropped. An empty fetched sequence returns cached unchanged, same slice.
func Merge(cached, fetched []string) ([]string, int) {
	if len(fetched) == 0 {
		return cached, 0
	}

	resume := ResumePoint(cached)
	if resume == "" {
		return fetched, len(fetched)
	}

	// First cached index on the resume day; everything before it is
	// outside the re-fetched window and kept verbatim.
	cut := sort.SearchStrings(cached, resume)

	merged := make([]string, 0, cut+len(fetched))
	merged = append(merged, cached[:cut]...)
	kept := 0
	for _, d := range fetched {
		if d < resume {
			continue
		}
		merged = append(merged, d)
		kept++
	}
	if kept == 0 {
		// Every fetched date predated the resume point, which a sane
		// response never produces. Keep the cached log intact.
		return cached, 0
	}

	return merged, len(merged) - len(cached)
}

// Persist writes the merged log for the page. On failure the in-memory
// log remains valid for the current run; the caller surfaces the warning.
func (s *Store) Persist(id page.Identity, dates []string) error {
	entry := &Entry{
		Key:       id.Key(),
		Page:      id.Title(),
		FetchedOn: core.FormatDate(time.Now().UTC()),
		Dates:     dates,
	}
	return s.backend.Write(entry)
}

// Clear removes the page's cached log. Only invoked by explicit user
// request; the fetch path never deletes.
func (s *Store) Clear(id page.Identity) error {
	return s.backend.Delete(id.Key())
}
