// Package store owns the persisted revision-date log for each page and the
// incremental merge of freshly fetched dates into it.
//
// # Cache Record Structure
//
// Each record holds the page's canonical title, the full ordered list of
// per-revision dates (one entry per revision; a day with 5 edits appears 5
// times), and the date the record was last refreshed:
//
//	{
//	  "page": "Albert_Einstein",
//	  "fetched_on": "2024-06-01",
//	  "dates": ["2001-11-01", "2001-11-01", "2001-11-02", ...]
//	}
//
// Older caches stored a bare JSON array of date strings; the filesystem
// backend still reads that form.
//
// # Merge Policy
//
// Resume points have day granularity, so a refresh re-fetches the resume
// day from its start. The fetched sequence is therefore authoritative for
// every date at or after the resume point: merge keeps cached entries
// strictly before the resume date and appends the fetched entries from
// there. Re-running a fetch with no new underlying revisions reproduces
// the exact same multiset of dates.
package store

import "fmt"

// Entry is one page's cached revision-date log.
type Entry struct {
	Key       string   `json:"-"`
	Page      string   `json:"page"`
	FetchedOn string   `json:"fetched_on"`
	Dates     []string `json:"dates"`
}

// Backend is the interface for cache storage backends. Implementations:
// FilesystemBackend (JSON files), SQLiteBackend, MemoryBackend (tests).
type Backend interface {
	// Read returns the cached entry for the key, or (nil, nil) when no
	// record exists. A non-nil error means the record exists but could
	// not be read; callers treat that as "start fresh".
	Read(key string) (*Entry, error)

	// Write persists the entry all-or-nothing. Failures are reported as
	// *StorageWriteError.
	Write(entry *Entry) error

	// Delete removes the record for the key, if any. Used only by
	// explicit cache invalidation, never by the fetch path.
	Delete(key string) error

	// Path returns where the key's record lives (for diagnostics).
	Path(key string) string
}

// StorageWriteError is returned when persisting a cache record fails.
// Non-fatal to the current run: the in-memory merged log stays usable.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write cache %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
