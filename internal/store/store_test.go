package store

import (
	"io"
	"sort"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiplot/internal/page"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func mustPage(t *testing.T, input string) page.Identity {
	t.Helper()
	id, err := page.Parse(input)
	require.NoError(t, err)
	return id
}

func TestResumePoint(t *testing.T) {
	assert.Equal(t, "", ResumePoint(nil))
	assert.Equal(t, "", ResumePoint([]string{}))
	assert.Equal(t, "2024-06-01", ResumePoint([]string{"2024-01-01", "2024-06-01"}))
}

func TestMergeIntoEmptyCache(t *testing.T) {
	fetched := []string{"2021-01-01", "2021-01-01", "2021-02-03"}

	merged, added := Merge(nil, fetched)

	assert.Equal(t, fetched, merged)
	assert.Equal(t, 3, added)
}

func TestMergeEmptyDeltaIsReferenceStable(t *testing.T) {
	cached := []string{"2021-01-01", "2021-02-03"}

	merged, added := Merge(cached, nil)

	assert.Equal(t, 0, added)
	// Same slice, not a copy: no persist churn for a no-op refresh.
	assert.Same(t, &cached[0], &merged[0])
	assert.Len(t, merged, 2)
}

func TestMergeBoundaryDayOverlap(t *testing.T) {
	// Cache ends mid-way through 2024-06-01 (2 edits cached that day).
	cached := []string{"2024-05-10", "2024-06-01", "2024-06-01"}

	// Refresh from the resume day returns the full day (3 edits now) plus
	// a later day.
	fetched := []string{"2024-06-01", "2024-06-01", "2024-06-01", "2024-06-05"}

	merged, added := Merge(cached, fetched)

	assert.Equal(t, []string{"2024-05-10", "2024-06-01", "2024-06-01", "2024-06-01", "2024-06-05"}, merged)
	assert.Equal(t, 2, added)
}

func TestMergeIdempotentReFetch(t *testing.T) {
	// Refreshing with no new underlying revisions must not grow or
	// shrink the log, however many times it runs.
	cached := []string{"2024-05-10", "2024-06-01", "2024-06-01"}

	for i := 0; i < 3; i++ {
		refetch := []string{"2024-06-01", "2024-06-01"} // the full resume day
		merged, added := Merge(cached, refetch)

		assert.Equal(t, []string{"2024-05-10", "2024-06-01", "2024-06-01"}, merged)
		assert.Equal(t, 0, added)
		cached = merged
	}
}

func TestMergeDropsOutOfOrderOldDates(t *testing.T) {
	cached := []string{"2024-05-10", "2024-06-01"}
	fetched := []string{"2024-04-01", "2024-06-01", "2024-06-02"}

	merged, added := Merge(cached, fetched)

	assert.Equal(t, []string{"2024-05-10", "2024-06-01", "2024-06-02"}, merged)
	assert.Equal(t, 1, added)
}

func TestMergeAllFetchedPredateResume(t *testing.T) {
	cached := []string{"2024-05-10", "2024-06-01"}
	fetched := []string{"2024-01-01", "2024-02-01"}

	merged, added := Merge(cached, fetched)

	assert.Equal(t, cached, merged)
	assert.Equal(t, 0, added)
}

func TestMergeResultAlwaysSorted(t *testing.T) {
	cases := []struct {
		cached  []string
		fetched []string
	}{
		{nil, []string{"2020-01-01", "2020-01-02"}},
		{[]string{"2020-01-01"}, []string{"2020-01-01", "2020-03-01"}},
		{[]string{"2019-12-31", "2020-01-01", "2020-01-01"}, []string{"2020-01-01", "2021-06-15"}},
		{[]string{"2020-01-01"}, nil},
	}

	for _, tc := range cases {
		merged, _ := Merge(tc.cached, tc.fetched)
		assert.True(t, sort.StringsAreSorted(merged), "cached=%v fetched=%v merged=%v", tc.cached, tc.fetched, merged)
	}
}

func TestLoadMissingCache(t *testing.T) {
	s := New(NewMemoryBackend(), testLogger())

	dates := s.Load(mustPage(t, "Fresh Article"))

	assert.Empty(t, dates)
}

func TestLoadUnreadableCacheDegradesToEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	id := mustPage(t, "Broken Article")
	backend.Seed(&Entry{Key: id.Key(), Page: id.Title(), Dates: []string{"2020-01-01"}})
	backend.FailReads = true

	s := New(backend, testLogger())

	assert.Empty(t, s.Load(id))
}

func TestLoadInvalidDatesStartsFresh(t *testing.T) {
	// A parseable record with garbage entries must reset to empty, not
	// hand short strings downstream where year truncation would blow up.
	cases := [][]string{
		{"x"},
		{"2020-01-01", "202"},
		{"2020-13-40"},
		{"2020-01-01", "not a date", "2020-02-01"},
	}

	for _, dates := range cases {
		backend := NewMemoryBackend()
		id := mustPage(t, "Garbage Article")
		backend.Seed(&Entry{Key: id.Key(), Dates: dates})

		s := New(backend, testLogger())

		assert.Empty(t, s.Load(id), "dates=%v", dates)
	}
}

func TestLoadSortsLegacyUnsortedDates(t *testing.T) {
	backend := NewMemoryBackend()
	id := mustPage(t, "Shuffled Article")
	backend.Seed(&Entry{Key: id.Key(), Dates: []string{"2020-02-01", "2020-01-01"}})

	s := New(backend, testLogger())

	assert.Equal(t, []string{"2020-01-01", "2020-02-01"}, s.Load(id))
}

func TestPersistRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend, testLogger())
	id := mustPage(t, "Some Article")

	require.NoError(t, s.Persist(id, []string{"2020-01-01", "2020-01-01", "2020-02-01"}))

	assert.Equal(t, []string{"2020-01-01", "2020-01-01", "2020-02-01"}, s.Load(id))
	assert.Equal(t, 1, backend.Writes)
}

func TestPersistFailureSurfacesStorageWriteError(t *testing.T) {
	backend := NewMemoryBackend()
	backend.FailWrites = true
	s := New(backend, testLogger())
	id := mustPage(t, "Some Article")

	err := s.Persist(id, []string{"2020-01-01"})

	var swe *StorageWriteError
	require.ErrorAs(t, err, &swe)
}

func TestLargeCacheZeroNewRevisions(t *testing.T) {
	// A big cached log plus an empty refresh is a valid no-op run.
	cached := make([]string, 0, 6034)
	day := 0
	for len(cached) < 6034 {
		date := "2024-0" + string(rune('1'+day%5)) + "-15"
		cached = append(cached, date)
		day++
	}
	sort.Strings(cached)

	merged, added := Merge(cached, nil)

	assert.Len(t, merged, 6034)
	assert.Equal(t, 0, added)
}

func TestClearRemovesRecord(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend, testLogger())
	id := mustPage(t, "Doomed Article")

	require.NoError(t, s.Persist(id, []string{"2020-01-01"}))
	require.NoError(t, s.Clear(id))

	assert.Empty(t, s.Load(id))
}
