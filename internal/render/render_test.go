package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiplot/internal/stats"
)

func sampleSummary() stats.Summary {
	return stats.Aggregate([]string{
		"2020-01-01", "2020-01-01", "2020-01-01", "2020-01-01",
		"2021-06-15",
		"2023-03-03", "2023-03-03",
	})
}

func TestTerminalOutput(t *testing.T) {
	var buf bytes.Buffer

	Terminal(&buf, sampleSummary(), "https://en.wikipedia.org/wiki/Sample", 10)

	out := buf.String()
	assert.Contains(t, out, "Total edits: 7")
	assert.Contains(t, out, "Peak: 2020-01-01 (4 edits)")
	assert.Contains(t, out, "https://en.wikipedia.org/wiki/Sample")
	assert.Contains(t, out, "2020")
	assert.Contains(t, out, "2021")
	assert.Contains(t, out, "2023")
}

func TestTerminalEmptyLog(t *testing.T) {
	var buf bytes.Buffer

	Terminal(&buf, stats.Aggregate(nil), "https://en.wikipedia.org/wiki/Empty", 10)

	assert.Contains(t, buf.String(), "No edits recorded.")
}

func TestPNGWritesFile(t *testing.T) {
	dir := t.TempDir()

	path, err := PNG(sampleSummary(), "Sample Page", "https://en.wikipedia.org/wiki/Sample_Page", 10, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Sample_Page_edit_history.png"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPNGEmptyLog(t *testing.T) {
	_, err := PNG(stats.Aggregate(nil), "Empty", "https://en.wikipedia.org/wiki/Empty", 10, t.TempDir())
	assert.Error(t, err)
}

func TestLogTickerPowersOfBase(t *testing.T) {
	ticks := logTicker{base: 10}.Ticks(1, 1500)

	var values []float64
	for _, tick := range ticks {
		values = append(values, tick.Value)
	}
	assert.Equal(t, []float64{1, 10, 100, 1000, 10000}, values)
}

func TestLogTickerBaseTwo(t *testing.T) {
	ticks := logTicker{base: 2}.Ticks(1, 9)

	var values []float64
	for _, tick := range ticks {
		values = append(values, tick.Value)
	}
	assert.Equal(t, []float64{1, 2, 4, 8, 16}, values)
}
