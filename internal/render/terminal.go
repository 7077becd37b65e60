// Package render draws the edit-activity chart, both in the terminal and
// as a PNG image.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wikiplot/internal/stats"
)

const (
	termBarWidth = 60

	// Buckets above this share of the peak are highlighted as busiest.
	hotThreshold = 0.6
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Underline(true)
	yearStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("74"))  // steel blue
	hotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// Terminal writes a per-year bar chart of edit activity. Bar lengths are
// logarithmic so a 100x difference in activity stays readable; the busiest
// years are highlighted.
func Terminal(w io.Writer, sum stats.Summary, pageURL string, logBase float64) {
	if logBase <= 1 {
		logBase = 10
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(
		"Total edits: %d | Peak: %s (%d edits)", sum.Total, sum.PeakDay, sum.PeakCount)))
	fmt.Fprintln(w, urlStyle.Render(pageURL))
	fmt.Fprintln(w)

	years := sum.ByYear()
	if len(years) == 0 {
		fmt.Fprintln(w, "No edits recorded.")
		return
	}

	maxCount := 0
	for _, yc := range years {
		if yc.Count > maxCount {
			maxCount = yc.Count
		}
	}

	logOf := func(n int) float64 {
		return math.Log(float64(n)+1) / math.Log(logBase)
	}
	maxLog := logOf(maxCount)

	for _, yc := range years {
		width := 1
		if maxLog > 0 {
			width = int(math.Round(logOf(yc.Count) / maxLog * termBarWidth))
			if width < 1 {
				width = 1
			}
		}

		bar := strings.Repeat("█", width)
		style := barStyle
		if float64(yc.Count) > hotThreshold*float64(maxCount) {
			style = hotStyle
		}

		fmt.Fprintf(w, "%s %s %s\n",
			yearStyle.Render(yc.Year),
			style.Render(bar),
			countStyle.Render(fmt.Sprintf("%d", yc.Count)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, yearStyle.Render(fmt.Sprintf(
		"bar length = log base %g of yearly edits; red = busiest years", logBase)))
}
