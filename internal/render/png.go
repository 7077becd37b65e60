package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"wikiplot/internal/core"
	"wikiplot/internal/stats"
)

var (
	barBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255} // steel blue
	barRed  = color.RGBA{R: 220, G: 50, B: 47, A: 204}
	white   = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	grey    = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// PNG writes a per-day bar chart with a logarithmic Y axis to outDir and
// returns the written path. The article URL is rendered as a caption line
// above the totals.
func PNG(sum stats.Summary, pageTitle, pageURL string, logBase float64, outDir string) (string, error) {
	if len(sum.Days) == 0 {
		return "", fmt.Errorf("nothing to plot: no edits recorded")
	}
	if logBase <= 1 {
		logBase = core.DefaultLogBase
	}
	if outDir == "" {
		outDir = core.DefaultPlotDir
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s\nTotal edits: %d | Peak: %s (%d edits) | Red bars = busiest editing days",
		pageURL, sum.Total, sum.PeakDay, sum.PeakCount)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = fmt.Sprintf("Edits per day (log base %g)", logBase)

	p.BackgroundColor = color.Black
	for _, ts := range []*draw.TextStyle{
		&p.Title.TextStyle, &p.X.Label.TextStyle, &p.Y.Label.TextStyle,
		&p.X.Tick.Label, &p.Y.Tick.Label,
	} {
		ts.Color = white
	}
	p.X.LineStyle.Color = grey
	p.Y.LineStyle.Color = grey
	p.X.Tick.LineStyle.Color = grey
	p.Y.Tick.LineStyle.Color = grey

	p.X.Tick.Marker = plot.TimeTicks{Format: "2006"}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = logTicker{base: logBase}

	bars, err := newDayBars(sum)
	if err != nil {
		return "", err
	}
	p.Add(bars)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plot directory: %w", err)
	}

	safe := pageTitle
	for _, r := range []string{" ", "/", "\\"} {
		safe = strings.ReplaceAll(safe, r, "_")
	}
	path := filepath.Join(outDir, safe+"_edit_history.png")

	if err := p.Save(16*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save plot: %w", err)
	}
	return path, nil
}

// dayBars draws one thin vertical bar per day. A dedicated plotter keeps
// the X axis a real time axis, which plotter.BarChart's categorical X
// cannot do.
type dayBars struct {
	xys  plotter.XYs
	peak float64
}

func newDayBars(sum stats.Summary) (*dayBars, error) {
	xys := make(plotter.XYs, 0, len(sum.Days))
	for _, dc := range sum.Days {
		t, err := time.Parse(core.DateFmt, dc.Date)
		if err != nil {
			return nil, fmt.Errorf("bad date in log: %w", err)
		}
		xys = append(xys, plotter.XY{X: float64(t.Unix()), Y: float64(dc.Count)})
	}
	return &dayBars{xys: xys, peak: float64(sum.PeakCount)}, nil
}

// Plot implements plot.Plotter.
func (b *dayBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	y0 := trY(plt.Y.Min)

	for _, xy := range b.xys {
		sty := draw.LineStyle{Color: barBlue, Width: vg.Points(1)}
		if xy.Y > hotThreshold*b.peak {
			sty.Color = barRed
		}
		x := trX(xy.X)
		c.StrokeLine2(sty, x, y0, x, trY(xy.Y))
	}
}

// DataRange implements plot.DataRanger. Y bottoms out at 1 so the log
// scale stays valid and single-edit days remain visible.
func (b *dayBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymax = 1
	for _, xy := range b.xys {
		xmin = math.Min(xmin, xy.X)
		xmax = math.Max(xmax, xy.X)
		ymax = math.Max(ymax, xy.Y)
	}
	const day = 86400
	return xmin - day, xmax + day, 1, ymax
}

// logTicker places major ticks at powers of the configured base.
type logTicker struct {
	base float64
}

// Ticks implements plot.Ticker.
func (t logTicker) Ticks(min, max float64) []plot.Tick {
	if min <= 0 {
		min = 1
	}

	var ticks []plot.Tick
	for v := 1.0; v <= max*t.base; v *= t.base {
		if v >= min {
			label := strconv.FormatFloat(v, 'f', -1, 64)
			ticks = append(ticks, plot.Tick{Value: v, Label: label})
		}
		if v > max {
			break
		}
	}
	return ticks
}
