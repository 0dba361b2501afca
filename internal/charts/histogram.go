package charts

import (
	"fmt"
	"io"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// binGap is the share of a bin's width left blank between neighbors.
const binGap = 0.08

// histSeries draws histogram bins on a continuous loan-amount axis with each
// term's count stacked in absolute units.
type histSeries struct {
	terms []string
	bins  []model.HistogramBin
	style chart.Style
}

// histSegment is one term's rectangle inside one bin, in canvas pixels.
type histSegment struct {
	bin, term                int
	left, right, top, bottom int
}

var _ chart.Series = histSeries{}

func (s histSeries) GetName() string           { return "Count" }
func (s histSeries) GetStyle() chart.Style     { return s.style }
func (s histSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s histSeries) Validate() error           { return nil }

// segments lays out every non-empty term segment, bottom-up in term order.
func (s histSeries) segments(canvas chart.Box, xrange, yrange chart.Range) []histSegment {
	px := func(x float64) int { return canvas.Left + xrange.Translate(x) }
	py := func(y float64) int { return canvas.Bottom - yrange.Translate(y) }

	var out []histSegment
	for i, b := range s.bins {
		gap := (b.Upper - b.Lower) * binGap / 2
		left, right := px(b.Lower+gap), px(b.Upper-gap)
		if right <= left {
			right = left + 1
		}

		stacked := 0
		for j, term := range s.terms {
			n := b.ByTerm[term]
			if n == 0 {
				continue
			}
			out = append(out, histSegment{
				bin:    i,
				term:   j,
				left:   left,
				right:  right,
				bottom: py(float64(stacked)),
				top:    py(float64(stacked + n)),
			})
			stacked += n
		}
	}
	return out
}

// Render fills each segment with its term color.
func (s histSeries) Render(r chart.Renderer, canvas chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.style.InheritFrom(defaults)
	for _, seg := range s.segments(canvas, xrange, yrange) {
		c := termColor(seg.term)
		r.SetFillColor(c)
		r.SetStrokeColor(drawing.ColorWhite)
		r.SetStrokeWidth(style.StrokeWidth)
		r.MoveTo(seg.left, seg.top)
		r.LineTo(seg.right, seg.top)
		r.LineTo(seg.right, seg.bottom)
		r.LineTo(seg.left, seg.bottom)
		r.Close()
		r.FillStroke()
	}
}

func renderHistogram(w io.Writer, p dashboard.Panel, h model.Histogram, opts Options) error {
	peak := 0
	for _, b := range h.Bins {
		peak = max(peak, b.Total())
	}
	if peak == 0 {
		return ErrNoData
	}

	// a tick on every other edge plus the closing edge
	var ticks []chart.Tick
	for i, b := range h.Bins {
		if i%2 == 0 {
			ticks = append(ticks, chart.Tick{Value: b.Lower, Label: cli.FormatCompact(b.Lower)})
		}
	}
	last := h.Bins[len(h.Bins)-1].Upper
	ticks = append(ticks, chart.Tick{Value: last, Label: cli.FormatCompact(last)})

	ch := chart.Chart{
		Title:      p.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis: chart.XAxis{
			Name:  p.XLabel,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           "Count",
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(float64(peak))},
			ValueFormatter: countFormatter,
		},
		Series: []chart.Series{
			histSeries{terms: h.Terms, bins: h.Bins, style: chart.Style{StrokeWidth: 0.5}},
		},
		Elements: []chart.Renderable{termLegend(p.Legend, h.Terms)},
	}
	return ch.Render(opts.Format.provider(), w)
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprint(v)
}
