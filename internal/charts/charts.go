// Package charts renders dashboard panels to PNG or SVG with go-chart.
package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNoData is returned for a panel with nothing to plot, e.g. the
	// analysis panels when no loan matches the selected condition.
	ErrNoData = errors.New("charts: no data to plot")
	// ErrUnknownPanel is returned for a panel id Render does not know.
	ErrUnknownPanel = errors.New("charts: unknown panel")
	// ErrUnknownFormat is returned by ParseFormat.
	ErrUnknownFormat = errors.New("charts: unknown image format")
)

// Format is an output image encoding.
type Format string

// Supported formats.
const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat maps "png" or "svg" (any case) to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options controls the rendered image.
type Options struct {
	Format Format
	Width  int
	Height int
}

// DefaultOptions returns a 1024x400 PNG.
func DefaultOptions() Options {
	return Options{Format: PNG, Width: 1024, Height: 400}
}

func (o Options) normalized() Options {
	if o.Format == "" {
		o.Format = PNG
	}
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	return o
}

// Flexoki accents, one per term series.
var palette = []drawing.Color{
	drawing.ColorFromHex("4385BE"),
	drawing.ColorFromHex("DA702C"),
	drawing.ColorFromHex("879A39"),
	drawing.ColorFromHex("8B7EC8"),
	drawing.ColorFromHex("D0A215"),
	drawing.ColorFromHex("CE5D97"),
}

var (
	colorLine = drawing.ColorFromHex("3AA99F")
	colorBar  = drawing.ColorFromHex("4385BE")
	colorText = drawing.ColorFromHex("403E3C")
)

func termColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// Render draws one panel of d to w.
func Render(w io.Writer, d dashboard.Dashboard, id dashboard.PanelID, opts Options) error {
	opts = opts.normalized()
	panel, ok := dashboard.LookupPanel(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}

	switch id {
	case dashboard.PanelIssued:
		return renderDateLine(w, panel, d.ByDate, func(ds model.DateStats) float64 { return float64(ds.Count) }, opts)
	case dashboard.PanelAmount:
		return renderDateLine(w, panel, d.ByDate, func(ds model.DateStats) float64 { return ds.Amount }, opts)
	case dashboard.PanelWeekday:
		return renderCategoryBars(w, panel, d.ByWeekday, opts)
	case dashboard.PanelCondition:
		return renderDonut(w, panel, d.Conditions, opts)
	case dashboard.PanelGrade:
		return renderCategoryBars(w, panel, d.Grades, opts)
	case dashboard.PanelHistogram:
		return renderHistogram(w, panel, d.Histogram, opts)
	case dashboard.PanelBoxPlot:
		return renderBoxPlot(w, panel, d.BoxPlot, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownPanel, id)
}

func renderDateLine(w io.Writer, p dashboard.Panel, days []model.DateStats, value func(model.DateStats) float64, opts Options) error {
	if len(days) == 0 {
		return ErrNoData
	}

	xs := make([]time.Time, len(days))
	ys := make([]float64, len(days))
	peak := 0.0
	for i, ds := range days {
		xs[i] = ds.Date
		ys[i] = value(ds)
		peak = math.Max(peak, ys[i])
	}
	// go-chart needs a non-zero x range
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      p.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis: chart.XAxis{
			Name:           p.XLabel,
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           p.YLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(peak)},
			ValueFormatter: compactFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    p.YLabel,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: colorLine,
					StrokeWidth: 2,
					DotColor:    colorLine,
					DotWidth:    3,
				},
			},
		},
	}
	return ch.Render(opts.Format.provider(), w)
}

func renderCategoryBars(w io.Writer, p dashboard.Panel, counts []model.CategoryCount, opts Options) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(counts))
	peak := 0.0
	for i, c := range counts {
		bars[i] = chart.Value{
			Label: c.Label,
			Value: float64(c.Count),
			Style: chart.Style{FillColor: colorBar, StrokeColor: colorBar},
		}
		peak = math.Max(peak, float64(c.Count))
	}

	spacing := 12
	barWidth := max((opts.Width-120)/len(bars)-spacing, 4)

	bc := chart.BarChart{
		Title:      p.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Name:           p.YLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(peak)},
			ValueFormatter: compactFormatter,
		},
		Bars: bars,
	}
	return bc.Render(opts.Format.provider(), w)
}

func renderDonut(w io.Writer, p dashboard.Panel, shares []model.ConditionShare, opts Options) error {
	values := make([]chart.Value, 0, len(shares))
	for i, s := range shares {
		if s.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s (%s)", s.Condition, cli.FormatPercent(s.Percent), cli.FormatCount(s.Count)),
			Value: float64(s.Count),
			Style: chart.Style{FillColor: termColor(i)},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	dc := chart.DonutChart{
		Title:      p.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		Values:     values,
	}
	return dc.Render(opts.Format.provider(), w)
}

// termLegend draws a one-line "Title: ■ a ■ b" legend in the top-left corner.
func termLegend(title string, terms []string) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		r.SetFont(defaults.Font)
		r.SetFontSize(10)
		r.SetFontColor(colorText)

		x := canvas.Left + 8
		y := canvas.Top + 12
		if title != "" {
			label := title + ":"
			r.Text(label, x, y)
			x += r.MeasureText(label).Width() + 8
		}

		for i, term := range terms {
			c := termColor(i)
			r.SetFillColor(c)
			r.SetStrokeColor(c)
			r.SetStrokeWidth(1)
			r.MoveTo(x, y-9)
			r.LineTo(x+9, y-9)
			r.LineTo(x+9, y)
			r.LineTo(x, y)
			r.Close()
			r.FillStroke()

			x += 13
			r.SetFontColor(colorText)
			r.Text(term, x, y)
			x += r.MeasureText(term).Width() + 12
		}
	}
}

func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func compactFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return cli.FormatCompact(f)
	}
	return fmt.Sprint(v)
}
