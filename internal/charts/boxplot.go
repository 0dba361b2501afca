package charts

import (
	"io"
	"math"

	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// boxSlot is the share of one purpose slot covered by its boxes.
const boxSlot = 0.8

// boxSeries draws the boxes of one term across all purposes. Purpose i sits
// at x = i on a continuous axis; each term gets its own lane inside the slot.
type boxSeries struct {
	name  string
	style chart.Style
	lane  int
	lanes int
	boxes []positionedBox
}

type positionedBox struct {
	x   float64
	box model.BoxStats
}

var _ chart.Series = boxSeries{}

func (s boxSeries) GetName() string           { return s.name }
func (s boxSeries) GetStyle() chart.Style     { return s.style }
func (s boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s boxSeries) Validate() error           { return nil }

// Render draws each box, its whiskers and outlier marks.
func (s boxSeries) Render(r chart.Renderer, canvas chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.style.InheritFrom(defaults)
	laneWidth := boxSlot / float64(s.lanes)

	px := func(x float64) int { return canvas.Left + xrange.Translate(x) }
	py := func(y float64) int { return canvas.Bottom - yrange.Translate(y) }

	for _, pb := range s.boxes {
		b := pb.box
		left := pb.x - boxSlot/2 + float64(s.lane)*laneWidth + laneWidth*0.1
		right := left + laneWidth*0.8
		mid := (left + right) / 2

		l, rt, m := px(left), px(right), px(mid)
		q1, q3, med := py(b.Q1), py(b.Q3), py(b.Median)
		lo, hi := py(b.LowerWhisker), py(b.UpperWhisker)

		// box
		r.SetFillColor(style.FillColor)
		r.SetStrokeColor(style.StrokeColor)
		r.SetStrokeWidth(style.StrokeWidth)
		r.MoveTo(l, q3)
		r.LineTo(rt, q3)
		r.LineTo(rt, q1)
		r.LineTo(l, q1)
		r.Close()
		r.FillStroke()

		r.SetStrokeColor(style.StrokeColor)
		r.SetStrokeWidth(style.StrokeWidth)

		// median
		r.MoveTo(l, med)
		r.LineTo(rt, med)
		r.Stroke()

		// whiskers with caps
		capHalf := (rt - l) / 4
		r.MoveTo(m, q3)
		r.LineTo(m, hi)
		r.Stroke()
		r.MoveTo(m-capHalf, hi)
		r.LineTo(m+capHalf, hi)
		r.Stroke()
		r.MoveTo(m, q1)
		r.LineTo(m, lo)
		r.Stroke()
		r.MoveTo(m-capHalf, lo)
		r.LineTo(m+capHalf, lo)
		r.Stroke()

		// outliers as small crosses
		for _, o := range b.Outliers {
			oy := py(o)
			r.MoveTo(m-3, oy-3)
			r.LineTo(m+3, oy+3)
			r.Stroke()
			r.MoveTo(m-3, oy+3)
			r.LineTo(m+3, oy-3)
			r.Stroke()
		}
	}
}

func renderBoxPlot(w io.Writer, p dashboard.Panel, bp model.BoxPlot, opts Options) error {
	if len(bp.Boxes) == 0 {
		return ErrNoData
	}

	purposeX := make(map[string]float64, len(bp.Purposes))
	ticks := make([]chart.Tick, len(bp.Purposes))
	for i, purpose := range bp.Purposes {
		purposeX[purpose] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: purpose}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range bp.Boxes {
		lo = math.Min(lo, b.Min)
		hi = math.Max(hi, b.Max)
	}
	if lo == hi {
		lo--
		hi++
	}
	pad := (hi - lo) * 0.05

	series := make([]chart.Series, 0, len(bp.Terms))
	for i, term := range bp.Terms {
		s := boxSeries{
			name:  term,
			lane:  i,
			lanes: len(bp.Terms),
			style: chart.Style{
				StrokeColor: termColor(i),
				StrokeWidth: 1.5,
				FillColor:   termColor(i).WithAlpha(90),
			},
		}
		for _, b := range bp.Boxes {
			if b.Term == term {
				s.boxes = append(s.boxes, positionedBox{x: purposeX[b.Purpose], box: b})
			}
		}
		series = append(series, s)
	}

	ch := chart.Chart{
		Title:      p.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 64}},
		XAxis: chart.XAxis{
			Name:  p.XLabel,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(bp.Purposes)) - 0.5},
			Ticks: ticks,
			TickStyle: chart.Style{
				TextRotationDegrees: 30,
			},
		},
		YAxis: chart.YAxis{
			Name:           p.YLabel,
			Range:          &chart.ContinuousRange{Min: math.Max(0, lo-pad), Max: hi + pad},
			ValueFormatter: compactFormatter,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{FontColor: drawing.ColorFromHex("403E3C")})}
	return ch.Render(opts.Format.provider(), w)
}
