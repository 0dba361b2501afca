package charts

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
)

func testDashboard(t *testing.T, condition string) dashboard.Dashboard {
	t.Helper()
	start := time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)
	purposes := []string{"car", "credit card", "debt consolidation"}
	terms := []string{"36 months", "60 months"}

	var loans []model.Loan
	for i := 0; i < 60; i++ {
		day := start.AddDate(0, 0, i%10)
		cond := model.GoodLoan
		if i%4 == 0 {
			cond = model.BadLoan
		}
		loans = append(loans, model.Loan{
			ID:            strings.Repeat("x", i%3+1),
			LoanAmount:    float64(1000 + i*250),
			InterestRate:  6 + float64(i%10),
			IssueDate:     day,
			IssueWeekday:  day.Weekday().String(),
			Purpose:       purposes[i%len(purposes)],
			Grade:         string(rune('A' + i%5)),
			Term:          terms[i%len(terms)],
			LoanCondition: cond,
		})
	}

	d, err := dashboard.Build(loans, condition)
	require.NoError(t, err)
	return d
}

func TestRenderEveryPanelSVG(t *testing.T) {
	d := testDashboard(t, model.GoodLoan)
	opts := Options{Format: SVG, Width: 800, Height: 400}

	for _, p := range dashboard.Panels {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, d, p.ID, opts), p.ID)
		assert.Contains(t, buf.String(), "<svg", p.ID)
	}
}

func TestRenderPNG(t *testing.T) {
	d := testDashboard(t, model.BadLoan)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, dashboard.PanelBoxPlot, DefaultOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderSingleDate(t *testing.T) {
	d := testDashboard(t, model.GoodLoan)
	d.ByDate = d.ByDate[:1]

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, d, dashboard.PanelIssued, Options{Format: SVG}))
}

func TestRenderNoAnalysisData(t *testing.T) {
	d := testDashboard(t, model.GoodLoan)
	d.Histogram = model.Histogram{}
	d.BoxPlot = model.BoxPlot{}

	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, d, dashboard.PanelHistogram, Options{}), ErrNoData)
	assert.ErrorIs(t, Render(&buf, d, dashboard.PanelBoxPlot, Options{}), ErrNoData)
}

func TestRenderUnknownPanel(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, dashboard.Dashboard{}, "pie", Options{})
	assert.ErrorIs(t, err, ErrUnknownPanel)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "issued.png", FileName(dashboard.PanelIssued, model.GoodLoan, PNG))
	assert.Equal(t, "boxplot-bad-loan.svg", FileName(dashboard.PanelBoxPlot, model.BadLoan, SVG))
}

func TestExportWritesAllPanels(t *testing.T) {
	d := testDashboard(t, model.GoodLoan)
	dir := filepath.Join(t.TempDir(), "out")

	res, err := Export(dir, d, Options{Format: SVG, Width: 640, Height: 320})
	require.NoError(t, err)
	assert.Len(t, res.Files, len(dashboard.Panels))
	assert.Empty(t, res.Skipped)

	for _, f := range res.Files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func binHeights(segs []histSegment) map[int]int {
	top := map[int]int{}
	bottom := map[int]int{}
	for _, s := range segs {
		if t, ok := top[s.bin]; !ok || s.top < t {
			top[s.bin] = s.top
		}
		bottom[s.bin] = max(bottom[s.bin], s.bottom)
	}
	heights := make(map[int]int, len(top))
	for bin, t := range top {
		heights[bin] = bottom[bin] - t
	}
	return heights
}

func TestHistogramBarsScaleWithCount(t *testing.T) {
	day := time.Date(2015, 3, 2, 0, 0, 0, 0, time.UTC)
	loan := func(amount float64, term string) model.Loan {
		return model.Loan{
			ID: "1", LoanAmount: amount, InterestRate: 7, IssueDate: day,
			IssueWeekday: "Monday", Purpose: "car", Grade: "A", Term: term,
			LoanCondition: model.GoodLoan,
		}
	}
	loans := []model.Loan{loan(100, "36 months")}
	for i := 0; i < 10; i++ {
		term := "36 months"
		if i%2 == 1 {
			term = "60 months"
		}
		loans = append(loans, loan(1000, term))
	}
	d, err := dashboard.Build(loans, model.GoodLoan)
	require.NoError(t, err)

	h := d.Histogram
	require.Len(t, h.Bins, 20)
	require.Equal(t, 1, h.Bins[0].Total())
	require.Equal(t, 10, h.Bins[19].Total())

	s := histSeries{terms: h.Terms, bins: h.Bins}
	canvas := chart.Box{Top: 0, Left: 0, Right: 800, Bottom: 330}
	xr := &chart.ContinuousRange{Min: h.Bins[0].Lower, Max: h.Bins[19].Upper, Domain: 800}
	yr := &chart.ContinuousRange{Min: 0, Max: 11, Domain: 330}

	heights := binHeights(s.segments(canvas, xr, yr))
	require.Len(t, heights, 2)
	assert.Greater(t, heights[19], heights[0]*5)
	assert.InDelta(t, 300, heights[19], 2)
	assert.InDelta(t, 30, heights[0], 2)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, dashboard.PanelHistogram, Options{Format: SVG, Width: 800, Height: 400}))
	assert.Contains(t, buf.String(), "Count")
}

func TestHistogramSegmentsStackTerms(t *testing.T) {
	s := histSeries{
		terms: []string{"36 months", "60 months"},
		bins: []model.HistogramBin{
			{Lower: 0, Upper: 10, ByTerm: map[string]int{"36 months": 2, "60 months": 3}},
		},
	}
	canvas := chart.Box{Right: 100, Bottom: 100}
	xr := &chart.ContinuousRange{Min: 0, Max: 10, Domain: 100}
	yr := &chart.ContinuousRange{Min: 0, Max: 5, Domain: 100}

	segs := s.segments(canvas, xr, yr)
	require.Len(t, segs, 2)
	assert.Equal(t, 100, segs[0].bottom)
	assert.Equal(t, segs[0].top, segs[1].bottom)
	assert.Equal(t, 0, segs[1].top)
}
