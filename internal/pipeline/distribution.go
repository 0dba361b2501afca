package pipeline

import (
	"math"
	"sort"

	"github.com/theirongolddev/loandash/internal/model"
)

// DefaultBins is the histogram bin count used by the analysis panel.
const DefaultBins = 20

// whiskerFactor scales the IQR to find the whisker fences.
const whiskerFactor = 1.5

// AggregateHistogram splits the loan-amount range into n equal-width bins and
// counts loans per bin and term. The last bin is closed on both ends.
func AggregateHistogram(loans []model.Loan, n int) model.Histogram {
	h := model.Histogram{Terms: terms(loans)}
	if len(loans) == 0 || n <= 0 {
		return h
	}

	lo, hi := loans[0].LoanAmount, loans[0].LoanAmount
	for _, l := range loans[1:] {
		lo = math.Min(lo, l.LoanAmount)
		hi = math.Max(hi, l.LoanAmount)
	}
	if lo == hi {
		// single value: center one unit-wide range on it
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)

	h.Bins = make([]model.HistogramBin, n)
	for i := range h.Bins {
		h.Bins[i] = model.HistogramBin{
			Lower:  lo + float64(i)*width,
			Upper:  lo + float64(i+1)*width,
			ByTerm: make(map[string]int, len(h.Terms)),
		}
	}
	h.Bins[n-1].Upper = hi

	for _, l := range loans {
		idx := int((l.LoanAmount - lo) / width)
		idx = min(max(idx, 0), n-1)
		h.Bins[idx].ByTerm[l.Term]++
	}
	return h
}

// AggregateBoxPlot computes loan-amount box statistics for every purpose and
// term pair present in loans.
func AggregateBoxPlot(loans []model.Loan) model.BoxPlot {
	type key struct{ purpose, term string }
	groups := make(map[key][]float64)
	purposeSet := make(map[string]struct{})
	for _, l := range loans {
		k := key{l.Purpose, l.Term}
		groups[k] = append(groups[k], l.LoanAmount)
		purposeSet[l.Purpose] = struct{}{}
	}

	bp := model.BoxPlot{Terms: terms(loans)}
	for p := range purposeSet {
		bp.Purposes = append(bp.Purposes, p)
	}
	sort.Strings(bp.Purposes)

	for _, p := range bp.Purposes {
		for _, t := range bp.Terms {
			vals, ok := groups[key{p, t}]
			if !ok {
				continue
			}
			box := BoxStatsOf(vals)
			box.Purpose = p
			box.Term = t
			bp.Boxes = append(bp.Boxes, box)
		}
	}
	return bp
}

// BoxStatsOf computes the five-number summary, 1.5*IQR whiskers and outliers
// of values. Quartiles use linear interpolation between closest ranks.
func BoxStatsOf(values []float64) model.BoxStats {
	if len(values) == 0 {
		return model.BoxStats{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	b := model.BoxStats{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
	}

	iqr := b.Q3 - b.Q1
	lowFence := b.Q1 - whiskerFactor*iqr
	highFence := b.Q3 + whiskerFactor*iqr

	b.LowerWhisker = b.Max
	b.UpperWhisker = b.Min
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.LowerWhisker = math.Min(b.LowerWhisker, v)
		b.UpperWhisker = math.Max(b.UpperWhisker, v)
	}
	return b
}

// Quantile returns the p-quantile of an ascending slice using linear
// interpolation. p is clamped to [0, 1].
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	p = math.Min(math.Max(p, 0), 1)
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func terms(loans []model.Loan) []string {
	set := make(map[string]struct{})
	for _, l := range loans {
		set[l.Term] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
