package timebin

import (
	"fmt"
	"math"
	"sort"

	"github.com/astrata-io/binseries/chrono"
	"github.com/astrata-io/binseries/internal/options"
	"github.com/astrata-io/binseries/masked"
	"github.com/astrata-io/binseries/reduce"
	"github.com/astrata-io/binseries/series"
)

// Downsample aggregates the rows of ts into time bins and returns a binned
// series with one row per bin and one aggregated column per source column.
//
// The bins are described through options in any of the supported
// combinations of WithBinStart/WithBinStarts, WithBinEnd/WithBinEnds,
// WithBinSize/WithBinSizes and WithNumBins; see resolveBins for the exact
// rules. An unsupported combination fails synchronously with
// ErrAmbiguousBinSpec and no partial result.
//
// Each aggregated column preserves the flavor of its source column, except
// that plain columns are promoted to masked ones so that bins that received
// no valid rows can be reported as masked. Bin widths are never negative;
// zero-width bins are valid and cover a single instant.
//
// Overlapping bins are legal: the overlap region is double-counted by
// design, and a single warning per call is sent to the handler configured
// with WithWarningHandler.
//
// Parameters:
//   - ts: source series; rows may be in any time order
//   - opts: bin specification, aggregation and warning options
//
// Returns:
//   - *series.BinnedTimeSeries: freshly built result, immutable once returned
//   - error: ErrInvalidTimeSeries, ErrInvalidBinSize, ErrInvalidNumBins,
//     ErrAmbiguousBinSpec, ErrInvalidBinEdges or ErrEmptySeries
func Downsample(ts *series.TimeSeries, opts ...Option) (*series.BinnedTimeSeries, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w, got nil", ErrInvalidTimeSeries)
	}

	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	starts, ends, err := resolveBins(cfg, ts.Time())
	if err != nil {
		return nil, err
	}

	binned, err := series.NewBinnedTimeSeries(starts, ends)
	if err != nil {
		return nil, err
	}

	contiguous, overlapping := classifyBins(starts, ends)
	if overlapping {
		cfg.warn(overlapWarning)
	}

	// All comparisons below happen on numeric offsets from a fixed base so
	// that sub-microsecond distinctions survive multi-year spans.
	var base chrono.Time
	switch {
	case ts.Len() > 0:
		base = ts.Time()[0]
	case len(starts) > 0:
		base = starts[0]
	}

	order, sortedRel := sortByTime(ts.Time(), base)
	relStarts := relativeTimes(starts, base)
	relEnds := relativeTimes(ends, base)

	if contiguous {
		return binned, addContiguousColumns(binned, ts, cfg, order, sortedRel, relStarts, relEnds)
	}

	return binned, addExplicitColumns(binned, ts, cfg, order, sortedRel, relStarts, relEnds)
}

// classifyBins reports whether consecutive bins are exactly contiguous
// (every end equals the next start, enabling binary-search assignment) and
// whether any bin overlaps the next one.
func classifyBins(starts, ends []chrono.Time) (contiguous, overlapping bool) {
	contiguous = true
	for k := 0; k+1 < len(starts); k++ {
		switch c := ends[k].Compare(starts[k+1]); {
		case c > 0:
			overlapping = true
			contiguous = false
		case c < 0:
			contiguous = false
		}
	}

	return contiguous, overlapping
}

// sortByTime returns a stable time-ordered permutation of row indices plus
// the row times in that order, as relative seconds.
func sortByTime(times []chrono.Time, base chrono.Time) (order []int, sortedRel []float64) {
	rel := make([]float64, len(times))
	order = make([]int, len(times))
	for i, t := range times {
		rel[i] = t.RelativeSeconds(base)
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return rel[order[a]] < rel[order[b]]
	})

	sortedRel = make([]float64, len(times))
	for i, idx := range order {
		sortedRel[i] = rel[idx]
	}

	return order, sortedRel
}

func relativeTimes(times []chrono.Time, base chrono.Time) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = t.RelativeSeconds(base)
	}

	return out
}

// addContiguousColumns aggregates every column through the segmented
// reducer. Rows are assigned half-open, by binary search over the bin
// starts; rows at the final bin end are kept, so the last bin is closed on
// both sides.
func addContiguousColumns(binned *series.BinnedTimeSeries, ts *series.TimeSeries, cfg *config,
	order []int, sortedRel, relStarts, relEnds []float64,
) error {
	nBins := len(relStarts)

	hi := 0
	boundaries := make([]int, nBins)
	if nBins > 0 {
		last := relEnds[nBins-1]
		hi = sort.Search(len(sortedRel), func(i int) bool { return sortedRel[i] > last })
		for k, rs := range relStarts {
			boundaries[k] = sort.SearchFloat64s(sortedRel[:hi], rs)
		}
	}

	counts := make([]int, nBins)
	for k := range counts {
		stop := hi
		if k+1 < nBins {
			stop = boundaries[k+1]
		}
		if stop > boundaries[k] {
			counts[k] = stop - boundaries[k]
		}
	}

	for _, name := range ts.ColumnNames() {
		src := ts.Column(name)
		values, mask := permuteColumn(src, order, hi)
		working := src.WithValues(values, mask)

		var reduced masked.Column
		if cfg.aggregate == nil {
			reduced = reduce.NanMeanReduceat(working, boundaries)
		} else {
			reduced = reduce.Reduceat(working, boundaries, cfg.aggregate)
		}

		if err := binned.AddColumn(name, finalizeColumn(src, reduced.Values(), counts)); err != nil {
			return err
		}
	}

	return nil
}

// addExplicitColumns aggregates bins that are not globally ordered and
// disjoint: every bin selects its rows independently by closed-interval
// containment, so overlapping bins double-count the rows they share.
func addExplicitColumns(binned *series.BinnedTimeSeries, ts *series.TimeSeries, cfg *config,
	order []int, sortedRel, relStarts, relEnds []float64,
) error {
	nBins := len(relStarts)

	los := make([]int, nBins)
	his := make([]int, nBins)
	counts := make([]int, nBins)
	for k := range relStarts {
		los[k] = sort.SearchFloat64s(sortedRel, relStarts[k])
		his[k] = sort.Search(len(sortedRel), func(i int) bool { return sortedRel[i] > relEnds[k] })
		if his[k] > los[k] {
			counts[k] = his[k] - los[k]
		}
	}

	fn := cfg.aggregate
	if fn == nil {
		fn = reduce.NanMean
	}

	for _, name := range ts.ColumnNames() {
		src := ts.Column(name)
		values, mask := permuteColumn(src, order, len(order))
		filled := masked.NaNFilled(src.WithValues(values, mask))

		out := make([]float64, nBins)
		for k := range out {
			if counts[k] == 0 {
				out[k] = math.NaN()
				continue
			}
			out[k] = fn(filled[los[k]:his[k]])
		}

		if err := binned.AddColumn(name, finalizeColumn(src, out, counts)); err != nil {
			return err
		}
	}

	return nil
}

// permuteColumn reorders a column by the sorted row permutation and
// truncates it to the first limit rows.
func permuteColumn(col masked.Column, order []int, limit int) ([]float64, []bool) {
	srcValues := col.Values()
	values := make([]float64, limit)
	for i := 0; i < limit; i++ {
		values[i] = srcValues[order[i]]
	}

	srcMask := col.Mask()
	if srcMask == nil {
		return values, nil
	}

	mask := make([]bool, limit)
	for i := 0; i < limit; i++ {
		mask[i] = srcMask[order[i]]
	}

	return values, mask
}

// finalizeColumn wraps aggregated values into the output flavor of the
// source column: plain columns are promoted to masked ones, and every bin
// whose aggregate is NaN or that received zero rows is masked with a NaN
// value.
func finalizeColumn(src masked.Column, values []float64, counts []int) masked.Column {
	out := make([]float64, len(values))
	copy(out, values)

	mask := make([]bool, len(out))
	for k := range out {
		if counts[k] == 0 {
			out[k] = math.NaN()
		}
		mask[k] = math.IsNaN(out[k])
	}

	proto := src
	if _, plain := src.(masked.Floats); plain {
		proto = masked.Masked{}
	}

	return proto.WithValues(out, mask)
}
