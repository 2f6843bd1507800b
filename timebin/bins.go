package timebin

import (
	"fmt"
	"math"

	"github.com/astrata-io/binseries/chrono"
)

// resolveBins reconciles the supplied combination of bin start, end, size
// and count into fully explicit, equal-length bin edge arrays. Exactly one
// construction rule matches any accepted combination; everything else is
// rejected as ErrAmbiguousBinSpec. No partial result is ever returned.
func resolveBins(cfg *config, times []chrono.Time) (starts, ends []chrono.Time, err error) {
	if cfg.startScalar != nil && cfg.starts != nil {
		return nil, nil, fmt.Errorf("%w: bin start given as both scalar and array", ErrAmbiguousBinSpec)
	}
	if cfg.endScalar != nil && cfg.ends != nil {
		return nil, nil, fmt.Errorf("%w: bin end given as both scalar and array", ErrAmbiguousBinSpec)
	}
	if cfg.sizeScalar != nil && cfg.sizes != nil {
		return nil, nil, fmt.Errorf("%w: bin size given as both scalar and array", ErrAmbiguousBinSpec)
	}

	switch {
	case cfg.sizes != nil:
		return resolveSizesArray(cfg, times)
	case cfg.sizeScalar != nil:
		return resolveSizeScalar(cfg, times)
	case cfg.starts != nil:
		return resolveStartsArray(cfg, times)
	case cfg.ends != nil:
		return resolveEndsArray(cfg, times)
	default:
		return resolveScalars(cfg, times)
	}
}

// resolveSizesArray handles per-bin sizes: contiguous bins of varying width
// anchored at a scalar (or data-derived) start, or anchored per bin when the
// starts are an array of the same length. Any bin count hint is ignored; the
// size array determines the count.
func resolveSizesArray(cfg *config, times []chrono.Time) ([]chrono.Time, []chrono.Time, error) {
	if cfg.endScalar != nil || cfg.ends != nil {
		return nil, nil, fmt.Errorf("%w: bin ends cannot be combined with per-bin sizes", ErrAmbiguousBinSpec)
	}

	n := len(cfg.sizes)
	starts := make([]chrono.Time, n)
	ends := make([]chrono.Time, n)

	if cfg.starts != nil {
		if len(cfg.starts) != n {
			return nil, nil, fmt.Errorf("%w: %d bin starts but %d bin sizes",
				ErrAmbiguousBinSpec, len(cfg.starts), n)
		}
		copy(starts, cfg.starts)
		for k := range starts {
			ends[k] = starts[k].Add(cfg.sizes[k])
		}

		return starts, ends, nil
	}

	start, err := firstBinStart(cfg, times)
	if err != nil {
		return nil, nil, err
	}
	for k := 0; k < n; k++ {
		starts[k] = start
		start = start.Add(cfg.sizes[k])
		ends[k] = start
	}

	return starts, ends, nil
}

// resolveSizeScalar handles a single bin width: regular contiguous bins from
// the (possibly data-derived) start, extended until they cover the last data
// time, bounded by an explicit end, or counted out exactly when a bin count
// is given (honored even when it does not fit the data).
func resolveSizeScalar(cfg *config, times []chrono.Time) ([]chrono.Time, []chrono.Time, error) {
	if cfg.starts != nil {
		return nil, nil, fmt.Errorf("%w: a scalar bin size cannot be combined with per-bin starts", ErrAmbiguousBinSpec)
	}
	if cfg.ends != nil {
		return nil, nil, fmt.Errorf("%w: a scalar bin size cannot be combined with per-bin ends", ErrAmbiguousBinSpec)
	}

	start, err := firstBinStart(cfg, times)
	if err != nil {
		return nil, nil, err
	}
	size := *cfg.sizeScalar

	var n int
	switch {
	case cfg.nBinsSet:
		if cfg.nBins == 0 {
			return nil, nil, fmt.Errorf("%w, got 0", ErrInvalidNumBins)
		}
		n = cfg.nBins
	case cfg.endScalar != nil:
		span := cfg.endScalar.Sub(start).Seconds()
		if span < 0 {
			return nil, nil, fmt.Errorf("%w: bin end precedes bin start", ErrInvalidBinEdges)
		}
		n = int(math.Ceil(span / size.Seconds()))
	default:
		if len(times) == 0 {
			return nil, nil, fmt.Errorf("%w: a bin end or bin count is required", ErrEmptySeries)
		}
		// One more bin than whole widths fit, so the last data time always
		// falls inside a bin under half-open assignment.
		n = int(math.Floor(chrono.Max(times).Sub(start).Seconds()/size.Seconds())) + 1
	}
	if n < 1 {
		n = 1
	}

	starts := make([]chrono.Time, n)
	ends := make([]chrono.Time, n)
	for k := 0; k < n; k++ {
		starts[k] = start.Add(chrono.Delta(float64(k) * size.Seconds()))
		ends[k] = start.Add(chrono.Delta(float64(k+1) * size.Seconds()))
	}

	return starts, ends, nil
}

// resolveStartsArray handles explicitly listed bin starts without sizes.
// Ends come from the given end array, from the next start with a scalar end
// (or the data extent) closing the final bin. An explicit bin count is
// ignored: the array length wins.
func resolveStartsArray(cfg *config, times []chrono.Time) ([]chrono.Time, []chrono.Time, error) {
	n := len(cfg.starts)
	starts := make([]chrono.Time, n)
	copy(starts, cfg.starts)

	if cfg.ends != nil {
		if len(cfg.ends) != n {
			return nil, nil, fmt.Errorf("%w: %d bin starts but %d bin ends",
				ErrAmbiguousBinSpec, n, len(cfg.ends))
		}
		ends := make([]chrono.Time, n)
		copy(ends, cfg.ends)
		if err := checkEdges(starts, ends); err != nil {
			return nil, nil, err
		}

		return starts, ends, nil
	}

	ends := make([]chrono.Time, n)
	copy(ends, starts[1:])

	switch {
	case n == 0:
	case cfg.endScalar != nil:
		ends[n-1] = *cfg.endScalar
	default:
		// The final bin is extended to the end of the series; it is never
		// left with negative width even when every data point lies before
		// the last start.
		last := starts[n-1]
		if len(times) > 0 {
			if max := chrono.Max(times); max.After(last) {
				last = max
			}
		}
		ends[n-1] = last
	}

	if err := checkEdges(starts, ends); err != nil {
		return nil, nil, err
	}

	return starts, ends, nil
}

// resolveEndsArray handles explicitly listed bin ends without starts: each
// bin starts where the previous one ends, the first at the start of the
// series (or at its own end, whichever is earlier).
func resolveEndsArray(cfg *config, times []chrono.Time) ([]chrono.Time, []chrono.Time, error) {
	if cfg.startScalar != nil {
		return nil, nil, fmt.Errorf("%w: per-bin ends require per-bin starts or no start at all", ErrAmbiguousBinSpec)
	}

	n := len(cfg.ends)
	ends := make([]chrono.Time, n)
	copy(ends, cfg.ends)

	starts := make([]chrono.Time, n)
	if n > 0 {
		starts[0] = ends[0]
		if len(times) > 0 {
			if min := chrono.Min(times); min.Before(ends[0]) {
				starts[0] = min
			}
		}
		copy(starts[1:], ends[:n-1])
	}

	if err := checkEdges(starts, ends); err != nil {
		return nil, nil, err
	}

	return starts, ends, nil
}

// resolveScalars handles the remaining scalar-only combinations: a single
// bin between two scalar edges, or a count of equal-width bins spanning the
// scalar edges or the data extent.
func resolveScalars(cfg *config, times []chrono.Time) ([]chrono.Time, []chrono.Time, error) {
	if cfg.startScalar != nil && cfg.endScalar != nil && !cfg.nBinsSet {
		if cfg.endScalar.Before(*cfg.startScalar) {
			return nil, nil, fmt.Errorf("%w: bin end precedes bin start", ErrInvalidBinEdges)
		}

		return []chrono.Time{*cfg.startScalar}, []chrono.Time{*cfg.endScalar}, nil
	}

	if !cfg.nBinsSet {
		if cfg.startScalar != nil {
			return nil, nil, fmt.Errorf(
				"%w: with a single bin start either a bin count, a bin size or a bin end must be provided",
				ErrAmbiguousBinSpec)
		}

		return nil, nil, fmt.Errorf("%w: no binning arguments provided", ErrAmbiguousBinSpec)
	}
	if cfg.nBins == 0 {
		return nil, nil, fmt.Errorf("%w, got 0", ErrInvalidNumBins)
	}

	start, err := firstBinStart(cfg, times)
	if err != nil {
		return nil, nil, err
	}

	var end chrono.Time
	switch {
	case cfg.endScalar != nil:
		end = *cfg.endScalar
	case len(times) > 0:
		end = chrono.Max(times)
	default:
		return nil, nil, fmt.Errorf("%w: a bin end is required", ErrEmptySeries)
	}
	if end.Before(start) {
		// All data precedes the requested start: an empty span still yields
		// the requested number of (zero width) bins rather than an error.
		end = start
	}

	n := cfg.nBins
	span := end.Sub(start).Seconds()
	width := span / float64(n)

	starts := make([]chrono.Time, n)
	ends := make([]chrono.Time, n)
	for k := 0; k < n; k++ {
		starts[k] = start.Add(chrono.Delta(float64(k) * width))
		ends[k] = start.Add(chrono.Delta(float64(k+1) * width))
	}
	ends[n-1] = end

	return starts, ends, nil
}

// firstBinStart returns the configured scalar start, falling back to the
// earliest data time.
func firstBinStart(cfg *config, times []chrono.Time) (chrono.Time, error) {
	if cfg.startScalar != nil {
		return *cfg.startScalar, nil
	}
	if len(times) == 0 {
		return chrono.Time{}, fmt.Errorf("%w: a bin start is required", ErrEmptySeries)
	}

	return chrono.Min(times), nil
}

func checkEdges(starts, ends []chrono.Time) error {
	for k := range starts {
		if ends[k].Before(starts[k]) {
			return fmt.Errorf("%w: bin %d has negative width", ErrInvalidBinEdges, k)
		}
	}

	return nil
}
