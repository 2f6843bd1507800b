// Package timebin downsamples an irregularly sampled time series into
// user-specified time bins.
//
// Downsample maps the rows of a series.TimeSeries into bins described by any
// supported combination of bin start, bin end, bin size and bin count, then
// aggregates every data column per bin (NaN-skipping mean by default, any
// reduce.Func on request). Bins derived from a contiguous specification are
// half-open [start, end) with the final edge closed, and rows are assigned
// by binary search; explicitly listed bins are closed intervals [start, end]
// and each row is tested against every bin, so overlapping bins see the same
// row more than once. Bins that receive no valid rows come out masked, never
// as an error.
//
// Row order does not matter: the binner sorts internally, comparing times as
// numeric offsets from a fixed base (see chrono.Time.RelativeSeconds), which
// keeps sub-microsecond ordering intact across spans of decades.
package timebin

import "errors"

var (
	// ErrInvalidTimeSeries is returned when the source is nil or otherwise
	// not a usable time series.
	ErrInvalidTimeSeries = errors.New("time series must be a valid TimeSeries")

	// ErrInvalidBinSize is returned when a bin size is not a positive,
	// finite duration.
	ErrInvalidBinSize = errors.New("bin size must be a positive duration")

	// ErrInvalidNumBins is returned when a bin count is negative, or zero
	// in a context where it is not ignored.
	ErrInvalidNumBins = errors.New("number of bins must be positive")

	// ErrAmbiguousBinSpec is returned when the supplied combination of bin
	// arguments does not resolve to any supported binning rule.
	ErrAmbiguousBinSpec = errors.New("unsupported combination of binning arguments")

	// ErrInvalidBinEdges is returned when explicitly supplied bin edges
	// would produce a negative-width bin.
	ErrInvalidBinEdges = errors.New("bin end must not precede bin start")

	// ErrEmptySeries is returned when bin resolution needs the time extent
	// of the data but the series has no rows.
	ErrEmptySeries = errors.New("cannot derive bins from an empty time series")
)

// overlapWarning is emitted (at most once per call) through the configured
// warning handler when resolved bins overlap.
const overlapWarning = "Overlapping bins should be avoided since they can lead to double-counting of data during binning."
