// Package binseries downsamples irregular time series into time bins and
// serializes the results into a compact binary format.
//
// The core operation is Downsample: given a TimeSeries of timestamped rows,
// it assigns rows to time bins and aggregates every data column per bin,
// producing a BinnedTimeSeries. Bins can be specified as a fixed size, as
// per-bin sizes, as explicit start and end edges, or as a number of equal
// bins across the data; empty bins come back masked rather than dropped.
// The default aggregation is a NaN- and mask-aware mean.
//
// # Basic Usage
//
// Downsampling a series into fixed 2-second bins:
//
//	import "github.com/astrata-io/binseries"
//
//	times := make([]chrono.Time, 6)
//	base := chrono.MustParseISOT("2016-03-22T12:30:31")
//	for i := range times {
//	    times[i] = base.Add(chrono.Delta(i))
//	}
//
//	ts := binseries.NewTimeSeries(times)
//	ts.AddColumn("flux", masked.NewFloats([]float64{1, 2, 3, 4, 5, 6}))
//
//	binned, _ := binseries.Downsample(ts, timebin.WithBinSize(2))
//
// Persisting and restoring a binned series:
//
//	data, _ := binseries.EncodeBinned(binned)
//	restored, _ := binseries.DecodeBinned(data)
//
// # Package Structure
//
// This package provides top-level wrappers around the timebin and blob
// packages for the common cases. For fine-grained control over bin
// specification, aggregation functions, compression or byte order, use those
// packages directly:
//
//   - chrono: two-part high-precision time representation
//   - masked: column flavors (plain, masked, unit-tagged, integer)
//   - reduce: segmented reductions over columns
//   - series: TimeSeries and BinnedTimeSeries carriers
//   - timebin: bin construction, row assignment and downsampling
//   - blob: binary serialization of binned series
package binseries

import (
	"github.com/astrata-io/binseries/blob"
	"github.com/astrata-io/binseries/chrono"
	"github.com/astrata-io/binseries/series"
	"github.com/astrata-io/binseries/timebin"
)

// NewTimeSeries creates a time series over the given time axis.
func NewTimeSeries(times []chrono.Time) *series.TimeSeries {
	return series.NewTimeSeries(times)
}

// Downsample bins a time series and aggregates its columns per bin. See
// timebin.Downsample for the full set of bin specification options.
func Downsample(ts *series.TimeSeries, opts ...timebin.Option) (*series.BinnedTimeSeries, error) {
	return timebin.Downsample(ts, opts...)
}

// EncodeBinned serializes a binned series with the default encoder settings
// (little-endian, Zstd compression).
func EncodeBinned(b *series.BinnedTimeSeries) ([]byte, error) {
	enc, err := blob.NewBinnedEncoder()
	if err != nil {
		return nil, err
	}

	return enc.Encode(b)
}

// DecodeBinned deserializes a blob produced by EncodeBinned or by a
// blob.BinnedEncoder with any settings.
func DecodeBinned(data []byte) (*series.BinnedTimeSeries, error) {
	return blob.Decode(data)
}
