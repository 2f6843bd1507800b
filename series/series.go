// Package series provides the tabular carriers consumed and produced by the
// downsampling layer: a TimeSeries of timestamped rows and a
// BinnedTimeSeries of per-bin aggregates.
//
// Both types are thin, column-oriented tables: a time axis plus named,
// equal-length masked.Column values in insertion order. They perform no
// aggregation themselves; timebin.Downsample builds a BinnedTimeSeries from
// a TimeSeries.
package series

import (
	"fmt"

	"github.com/astrata-io/binseries/chrono"
	"github.com/astrata-io/binseries/masked"
)

// TimeSeries is a table of rows indexed by a time axis. Rows need not be
// sorted by time. Columns are owned by the caller and treated as read-only.
type TimeSeries struct {
	times   []chrono.Time
	names   []string
	columns map[string]masked.Column
}

// NewTimeSeries creates a time series over the given time axis.
func NewTimeSeries(times []chrono.Time) *TimeSeries {
	return &TimeSeries{
		times:   times,
		columns: make(map[string]masked.Column),
	}
}

// AddColumn attaches a named data column. The column length must match the
// time axis and the name must be unused.
func (ts *TimeSeries) AddColumn(name string, col masked.Column) error {
	if _, exists := ts.columns[name]; exists {
		return fmt.Errorf("series: column %q already exists", name)
	}
	if col.Len() != len(ts.times) {
		return fmt.Errorf("series: column %q has %d rows, time axis has %d",
			name, col.Len(), len(ts.times))
	}

	ts.names = append(ts.names, name)
	ts.columns[name] = col

	return nil
}

// Len returns the number of rows.
func (ts *TimeSeries) Len() int { return len(ts.times) }

// Time returns the time axis. Callers must not modify it.
func (ts *TimeSeries) Time() []chrono.Time { return ts.times }

// ColumnNames returns the column names in insertion order.
func (ts *TimeSeries) ColumnNames() []string { return ts.names }

// Column returns the named column, or nil when absent.
func (ts *TimeSeries) Column(name string) masked.Column { return ts.columns[name] }

// BinnedTimeSeries is the result of downsampling: one row per bin, with the
// bin edges and one aggregated column per source data column. It is built
// fresh per downsampling call and immutable once returned.
type BinnedTimeSeries struct {
	binStart []chrono.Time
	binEnd   []chrono.Time
	names    []string
	columns  map[string]masked.Column
}

// NewBinnedTimeSeries creates a binned series over the given bin edges. The
// edge slices must have equal length and every bin must satisfy
// start <= end.
func NewBinnedTimeSeries(binStart, binEnd []chrono.Time) (*BinnedTimeSeries, error) {
	if len(binStart) != len(binEnd) {
		return nil, fmt.Errorf("series: %d bin starts but %d bin ends", len(binStart), len(binEnd))
	}
	for k := range binStart {
		if binEnd[k].Before(binStart[k]) {
			return nil, fmt.Errorf("series: bin %d has negative width", k)
		}
	}

	return &BinnedTimeSeries{
		binStart: binStart,
		binEnd:   binEnd,
		columns:  make(map[string]masked.Column),
	}, nil
}

// AddColumn attaches a named aggregated column with one element per bin.
func (b *BinnedTimeSeries) AddColumn(name string, col masked.Column) error {
	if _, exists := b.columns[name]; exists {
		return fmt.Errorf("series: column %q already exists", name)
	}
	if col.Len() != len(b.binStart) {
		return fmt.Errorf("series: column %q has %d rows, series has %d bins",
			name, col.Len(), len(b.binStart))
	}

	b.names = append(b.names, name)
	b.columns[name] = col

	return nil
}

// Len returns the number of bins.
func (b *BinnedTimeSeries) Len() int { return len(b.binStart) }

// BinStart returns the bin start times. Callers must not modify it.
func (b *BinnedTimeSeries) BinStart() []chrono.Time { return b.binStart }

// BinEnd returns the bin end times. Callers must not modify it.
func (b *BinnedTimeSeries) BinEnd() []chrono.Time { return b.binEnd }

// BinSize returns the width of every bin. Widths are never negative; a
// zero-width bin is valid and covers a single instant.
func (b *BinnedTimeSeries) BinSize() []chrono.Delta {
	out := make([]chrono.Delta, len(b.binStart))
	for k := range out {
		out[k] = b.binEnd[k].Sub(b.binStart[k])
	}

	return out
}

// ColumnNames returns the aggregated column names in insertion order.
func (b *BinnedTimeSeries) ColumnNames() []string { return b.names }

// Column returns the named aggregated column, or nil when absent.
func (b *BinnedTimeSeries) Column(name string) masked.Column { return b.columns[name] }
