// Package reduce implements segmented reduction over masked numeric columns.
//
// A reduction aggregates contiguous runs ("segments") of a flat column into
// one value per segment. Segments are delimited by a list of start indices:
// segment k covers [indices[k], indices[k+1]), the last segment extending to
// the end of the column. Indices need not be sorted or unique; a start index
// that is not below its successor reduces the single element at the start
// index, matching the classic ufunc reduceat convention, and a start index
// equal to the column length reduces an empty segment.
//
// Two entry points exist: Reduceat applies an arbitrary Func per segment,
// and NanMeanReduceat is a single-pass specialization of the NaN-skipping
// mean that is required to produce elementwise-identical results to
// Reduceat(col, indices, NanMean) for every input, including fully-masked
// columns and unsorted or duplicated indices.
package reduce

import (
	"fmt"
	"math"

	"github.com/astrata-io/binseries/masked"
)

// Func aggregates one segment of raw values into a single result. Masked
// positions arrive as NaN. A Func must accept an empty or all-NaN segment
// and return NaN for it rather than panicking.
type Func func(segment []float64) float64

// Sum returns the sum of the segment, 0 for an empty segment. NaN entries
// propagate into the result.
func Sum(segment []float64) float64 {
	var total float64
	for _, v := range segment {
		total += v
	}

	return total
}

// Mean returns the arithmetic mean of the segment, NaN for an empty
// segment. NaN entries propagate into the result.
func Mean(segment []float64) float64 {
	if len(segment) == 0 {
		return math.NaN()
	}

	return Sum(segment) / float64(len(segment))
}

// NanMean returns the mean of the non-NaN entries of the segment, NaN when
// the segment is empty or contains no valid entry. It never panics and emits
// no diagnostics for empty segments.
func NanMean(segment []float64) float64 {
	var (
		total float64
		count int
	)
	for _, v := range segment {
		if !math.IsNaN(v) {
			total += v
			count++
		}
	}

	if count == 0 {
		return math.NaN()
	}

	return total / float64(count)
}

// Reduceat applies fn to each segment of col delimited by indices and
// returns a column of the same flavor with one element per segment.
//
// Masked positions are rendered as NaN before fn sees them. For flavors that
// carry a mask, the output mask is derived from NaN-ness of the results
// (masked at k iff the reduction of segment k is NaN).
//
// With zero indices the result is an empty column of the same flavor and fn
// is never invoked. Reduceat panics if an index lies outside [0, col.Len()].
func Reduceat(col masked.Column, indices []int, fn Func) masked.Column {
	if len(indices) == 0 {
		return col.WithValues([]float64{}, nil)
	}

	n := col.Len()
	checkIndices(indices, n)

	data := masked.NaNFilled(col)
	out := make([]float64, len(indices))

	for k, start := range indices {
		stop := n
		if k+1 < len(indices) {
			stop = indices[k+1]
		}
		if stop <= start {
			// Duplicate or decreasing boundary: reduce the single element
			// at start. When start sits at the end of the column the
			// segment is empty.
			stop = start + 1
			if stop > n {
				stop = n
			}
		}

		out[k] = fn(data[start:stop])
	}

	return rebuild(col, out)
}

// NanMeanReduceat computes the NaN-skipping mean of every segment of col in
// a single pass.
//
// Instead of reducing each segment separately, it builds a cumulative sum
// and a cumulative valid-count over the whole column (masked and NaN entries
// contribute nothing to either) and derives every segment mean from two
// subtractions. A segment with zero valid entries yields NaN, silently. The
// result is elementwise identical to Reduceat(col, indices, NanMean),
// including for unsorted or duplicated indices and fully-masked input.
func NanMeanReduceat(col masked.Column, indices []int) masked.Column {
	if len(indices) == 0 {
		return col.WithValues([]float64{}, nil)
	}

	n := col.Len()
	checkIndices(indices, n)

	values := col.Values()
	mask := col.Mask()

	cumsum := make([]float64, n+1)
	cumcount := make([]int, n+1)
	for i, v := range values {
		cumsum[i+1] = cumsum[i]
		cumcount[i+1] = cumcount[i]
		if math.IsNaN(v) || (mask != nil && mask[i]) {
			continue
		}
		cumsum[i+1] += v
		cumcount[i+1]++
	}

	out := make([]float64, len(indices))
	for k, start := range indices {
		stop := n
		if k+1 < len(indices) {
			stop = indices[k+1]
		}
		if stop <= start {
			stop = start + 1
			if stop > n {
				stop = n
			}
		}

		count := cumcount[stop] - cumcount[start]
		if count == 0 {
			out[k] = math.NaN()
			continue
		}

		out[k] = (cumsum[stop] - cumsum[start]) / float64(count)
	}

	return rebuild(col, out)
}

// rebuild wraps reduced values back into the flavor of the source column.
// Mask-carrying flavors get an explicit mask derived from NaN-ness.
func rebuild(col masked.Column, out []float64) masked.Column {
	if col.Mask() == nil {
		return col.WithValues(out, nil)
	}

	mask := make([]bool, len(out))
	for i, v := range out {
		mask[i] = math.IsNaN(v)
	}

	return col.WithValues(out, mask)
}

func checkIndices(indices []int, n int) {
	for _, idx := range indices {
		if idx < 0 || idx > n {
			panic(fmt.Sprintf("reduce: boundary index %d out of range [0, %d]", idx, n))
		}
	}
}
