package masked

import "math"

// Ints is an integer-backed column. It demonstrates how additional numeric
// flavors plug into the Column capability: reductions operate on the float64
// rendering, and WithValues converts results back by truncating toward zero,
// the way integer-typed columns behave in array libraries. A NaN result
// (empty or fully-invalid segment) becomes a masked zero.
type Ints struct {
	values []int64
	mask   []bool
}

// NewInts creates an integer column. The mask may be nil (all valid) or must
// have the same length as values.
func NewInts(values []int64, mask []bool) Ints {
	return Ints{values: values, mask: mask}
}

func (c Ints) Len() int { return len(c.values) }

// Values returns the values converted to float64. Unlike the float flavors
// this is a converted copy, not a view.
func (c Ints) Values() []float64 {
	out := make([]float64, len(c.values))
	for i, v := range c.values {
		out[i] = float64(v)
	}

	return out
}

func (c Ints) Mask() []bool { return c.mask }
func (c Ints) Unit() string { return "" }

// Ints64 returns the underlying integer values. Callers must not modify
// them.
func (c Ints) Ints64() []int64 { return c.values }

func (c Ints) WithValues(values []float64, mask []bool) Column {
	var outMask []bool
	if mask != nil {
		outMask = make([]bool, len(mask))
		copy(outMask, mask)
	}

	ints := make([]int64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			if outMask == nil {
				outMask = make([]bool, len(values))
			}
			outMask[i] = true
			continue
		}
		ints[i] = int64(v)
	}

	return Ints{values: ints, mask: outMask}
}
