// Package masked provides the numeric column abstraction consumed by the
// reduction and binning layers.
//
// A column is a fixed-length, one-dimensional float64 buffer that may carry
// an element-wise boolean mask ("value invalid, excluded from reductions")
// and an opaque unit tag. Three concrete flavors exist:
//
//   - Floats: plain values, no mask, no unit
//   - Masked: values + mask
//   - Quantity: unit-tagged values, with or without a mask
//
// All flavors expose the same narrow capability: extract raw values and
// mask, and rebuild a column of the same flavor from new values and mask.
// Code that aggregates columns is written once against this capability and
// works for every flavor; new flavors plug in by implementing Column.
//
// No unit conversion or arithmetic is performed on units; the tag is carried
// through reductions verbatim.
package masked

import "math"

// Column is the capability interface shared by all column flavors.
//
// Values and Mask return views of the underlying buffers; callers must not
// modify them. A nil Mask means every element is valid.
type Column interface {
	// Len returns the number of elements.
	Len() int

	// Values returns the raw values, including entries at masked positions.
	Values() []float64

	// Mask returns the validity mask, or nil when all elements are valid.
	// A true entry marks the element at that position as invalid.
	Mask() []bool

	// Unit returns the unit tag, or "" for untagged columns.
	Unit() string

	// WithValues builds a new column of the same concrete flavor from the
	// given values and mask. The mask may be nil. Flavors that cannot carry
	// a mask (Floats) drop it; invalid positions are still visible as NaN
	// when the values were NaN-filled beforehand.
	WithValues(values []float64, mask []bool) Column
}

// Floats is a plain column with no mask and no unit.
type Floats struct {
	values []float64
}

// NewFloats creates a plain column wrapping the given values.
func NewFloats(values []float64) Floats {
	return Floats{values: values}
}

func (c Floats) Len() int          { return len(c.values) }
func (c Floats) Values() []float64 { return c.values }
func (c Floats) Mask() []bool      { return nil }
func (c Floats) Unit() string      { return "" }

func (c Floats) WithValues(values []float64, _ []bool) Column {
	return Floats{values: values}
}

// Masked is a column of values paired with a validity mask.
type Masked struct {
	values []float64
	mask   []bool
}

// NewMasked creates a masked column. The mask may be nil (all valid) or must
// have the same length as values.
func NewMasked(values []float64, mask []bool) Masked {
	return Masked{values: values, mask: mask}
}

func (c Masked) Len() int          { return len(c.values) }
func (c Masked) Values() []float64 { return c.values }
func (c Masked) Mask() []bool      { return c.mask }
func (c Masked) Unit() string      { return "" }

func (c Masked) WithValues(values []float64, mask []bool) Column {
	return Masked{values: values, mask: mask}
}

// Quantity is a unit-tagged column, optionally masked. The unit is an opaque
// label; no conversion logic is applied to it.
type Quantity struct {
	values []float64
	mask   []bool
	unit   string
}

// NewQuantity creates an unmasked unit-tagged column.
func NewQuantity(values []float64, unit string) Quantity {
	return Quantity{values: values, unit: unit}
}

// NewMaskedQuantity creates a unit-tagged column with a validity mask.
func NewMaskedQuantity(values []float64, unit string, mask []bool) Quantity {
	return Quantity{values: values, unit: unit, mask: mask}
}

func (c Quantity) Len() int          { return len(c.values) }
func (c Quantity) Values() []float64 { return c.values }
func (c Quantity) Mask() []bool      { return c.mask }
func (c Quantity) Unit() string      { return c.unit }

func (c Quantity) WithValues(values []float64, mask []bool) Column {
	return Quantity{values: values, unit: c.unit, mask: mask}
}

// Filled returns a copy of the column values with fill written at masked
// positions. For unmasked columns it still returns a fresh copy.
func Filled(c Column, fill float64) []float64 {
	out := make([]float64, c.Len())
	copy(out, c.Values())

	if mask := c.Mask(); mask != nil {
		for i, invalid := range mask {
			if invalid {
				out[i] = fill
			}
		}
	}

	return out
}

// NaNFilled returns a copy of the column values with NaN at masked
// positions. Reductions treat NaN and masked entries identically, so this is
// the canonical "raw" rendering of a column.
func NaNFilled(c Column) []float64 {
	return Filled(c, math.NaN())
}

// MaskFromNaN derives a validity mask from NaN-ness of the given values.
// It returns nil when no element is NaN.
func MaskFromNaN(values []float64) []bool {
	var mask []bool
	for i, v := range values {
		if math.IsNaN(v) {
			if mask == nil {
				mask = make([]bool, len(values))
			}
			mask[i] = true
		}
	}

	return mask
}
