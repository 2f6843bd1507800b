package masked

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntsValuesConversion(t *testing.T) {
	c := NewInts([]int64{1, 2, 3}, nil)

	require.Equal(t, 3, c.Len())
	require.Equal(t, []float64{1, 2, 3}, c.Values())
	require.Equal(t, []int64{1, 2, 3}, c.Ints64())
	require.Nil(t, c.Mask())
}

func TestIntsWithValuesTruncates(t *testing.T) {
	c := NewInts(nil, nil)

	out := c.WithValues([]float64{1.5, 4.5, -1.5, 5}, nil)
	require.IsType(t, Ints{}, out)
	require.Equal(t, []int64{1, 4, -1, 5}, out.(Ints).Ints64())
	require.Nil(t, out.Mask())
}

func TestIntsWithValuesMasksNaN(t *testing.T) {
	c := NewInts(nil, nil)

	out := c.WithValues([]float64{2.5, math.NaN()}, nil)
	require.Equal(t, []int64{2, 0}, out.(Ints).Ints64())
	require.Equal(t, []bool{false, true}, out.Mask())
}

func TestIntsWithValuesDoesNotAliasMask(t *testing.T) {
	src := []bool{false, false}
	out := NewInts(nil, nil).WithValues([]float64{1, math.NaN()}, src)

	require.Equal(t, []bool{false, true}, out.Mask())
	require.Equal(t, []bool{false, false}, src)
}
