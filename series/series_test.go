package series

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrata-io/binseries/chrono"
	"github.com/astrata-io/binseries/masked"
)

func testTimes(t *testing.T, isots ...string) []chrono.Time {
	t.Helper()

	out := make([]chrono.Time, len(isots))
	for i, s := range isots {
		out[i] = chrono.MustParseISOT(s)
	}

	return out
}

func TestTimeSeriesColumns(t *testing.T) {
	ts := NewTimeSeries(testTimes(t, "2016-03-22T12:30:31", "2016-03-22T12:30:32"))

	require.NoError(t, ts.AddColumn("a", masked.NewFloats([]float64{1, 2})))
	require.NoError(t, ts.AddColumn("b", masked.NewQuantity([]float64{3, 4}, "ct")))

	require.Equal(t, 2, ts.Len())
	require.Equal(t, []string{"a", "b"}, ts.ColumnNames())
	require.Equal(t, []float64{1, 2}, ts.Column("a").Values())
	require.Equal(t, "ct", ts.Column("b").Unit())
	require.Nil(t, ts.Column("missing"))
}

func TestTimeSeriesAddColumnErrors(t *testing.T) {
	ts := NewTimeSeries(testTimes(t, "2016-03-22T12:30:31"))

	require.NoError(t, ts.AddColumn("a", masked.NewFloats([]float64{1})))
	require.Error(t, ts.AddColumn("a", masked.NewFloats([]float64{1})))
	require.Error(t, ts.AddColumn("b", masked.NewFloats([]float64{1, 2})))
}

func TestBinnedTimeSeries(t *testing.T) {
	starts := testTimes(t, "2016-03-22T12:30:31", "2016-03-22T12:30:33")
	ends := testTimes(t, "2016-03-22T12:30:33", "2016-03-22T12:30:35")

	b, err := NewBinnedTimeSeries(starts, ends)
	require.NoError(t, err)
	require.NoError(t, b.AddColumn("a", masked.NewMasked([]float64{1, 2}, []bool{false, true})))

	require.Equal(t, 2, b.Len())

	sizes := b.BinSize()
	require.InDelta(t, 2.0, sizes[0].Seconds(), 1e-9)
	require.InDelta(t, 2.0, sizes[1].Seconds(), 1e-9)
}

func TestBinnedTimeSeriesInvalidEdges(t *testing.T) {
	starts := testTimes(t, "2016-03-22T12:30:31")

	_, err := NewBinnedTimeSeries(starts, nil)
	require.Error(t, err)

	ends := testTimes(t, "2016-03-22T12:30:30") // before the start
	_, err = NewBinnedTimeSeries(starts, ends)
	require.Error(t, err)
}

func TestBinnedTimeSeriesZeroWidthBin(t *testing.T) {
	starts := testTimes(t, "2016-03-22T12:30:31")

	b, err := NewBinnedTimeSeries(starts, starts)
	require.NoError(t, err)
	require.Equal(t, chrono.Delta(0), b.BinSize()[0])
}
