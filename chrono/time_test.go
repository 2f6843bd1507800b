package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseISOT(t *testing.T) {
	tm, err := ParseISOT("2016-03-22T12:30:31")
	require.NoError(t, err)
	require.Equal(t, "2016-03-22T12:30:31.000", tm.ISOT())

	tm, err = ParseISOT("2016-03-22T12:30:31.250")
	require.NoError(t, err)
	require.Equal(t, "2016-03-22T12:30:31.250", tm.ISOT())

	tm, err = ParseISOT("2016-03-22")
	require.NoError(t, err)
	require.Equal(t, "2016-03-22T00:00:00.000", tm.ISOT())

	_, err = ParseISOT("not a timestamp")
	require.Error(t, err)
}

func TestFromGoTimeRoundTrip(t *testing.T) {
	goTime := time.Date(2016, 3, 22, 12, 30, 31, 500000000, time.UTC)
	tm := FromGoTime(goTime)

	require.Equal(t, "2016-03-22T12:30:31.500", tm.ISOT())
}

func TestAddSub(t *testing.T) {
	base := MustParseISOT("2016-03-22T12:30:31")

	later := base.Add(Delta(2.5))
	require.Equal(t, "2016-03-22T12:30:33.500", later.ISOT())
	require.InDelta(t, 2.5, later.Sub(base).Seconds(), 1e-12)

	earlier := base.Add(Delta(-1))
	require.Equal(t, "2016-03-22T12:30:30.000", earlier.ISOT())
}

func TestOrdering(t *testing.T) {
	t1 := MustParseISOT("2016-03-22T12:30:31")
	t2 := t1.Add(Delta(1e-9)) // 1ns later

	require.True(t, t1.Before(t2))
	require.True(t, t2.After(t1))
	require.False(t, t1.Equal(t2))
	require.Equal(t, -1, t1.Compare(t2))
	require.Equal(t, 1, t2.Compare(t1))
	require.Equal(t, 0, t1.Compare(t1))
}

func TestMinMax(t *testing.T) {
	ts := []Time{
		MustParseISOT("2016-03-22T12:30:33"),
		MustParseISOT("2016-03-22T12:30:31"),
		MustParseISOT("2016-03-22T12:30:35"),
	}

	require.Equal(t, "2016-03-22T12:30:31.000", Min(ts).ISOT())
	require.Equal(t, "2016-03-22T12:30:35.000", Max(ts).ISOT())
}

func TestDeltaDuration(t *testing.T) {
	require.Equal(t, 1500*time.Millisecond, Delta(1.5).Duration())
	require.InDelta(t, 2.0, DeltaFromDuration(2*time.Second).Seconds(), 1e-12)
}

// TestRelativeSecondsPrecision documents the precision floor of the relative
// time representation: two instants 500ns apart must stay strictly ordered
// even when they lie up to 100 years away from the base.
func TestRelativeSecondsPrecision(t *testing.T) {
	const yearSeconds = 365.25 * 86400
	const precisionFloor = Delta(500e-9)

	base := MustParseISOT("1980-01-01T12:30:31")

	for _, years := range []float64{1, 10, 50, 100} {
		t2 := base.Add(Delta(years * yearSeconds))
		t3 := t2.Add(precisionFloor)

		r2 := t2.RelativeSeconds(base)
		r3 := t3.RelativeSeconds(base)

		require.Greater(t, r3, r2, "500ns at %v years from base must remain ordered", years)
	}
}

func TestRelativeSecondsExactNearBase(t *testing.T) {
	base := MustParseISOT("2016-03-22T12:30:31")

	for i, want := range []float64{0, 1, 2, 3, 4} {
		tm := base.Add(Delta(want))
		require.Equal(t, want, tm.RelativeSeconds(base), "offset %d", i)
	}
}
