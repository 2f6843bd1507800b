package blob

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrata-io/binseries/chrono"
	"github.com/astrata-io/binseries/format"
	"github.com/astrata-io/binseries/masked"
	"github.com/astrata-io/binseries/series"
)

func sampleBinned(t *testing.T) *series.BinnedTimeSeries {
	t.Helper()

	base := chrono.MustParseISOT("2016-03-22T12:30:31")
	starts := make([]chrono.Time, 5)
	ends := make([]chrono.Time, 5)
	for k := range starts {
		starts[k] = base.Add(chrono.Delta(2 * k))
		ends[k] = base.Add(chrono.Delta(2*k + 2))
	}

	b, err := series.NewBinnedTimeSeries(starts, ends)
	require.NoError(t, err)

	require.NoError(t, b.AddColumn("flux", masked.NewFloats([]float64{1.5, 2.5, math.NaN(), 4.5, 5.5})))
	require.NoError(t, b.AddColumn("rate", masked.NewMasked(
		[]float64{1, 2, math.NaN(), 4, 5},
		[]bool{false, false, true, false, false})))
	require.NoError(t, b.AddColumn("bg", masked.NewMaskedQuantity(
		[]float64{0.1, 0.2, 0.3, 0.4, 0.5}, "ct/s",
		[]bool{false, true, false, false, false})))
	require.NoError(t, b.AddColumn("counts", masked.NewInts(
		[]int64{10, 20, 0, 40, 50},
		[]bool{false, false, true, false, false})))

	return b
}

func requireSameSeries(t *testing.T, want, got *series.BinnedTimeSeries) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	for k := range want.BinStart() {
		require.True(t, want.BinStart()[k].Equal(got.BinStart()[k]), "bin %d start", k)
		require.True(t, want.BinEnd()[k].Equal(got.BinEnd()[k]), "bin %d end", k)
	}

	require.Equal(t, want.ColumnNames(), got.ColumnNames())
	for _, name := range want.ColumnNames() {
		wc, gc := want.Column(name), got.Column(name)
		require.IsType(t, wc, gc, "column %q flavor", name)
		require.Equal(t, wc.Unit(), gc.Unit(), "column %q unit", name)
		require.Equal(t, wc.Mask(), gc.Mask(), "column %q mask", name)

		wv, gv := wc.Values(), gc.Values()
		require.Equal(t, len(wv), len(gv))
		for i := range wv {
			if math.IsNaN(wv[i]) {
				require.True(t, math.IsNaN(gv[i]), "column %q element %d", name, i)
			} else {
				require.Equal(t, wv[i], gv[i], "column %q element %d", name, i)
			}
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleBinned(t)

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			enc, err := NewBinnedEncoder(WithCompression(ct))
			require.NoError(t, err)

			data, err := enc.Encode(want)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			requireSameSeries(t, want, got)
		})
	}
}

func TestEncodeDecodeBigEndian(t *testing.T) {
	want := sampleBinned(t)

	enc, err := NewBinnedEncoder(WithBigEndian(), WithCompression(format.CompressionS2))
	require.NoError(t, err)

	data, err := enc.Encode(want)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	requireSameSeries(t, want, got)
}

func TestEncodeDecodeIntsColumn(t *testing.T) {
	b, err := series.NewBinnedTimeSeries(
		[]chrono.Time{chrono.FromUnix(0, 0)},
		[]chrono.Time{chrono.FromUnix(2, 0)})
	require.NoError(t, err)
	require.NoError(t, b.AddColumn("n", masked.NewInts([]int64{-7}, nil)))

	enc, err := NewBinnedEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(b)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	col, ok := got.Column("n").(masked.Ints)
	require.True(t, ok)
	require.Equal(t, []int64{-7}, col.Ints64())
	require.Nil(t, col.Mask())
}

func TestEncodeDecodeEmptySeries(t *testing.T) {
	want, err := series.NewBinnedTimeSeries(nil, nil)
	require.NoError(t, err)

	enc, err := NewBinnedEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(want)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, 0, got.Len())
	require.Empty(t, got.ColumnNames())
}

func TestEncodeNilSeries(t *testing.T) {
	enc, err := NewBinnedEncoder()
	require.NoError(t, err)

	_, err = enc.Encode(nil)
	require.ErrorIs(t, err, ErrNilSeries)
}

func TestEncodeInvalidCompression(t *testing.T) {
	_, err := NewBinnedEncoder(WithCompression(format.CompressionType(0xFF)))
	require.Error(t, err)
}

type fakeColumn struct{ masked.Floats }

func TestEncodeUnsupportedFlavor(t *testing.T) {
	b, err := series.NewBinnedTimeSeries(
		[]chrono.Time{chrono.FromUnix(0, 0)},
		[]chrono.Time{chrono.FromUnix(1, 0)})
	require.NoError(t, err)
	require.NoError(t, b.AddColumn("x", fakeColumn{masked.NewFloats([]float64{1})}))

	enc, err := NewBinnedEncoder()
	require.NoError(t, err)

	_, err = enc.Encode(b)
	require.ErrorIs(t, err, ErrUnsupportedFlavor)
}

func TestDecodeInvalidMagic(t *testing.T) {
	enc, err := NewBinnedEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(sampleBinned(t))
	require.NoError(t, err)

	data[0] = 'X'
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	enc, err := NewBinnedEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(sampleBinned(t))
	require.NoError(t, err)

	data[4] = formatVersion + 1
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeTruncated(t *testing.T) {
	enc, err := NewBinnedEncoder(WithCompression(format.CompressionNone))
	require.NoError(t, err)
	data, err := enc.Encode(sampleBinned(t))
	require.NoError(t, err)

	for _, n := range []int{0, 4, preambleSize + headerSize - 1, len(data) - 3} {
		_, err := Decode(data[:n])
		require.ErrorIs(t, err, ErrCorruptedBlob, "truncated to %d bytes", n)
	}
}

func TestDecodeColumnIDMismatch(t *testing.T) {
	enc, err := NewBinnedEncoder(WithCompression(format.CompressionNone))
	require.NoError(t, err)
	data, err := enc.Encode(sampleBinned(t))
	require.NoError(t, err)

	// The first column name starts right after the bin edges; flipping a
	// name byte invalidates its stored xxHash64 ID.
	nameOffset := preambleSize + headerSize + 2*5*8 + 1
	data[nameOffset] ^= 0xFF

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrCorruptedBlob)
}

func TestDecodeCorruptedCompressedPayload(t *testing.T) {
	enc, err := NewBinnedEncoder(WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	data, err := enc.Encode(sampleBinned(t))
	require.NoError(t, err)

	for i := preambleSize + headerSize; i < len(data); i++ {
		data[i] ^= 0xA5
	}

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrCorruptedBlob)
}

func TestRoundTripPreservesSubSecondEdges(t *testing.T) {
	base := chrono.MustParseISOT("2021-01-01T00:00:00")
	starts := []chrono.Time{base, base.Add(0.5)}
	ends := []chrono.Time{base.Add(0.5), base.Add(1.0)}

	want, err := series.NewBinnedTimeSeries(starts, ends)
	require.NoError(t, err)

	enc, err := NewBinnedEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(want)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	requireSameSeries(t, want, got)
}
