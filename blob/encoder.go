package blob

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/astrata-io/binseries/chrono"
	"github.com/astrata-io/binseries/compress"
	"github.com/astrata-io/binseries/endian"
	"github.com/astrata-io/binseries/format"
	"github.com/astrata-io/binseries/internal/hash"
	"github.com/astrata-io/binseries/internal/options"
	"github.com/astrata-io/binseries/internal/pool"
	"github.com/astrata-io/binseries/masked"
	"github.com/astrata-io/binseries/series"
)

// MaxColumnCount is the maximum number of columns in a single blob.
const MaxColumnCount = 65535

const (
	magic0 byte = 'B'
	magic1 byte = 'N'
	magic2 byte = 'B'
	magic3 byte = '1'

	formatVersion byte = 1

	flagBigEndian byte = 0x01

	// preambleSize + headerSize bytes precede the compressed payload.
	preambleSize = 8
	headerSize   = 26
)

var (
	// ErrNilSeries is returned when Encode is called with a nil series.
	ErrNilSeries = errors.New("blob: nil binned series")

	// ErrTooManyColumns is returned when a series exceeds MaxColumnCount.
	ErrTooManyColumns = errors.New("blob: too many columns")

	// ErrUnsupportedFlavor is returned when a column has a flavor the blob
	// format cannot represent.
	ErrUnsupportedFlavor = errors.New("blob: unsupported column flavor")
)

// BinnedEncoder encodes a series.BinnedTimeSeries into the blob format.
//
// The encoder is stateless apart from its configuration and may be reused
// for multiple Encode calls, but it is not safe for concurrent use.
type BinnedEncoder struct {
	compression format.CompressionType
	engine      endian.EndianEngine
	bigEndian   bool
}

// Option configures a BinnedEncoder.
type Option = options.Option[*BinnedEncoder]

// WithCompression sets the payload compression type.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(e *BinnedEncoder) error {
		if !comp.IsValid() {
			return fmt.Errorf("blob: invalid compression type: %v", comp)
		}
		e.compression = comp

		return nil
	})
}

// WithLittleEndian sets the encoder to use little-endian byte order.
func WithLittleEndian() Option {
	return options.NoError(func(e *BinnedEncoder) {
		e.bigEndian = false
		e.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian sets the encoder to use big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(e *BinnedEncoder) {
		e.bigEndian = true
		e.engine = endian.GetBigEndianEngine()
	})
}

// NewBinnedEncoder creates an encoder. The defaults are little-endian byte
// order and Zstd payload compression.
func NewBinnedEncoder(opts ...Option) (*BinnedEncoder, error) {
	enc := &BinnedEncoder{
		compression: format.CompressionZstd,
		engine:      endian.GetLittleEndianEngine(),
	}
	if err := options.Apply(enc, opts...); err != nil {
		return nil, err
	}

	return enc, nil
}

// Encode serializes the binned series into a self-describing blob.
func (e *BinnedEncoder) Encode(b *series.BinnedTimeSeries) ([]byte, error) {
	if b == nil {
		return nil, ErrNilSeries
	}
	names := b.ColumnNames()
	if len(names) > MaxColumnCount {
		return nil, fmt.Errorf("%w: %d exceeds limit %d", ErrTooManyColumns, len(names), MaxColumnCount)
	}

	codec, err := compress.GetCodec(e.compression)
	if err != nil {
		return nil, err
	}

	starts := b.BinStart()
	ends := b.BinEnd()

	var base chrono.Time
	if len(starts) > 0 {
		base = starts[0]
	}

	bb := pool.GetBuffer()
	defer pool.PutBuffer(bb)

	e.appendEdges(bb, starts, base)
	e.appendEdges(bb, ends, base)

	for _, name := range names {
		if err := e.appendColumn(bb, name, b.Column(name)); err != nil {
			return nil, err
		}
	}

	payload, err := codec.Compress(bb.Bytes())
	if err != nil {
		return nil, fmt.Errorf("blob: payload compression failed: %w", err)
	}

	out := make([]byte, 0, preambleSize+headerSize+len(payload))
	out = append(out, magic0, magic1, magic2, magic3, formatVersion, e.flagByte(), byte(e.compression), 0)

	baseSec, baseFrac := base.Parts()
	out = e.engine.AppendUint64(out, math.Float64bits(baseSec))
	out = e.engine.AppendUint64(out, math.Float64bits(baseFrac))
	out = e.engine.AppendUint32(out, uint32(b.Len()))
	out = e.engine.AppendUint16(out, uint16(len(names)))
	out = e.engine.AppendUint32(out, uint32(bb.Len()))

	return append(out, payload...), nil
}

func (e *BinnedEncoder) flagByte() byte {
	if e.bigEndian {
		return flagBigEndian
	}

	return 0
}

// appendEdges writes bin edges as float64 seconds relative to base.
func (e *BinnedEncoder) appendEdges(bb *pool.ByteBuffer, edges []chrono.Time, base chrono.Time) {
	for _, t := range edges {
		bb.B = e.engine.AppendUint64(bb.B, math.Float64bits(t.RelativeSeconds(base)))
	}
}

func (e *BinnedEncoder) appendColumn(bb *pool.ByteBuffer, name string, col masked.Column) error {
	flavor, err := flavorOf(col)
	if err != nil {
		return fmt.Errorf("%w: column %q", err, name)
	}

	bb.B = binary.AppendUvarint(bb.B, uint64(len(name)))
	bb.MustWrite([]byte(name))
	bb.B = e.engine.AppendUint64(bb.B, hash.ColumnID(name))
	_ = bb.WriteByte(byte(flavor))

	unit := col.Unit()
	bb.B = binary.AppendUvarint(bb.B, uint64(len(unit)))
	bb.MustWrite([]byte(unit))

	mask := col.Mask()
	if mask != nil {
		_ = bb.WriteByte(1)
	} else {
		_ = bb.WriteByte(0)
	}

	if flavor == format.FlavorInts {
		for _, v := range col.(masked.Ints).Ints64() {
			bb.B = e.engine.AppendUint64(bb.B, uint64(v))
		}
	} else {
		for _, v := range col.Values() {
			bb.B = e.engine.AppendUint64(bb.B, math.Float64bits(v))
		}
	}

	if mask != nil {
		bb.MustWrite(packMask(mask))
	}

	return nil
}

func flavorOf(col masked.Column) (format.FlavorType, error) {
	switch col.(type) {
	case masked.Floats:
		return format.FlavorFloats, nil
	case masked.Masked:
		return format.FlavorMasked, nil
	case masked.Quantity:
		return format.FlavorQuantity, nil
	case masked.Ints:
		return format.FlavorInts, nil
	default:
		return 0, ErrUnsupportedFlavor
	}
}

// packMask packs a validity mask into a bitmap, LSB first. A set bit marks
// an invalid element.
func packMask(mask []bool) []byte {
	bm := make([]byte, (len(mask)+7)/8)
	for i, invalid := range mask {
		if invalid {
			bm[i/8] |= 1 << (i % 8)
		}
	}

	return bm
}
