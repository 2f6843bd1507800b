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
	"github.com/astrata-io/binseries/masked"
	"github.com/astrata-io/binseries/series"
)

var (
	// ErrInvalidMagic is returned when data does not start with the blob
	// magic bytes.
	ErrInvalidMagic = errors.New("blob: invalid magic bytes")

	// ErrUnsupportedVersion is returned for blobs written by a newer format
	// version.
	ErrUnsupportedVersion = errors.New("blob: unsupported format version")

	// ErrCorruptedBlob is returned when a blob fails structural validation:
	// truncated data, payload length mismatch or a column ID that does not
	// match its name.
	ErrCorruptedBlob = errors.New("blob: corrupted blob")
)

// Decode deserializes a blob back into a series.BinnedTimeSeries. It is safe
// for concurrent use.
func Decode(data []byte) (*series.BinnedTimeSeries, error) {
	if len(data) < preambleSize+headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the fixed header", ErrCorruptedBlob, len(data))
	}
	if data[0] != magic0 || data[1] != magic1 || data[2] != magic2 || data[3] != magic3 {
		return nil, ErrInvalidMagic
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}

	engine := endian.GetLittleEndianEngine()
	if data[5]&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	codec, err := compress.GetCodec(format.CompressionType(data[6]))
	if err != nil {
		return nil, err
	}

	header := data[preambleSize:]
	baseSec := math.Float64frombits(engine.Uint64(header[0:8]))
	baseFrac := math.Float64frombits(engine.Uint64(header[8:16]))
	nBins := int(engine.Uint32(header[16:20]))
	nCols := int(engine.Uint16(header[20:22]))
	rawLen := int(engine.Uint32(header[22:26]))

	payload, err := codec.Decompress(data[preambleSize+headerSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptedBlob, err)
	}
	if len(payload) != rawLen {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorruptedBlob, len(payload), rawLen)
	}
	// Edge arrays alone need 16 bytes per bin, so a header whose bin count
	// cannot fit in the payload is rejected before any allocation.
	if rawLen < 16*nBins {
		return nil, fmt.Errorf("%w: %d bins cannot fit in a %d byte payload", ErrCorruptedBlob, nBins, rawLen)
	}

	r := &payloadReader{data: payload, engine: engine}
	base := chrono.New(baseSec, baseFrac)

	starts, err := r.edges(nBins, base)
	if err != nil {
		return nil, err
	}
	ends, err := r.edges(nBins, base)
	if err != nil {
		return nil, err
	}

	out, err := series.NewBinnedTimeSeries(starts, ends)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptedBlob, err)
	}

	for i := 0; i < nCols; i++ {
		name, col, err := r.column(nBins)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if err := out.AddColumn(name, col); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCorruptedBlob, err)
		}
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing payload bytes", ErrCorruptedBlob, len(r.data)-r.pos)
	}

	return out, nil
}

// payloadReader is a cursor over a decompressed payload.
type payloadReader struct {
	data   []byte
	engine endian.EndianEngine
	pos    int
}

func (r *payloadReader) take(n int) ([]byte, error) {
	if n < 0 || len(r.data)-r.pos < n {
		return nil, fmt.Errorf("%w: truncated payload", ErrCorruptedBlob)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

func (r *payloadReader) uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

func (r *payloadReader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *payloadReader) string() (string, error) {
	n, sz := binary.Uvarint(r.data[r.pos:])
	if sz <= 0 {
		return "", fmt.Errorf("%w: malformed string length", ErrCorruptedBlob)
	}
	r.pos += sz

	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (r *payloadReader) edges(n int, base chrono.Time) ([]chrono.Time, error) {
	out := make([]chrono.Time, n)
	for k := range out {
		bits, err := r.uint64()
		if err != nil {
			return nil, err
		}
		out[k] = base.Add(chrono.Delta(math.Float64frombits(bits)))
	}

	return out, nil
}

func (r *payloadReader) column(nBins int) (string, masked.Column, error) {
	name, err := r.string()
	if err != nil {
		return "", nil, err
	}
	id, err := r.uint64()
	if err != nil {
		return "", nil, err
	}
	if id != hash.ColumnID(name) {
		return "", nil, fmt.Errorf("%w: column ID mismatch for %q", ErrCorruptedBlob, name)
	}

	flavorByte, err := r.byte()
	if err != nil {
		return "", nil, err
	}
	flavor := format.FlavorType(flavorByte)
	if !flavor.IsValid() {
		return "", nil, fmt.Errorf("%w: unknown column flavor 0x%02x", ErrCorruptedBlob, flavorByte)
	}

	unit, err := r.string()
	if err != nil {
		return "", nil, err
	}
	maskFlag, err := r.byte()
	if err != nil {
		return "", nil, err
	}

	raw := make([]uint64, nBins)
	for k := range raw {
		if raw[k], err = r.uint64(); err != nil {
			return "", nil, err
		}
	}

	var mask []bool
	if maskFlag != 0 {
		bm, err := r.take((nBins + 7) / 8)
		if err != nil {
			return "", nil, err
		}
		mask = unpackMask(bm, nBins)
	}

	col, err := buildColumn(flavor, raw, mask, unit)
	if err != nil {
		return "", nil, err
	}

	return name, col, nil
}

func buildColumn(flavor format.FlavorType, raw []uint64, mask []bool, unit string) (masked.Column, error) {
	if flavor == format.FlavorInts {
		values := make([]int64, len(raw))
		for k, bits := range raw {
			values[k] = int64(bits)
		}

		return masked.NewInts(values, mask), nil
	}

	values := make([]float64, len(raw))
	for k, bits := range raw {
		values[k] = math.Float64frombits(bits)
	}

	switch flavor {
	case format.FlavorFloats:
		return masked.NewFloats(values), nil
	case format.FlavorMasked:
		return masked.NewMasked(values, mask), nil
	case format.FlavorQuantity:
		return masked.NewMaskedQuantity(values, unit, mask), nil
	default:
		return nil, fmt.Errorf("%w: unknown column flavor %v", ErrCorruptedBlob, flavor)
	}
}

// unpackMask expands a bitmap written by packMask back into a bool mask.
func unpackMask(bm []byte, n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = bm[i/8]&(1<<(i%8)) != 0
	}

	return mask
}
