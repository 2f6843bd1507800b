// Package format defines the constants shared by the binned-series blob
// encoder and decoder.
package format

type (
	// CompressionType identifies the compression applied to a blob payload.
	CompressionType uint8

	// FlavorType identifies the concrete column flavor stored in a blob, so
	// the decoder can rebuild the same representation.
	FlavorType uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.

	FlavorFloats   FlavorType = 0x1 // FlavorFloats is a plain float64 column.
	FlavorMasked   FlavorType = 0x2 // FlavorMasked is a float64 column with a validity mask.
	FlavorQuantity FlavorType = 0x3 // FlavorQuantity is a unit-tagged column, optionally masked.
	FlavorInts     FlavorType = 0x4 // FlavorInts is an integer column, optionally masked.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (f FlavorType) String() string {
	switch f {
	case FlavorFloats:
		return "Floats"
	case FlavorMasked:
		return "Masked"
	case FlavorQuantity:
		return "Quantity"
	case FlavorInts:
		return "Ints"
	default:
		return "Unknown"
	}
}

// IsValid reports whether f is a known column flavor.
func (f FlavorType) IsValid() bool {
	return f >= FlavorFloats && f <= FlavorInts
}
