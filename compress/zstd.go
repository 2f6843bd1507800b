package compress

// ZstdCompressor provides Zstandard compression for blob payloads.
//
// Zstd gives the best compression ratio of the built-in codecs and is the
// right choice for archival of binned series. The default implementation is
// the pure-Go klauspost encoder; building with the "gozstd" tag swaps in the
// cgo libzstd bindings.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
