package compress

// ZstdCompressor provides Zstandard compression for exported reports.
//
// With cgo enabled it is backed by valyala/gozstd; otherwise by the pure-Go
// klauspost/compress/zstd implementation. Both produce standard zstd frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
