// Package compress provides the compression codecs used by the MIRAX decoder.
//
// MIRAX stores the "zindex" stitching position buffer as a zlib stream; the
// decoder inflates it with the Zlib codec before parsing records. The remaining
// codecs compress exported slide reports.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): returns data unchanged
//   - Zlib (format.CompressionZlib): RFC 1950 streams, as written by MIRAX scanners
//   - Zstd (format.CompressionZstd): best ratio for exported reports
//   - S2 (format.CompressionS2): fast, Snappy-compatible block format
//   - LZ4 (format.CompressionLZ4): fast block format
//
// Look up a shared codec by type:
//
//	codec, err := compress.GetCodec(format.CompressionZlib)
//	if err != nil {
//	    return err
//	}
//	inflated, err := codec.Decompress(stored)
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and decoders and
// are safe for concurrent use.
package compress
