package compress

import (
	"fmt"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/format"
)

// Compressor compresses a complete payload.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// It returns an error if the input is corrupted or was produced by a different algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression operation.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Returns 0.0 if the original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zlib, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression %s: %w", target, compressionType, errs.ErrUnsupportedCompression)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZlib: NewZlibCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compression type %s: %w", compressionType, errs.ErrUnsupportedCompression)
}

// CompressWithStats compresses data with codec and reports the sizes involved.
func CompressWithStats(compressionType format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return compressed, CompressionStats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(compressed)),
	}, nil
}
