package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// zlibWriterPool pools zlib writers; Reset makes them reusable across payloads.
var zlibWriterPool = sync.Pool{
	New: func() any {
		return zlib.NewWriter(nil)
	},
}

// ZlibCompressor handles RFC 1950 zlib streams, the format of the compressed
// ("zindex") stitching position buffer.
type ZlibCompressor struct{}

var _ Codec = (*ZlibCompressor)(nil)

// NewZlibCompressor creates a new zlib compressor.
func NewZlibCompressor() ZlibCompressor {
	return ZlibCompressor{}
}

// Compress compresses the input data into a complete zlib stream.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, _ := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a complete zlib stream and verifies its Adler-32 checksum.
//
// Empty input is not a valid zlib stream and returns an error.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	return out, nil
}
