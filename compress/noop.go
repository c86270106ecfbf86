package compress

// NoOpCompressor passes data through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without copying.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
