package compress

// NoOpCompressor passes data through unchanged.
//
// It keeps the compression stage framing (length prefixes, chunks) while skipping the
// codec itself, which is useful for benchmarking the framing and for debugging.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns a copy of data.
//
// The chunked frame form compresses sub-slices of a larger buffer, so the result is
// copied to keep the frame independent of the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// Decompress returns data as-is without copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
