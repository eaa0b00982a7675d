package compress

// ZstdCompressor provides Zstandard compression.
//
// It trades encode speed for ratio compared to LZ4 and S2. Two backends exist:
// the pure Go klauspost/compress implementation (default) and the cgo
// valyala/gozstd binding, selected with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
