package compress

import (
	"fmt"

	"github.com/arloliu/bfast/format"
)

// Compressor compresses a whole buffer in one call.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Implementations must be safe for concurrent use: the chunked frame form decompresses
// chunks from several goroutines with one shared Decompressor.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by codecs that decompress faster, or only
// correctly, when the uncompressed size is known up front.
type SizedDecompressor interface {
	// DecompressSized decompresses data into exactly size bytes.
	DecompressSized(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// DecompressSized decompresses data that is known to expand to size bytes, using
// the SizedDecompressor fast path when d provides one.
func DecompressSized(d Decompressor, data []byte, size int) ([]byte, error) {
	if sd, ok := d.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	out, err := d.Decompress(data)
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, fmt.Errorf("decompressed %d bytes, expected %d", len(out), size)
	}

	return out, nil
}

// CreateCodec creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: codec instance for the specified type
//   - error: invalid compression type error
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid compression: %s", compressionType)
	}
}
