// Package bfast provides a compact, self-describing binary format for structured values.
//
// BFast encodes value trees built from package value (scalars, text, bytes, sequences,
// records, float64 arrays, timestamps, UUIDs and decimals) into a tagged byte stream.
// Record keys are interned into a string table, large uniform record lists take a
// batch fast path, and frames can be compressed with LZ4 (default), Zstd or S2.
//
// # Core Features
//
//   - Record key interning: each distinct key is stored once per frame
//   - Record batch fast path for sequences of same-shaped records
//   - Small integers 0-15 (except 8) in a single byte
//   - Zero-copy float64 arrays on little-endian hosts
//   - Adaptive compression: none up to 256 bytes, one block below 1 MB, parallel chunks above
//   - Nesting guard against pathologically deep input
//
// # Basic Usage
//
//	v := value.Sequence(
//	    value.Record(value.F("id", value.Int(1)), value.F("name", value.Text("alice"))),
//	    value.Record(value.F("id", value.Int(2)), value.F("name", value.Text("bob"))),
//	)
//
//	data, err := bfast.Encode(v, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoded, err := bfast.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob package. For
// custom codecs, depth limits or batch tuning, use blob.NewEncoder and blob.NewDecoder
// directly, or NewEncoder and NewDecoder here.
package bfast

import (
	"sync"

	"github.com/arloliu/bfast/blob"
	"github.com/arloliu/bfast/value"
)

// MediaType is the media type of BFast frames.
const MediaType = "application/x-bfast"

// encoderPool holds default encoders; an Encoder is not safe for concurrent use.
var encoderPool = sync.Pool{
	New: func() any {
		enc, err := blob.NewEncoder()
		if err != nil {
			panic("bfast: default encoder: " + err.Error())
		}

		return enc
	},
}

var (
	defaultDecoder     *blob.Decoder
	defaultDecoderErr  error
	defaultDecoderOnce sync.Once
)

// Encode serializes v with the default settings, compressing frames larger than 256
// bytes with LZ4 when compress is true.
//
// Encode is safe for concurrent use.
//
// Parameters:
//   - v: value tree to encode
//   - compress: whether to apply the compression stage
//
// Returns:
//   - []byte: the encoded frame, owned by the caller
//   - error: errs.ErrStringTooLong, errs.ErrTooManyStrings, errs.ErrRecursionLimitExceeded
//     or errs.ErrInvalidValue
func Encode(v value.Value, compress bool) ([]byte, error) {
	enc, _ := encoderPool.Get().(*blob.Encoder)
	defer encoderPool.Put(enc)

	return enc.Encode(v, compress)
}

// Decode parses a frame produced by Encode, compressed or not.
//
// Decode is safe for concurrent use.
func Decode(data []byte) (value.Value, error) {
	defaultDecoderOnce.Do(func() {
		defaultDecoder, defaultDecoderErr = blob.NewDecoder()
	})
	if defaultDecoderErr != nil {
		return value.Value{}, defaultDecoderErr
	}

	return defaultDecoder.Decode(data)
}

// NewEncoder creates an encoder with custom options.
//
// Available options:
//   - blob.WithCompression(format.CompressionLZ4|Zstd|S2|None)
//   - blob.WithMaxDepth(n)
//   - blob.WithBatchThreshold(n) / blob.WithBatchFastPath(true|false)
//   - blob.WithChunkSize(n) / blob.WithParallelism(n)
//
// Example:
//
//	encoder, err := bfast.NewEncoder(blob.WithCompression(format.CompressionZstd))
func NewEncoder(opts ...blob.EncoderOption) (*blob.Encoder, error) {
	return blob.NewEncoder(opts...)
}

// NewDecoder creates a decoder with custom options.
//
// The decoder must use the codec the encoder used:
//
//	decoder, err := bfast.NewDecoder(blob.WithDecoderCompression(format.CompressionZstd))
func NewDecoder(opts ...blob.DecoderOption) (*blob.Decoder, error) {
	return blob.NewDecoder(opts...)
}
