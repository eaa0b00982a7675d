// Package compress provides the block codecs and the adaptive compression stage
// applied to finished BFast frames.
//
// # Codecs
//
// A Codec compresses and decompresses whole buffers:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// Four codecs are available through CreateCodec:
//   - LZ4 (format.CompressionLZ4): raw LZ4 blocks, the default
//   - Zstd (format.CompressionZstd): better ratio, slower encode
//   - S2 (format.CompressionS2): Snappy-compatible, very fast
//   - None (format.CompressionNone): pass-through, keeps the framing only
//
// The compressed bytes carry no codec identifier. A reader must be configured with the
// codec the writer used; LZ4 is the default on both sides.
//
// Zstd uses the pure Go klauspost/compress implementation. Building with the gozstd
// tag (and cgo enabled) switches to the valyala/gozstd binding instead.
//
// # Compression Stage
//
// A Framer wraps a frame according to its size:
//
//	size <= 256 bytes        unchanged
//	size <  1,000,000 bytes  u32 uncompressed size | codec block
//	otherwise                u32 total | u32 count | count x (u32 length | u32 size | codec block)
//
// Chunks are 256 KiB of uncompressed input and are compressed and decompressed
// concurrently. The chunked form is recognized on decode by its leading u32, which is
// at least 1,000,000 only for chunked frames.
//
//	framer := compress.NewFramer(compress.NewLZ4Compressor())
//	out, stats, err := framer.Compress(frame)
//	if err != nil {
//	    return err
//	}
//	log.Printf("%s: %d -> %d bytes", stats.Mode, stats.OriginalSize, stats.CompressedSize)
//
//	frame, err = framer.Decompress(out)
//
// Decompression failures wrap errs.ErrDecompressionFailed. Malformed chunk framing
// additionally wraps errs.ErrInvalidChunkFrame, and frames declaring more than the
// configured maximum size fail with errs.ErrDecompressedTooLarge.
package compress
