package compress

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/pool"
)

// FrameMode identifies how the compression stage wrapped a frame.
type FrameMode uint8

const (
	// ModeDirect leaves the frame unmodified.
	ModeDirect FrameMode = iota
	// ModeBlock compresses the whole frame: u32 uncompressed size + block.
	ModeBlock
	// ModeChunked compresses fixed-size chunks independently:
	// u32 total size, u32 chunk count, then per chunk u32 length + (u32 size + block).
	ModeChunked
)

func (m FrameMode) String() string {
	switch m {
	case ModeDirect:
		return "Direct"
	case ModeBlock:
		return "Block"
	case ModeChunked:
		return "Chunked"
	default:
		return "Unknown"
	}
}

// DefaultMaxDecompressedSize caps the size a frame may declare when decompressing.
const DefaultMaxDecompressedSize = 128 * 1024 * 1024

// sizePrefixLen is the length of the u32 uncompressed size prefix of a block.
const sizePrefixLen = 4

var le = endian.GetLittleEndianEngine()

// FrameStats describes one pass through the compression stage.
type FrameStats struct {
	// Mode is the wrapping that was applied.
	Mode FrameMode
	// OriginalSize is the size of the frame before compression.
	OriginalSize int
	// CompressedSize is the size of the returned bytes.
	CompressedSize int
	// Chunks is the number of chunks in ModeChunked, 1 in ModeBlock and 0 otherwise.
	Chunks int
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
func (s FrameStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s FrameStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Framer is the adaptive compression stage.
//
// Frames at or below format.MinCompressSize are returned unmodified. Frames below
// format.ChunkedThreshold are compressed as one length-prefixed block. Larger frames
// are split into ChunkSize chunks compressed concurrently, which lets a reader
// decompress them concurrently too.
//
// A Framer holds no per-call state and is safe for concurrent use when its codec is.
type Framer struct {
	codec       Codec
	chunkSize   int
	parallelism int
	maxSize     int
}

// NewFramer creates a compression stage around codec with default chunking.
func NewFramer(codec Codec) *Framer {
	return &Framer{
		codec:       codec,
		chunkSize:   format.ChunkSize,
		parallelism: runtime.GOMAXPROCS(0),
		maxSize:     DefaultMaxDecompressedSize,
	}
}

// WithChunkSize sets the uncompressed chunk size of the chunked form.
func (f *Framer) WithChunkSize(n int) *Framer {
	if n > 0 {
		f.chunkSize = n
	}

	return f
}

// WithParallelism sets how many chunks are processed at once.
func (f *Framer) WithParallelism(n int) *Framer {
	if n > 0 {
		f.parallelism = n
	}

	return f
}

// WithMaxDecompressedSize sets the largest uncompressed size a frame may declare.
func (f *Framer) WithMaxDecompressedSize(n int) *Framer {
	if n > 0 {
		f.maxSize = n
	}

	return f
}

// Codec returns the block codec.
func (f *Framer) Codec() Codec {
	return f.codec
}

// ModeFor returns the mode Compress applies to a frame of size bytes.
func ModeFor(size int) FrameMode {
	switch {
	case size <= format.MinCompressSize:
		return ModeDirect
	case size < format.ChunkedThreshold:
		return ModeBlock
	default:
		return ModeChunked
	}
}

// Compress wraps frame according to ModeFor(len(frame)).
//
// In ModeDirect the input slice itself is returned.
func (f *Framer) Compress(frame []byte) ([]byte, FrameStats, error) {
	stats := FrameStats{Mode: ModeFor(len(frame)), OriginalSize: len(frame)}

	var (
		out []byte
		err error
	)
	switch stats.Mode {
	case ModeDirect:
		out = frame
	case ModeBlock:
		out, err = f.CompressBlock(frame)
		stats.Chunks = 1
	default:
		out, err = f.CompressChunked(frame)
		stats.Chunks = f.chunkCount(len(frame))
	}
	if err != nil {
		return nil, FrameStats{}, err
	}
	stats.CompressedSize = len(out)

	return out, stats, nil
}

// CompressBlock compresses data as u32 uncompressed size + codec block.
func (f *Framer) CompressBlock(data []byte) ([]byte, error) {
	if !pool.FitsUint32(len(data)) {
		return nil, fmt.Errorf("block of %d bytes exceeds u32 size prefix", len(data))
	}

	block, err := f.codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress block: %w", err)
	}

	out := make([]byte, 0, sizePrefixLen+len(block))
	out = le.AppendUint32(out, uint32(len(data))) //nolint:gosec
	out = append(out, block...)

	return out, nil
}

func (f *Framer) chunkCount(size int) int {
	return (size + f.chunkSize - 1) / f.chunkSize
}

// CompressChunked splits data into chunks, compresses them concurrently and frames
// the result. Any chunk failure fails the whole call.
func (f *Framer) CompressChunked(data []byte) ([]byte, error) {
	if !pool.FitsUint32(len(data)) {
		return nil, fmt.Errorf("frame of %d bytes exceeds u32 size prefix", len(data))
	}

	count := f.chunkCount(len(data))
	blocks := make([][]byte, count)

	var g errgroup.Group
	g.SetLimit(f.parallelism)
	for i := range count {
		start := i * f.chunkSize
		end := min(start+f.chunkSize, len(data))
		g.Go(func() error {
			block, err := f.CompressBlock(data[start:end])
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			blocks[i] = block

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	size := 8
	for _, b := range blocks {
		size += 4 + len(b)
	}

	out := make([]byte, 0, size)
	out = le.AppendUint32(out, uint32(len(data))) //nolint:gosec
	out = le.AppendUint32(out, uint32(count))     //nolint:gosec
	for _, b := range blocks {
		out = le.AppendUint32(out, uint32(len(b))) //nolint:gosec
		out = append(out, b...)
	}

	return out, nil
}

// Decompress reverses Compress for a ModeBlock or ModeChunked frame, selecting the
// form from the leading u32 uncompressed size.
func (f *Framer) Decompress(data []byte) ([]byte, error) {
	if len(data) < sizePrefixLen {
		return nil, errs.DecompressionFailed(errs.UnexpectedEOF(len(data)))
	}

	if int(le.Uint32(data)) < format.ChunkedThreshold {
		return f.DecompressBlock(data)
	}

	return f.DecompressChunked(data)
}

// DecompressBlock reverses CompressBlock.
func (f *Framer) DecompressBlock(data []byte) ([]byte, error) {
	if len(data) < sizePrefixLen {
		return nil, errs.DecompressionFailed(errs.UnexpectedEOF(len(data)))
	}

	size := int(le.Uint32(data))
	if size > f.maxSize {
		return nil, fmt.Errorf("%w: block declares %d bytes, limit %d", errs.ErrDecompressedTooLarge, size, f.maxSize)
	}

	out, err := DecompressSized(f.codec, data[sizePrefixLen:], size)
	if err != nil {
		return nil, errs.DecompressionFailed(err)
	}

	return out, nil
}

type chunkRef struct {
	block  []byte // u32 size + codec block
	offset int    // destination offset in the output
	size   int
}

// DecompressChunked reverses CompressChunked. The framing is validated before any
// chunk is decompressed, then chunks are decompressed concurrently into one buffer.
func (f *Framer) DecompressChunked(data []byte) ([]byte, error) {
	refs, total, err := f.parseChunks(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, total)

	var g errgroup.Group
	g.SetLimit(f.parallelism)
	for i, ref := range refs {
		g.Go(func() error {
			chunk, err := DecompressSized(f.codec, ref.block[sizePrefixLen:], ref.size)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			copy(out[ref.offset:], chunk)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errs.DecompressionFailed(err)
	}

	return out, nil
}

// ChunkCount returns the chunk count declared by a chunked frame.
func ChunkCount(data []byte) (int, error) {
	if len(data) < 8 {
		return 0, errs.DecompressionFailed(errs.UnexpectedEOF(len(data)))
	}

	return int(le.Uint32(data[4:])), nil
}

func (f *Framer) parseChunks(data []byte) ([]chunkRef, int, error) {
	invalid := func(msg string) error {
		return errs.DecompressionFailed(fmt.Errorf("%w: %s", errs.ErrInvalidChunkFrame, msg))
	}

	if len(data) < 8 {
		return nil, 0, errs.DecompressionFailed(errs.UnexpectedEOF(len(data)))
	}

	total := int(le.Uint32(data))
	count := int(le.Uint32(data[4:]))
	if total > f.maxSize {
		return nil, 0, fmt.Errorf("%w: frame declares %d bytes, limit %d", errs.ErrDecompressedTooLarge, total, f.maxSize)
	}
	// every chunk needs at least its length and size prefixes
	if count == 0 || count > (len(data)-8)/(4+sizePrefixLen) {
		return nil, 0, invalid(fmt.Sprintf("chunk count %d for %d bytes", count, len(data)))
	}

	refs := make([]chunkRef, count)
	pos, offset := 8, 0
	for i := range refs {
		if len(data)-pos < 4 {
			return nil, 0, errs.DecompressionFailed(errs.UnexpectedEOF(pos))
		}
		n := int(le.Uint32(data[pos:]))
		pos += 4
		if n < sizePrefixLen || n > len(data)-pos {
			return nil, 0, errs.DecompressionFailed(errs.UnexpectedEOF(pos))
		}

		block := data[pos : pos+n]
		size := int(le.Uint32(block))
		if size > total-offset {
			return nil, 0, invalid(fmt.Sprintf("chunk %d overflows total size %d", i, total))
		}
		refs[i] = chunkRef{block: block, offset: offset, size: size}
		offset += size
		pos += n
	}

	if offset != total {
		return nil, 0, invalid(fmt.Sprintf("chunks hold %d bytes, header declares %d", offset, total))
	}
	if pos != len(data) {
		return nil, 0, invalid(fmt.Sprintf("%d trailing bytes", len(data)-pos))
	}

	return refs, total, nil
}
