package compress

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
)

// framePayload returns size bytes that compress well but are not trivially uniform.
func framePayload(size int) []byte {
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	pattern := []byte("BF\x00\x01\x70\x00\x00\x00\x00\x33\x7F")
	data := make([]byte, size)
	for i := range data {
		if i%64 == 0 {
			data[i] = byte(rng.IntN(256))
		} else {
			data[i] = pattern[i%len(pattern)]
		}
	}

	return data
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeDirect, ModeFor(0))
	assert.Equal(t, ModeDirect, ModeFor(format.MinCompressSize))
	assert.Equal(t, ModeBlock, ModeFor(format.MinCompressSize+1))
	assert.Equal(t, ModeBlock, ModeFor(format.ChunkedThreshold-1))
	assert.Equal(t, ModeChunked, ModeFor(format.ChunkedThreshold))

	assert.Equal(t, "Direct", ModeDirect.String())
	assert.Equal(t, "Block", ModeBlock.String())
	assert.Equal(t, "Chunked", ModeChunked.String())
	assert.Equal(t, "Unknown", FrameMode(9).String())
}

func TestFramer_Direct(t *testing.T) {
	f := NewFramer(NewLZ4Compressor())
	data := framePayload(format.MinCompressSize)

	out, stats, err := f.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, out)
	require.Equal(t, ModeDirect, stats.Mode)
	require.Equal(t, 0, stats.Chunks)
}

func TestFramer_Block(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			f := NewFramer(codec)
			data := framePayload(64 * 1024)

			out, stats, err := f.Compress(data)
			require.NoError(t, err)
			require.Equal(t, ModeBlock, stats.Mode)
			require.Equal(t, 1, stats.Chunks)
			require.Equal(t, len(data), stats.OriginalSize)
			require.Equal(t, len(out), stats.CompressedSize)
			require.Equal(t, uint32(len(data)), le.Uint32(out), "block starts with the uncompressed size")

			got, err := f.Decompress(out)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestFramer_Chunked(t *testing.T) {
	const size = 2 * 1024 * 1024

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			f := NewFramer(codec)
			data := framePayload(size)

			out, stats, err := f.Compress(data)
			require.NoError(t, err)
			require.Equal(t, ModeChunked, stats.Mode)

			expectedChunks := (size + format.ChunkSize - 1) / format.ChunkSize
			require.Equal(t, expectedChunks, stats.Chunks)

			count, err := ChunkCount(out)
			require.NoError(t, err)
			require.Equal(t, expectedChunks, count)
			require.Equal(t, uint32(size), le.Uint32(out))

			got, err := f.Decompress(out)
			require.NoError(t, err)
			require.True(t, bytes.Equal(data, got))
		})
	}
}

func TestFramer_ChunkedUnevenTail(t *testing.T) {
	size := format.ChunkedThreshold + 12345
	f := NewFramer(NewS2Compressor()).WithParallelism(2)
	data := framePayload(size)

	out, stats, err := f.Compress(data)
	require.NoError(t, err)
	require.Equal(t, (size+format.ChunkSize-1)/format.ChunkSize, stats.Chunks)

	got, err := f.DecompressChunked(out)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestFramer_CustomChunkSize(t *testing.T) {
	f := NewFramer(NewLZ4Compressor()).WithChunkSize(100 * 1024)
	data := framePayload(format.ChunkedThreshold)

	out, stats, err := f.Compress(data)
	require.NoError(t, err)
	require.Equal(t, 10, stats.Chunks)

	// chunk size is carried by the frame, so a default framer reads it back
	got, err := NewFramer(NewLZ4Compressor()).Decompress(out)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestFramer_Stats(t *testing.T) {
	stats := FrameStats{OriginalSize: 1000, CompressedSize: 250}
	assert.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	assert.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	assert.InDelta(t, 0.0, FrameStats{}.CompressionRatio(), 1e-9)
}

func TestFramer_DecompressErrors(t *testing.T) {
	f := NewFramer(NewLZ4Compressor())

	t.Run("short input", func(t *testing.T) {
		_, err := f.Decompress([]byte{1, 2})
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})

	t.Run("corrupt block", func(t *testing.T) {
		out, err := f.CompressBlock(framePayload(4096))
		require.NoError(t, err)
		for i := 4; i < len(out); i++ {
			out[i] ^= 0xA5
		}

		_, err = f.Decompress(out)
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
	})

	t.Run("block over limit", func(t *testing.T) {
		small := NewFramer(NewLZ4Compressor()).WithMaxDecompressedSize(1024)
		out, err := small.CompressBlock(framePayload(4096))
		require.NoError(t, err)

		_, err = small.Decompress(out)
		require.ErrorIs(t, err, errs.ErrDecompressedTooLarge)
	})

	t.Run("chunked over limit", func(t *testing.T) {
		out, err := f.CompressChunked(framePayload(format.ChunkedThreshold))
		require.NoError(t, err)

		_, err = NewFramer(NewLZ4Compressor()).WithMaxDecompressedSize(format.ChunkedThreshold - 1).Decompress(out)
		require.ErrorIs(t, err, errs.ErrDecompressedTooLarge)
	})
}

func TestFramer_ChunkedFrameValidation(t *testing.T) {
	f := NewFramer(NewLZ4Compressor())
	valid, err := f.CompressChunked(framePayload(format.ChunkedThreshold))
	require.NoError(t, err)

	clone := func() []byte { return append([]byte(nil), valid...) }

	t.Run("zero chunks", func(t *testing.T) {
		data := clone()
		le.PutUint32(data[4:], 0)
		_, err := f.DecompressChunked(data)
		require.ErrorIs(t, err, errs.ErrInvalidChunkFrame)
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
	})

	t.Run("implausible chunk count", func(t *testing.T) {
		data := clone()
		le.PutUint32(data[4:], 1<<30)
		_, err := f.DecompressChunked(data)
		require.ErrorIs(t, err, errs.ErrInvalidChunkFrame)
	})

	t.Run("total mismatch", func(t *testing.T) {
		data := clone()
		le.PutUint32(data, uint32(format.ChunkedThreshold+1))
		_, err := f.DecompressChunked(data)
		require.ErrorIs(t, err, errs.ErrInvalidChunkFrame)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		data := append(clone(), 0, 0, 0)
		_, err := f.DecompressChunked(data)
		require.ErrorIs(t, err, errs.ErrInvalidChunkFrame)
	})

	t.Run("truncated", func(t *testing.T) {
		data := clone()[:len(valid)-10]
		_, err := f.DecompressChunked(data)
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})

	t.Run("corrupt chunk", func(t *testing.T) {
		data := clone()
		// first chunk block starts after total, count, length and size prefixes
		for i := 16; i < 64; i++ {
			data[i] ^= 0xFF
		}
		_, err := f.DecompressChunked(data)
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
	})

	t.Run("chunk count of short frame", func(t *testing.T) {
		_, err := ChunkCount([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})
}

func BenchmarkFramer_Chunked(b *testing.B) {
	data := framePayload(4 * 1024 * 1024)

	for name, codec := range getAllCodecs() {
		f := NewFramer(codec)
		b.Run(name+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, _, err := f.Compress(data); err != nil {
					b.Fatal(err)
				}
			}
		})

		out, _, err := f.Compress(data)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, err := f.Decompress(out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
