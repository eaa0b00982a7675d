package blob

import (
	"fmt"
	"runtime"

	"github.com/arloliu/bfast/compress"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/options"
)

// EncoderConfig holds the settings shared by every Encode call of an Encoder.
type EncoderConfig struct {
	compression    format.CompressionType
	maxDepth       int
	batchThreshold int
	batchFastPath  bool
	chunkSize      int
	parallelism    int
}

// NewEncoderConfig returns the default configuration: LZ4 compression, a nesting
// ceiling of format.MaxDepth and the batch fast path enabled for sequences longer
// than format.BatchThreshold.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		compression:    format.CompressionLZ4,
		maxDepth:       format.MaxDepth,
		batchThreshold: format.BatchThreshold,
		batchFastPath:  true,
		chunkSize:      format.ChunkSize,
		parallelism:    runtime.GOMAXPROCS(0),
	}
}

// Compression returns the configured block codec.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.compression
}

// MaxDepth returns the nesting ceiling.
func (c *EncoderConfig) MaxDepth() int {
	return c.maxDepth
}

// BatchThreshold returns the sequence length the batch fast path must exceed.
func (c *EncoderConfig) BatchThreshold() int {
	return c.batchThreshold
}

// BatchFastPath reports whether the batch fast path is enabled.
func (c *EncoderConfig) BatchFastPath() bool {
	return c.batchFastPath
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.compression = comp
		return nil
	default:
		return fmt.Errorf("%w: compression %v", errs.ErrInvalidOption, comp)
	}
}

func (c *EncoderConfig) newFramer() (*compress.Framer, error) {
	codec, err := compress.CreateCodec(c.compression)
	if err != nil {
		return nil, err
	}

	return compress.NewFramer(codec).
		WithChunkSize(c.chunkSize).
		WithParallelism(c.parallelism), nil
}

func positive(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", errs.ErrInvalidOption, name, n)
	}

	return nil
}

// EncoderOption represents a functional option for configuring the EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the block codec used when Encode is asked to compress.
//
// The codec is not recorded in the output; the decoder must be configured with the
// same codec through WithDecoderCompression. LZ4 is the default on both sides.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithMaxDepth sets the sequence and record nesting ceiling. Default: format.MaxDepth.
func WithMaxDepth(depth int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if err := positive("max depth", depth); err != nil {
			return err
		}
		c.maxDepth = depth

		return nil
	})
}

// WithBatchThreshold sets the length a sequence of records must exceed to take the
// batch fast path. Default: format.BatchThreshold.
func WithBatchThreshold(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: batch threshold must not be negative, got %d", errs.ErrInvalidOption, n)
		}
		c.batchThreshold = n

		return nil
	})
}

// WithBatchFastPath enables or disables the batch fast path.
//
// Output is byte-identical either way for sequences whose records share the same keys
// in the same order. For other sequences the fast path projects every record onto the
// keys of the first one.
func WithBatchFastPath(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.batchFastPath = enabled
	})
}

// WithChunkSize sets the uncompressed chunk size of chunked compression.
// Default: format.ChunkSize.
func WithChunkSize(size int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if err := positive("chunk size", size); err != nil {
			return err
		}
		c.chunkSize = size

		return nil
	})
}

// WithParallelism sets how many chunks are compressed at once. Default: GOMAXPROCS.
func WithParallelism(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if err := positive("parallelism", n); err != nil {
			return err
		}
		c.parallelism = n

		return nil
	})
}
