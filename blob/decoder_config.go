package blob

import (
	"fmt"
	"runtime"

	"github.com/arloliu/bfast/compress"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/options"
)

// DecoderConfig holds the settings of a Decoder.
type DecoderConfig struct {
	compression format.CompressionType
	maxDepth    int
	parallelism int
	maxSize     int
}

// NewDecoderConfig returns the default configuration: LZ4 decompression, a nesting
// ceiling of format.MaxDepth and decompressed frames capped at
// compress.DefaultMaxDecompressedSize.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		compression: format.CompressionLZ4,
		maxDepth:    format.MaxDepth,
		parallelism: runtime.GOMAXPROCS(0),
		maxSize:     compress.DefaultMaxDecompressedSize,
	}
}

// Compression returns the configured block codec.
func (c *DecoderConfig) Compression() format.CompressionType {
	return c.compression
}

// MaxDepth returns the nesting ceiling.
func (c *DecoderConfig) MaxDepth() int {
	return c.maxDepth
}

func (c *DecoderConfig) newFramer() (*compress.Framer, error) {
	codec, err := compress.CreateCodec(c.compression)
	if err != nil {
		return nil, err
	}

	return compress.NewFramer(codec).
		WithParallelism(c.parallelism).
		WithMaxDecompressedSize(c.maxSize), nil
}

// DecoderOption represents a functional option for configuring the DecoderConfig.
type DecoderOption = options.Option[*DecoderConfig]

// WithDecoderCompression sets the block codec compressed frames were written with.
// Default: format.CompressionLZ4.
func WithDecoderCompression(comp format.CompressionType) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("%w: compression %v", errs.ErrInvalidOption, comp)
		}
	})
}

// WithDecoderMaxDepth sets the sequence and record nesting ceiling. Default: format.MaxDepth.
func WithDecoderMaxDepth(depth int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if err := positive("max depth", depth); err != nil {
			return err
		}
		c.maxDepth = depth

		return nil
	})
}

// WithDecoderParallelism sets how many chunks are decompressed at once. Default: GOMAXPROCS.
func WithDecoderParallelism(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if err := positive("parallelism", n); err != nil {
			return err
		}
		c.parallelism = n

		return nil
	})
}

// WithMaxDecompressedSize caps the uncompressed size a compressed frame may declare.
// Default: compress.DefaultMaxDecompressedSize.
func WithMaxDecompressedSize(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if err := positive("max decompressed size", n); err != nil {
			return err
		}
		c.maxSize = n

		return nil
	})
}
