// Package errs defines the error values returned by the bfast encoder and decoder.
//
// Every failure is rooted in one of the sentinel errors below, so callers can always
// classify an error with errors.Is. Errors that carry detail (a byte offset, the
// offending text, a version number) wrap their sentinel:
//
//	_, err := bfast.Decode(data)
//	if errors.Is(err, errs.ErrUnexpectedEOF) {
//	    var oe *errs.OffsetError
//	    if errors.As(err, &oe) {
//	        log.Printf("truncated at byte %d", oe.Offset)
//	    }
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic is returned when a frame does not start with "BF".
	ErrInvalidMagic = errors.New("invalid magic number: expected 'BF'")
	// ErrUnsupportedVersion is returned when the header version byte is not recognized.
	ErrUnsupportedVersion = errors.New("unsupported protocol version")
	// ErrDecompressionFailed is returned when a block or chunk cannot be decompressed.
	ErrDecompressionFailed = errors.New("decompression failed")
	// ErrUnexpectedEOF is returned when the buffer is shorter than a tag's declared payload.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")
	// ErrStringTooLong is returned when an interned string exceeds 255 bytes.
	ErrStringTooLong = errors.New("string too long for header (max 255 bytes)")
	// ErrRecursionLimitExceeded is returned when nesting exceeds the depth ceiling.
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")
	// ErrTooManyStrings is returned when more than 65535 distinct keys are interned.
	ErrTooManyStrings = errors.New("too many interned strings (max 65535)")
	// ErrUnknownTag is returned when the decoder meets a tag byte it does not know.
	ErrUnknownTag = errors.New("unknown tag byte")
	// ErrInvalidStringID is returned when a record key references a missing string table entry.
	ErrInvalidStringID = errors.New("string id out of range")
	// ErrTrailingData is returned when bytes remain after the top-level value.
	ErrTrailingData = errors.New("trailing data after value")
	// ErrInvalidChunkFrame is returned when a chunked compression frame is inconsistent.
	ErrInvalidChunkFrame = errors.New("invalid chunk frame")
	// ErrDecompressedTooLarge is returned when a frame declares more bytes than the decoder allows.
	ErrDecompressedTooLarge = errors.New("decompressed size exceeds limit")
	// ErrInvalidOption is returned when an encoder or decoder option is out of range.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidValue is returned when a value cannot be represented on the wire.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotHomogeneousBatch signals the batch fast path to fall back to the generic path.
	// It never escapes an Encode call.
	ErrNotHomogeneousBatch = errors.New("not a homogeneous batch")
)

// OffsetError attaches the byte offset at which decoding failed to a sentinel error.
type OffsetError struct {
	Err    error
	Offset int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Err.Error(), e.Offset)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}

// UnexpectedEOF returns ErrUnexpectedEOF annotated with the offset of the short read.
func UnexpectedEOF(offset int) error {
	return &OffsetError{Err: ErrUnexpectedEOF, Offset: offset}
}

// UnknownTag returns ErrUnknownTag annotated with the tag value and its offset.
func UnknownTag(tag byte, offset int) error {
	return &OffsetError{Err: fmt.Errorf("%w 0x%02X", ErrUnknownTag, tag), Offset: offset}
}

// UnsupportedVersion returns ErrUnsupportedVersion annotated with the version found.
func UnsupportedVersion(version uint8) error {
	return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
}

// StringTooLong returns ErrStringTooLong annotated with a prefix of the offending text.
func StringTooLong(text string) error {
	shown := text
	if len(shown) > 32 {
		shown = shown[:32] + "..."
	}

	return fmt.Errorf("%w: %q is %d bytes", ErrStringTooLong, shown, len(text))
}

// RecursionLimit returns ErrRecursionLimitExceeded annotated with the configured ceiling.
func RecursionLimit(limit int) error {
	return fmt.Errorf("%w: nesting deeper than %d", ErrRecursionLimitExceeded, limit)
}

// DecompressionFailed wraps a codec error as ErrDecompressionFailed.
func DecompressionFailed(cause error) error {
	if cause == nil {
		return ErrDecompressionFailed
	}

	return fmt.Errorf("%w: %w", ErrDecompressionFailed, cause)
}

// TrailingData returns ErrTrailingData annotated with the offset of the first extra byte.
func TrailingData(offset int) error {
	return &OffsetError{Err: ErrTrailingData, Offset: offset}
}

// InvalidStringID returns ErrInvalidStringID annotated with the id, the table size and
// the offset of the id.
func InvalidStringID(id uint32, count int, offset int) error {
	return &OffsetError{Err: fmt.Errorf("%w: id %d, table holds %d", ErrInvalidStringID, id, count), Offset: offset}
}
