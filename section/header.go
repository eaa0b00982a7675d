package section

import (
	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/pool"
)

// Header represents the fixed-size header at the start of a BFast frame.
type Header struct {
	// Flags holds the frame flags. Bit 0 is set when the frame was compressed.
	Flags uint8 // byte offset 2
	// Version is the format version, always format.Version when encoding.
	Version uint8 // byte offset 3
	// StringCount is the number of entries in the string table, max to 65535.
	StringCount uint16 // byte offset 4-5
}

// NewHeader creates a header for a frame with the given string table size.
//
// Returns:
//   - Header: header with format.Version and the compressed flag set as requested
//   - error: errs.ErrTooManyStrings if stringCount exceeds format.MaxStringCount
func NewHeader(stringCount int, compressed bool) (Header, error) {
	if stringCount < 0 || stringCount > format.MaxStringCount {
		return Header{}, errs.ErrTooManyStrings
	}

	h := Header{
		Version:     format.Version,
		StringCount: uint16(stringCount), //nolint:gosec
	}
	if compressed {
		h.Flags |= format.FlagCompressed
	}

	return h, nil
}

// Compressed reports whether the compressed flag is set.
func (h Header) Compressed() bool {
	return h.Flags&format.FlagCompressed != 0
}

// PutAt writes the header into bb at offset off, which must point at
// format.HeaderSize reserved bytes.
func (h Header) PutAt(bb *pool.ByteBuffer, off int) error {
	if err := bb.PutBytesAt(off+format.MagicOffset, []byte{format.MagicB, format.MagicF}); err != nil {
		return err
	}
	if err := bb.PutByteAt(off+format.FlagsOffset, h.Flags); err != nil {
		return err
	}
	if err := bb.PutByteAt(off+format.VersionOffset, h.Version); err != nil {
		return err
	}

	return bb.PutUint16At(off+format.StringCountOffset, h.StringCount)
}

// Bytes serializes the header into a new byte slice.
func (h Header) Bytes() []byte {
	bb := pool.NewByteBuffer(format.HeaderSize)
	bb.Reserve(format.HeaderSize)
	_ = h.PutAt(bb, 0) // cannot fail: exactly HeaderSize bytes reserved

	return bb.Bytes()
}

// ParseHeader parses the header from the start of data.
//
// Returns:
//   - Header: parsed header
//   - error: ErrUnexpectedEOF if data is shorter than the header, ErrInvalidMagic if
//     the magic is not "BF", ErrUnsupportedVersion for any version other than 1
func ParseHeader(data []byte) (Header, error) {
	if len(data) < 2 {
		if len(data) == 0 || data[0] == format.MagicB {
			return Header{}, errs.UnexpectedEOF(len(data))
		}

		return Header{}, errs.ErrInvalidMagic
	}
	if data[0] != format.MagicB || data[1] != format.MagicF {
		return Header{}, errs.ErrInvalidMagic
	}
	if len(data) < format.HeaderSize {
		return Header{}, errs.UnexpectedEOF(len(data))
	}

	h := Header{
		Flags:       data[format.FlagsOffset],
		Version:     data[format.VersionOffset],
		StringCount: endian.GetLittleEndianEngine().Uint16(data[format.StringCountOffset:]),
	}
	if h.Version != format.Version {
		return Header{}, errs.UnsupportedVersion(h.Version)
	}

	return h, nil
}

// LooksUncompressed reports whether data is shaped like an uncompressed frame:
// magic "BF", compressed flag clear and a non-zero version byte.
//
// A compressed frame starts with its u32 uncompressed size instead. Single block
// frames are smaller than format.ChunkedThreshold, so their fourth byte is always
// zero and never mistaken for a version. Chunked frames can collide, which the
// decoder resolves by falling back to the chunked form.
func LooksUncompressed(data []byte) bool {
	return len(data) >= format.HeaderSize &&
		data[0] == format.MagicB && data[1] == format.MagicF &&
		data[format.FlagsOffset]&format.FlagCompressed == 0 &&
		data[format.VersionOffset] != 0
}
