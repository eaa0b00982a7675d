package encoding

import (
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/pool"
)

// VarStringEncoder encodes strings with a uint8 length prefix.
//
// Each string is encoded as:
//   - 1 byte: length (0-255)
//   - N bytes: string data (UTF-8)
//
// Strings longer than format.MaxStringLength are rejected with errs.ErrStringTooLong.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewVarStringEncoder creates an encoder appending to buf.
func NewVarStringEncoder(buf *pool.ByteBuffer) *VarStringEncoder {
	return &VarStringEncoder{buf: buf}
}

// Write encodes a single string.
func (e *VarStringEncoder) Write(text string) error {
	if len(text) > format.MaxStringLength {
		return errs.StringTooLong(text)
	}

	e.buf.Grow(1 + len(text))
	e.buf.AppendByte(uint8(len(text))) //nolint:gosec
	e.buf.AppendString(text)
	e.count++

	return nil
}

// WriteSlice encodes texts in order after validating all of them, so a failure
// leaves the buffer untouched.
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	totalSize := 0
	for _, text := range texts {
		if len(text) > format.MaxStringLength {
			return errs.StringTooLong(text)
		}
		totalSize += 1 + len(text)
	}

	e.buf.Grow(totalSize)
	for _, text := range texts {
		e.buf.AppendByte(uint8(len(text))) //nolint:gosec
		e.buf.AppendString(text)
	}
	e.count += len(texts)

	return nil
}

// Len returns the number of strings encoded.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// DecodeVarStrings decodes count length-prefixed strings from data starting at offset.
//
// Returns:
//   - []string: decoded strings, copied out of data
//   - int: offset just past the last string
//   - error: errs.ErrUnexpectedEOF with the failing offset if data is too short
func DecodeVarStrings(data []byte, offset int, count int) ([]string, int, error) {
	out := make([]string, count)
	for i := range count {
		if offset >= len(data) {
			return nil, offset, errs.UnexpectedEOF(offset)
		}
		n := int(data[offset])
		offset++
		if n > len(data)-offset {
			return nil, offset, errs.UnexpectedEOF(offset)
		}
		out[i] = string(data[offset : offset+n])
		offset += n
	}

	return out, offset, nil
}
