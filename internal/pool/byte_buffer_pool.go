package pool

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/arloliu/bfast/endian"
)

const (
	// WorkBufferDefaultSize is the initial capacity of an encoder work buffer.
	WorkBufferDefaultSize = 1024 * 64 // 64KiB
	// WorkBufferMaxThreshold is the largest buffer returned to the pool.
	WorkBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

var le = endian.GetLittleEndianEngine()

// ByteBuffer is a growable byte slice with little-endian append helpers and
// bounds-checked writes at fixed offsets.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures the buffer can take n more bytes without reallocating.
//
// Small buffers grow by WorkBufferDefaultSize, larger ones by 25% of their capacity,
// and never by less than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := WorkBufferDefaultSize
	if cap(bb.B) > 4*WorkBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Reserve appends n zero bytes and returns the offset of the first one, to be filled
// later with the Put*At methods.
func (bb *ByteBuffer) Reserve(n int) int {
	off := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:off+n]
	clear(bb.B[off:])

	return off
}

// Extend appends n bytes and returns them for the caller to fill.
func (bb *ByteBuffer) Extend(n int) []byte {
	off := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:off+n]

	return bb.B[off:]
}

// AppendByte appends one byte.
func (bb *ByteBuffer) AppendByte(b byte) {
	bb.B = append(bb.B, b)
}

// AppendUint32 appends v in little-endian order.
func (bb *ByteBuffer) AppendUint32(v uint32) {
	bb.B = le.AppendUint32(bb.B, v)
}

// AppendUint64 appends v in little-endian order.
func (bb *ByteBuffer) AppendUint64(v uint64) {
	bb.B = le.AppendUint64(bb.B, v)
}

// AppendTagUint32 appends a tag byte followed by v.
func (bb *ByteBuffer) AppendTagUint32(tag byte, v uint32) {
	bb.B = le.AppendUint32(append(bb.B, tag), v)
}

// AppendString appends the bytes of s.
func (bb *ByteBuffer) AppendString(s string) {
	bb.B = append(bb.B, s...)
}

// MustWrite appends data.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// PutByteAt overwrites the byte at off.
func (bb *ByteBuffer) PutByteAt(off int, b byte) error {
	if err := bb.checkRange(off, 1); err != nil {
		return err
	}
	bb.B[off] = b

	return nil
}

// PutUint16At overwrites two bytes at off with v in little-endian order.
func (bb *ByteBuffer) PutUint16At(off int, v uint16) error {
	if err := bb.checkRange(off, 2); err != nil {
		return err
	}
	le.PutUint16(bb.B[off:off+2], v)

	return nil
}

// PutUint32At overwrites four bytes at off with v in little-endian order.
func (bb *ByteBuffer) PutUint32At(off int, v uint32) error {
	if err := bb.checkRange(off, 4); err != nil {
		return err
	}
	le.PutUint32(bb.B[off:off+4], v)

	return nil
}

// PutBytesAt overwrites len(data) bytes at off.
func (bb *ByteBuffer) PutBytesAt(off int, data []byte) error {
	if err := bb.checkRange(off, len(data)); err != nil {
		return err
	}
	copy(bb.B[off:], data)

	return nil
}

func (bb *ByteBuffer) checkRange(off, n int) error {
	if off < 0 || n < 0 || off > len(bb.B)-n {
		return fmt.Errorf("write of %d bytes at offset %d out of range (len %d)", n, off, len(bb.B))
	}

	return nil
}

// Write appends data, implementing io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// FitsUint32 reports whether n can be written as a u32 length or count.
func FitsUint32(n int) bool {
	return n >= 0 && uint64(n) <= math.MaxUint32
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var workPool = NewByteBufferPool(WorkBufferDefaultSize, WorkBufferMaxThreshold)

// GetWorkBuffer retrieves a ByteBuffer from the encoder work buffer pool.
func GetWorkBuffer() *ByteBuffer {
	return workPool.Get()
}

// PutWorkBuffer returns a ByteBuffer to the encoder work buffer pool.
func PutWorkBuffer(bb *ByteBuffer) {
	workPool.Put(bb)
}
