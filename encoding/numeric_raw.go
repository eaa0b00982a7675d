package encoding

import (
	"math"
	"unsafe"

	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/internal/pool"
)

// NumericRawEncoder writes float64 values in their IEEE-754 little-endian form.
//
// When the host is little-endian the values are copied straight from memory with a
// single copy; otherwise each value is converted with the endian engine.
type NumericRawEncoder struct {
	engine endian.EndianEngine
	native bool
}

// NewNumericRawEncoder creates a raw float64 encoder for the wire byte order.
func NewNumericRawEncoder() NumericRawEncoder {
	return NumericRawEncoder{
		engine: endian.GetLittleEndianEngine(),
		native: endian.IsNativeLittleEndian(),
	}
}

// AppendTo appends 8 × len(values) bytes to bb.
func (e NumericRawEncoder) AppendTo(bb *pool.ByteBuffer, values []float64) {
	if len(values) == 0 {
		return
	}

	dst := bb.Extend(len(values) * 8)
	if e.native {
		src := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), len(values)*8)
		copy(dst, src)

		return
	}

	for i, v := range values {
		e.engine.PutUint64(dst[i*8:], math.Float64bits(v))
	}
}

// NumericRawDecoder reads float64 values written by NumericRawEncoder.
type NumericRawDecoder struct {
	engine endian.EndianEngine
	native bool
}

// NewNumericRawDecoder creates a raw float64 decoder for the wire byte order.
//
// The decoder is stateless and returned by value.
func NewNumericRawDecoder() NumericRawDecoder {
	return NumericRawDecoder{
		engine: endian.GetLittleEndianEngine(),
		native: endian.IsNativeLittleEndian(),
	}
}

// Decode copies count float64 values out of data, which must hold at least count × 8 bytes.
// The returned slice does not alias data.
func (d NumericRawDecoder) Decode(data []byte, count int) ([]float64, error) {
	if count < 0 || len(data)/8 < count {
		return nil, errs.UnexpectedEOF(len(data))
	}

	out := make([]float64, count)
	if count == 0 {
		return out, nil
	}

	if d.native {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(out))), count*8)
		copy(dst, data)

		return out, nil
	}

	for i := range out {
		out[i] = math.Float64frombits(d.engine.Uint64(data[i*8:]))
	}

	return out, nil
}
