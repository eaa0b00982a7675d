package blob

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/bfast/compress"
	"github.com/arloliu/bfast/encoding"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/intern"
	"github.com/arloliu/bfast/internal/options"
	"github.com/arloliu/bfast/internal/pool"
	"github.com/arloliu/bfast/section"
	"github.com/arloliu/bfast/value"
)

// Encoder serializes value trees into BFast frames.
//
// An Encoder owns its interning table and depth counter. Every Encode call starts from
// a clean state, so an instance can be reused for any number of sequential calls.
//
// Note: The Encoder is NOT thread-safe. Use one instance per goroutine.
type Encoder struct {
	*EncoderConfig

	framer  *compress.Framer
	floats  encoding.NumericRawEncoder
	table   *intern.Table
	payload *pool.ByteBuffer // valid during Encode only
	depth   int
	stats   compress.FrameStats
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: Optional configuration (compression codec, depth ceiling, batch fast path, chunking)
//
// Returns:
//   - *Encoder: encoder ready for use
//   - error: errs.ErrInvalidOption if an option is out of range
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	framer, err := config.newFramer()
	if err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: config,
		framer:        framer,
		floats:        encoding.NewNumericRawEncoder(),
		table:         intern.NewTable(),
	}, nil
}

// Encode serializes v into a new frame.
//
// When compressed is true and the frame is larger than format.MinCompressSize bytes
// the frame is compressed, as one block below format.ChunkedThreshold bytes and as
// concurrently compressed chunks above it. The header compressed flag records whether
// compression was applied.
//
// The returned slice is owned by the caller. On error no partial frame is returned.
//
// Returns:
//   - errs.ErrStringTooLong if a record key exceeds 255 bytes
//   - errs.ErrTooManyStrings if the frame needs more interned keys than the header can count
//   - errs.ErrRecursionLimitExceeded if nesting exceeds the configured ceiling
//   - errs.ErrInvalidValue if a value cannot be represented on the wire
func (e *Encoder) Encode(v value.Value, compressed bool) ([]byte, error) {
	e.table.Reset()
	e.depth = 0
	e.stats = compress.FrameStats{}

	e.payload = pool.GetWorkBuffer()
	defer func() {
		pool.PutWorkBuffer(e.payload)
		e.payload = nil
	}()

	if err := e.encodeValue(v); err != nil {
		return nil, err
	}

	size := format.HeaderSize + e.table.EncodedSize() + e.payload.Len()
	mode := compress.ModeDirect
	if compressed {
		mode = compress.ModeFor(size)
	}

	frame, err := e.assemble(size, mode != compress.ModeDirect)
	if err != nil {
		return nil, err
	}

	if mode == compress.ModeDirect {
		e.stats = compress.FrameStats{Mode: mode, OriginalSize: len(frame), CompressedSize: len(frame)}
		return frame, nil
	}

	out, stats, err := e.framer.Compress(frame)
	if err != nil {
		return nil, fmt.Errorf("compress frame: %w", err)
	}
	e.stats = stats

	return out, nil
}

// LastStats describes the compression stage of the most recent successful Encode call.
func (e *Encoder) LastStats() compress.FrameStats {
	return e.stats
}

// assemble builds header + string table + payload. The header is written last, into
// space reserved at the front, once the string count is known.
func (e *Encoder) assemble(size int, compressed bool) ([]byte, error) {
	header, err := section.NewHeader(e.table.Len(), compressed)
	if err != nil {
		return nil, err
	}

	out := pool.NewByteBuffer(size)
	off := out.Reserve(format.HeaderSize)
	if err := encoding.NewVarStringEncoder(out).WriteSlice(e.table.Keys()); err != nil {
		return nil, err
	}
	out.MustWrite(e.payload.Bytes())

	if err := header.PutAt(out, off); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func (e *Encoder) enter() error {
	e.depth++
	if e.depth > e.maxDepth {
		return errs.RecursionLimit(e.maxDepth)
	}

	return nil
}

func (e *Encoder) exit() {
	e.depth--
}

// encodeValue appends the tagged form of v to the payload.
//
// The cases follow the dispatch priority of the format: extended types first, then
// booleans before integers, aggregates last.
func (e *Encoder) encodeValue(v value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		e.payload.AppendByte(byte(format.TagNull))
	case value.KindDecimal:
		return e.appendText(format.TagDecimal, v.Text())
	case value.KindTimestamp:
		tag, err := timestampTag(v.TimestampKind())
		if err != nil {
			return err
		}

		return e.appendText(tag, v.Text())
	case value.KindUUID:
		return e.appendText(format.TagUUID, v.Text())
	case value.KindBool:
		e.appendBool(v.Bool())
	case value.KindInt:
		e.appendInt(v.Int())
	case value.KindFloat:
		e.appendFloat(v.Float())
	case value.KindText:
		return e.appendText(format.TagText, v.Text())
	case value.KindBytes:
		return e.appendBytes(v.Bytes())
	case value.KindSequence:
		return e.encodeSequence(v.Elems())
	case value.KindNumericArray:
		return e.appendFloats(v.Floats())
	case value.KindRecord:
		return e.encodeRecord(v.Fields())
	default:
		return fmt.Errorf("%w: unknown kind %d", errs.ErrInvalidValue, v.Kind())
	}

	return nil
}

func timestampTag(kind value.TimestampKind) (format.Tag, error) {
	switch kind {
	case value.DateTime:
		return format.TagDateTime, nil
	case value.Date:
		return format.TagDate, nil
	case value.Time:
		return format.TagTime, nil
	default:
		return 0, fmt.Errorf("%w: timestamp kind %d", errs.ErrInvalidValue, kind)
	}
}

func (e *Encoder) appendBool(b bool) {
	if b {
		e.payload.AppendByte(byte(format.TagTrue))
	} else {
		e.payload.AppendByte(byte(format.TagFalse))
	}
}

func (e *Encoder) appendInt(n int64) {
	if tag, ok := format.SmallInt(n); ok {
		e.payload.AppendByte(byte(tag))
		return
	}

	e.payload.AppendByte(byte(format.TagInt))
	e.payload.AppendUint64(uint64(n)) //nolint:gosec
}

func (e *Encoder) appendFloat(f float64) {
	e.payload.AppendByte(byte(format.TagFloat))
	e.payload.AppendUint64(math.Float64bits(f))
}

func (e *Encoder) appendText(tag format.Tag, s string) error {
	if !pool.FitsUint32(len(s)) {
		return fmt.Errorf("%w: %s of %d bytes exceeds u32 length", errs.ErrInvalidValue, tag, len(s))
	}

	e.payload.Grow(5 + len(s))
	e.payload.AppendTagUint32(byte(tag), uint32(len(s))) //nolint:gosec
	e.payload.AppendString(s)

	return nil
}

func (e *Encoder) appendBytes(b []byte) error {
	if !pool.FitsUint32(len(b)) {
		return fmt.Errorf("%w: bytes of %d bytes exceeds u32 length", errs.ErrInvalidValue, len(b))
	}

	e.payload.Grow(5 + len(b))
	e.payload.AppendTagUint32(byte(format.TagBytes), uint32(len(b))) //nolint:gosec
	e.payload.MustWrite(b)

	return nil
}

func (e *Encoder) appendFloats(nums []float64) error {
	if !pool.FitsUint32(len(nums)) {
		return fmt.Errorf("%w: numeric array of %d values exceeds u32 count", errs.ErrInvalidValue, len(nums))
	}

	e.payload.Grow(5 + 8*len(nums))
	e.payload.AppendTagUint32(byte(format.TagFloat64s), uint32(len(nums))) //nolint:gosec
	e.floats.AppendTo(e.payload, nums)

	return nil
}

func (e *Encoder) encodeSequence(elems []value.Value) error {
	if !pool.FitsUint32(len(elems)) {
		return fmt.Errorf("%w: sequence of %d values exceeds u32 count", errs.ErrInvalidValue, len(elems))
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	e.payload.AppendTagUint32(byte(format.TagSequence), uint32(len(elems))) //nolint:gosec

	if e.batchFastPath && len(elems) > e.batchThreshold {
		err := e.encodeBatch(elems)
		if !errors.Is(err, errs.ErrNotHomogeneousBatch) {
			return err
		}
	}

	for _, elem := range elems {
		if err := e.encodeValue(elem); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeRecord(fields []value.Field) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	e.payload.AppendByte(byte(format.TagRecord))
	for _, f := range fields {
		id, err := e.table.Intern(f.Key)
		if err != nil {
			return err
		}
		e.payload.AppendUint32(id)

		if err := e.encodeValue(f.Value); err != nil {
			return err
		}
	}
	e.payload.AppendByte(byte(format.TagRecordEnd))

	return nil
}
