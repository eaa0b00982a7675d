package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/bfast/compress"
	"github.com/arloliu/bfast/encoding"
	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/options"
	"github.com/arloliu/bfast/section"
	"github.com/arloliu/bfast/value"
)

var le = endian.GetLittleEndianEngine()

// Decoder reconstructs value trees from BFast frames.
//
// A Decoder keeps no per-call state and is safe for concurrent use.
type Decoder struct {
	*DecoderConfig

	framer *compress.Framer
	floats encoding.NumericRawDecoder
}

// NewDecoder creates a Decoder.
//
// Parameters:
//   - opts: Optional configuration (compression codec, depth ceiling, size cap)
//
// Returns:
//   - *Decoder: decoder ready for use
//   - error: errs.ErrInvalidOption if an option is out of range
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	config := NewDecoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	framer, err := config.newFramer()
	if err != nil {
		return nil, err
	}

	return &Decoder{
		DecoderConfig: config,
		framer:        framer,
		floats:        encoding.NewNumericRawDecoder(),
	}, nil
}

// Decode parses one frame, compressed or not, into a value tree.
//
// A buffer starting with "BF", a clear compressed flag and a non-zero version is read
// as an uncompressed frame. Anything else is decompressed first. The returned value
// does not alias data.
//
// Returns:
//   - errs.ErrInvalidMagic if the (decompressed) frame does not start with "BF"
//   - errs.ErrUnsupportedVersion for a version other than 1
//   - errs.ErrDecompressionFailed if a block or chunk cannot be decompressed
//   - errs.ErrUnexpectedEOF if the frame is shorter than a declared length
//   - errs.ErrUnknownTag, errs.ErrInvalidStringID or errs.ErrTrailingData for a malformed payload
//   - errs.ErrRecursionLimitExceeded if nesting exceeds the configured ceiling
func (d *Decoder) Decode(data []byte) (value.Value, error) {
	if len(data) < format.HeaderSize || section.LooksUncompressed(data) {
		v, err := d.decodeFrame(data)
		if err == nil || !maybeChunked(data) {
			return v, err
		}

		// a chunked frame whose leading size happens to read as a header
		if v, cerr := d.decodeCompressed(data); cerr == nil {
			return v, nil
		}

		return value.Value{}, err
	}

	v, err := d.decodeCompressed(data)
	if err != nil && !hasMagic(data) {
		return value.Value{}, fmt.Errorf("%w: %w", errs.ErrInvalidMagic, err)
	}

	return v, err
}

func hasMagic(data []byte) bool {
	return len(data) >= 2 && data[0] == format.MagicB && data[1] == format.MagicF
}

func maybeChunked(data []byte) bool {
	return len(data) >= 8 && int(le.Uint32(data)) >= format.ChunkedThreshold
}

func (d *Decoder) decodeCompressed(data []byte) (value.Value, error) {
	frame, err := d.framer.Decompress(data)
	if err != nil {
		return value.Value{}, err
	}

	return d.decodeFrame(frame)
}

// decodeFrame parses header, string table and the single top-level value.
func (d *Decoder) decodeFrame(frame []byte) (value.Value, error) {
	header, err := section.ParseHeader(frame)
	if err != nil {
		return value.Value{}, err
	}

	keys, pos, err := encoding.DecodeVarStrings(frame, format.HeaderSize, int(header.StringCount))
	if err != nil {
		return value.Value{}, err
	}

	r := &reader{
		data:     frame,
		pos:      pos,
		keys:     keys,
		maxDepth: d.maxDepth,
		floats:   d.floats,
	}

	v, err := r.readValue()
	if err != nil {
		return value.Value{}, err
	}
	if r.pos != len(frame) {
		return value.Value{}, errs.TrailingData(r.pos)
	}

	return v, nil
}

// reader walks the tagged payload of one frame.
type reader struct {
	data     []byte
	pos      int
	keys     []string
	depth    int
	maxDepth int
	floats   encoding.NumericRawDecoder
}

func (r *reader) need(n int) error {
	if n < 0 || n > len(r.data)-r.pos {
		return errs.UnexpectedEOF(r.pos)
	}

	return nil
}

func (r *reader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++

	return b, nil
}

func (r *reader) readUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := le.Uint32(r.data[r.pos:])
	r.pos += 4

	return v, nil
}

func (r *reader) readUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := le.Uint64(r.data[r.pos:])
	r.pos += 8

	return v, nil
}

// readRaw reads a u32 length and returns that many bytes, aliasing the frame.
func (r *reader) readRaw() ([]byte, error) {
	n, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(len(r.data)-r.pos) {
		return nil, errs.UnexpectedEOF(r.pos)
	}
	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)

	return b, nil
}

func (r *reader) readText() (string, error) {
	b, err := r.readRaw()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (r *reader) enter() error {
	r.depth++
	if r.depth > r.maxDepth {
		return errs.RecursionLimit(r.maxDepth)
	}

	return nil
}

func (r *reader) exit() {
	r.depth--
}

func (r *reader) readValue() (value.Value, error) {
	tagOffset := r.pos
	b, err := r.readByte()
	if err != nil {
		return value.Value{}, err
	}

	tag := format.Tag(b)
	if tag.IsSmallInt() {
		return value.Int(int64(tag &^ format.TagSmallInt)), nil
	}

	switch tag { //nolint:exhaustive
	case format.TagNull:
		return value.Null(), nil
	case format.TagFalse:
		return value.Bool(false), nil
	case format.TagTrue:
		return value.Bool(true), nil
	case format.TagInt:
		n, err := r.readUint64()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int(int64(n)), nil //nolint:gosec
	case format.TagFloat:
		n, err := r.readUint64()
		if err != nil {
			return value.Value{}, err
		}

		return value.Float(math.Float64frombits(n)), nil
	case format.TagText:
		s, err := r.readText()
		if err != nil {
			return value.Value{}, err
		}

		return value.Text(s), nil
	case format.TagBytes:
		b, err := r.readRaw()
		if err != nil {
			return value.Value{}, err
		}

		return value.Bytes(append([]byte{}, b...)), nil
	case format.TagSequence:
		return r.readSequence()
	case format.TagRecord:
		return r.readRecord()
	case format.TagFloat64s:
		return r.readFloats()
	case format.TagDateTime, format.TagDate, format.TagTime:
		s, err := r.readText()
		if err != nil {
			return value.Value{}, err
		}

		return value.Timestamp(timestampKind(tag), s), nil
	case format.TagUUID:
		s, err := r.readText()
		if err != nil {
			return value.Value{}, err
		}

		return value.UUID(s), nil
	case format.TagDecimal:
		s, err := r.readText()
		if err != nil {
			return value.Value{}, err
		}

		return value.Decimal(s), nil
	default:
		return value.Value{}, errs.UnknownTag(b, tagOffset)
	}
}

func timestampKind(tag format.Tag) value.TimestampKind {
	switch tag { //nolint:exhaustive
	case format.TagDate:
		return value.Date
	case format.TagTime:
		return value.Time
	default:
		return value.DateTime
	}
}

func (r *reader) readSequence() (value.Value, error) {
	if err := r.enter(); err != nil {
		return value.Value{}, err
	}
	defer r.exit()

	count, err := r.readUint32()
	if err != nil {
		return value.Value{}, err
	}
	// every element takes at least its tag byte
	if uint64(count) > uint64(len(r.data)-r.pos) {
		return value.Value{}, errs.UnexpectedEOF(r.pos)
	}

	elems := make([]value.Value, int(count))
	for i := range elems {
		if elems[i], err = r.readValue(); err != nil {
			return value.Value{}, err
		}
	}

	return value.Sequence(elems...), nil
}

func (r *reader) readRecord() (value.Value, error) {
	if err := r.enter(); err != nil {
		return value.Value{}, err
	}
	defer r.exit()

	var fields []value.Field
	for {
		if err := r.need(1); err != nil {
			return value.Value{}, err
		}
		if format.Tag(r.data[r.pos]) == format.TagRecordEnd {
			r.pos++
			break
		}

		idOffset := r.pos
		id, err := r.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		if uint64(id) >= uint64(len(r.keys)) {
			return value.Value{}, errs.InvalidStringID(id, len(r.keys), idOffset)
		}

		v, err := r.readValue()
		if err != nil {
			return value.Value{}, err
		}
		fields = append(fields, value.F(r.keys[id], v))
	}

	return value.Record(fields...), nil
}

func (r *reader) readFloats() (value.Value, error) {
	count, err := r.readUint32()
	if err != nil {
		return value.Value{}, err
	}
	if uint64(count) > uint64(len(r.data)-r.pos)/8 {
		return value.Value{}, errs.UnexpectedEOF(r.pos)
	}

	nums, err := r.floats.Decode(r.data[r.pos:], int(count))
	if err != nil {
		return value.Value{}, err
	}
	r.pos += 8 * int(count)

	return value.NumericArray(nums), nil
}
