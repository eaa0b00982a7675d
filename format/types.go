// Package format defines the tag bytes, wire constants and compression types of the
// BFast binary format.
package format

type (
	// Tag is the one-byte discriminator that precedes every encoded value.
	Tag uint8
	// CompressionType identifies the block codec used by the compression stage.
	CompressionType uint8
)

const (
	TagNull      Tag = 0x10 // TagNull encodes a null value, no payload.
	TagFalse     Tag = 0x20 // TagFalse encodes boolean false, no payload.
	TagTrue      Tag = 0x21 // TagTrue encodes boolean true, no payload.
	TagSmallInt  Tag = 0x30 // TagSmallInt is the base of the inline integer range, value in the low nibble.
	TagInt       Tag = 0x38 // TagInt encodes a signed int64 as 8 bytes.
	TagFloat     Tag = 0x40 // TagFloat encodes an IEEE-754 float64 as 8 bytes.
	TagText      Tag = 0x50 // TagText encodes u32 length + UTF-8 bytes.
	TagSequence  Tag = 0x60 // TagSequence encodes u32 count + encoded elements.
	TagRecord    Tag = 0x70 // TagRecord starts (u32 key id, value) pairs.
	TagRecordEnd Tag = 0x7F // TagRecordEnd terminates a record.
	TagBytes     Tag = 0x80 // TagBytes encodes u32 length + raw bytes.
	TagFloat64s  Tag = 0x90 // TagFloat64s encodes u32 count + raw little-endian float64 data.
	TagDateTime  Tag = 0xD1 // TagDateTime encodes an ISO-8601 date-time as length-prefixed text.
	TagDate      Tag = 0xD2 // TagDate encodes an ISO-8601 date as length-prefixed text.
	TagTime      Tag = 0xD3 // TagTime encodes an ISO-8601 time as length-prefixed text.
	TagUUID      Tag = 0xD4 // TagUUID encodes a UUID as length-prefixed hex text.
	TagDecimal   Tag = 0xD5 // TagDecimal encodes a decimal as length-prefixed canonical text.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression, the format default.
)

// IsSmallInt reports whether t is one of the inline integer tags.
func (t Tag) IsSmallInt() bool {
	return t&0xF0 == TagSmallInt && t != TagInt
}

func (t Tag) String() string {
	switch {
	case t == TagNull:
		return "Null"
	case t == TagFalse, t == TagTrue:
		return "Bool"
	case t == TagInt:
		return "Int"
	case t.IsSmallInt():
		return "SmallInt"
	case t == TagFloat:
		return "Float"
	case t == TagText:
		return "Text"
	case t == TagSequence:
		return "Sequence"
	case t == TagRecord:
		return "Record"
	case t == TagRecordEnd:
		return "RecordEnd"
	case t == TagBytes:
		return "Bytes"
	case t == TagFloat64s:
		return "NumericArray"
	case t == TagDateTime:
		return "DateTime"
	case t == TagDate:
		return "Date"
	case t == TagTime:
		return "Time"
	case t == TagUUID:
		return "UUID"
	case t == TagDecimal:
		return "Decimal"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
