package format

// Header layout.
const (
	MagicB  = 'B' // first magic byte
	MagicF  = 'F' // second magic byte
	Version = 1   // the only format version defined

	FlagCompressed = 0x01 // flags bit 0: the frame was compressed

	HeaderSize        = 6 // magic(2) + flags(1) + version(1) + string count(2)
	MagicOffset       = 0
	FlagsOffset       = 2
	VersionOffset     = 3
	StringCountOffset = 4
)

// Limits.
const (
	// MaxStringLength is the longest interned string, bounded by the u8 length prefix.
	MaxStringLength = 255
	// MaxStringCount is the largest string table, bounded by the u16 header count.
	MaxStringCount = 65535
	// MaxDepth is the default nesting ceiling for sequences and records.
	MaxDepth = 128
	// SmallIntMax is the largest integer written inline as TagSmallInt|n.
	// 8 is excluded because TagSmallInt|8 is TagInt.
	SmallIntMax = 15
)

// Encoding engine and compression stage thresholds.
const (
	// BatchThreshold is the sequence length above which the record batch path is tried.
	BatchThreshold = 8
	// MinCompressSize is the frame size at or below which compression is skipped.
	MinCompressSize = 256
	// ChunkedThreshold is the frame size from which chunked compression is used.
	ChunkedThreshold = 1_000_000
	// ChunkSize is the uncompressed size of each chunk in the chunked form.
	ChunkSize = 256 * 1024
)

// SmallInt reports whether n is written inline and returns its tag.
func SmallInt(n int64) (Tag, bool) {
	if n < 0 || n > SmallIntMax || n == int64(TagInt-TagSmallInt) {
		return 0, false
	}

	return TagSmallInt | Tag(n), true
}
