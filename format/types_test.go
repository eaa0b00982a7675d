package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTag_IsSmallInt(t *testing.T) {
	for n := range 16 {
		tag := TagSmallInt | Tag(n)
		require.Equal(t, n != 8, tag.IsSmallInt(), "tag 0x%02X", uint8(tag))
	}

	require.False(t, TagNull.IsSmallInt())
	require.False(t, TagFloat.IsSmallInt())
}

func TestSmallInt(t *testing.T) {
	tests := []struct {
		n      int64
		tag    Tag
		inline bool
	}{
		{0, 0x30, true},
		{7, 0x37, true},
		{8, 0, false},
		{9, 0x39, true},
		{15, 0x3F, true},
		{16, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		tag, ok := SmallInt(tt.n)
		require.Equal(t, tt.inline, ok, "n=%d", tt.n)
		require.Equal(t, tt.tag, tag, "n=%d", tt.n)
		if ok {
			require.True(t, tag.IsSmallInt())
		}
	}
}

func TestTag_String(t *testing.T) {
	tests := map[Tag]string{
		TagNull:      "Null",
		TagTrue:      "Bool",
		TagInt:       "Int",
		0x3A:         "SmallInt",
		TagRecordEnd: "RecordEnd",
		TagFloat64s:  "NumericArray",
		TagUUID:      "UUID",
		0xEE:         "Unknown",
	}

	for tag, expected := range tests {
		require.Equal(t, expected, tag.String())
	}
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}

func TestWireConstants(t *testing.T) {
	require.Equal(t, 6, HeaderSize)
	require.Equal(t, StringCountOffset+2, HeaderSize)
	require.Less(t, MinCompressSize, ChunkedThreshold)
	require.Equal(t, 262144, ChunkSize)
}
