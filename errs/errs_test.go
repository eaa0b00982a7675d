package errs

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffsetErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		offset   int
	}{
		{"eof", UnexpectedEOF(12), ErrUnexpectedEOF, 12},
		{"unknown tag", UnknownTag(0xEE, 7), ErrUnknownTag, 7},
		{"trailing", TrailingData(30), ErrTrailingData, 30},
		{"string id", InvalidStringID(9, 2, 14), ErrInvalidStringID, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)

			var oe *OffsetError
			require.True(t, errors.As(tt.err, &oe))
			require.Equal(t, tt.offset, oe.Offset)
			require.Contains(t, tt.err.Error(), "at offset")
		})
	}

	require.Contains(t, UnknownTag(0xEE, 7).Error(), "0xEE")
}

func TestDetailErrors(t *testing.T) {
	err := UnsupportedVersion(3)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
	require.Contains(t, err.Error(), "3")

	err = RecursionLimit(128)
	require.ErrorIs(t, err, ErrRecursionLimitExceeded)
	require.Contains(t, err.Error(), "128")

	long := strings.Repeat("x", 300)
	err = StringTooLong(long)
	require.ErrorIs(t, err, ErrStringTooLong)
	require.Contains(t, err.Error(), "300 bytes")
	require.NotContains(t, err.Error(), long, "message shows a prefix only")
}

func TestDecompressionFailed(t *testing.T) {
	require.Equal(t, ErrDecompressionFailed, DecompressionFailed(nil))

	cause := UnexpectedEOF(3)
	err := DecompressionFailed(cause)
	require.ErrorIs(t, err, ErrDecompressionFailed)
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}
