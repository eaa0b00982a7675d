package bfast

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bfast/blob"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/value"
)

func sampleBatch(n int) value.Value {
	elems := make([]value.Value, n)
	for i := range elems {
		elems[i] = value.Record(
			value.F("id", value.Int(int64(i))),
			value.F("name", value.Text(fmt.Sprintf("item-%d", i))),
			value.F("price", value.Decimal(fmt.Sprintf("%d.99", i))),
		)
	}

	return value.Sequence(elems...)
}

// TestEncodeDecode verifies the package-level helpers round trip with and without compression
func TestEncodeDecode(t *testing.T) {
	v := sampleBatch(100)

	for _, compress := range []bool{false, true} {
		data, err := Encode(v, compress)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		require.True(t, value.Equal(v, got))
	}
}

// TestEncode_Concurrent verifies Encode can be called from many goroutines
func TestEncode_Concurrent(t *testing.T) {
	expected, err := Encode(sampleBatch(20), false)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = Encode(sampleBatch(20), false)
		}()
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, expected, got)
	}
}

// TestEncode_Error verifies encode errors surface from the pooled encoder
func TestEncode_Error(t *testing.T) {
	key := make([]byte, 300)
	for i := range key {
		key[i] = 'k'
	}

	_, err := Encode(value.Record(value.F(string(key), value.Null())), false)
	require.ErrorIs(t, err, errs.ErrStringTooLong)

	// the encoder returned to the pool is still usable
	_, err = Encode(sampleBatch(1), false)
	require.NoError(t, err)
}

// TestNewEncoderDecoder verifies custom codec wiring through the root helpers
func TestNewEncoderDecoder(t *testing.T) {
	enc, err := NewEncoder(blob.WithCompression(format.CompressionS2))
	require.NoError(t, err)
	dec, err := NewDecoder(blob.WithDecoderCompression(format.CompressionS2))
	require.NoError(t, err)

	v := sampleBatch(500)
	data, err := enc.Encode(v, true)
	require.NoError(t, err)

	got, err := dec.Decode(data)
	require.NoError(t, err)
	require.True(t, value.Equal(v, got))
}

func TestMediaType(t *testing.T) {
	require.Equal(t, "application/x-bfast", MediaType)
}

func BenchmarkEncode(b *testing.B) {
	v := sampleBatch(1000)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Encode(v, true); err != nil {
			b.Fatal(err)
		}
	}
}
