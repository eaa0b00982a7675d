package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.AppendString("some data")
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Append(t *testing.T) {
	bb := NewByteBuffer(0)

	bb.AppendByte(0x50)
	bb.AppendUint32(3)
	bb.AppendString("abc")
	bb.AppendTagUint32(0x60, 0x01020304)
	bb.AppendUint64(0x0807060504030201)
	bb.MustWrite([]byte{0xFF})

	expected := []byte{
		0x50, 3, 0, 0, 0, 'a', 'b', 'c',
		0x60, 4, 3, 2, 1,
		1, 2, 3, 4, 5, 6, 7, 8,
		0xFF,
	}
	require.Equal(t, expected, bb.Bytes())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op when capacity suffices", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.AppendString("0123456789")
		bb.Grow(1)
		assert.Equal(t, 10+WorkBufferDefaultSize, bb.Cap())
		assert.Equal(t, []byte("0123456789"), bb.Bytes())
	})

	t.Run("large request wins", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(WorkBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, bb.Cap(), WorkBufferDefaultSize*3)
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * WorkBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.Extend(size)
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})
}

func TestByteBuffer_ReserveAndPut(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.AppendByte(0xAA)

	off := bb.Reserve(6)
	require.Equal(t, 1, off)
	require.Equal(t, 7, bb.Len())
	bb.AppendByte(0xBB)

	require.NoError(t, bb.PutBytesAt(off, []byte("BF")))
	require.NoError(t, bb.PutByteAt(off+2, 0x01))
	require.NoError(t, bb.PutByteAt(off+3, 0x01))
	require.NoError(t, bb.PutUint16At(off+4, 0x0302))

	require.Equal(t, []byte{0xAA, 'B', 'F', 1, 1, 2, 3, 0xBB}, bb.Bytes())
}

func TestByteBuffer_PutOutOfRange(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Reserve(4)

	require.Error(t, bb.PutByteAt(4, 1))
	require.Error(t, bb.PutByteAt(-1, 1))
	require.Error(t, bb.PutUint16At(3, 1))
	require.Error(t, bb.PutUint32At(1, 1))
	require.Error(t, bb.PutBytesAt(2, []byte{1, 2, 3}))
	require.NoError(t, bb.PutUint32At(0, 1))

	// failed writes leave the buffer untouched
	require.Equal(t, []byte{1, 0, 0, 0}, bb.Bytes())
}

func TestByteBuffer_Reserve_ClearsReusedMemory(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.AppendString("garbage!")
	bb.Reset()

	bb.Reserve(8)
	require.Equal(t, make([]byte, 8), bb.Bytes())
}

func TestByteBuffer_WriterInterfaces(t *testing.T) {
	bb := NewByteBuffer(0)
	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(5), written)
	require.Equal(t, "hello", out.String())
}

func TestFitsUint32(t *testing.T) {
	assert.True(t, FitsUint32(0))
	assert.True(t, FitsUint32(1<<20))
	assert.False(t, FitsUint32(-1))
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(128, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 128)

	bb.AppendString("data")
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len(), "pooled buffer must come back empty")
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)
	bb := p.Get()
	bb.Grow(1024)
	bb.AppendString("x")

	p.Put(bb)
	assert.Equal(t, 1, bb.Len(), "oversized buffer is not reset or retained")

	p.Put(nil)
}

func TestWorkBuffer_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			bb := GetWorkBuffer()
			defer PutWorkBuffer(bb)

			for range 100 {
				bb.AppendByte(byte(id))
			}
			for _, b := range bb.Bytes() {
				if b != byte(id) {
					t.Errorf("buffer shared between goroutines")
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
