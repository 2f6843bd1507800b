package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferWrite(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("hello"))
	require.NoError(t, bb.WriteByte('!'))
	require.Equal(t, 6, bb.Len())
	require.Equal(t, []byte("hello!"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestBufferPoolReuse(t *testing.T) {
	bb := GetBuffer()
	bb.MustWrite([]byte("data"))
	PutBuffer(bb)

	got := GetBuffer()
	require.Equal(t, 0, got.Len())
	PutBuffer(got)
}

func TestPutBufferDropsOversized(t *testing.T) {
	bb := NewByteBuffer(maxRetainSize + 1)
	// Must not panic and must not retain the oversized allocation.
	PutBuffer(bb)
	PutBuffer(nil)
}
