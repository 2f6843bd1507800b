// Package pool provides the reusable byte buffers backing blob encoding.
package pool

import "sync"

// defaultBufferSize is the initial capacity of buffers handed out by the
// pool; buffers that grew beyond maxRetainSize are dropped instead of being
// returned, to keep the pool from pinning large allocations.
const (
	defaultBufferSize = 16 * 1024
	maxRetainSize     = 1024 * 1024
)

// ByteBuffer is a minimal append-only byte buffer.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a buffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of bytes written.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer while keeping its allocation.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// MustWrite appends data, growing the buffer as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte. The error is always nil; the signature
// satisfies io.ByteWriter.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

var bufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(defaultBufferSize)
	},
}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *ByteBuffer {
	bb, _ := bufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBuffer returns a buffer to the pool. Oversized buffers are dropped.
func PutBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > maxRetainSize {
		return
	}
	bufferPool.Put(bb)
}
