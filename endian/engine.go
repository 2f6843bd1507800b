// Package endian provides the byte-order abstraction used by the blob
// encoder and decoder.
//
// EndianEngine unifies the ByteOrder and AppendByteOrder interfaces from
// encoding/binary, so encoding code can both read fixed-width values and
// append them to a growing buffer through one value. binary.LittleEndian and
// binary.BigEndian satisfy the interface directly; the engines returned here
// are those stateless standard-library values and are safe for concurrent
// use.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default for
// binned-series blobs.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, for interoperability
// with big-endian consumers.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
