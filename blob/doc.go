// Package blob serializes binned time series into a compact binary format.
//
// A blob holds one series.BinnedTimeSeries: the bin edges plus every
// aggregated column, with each column's flavor (plain, masked, unit-tagged or
// integer) preserved so decoding rebuilds the exact same representation.
//
// Layout:
//
//	preamble  magic, version, endianness flag, compression type (8 bytes)
//	header    base time as two float64 parts, bin count, column count,
//	          uncompressed payload length (26 bytes)
//	payload   compressed block: bin edges as float64 seconds relative to the
//	          base time, then per-column name, xxHash64 column ID, flavor,
//	          unit, values and optional mask bitmap
//
// Bin edges are stored relative to the first bin start, the same two-part
// representation the downsampling layer computes with, so edges survive a
// round trip bit-exactly whenever their offsets from the base are exactly
// representable.
//
// Encoders are not safe for concurrent use; Decode is.
package blob
