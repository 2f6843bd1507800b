// Package hash derives the 64-bit column identifiers stored in binned-series
// blobs.
package hash

import "github.com/cespare/xxhash/v2"

// ColumnID computes the xxHash64 of a column name. The hash is stored next
// to the name in a blob and verified on decode as a cheap integrity check.
func ColumnID(name string) uint64 {
	return xxhash.Sum64String(name)
}
