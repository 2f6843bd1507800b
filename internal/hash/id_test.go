package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnID(t *testing.T) {
	id := ColumnID("flux")

	require.NotZero(t, id)
	require.Equal(t, id, ColumnID("flux"), "identical names must hash identically")
	require.NotEqual(t, id, ColumnID("flux2"))
	require.NotEqual(t, ColumnID(""), ColumnID("a"))
}
