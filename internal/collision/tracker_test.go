package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	tr := NewTracker()

	require.True(t, tr.Track(10))
	require.True(t, tr.Track(20))
	require.False(t, tr.Track(10))
	require.True(t, tr.Track(30))
	require.False(t, tr.Track(20))

	require.Equal(t, 5, tr.Count())
	require.True(t, tr.Seen(30))
	require.False(t, tr.Seen(40))
	require.True(t, tr.HasDuplicates())
	require.Equal(t, []Duplicate{
		{Key: 10, First: 0, Again: 2},
		{Key: 20, First: 1, Again: 4},
	}, tr.Duplicates())

	tr.Reset()
	require.Zero(t, tr.Count())
	require.False(t, tr.HasDuplicates())
	require.False(t, tr.Seen(10))
	require.True(t, tr.Track(10))
}
