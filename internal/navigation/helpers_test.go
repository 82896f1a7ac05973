package navigation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeEntries(n int) []FileEntry {
	entries := make([]FileEntry, n)
	for i := range entries {
		name := fmt.Sprintf("img%02d.jpg", i)
		entries[i] = NewFileEntry("/photos/"+name, name, false)
	}
	return entries
}

// newStateAt returns a state browsing n entries with the cursor at cur.
func newStateAt(t *testing.T, n, cur int) *State {
	t.Helper()
	s := New(DefaultEnterThreshold)
	s.NavigateTo(NewFolderContext("/photos", makeEntries(n)))
	s.SetIndex(cur)
	require.Equal(t, cur, s.CurrentIndex())
	return s
}
