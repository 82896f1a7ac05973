package fs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCoalescesChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(dir))
	assert.Equal(t, dir, w.Watching())

	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(dir, "f"+string(rune('a'+i))+".jpg"), 1)
	}

	select {
	case got := <-w.Changes():
		assert.Equal(t, dir, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case extra := <-w.Changes():
		t.Fatalf("unexpected second notification for %s", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherSwitchAndStop(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Watch(second))
	assert.Equal(t, second, w.Watching())

	require.NoError(t, w.Watch(""))
	assert.Empty(t, w.Watching())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
