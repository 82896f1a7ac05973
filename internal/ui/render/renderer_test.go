package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func folderState(n, columns, rows int) *navigation.State {
	entries := make([]navigation.FileEntry, n)
	for i := range entries {
		name := fmt.Sprintf("img%02d.jpg", i)
		entries[i] = navigation.NewFileEntry("/photos/"+name, name, false).WithSize(2048)
	}
	st := navigation.New(navigation.DefaultEnterThreshold)
	st.NavigateTo(navigation.NewFolderContext("/photos", entries))
	st.UpdateGrid(columns, rows)
	return st
}

func TestGridFor(t *testing.T) {
	assert.Equal(t, navigation.GridLayout{Columns: 3, VisibleRows: 22}, GridFor(80, 24))
	assert.Equal(t, navigation.GridLayout{Columns: 1, VisibleRows: 1}, GridFor(10, 2))
}

func TestScrollTop(t *testing.T) {
	assert.Equal(t, 0, scrollTop(0, 3, 5, 10))
	assert.Equal(t, 4, scrollTop(0, 8, 5, 10))
	assert.Equal(t, 2, scrollTop(5, 2, 5, 10))
	assert.Equal(t, 0, scrollTop(3, 1, 5, 3))
}

func TestRenderGrid(t *testing.T) {
	screen := newScreen(t, 48, 6)
	st := folderState(10, 2, 4)
	st.SetIndex(3)
	st.Selection().Toggle(1)

	r := NewRenderer(screen)
	r.Render(st, Frame{})

	assert.Contains(t, rowText(screen, 0), "lfiler [folder] /photos")
	assert.Equal(t, " img00.jpg", strings.TrimRight(rowText(screen, 1)[:24], " "))
	assert.Contains(t, rowText(screen, 1), "*img01.jpg")
	assert.Contains(t, rowText(screen, 2), "img03.jpg")
	assert.Contains(t, rowText(screen, 5), "4/10")
	assert.Contains(t, rowText(screen, 5), "1 selected")
	assert.Contains(t, rowText(screen, 5), "browse")
}

func TestRenderScrollsToCursor(t *testing.T) {
	screen := newScreen(t, 48, 4)
	st := folderState(10, 2, 2)
	st.SetIndex(9)

	r := NewRenderer(screen)
	r.Render(st, Frame{})

	assert.Contains(t, rowText(screen, 1), "img06.jpg")
	assert.Contains(t, rowText(screen, 2), "img09.jpg")
	assert.NotContains(t, rowText(screen, 1), "img00.jpg")
}

func TestRenderEmptyFolder(t *testing.T) {
	screen := newScreen(t, 40, 5)
	st := navigation.New(navigation.DefaultEnterThreshold)
	st.NavigateTo(navigation.NewFolderContext("/empty", nil))

	NewRenderer(screen).Render(st, Frame{})
	assert.Contains(t, rowText(screen, 1), "(empty)")
	assert.Contains(t, rowText(screen, 4), "0/0")
}

func TestRenderViewer(t *testing.T) {
	screen := newScreen(t, 60, 12)
	st := folderState(3, 1, 5)
	st.SetIndex(1)

	NewRenderer(screen).Render(st, Frame{Viewer: true})

	assert.Contains(t, rowText(screen, 2), "img01.jpg")
	var body []string
	for y := 3; y < 11; y++ {
		body = append(body, rowText(screen, y))
	}
	joined := strings.Join(body, "\n")
	assert.Contains(t, joined, "/photos/img01.jpg")
	assert.Contains(t, joined, "image (jpg)")
	assert.Contains(t, joined, "2 KiB")
	assert.Contains(t, joined, "2 / 3")
	assert.Contains(t, rowText(screen, 11), "view")
}

func TestRenderStatusMessageAndError(t *testing.T) {
	screen := newScreen(t, 60, 5)
	st := folderState(2, 1, 3)
	r := NewRenderer(screen)

	r.Render(st, Frame{Message: "copied"})
	assert.True(t, strings.HasSuffix(rowText(screen, 4), "copied"))

	r.Render(st, Frame{Err: errors.New("boom")})
	assert.True(t, strings.HasSuffix(rowText(screen, 4), "boom"))
}

func TestRenderPrompt(t *testing.T) {
	screen := newScreen(t, 40, 5)
	st := folderState(2, 1, 3)

	NewRenderer(screen).Render(st, Frame{Prompt: &Prompt{Label: "search", Text: "cat"}})
	assert.Equal(t, "search: cat", rowText(screen, 4))
}

func TestRenderHelpOverlay(t *testing.T) {
	screen := newScreen(t, 60, 8)
	st := folderState(2, 1, 3)

	NewRenderer(screen).Render(st, Frame{Help: []HelpEntry{{Keys: "Right, l", Desc: "Next item"}}})
	assert.Contains(t, rowText(screen, 0), "Help")
	assert.Contains(t, rowText(screen, 2), "Right, l")
	assert.Contains(t, rowText(screen, 2), "Next item")
}
