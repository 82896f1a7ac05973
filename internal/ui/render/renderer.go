package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"github.com/takawasi/LightningFiler-sub000/internal/textutil"
)

// Prompt is an in-progress line of user input.
type Prompt struct {
	Label string
	Text  string
}

// HelpEntry is one line of the help overlay.
type HelpEntry struct {
	Keys string
	Desc string
}

// Frame carries the front-end state drawn alongside the navigation state.
type Frame struct {
	Viewer  bool
	Prompt  *Prompt
	Message string
	Err     error
	Flash   bool
	Help    []HelpEntry
}

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	top    int
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI.
func (r *Renderer) Render(st *navigation.State, f Frame) {
	r.screen.Clear()
	r.screen.HideCursor()
	w, h := r.screen.Size()

	if f.Help != nil {
		r.drawHelpOverlay(f.Help, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(st, w)
	if f.Viewer {
		r.drawViewer(st, w, h)
	} else {
		r.drawGrid(st, w, h)
	}
	r.drawStatusLine(st, f, w, h)
	r.screen.Show()
}

func (r *Renderer) drawHeader(st *navigation.State, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	x := r.drawTextLine(0, 0, w, "lfiler ", style.Bold(true))

	label := "[" + st.Context().Kind().String() + "] "
	x = r.drawTextLine(x, 0, w-x, label, style.Foreground(r.theme.LabelFg))

	location := textutil.Sanitize(st.CurrentPath())
	location = textutil.TruncateLeft(location, w-x)
	x = r.drawTextLine(x, 0, w-x, location, style)
	r.fillLine(x, 0, w, style)
}

func (r *Renderer) drawGrid(st *navigation.State, w, h int) {
	files := st.CurrentFiles()
	rows := max(1, h-headerHeight-statusHeight)
	if len(files) == 0 {
		r.top = 0
		style := tcell.StyleDefault.Foreground(r.theme.LabelFg)
		r.drawTextLine(1, headerHeight, w-1, "(empty)", style)
		return
	}

	cols := max(1, st.Grid().Columns)
	colW := columnWidth(w, cols)
	cur := st.CurrentIndex()
	totalRows := (len(files) + cols - 1) / cols
	r.top = scrollTop(r.top, cur/cols, rows, totalRows)

	selection := st.Selection()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := (r.top+row)*cols + col
			if idx >= len(files) {
				return
			}
			r.drawCell(files[idx], col*colW, headerHeight+row, colW, idx == cur, selection.IsSelected(idx))
		}
	}
}

func (r *Renderer) drawCell(entry navigation.FileEntry, x, y, width int, cursor, marked bool) {
	style := tcell.StyleDefault.Foreground(r.theme.FileFg)
	switch {
	case entry.IsDir:
		style = style.Foreground(r.theme.DirectoryFg)
	case entry.IsImage():
		style = style.Foreground(r.theme.ImageFg)
	}
	if cursor {
		style = style.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
	}

	mark := " "
	markStyle := style
	if marked {
		mark = "*"
		markStyle = style.Foreground(r.theme.MarkedFg).Bold(true)
	}
	x = r.drawTextLine(x, y, width, mark, markStyle)

	name := textutil.Sanitize(entry.Name)
	if entry.IsDir {
		name += "/"
	}
	// One trailing column separates neighbouring cells.
	r.drawTextLine(x, y, width-2, textutil.Fit(name, width-2), style)
}

func (r *Renderer) drawViewer(st *navigation.State, w, h int) {
	entry, ok := st.CurrentFile()
	if !ok {
		r.drawTextLine(1, headerHeight, w-1, "(nothing to view)", tcell.StyleDefault.Foreground(r.theme.LabelFg))
		return
	}

	labelStyle := tcell.StyleDefault.Foreground(r.theme.LabelFg)
	valueStyle := tcell.StyleDefault

	y := headerHeight + 1
	r.drawTextLine(2, y, w-4, textutil.Truncate(textutil.Sanitize(entry.Name), w-4), valueStyle.Bold(true))
	y += 2

	for _, field := range viewerFields(st, entry) {
		if y >= h-statusHeight {
			break
		}
		x := r.drawTextLine(2, y, w-2, fmt.Sprintf("%-10s", field[0]), labelStyle)
		r.drawTextLine(x, y, w-x, textutil.Truncate(textutil.Sanitize(field[1]), w-x), valueStyle)
		y++
	}
}

func viewerFields(st *navigation.State, entry navigation.FileEntry) [][2]string {
	kind := "file"
	switch {
	case entry.IsDir:
		kind = "folder"
	case entry.IsImage():
		kind = "image (" + entry.Ext() + ")"
	case entry.Ext() != "":
		kind = entry.Ext()
	}

	fields := [][2]string{
		{"Path", entry.Path},
		{"Type", kind},
	}
	if entry.Size != nil {
		fields = append(fields, [2]string{"Size", textutil.FormatSize(*entry.Size)})
	}
	if entry.Modified != nil {
		fields = append(fields, [2]string{"Modified", time.Unix(*entry.Modified, 0).Format("2006-01-02 15:04")})
	}
	fields = append(fields, [2]string{"Position", fmt.Sprintf("%d / %d", st.CurrentIndex()+1, st.FileCount())})
	return fields
}

func (r *Renderer) drawStatusLine(st *navigation.State, f Frame, w, h int) {
	y := h - 1
	if y < headerHeight {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	if f.Flash {
		style = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
	}

	if f.Prompt != nil {
		x := r.drawTextLine(0, y, w, f.Prompt.Label+": ", style.Bold(true))
		text := textutil.TruncateLeft(textutil.Sanitize(f.Prompt.Text), max(0, w-x-1))
		x = r.drawTextLine(x, y, w-x, text, style)
		r.fillLine(x, y, w, style)
		r.screen.ShowCursor(x, y)
		return
	}

	left := statusSummary(st, f.Viewer)
	x := r.drawTextLine(0, y, w, left, style)

	right, rightStyle := "", style
	switch {
	case f.Err != nil:
		right = apperr.UserMessage(f.Err)
		rightStyle = style.Foreground(r.theme.ErrorFg)
	case f.Message != "":
		right = f.Message
	default:
		right = footerHints(f.Viewer)
	}
	right = textutil.Truncate(textutil.Sanitize(right), max(0, w-x-2))
	rx := w - textutil.DisplayWidth(right)
	r.fillLine(x, y, w, style)
	if rx > x {
		r.drawTextLine(rx, y, w-rx, right, rightStyle)
	}
}

func statusSummary(st *navigation.State, viewer bool) string {
	parts := []string{}
	if n := st.FileCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d/%s", st.CurrentIndex()+1, textutil.FormatCount(n)))
	} else {
		parts = append(parts, "0/0")
	}
	if sel := st.Selection().Len(); sel > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", sel))
	}
	if viewer {
		parts = append(parts, "view")
	} else {
		parts = append(parts, "browse")
	}
	return " " + strings.Join(parts, " · ") + " "
}

func footerHints(viewer bool) string {
	if viewer {
		return "←/→ step  v browse  ? help"
	}
	return "↵ open  v view  / search  t tags  T timeline  ? help"
}

func (r *Renderer) drawHelpOverlay(entries []HelpEntry, w, h int) {
	base := tcell.StyleDefault
	header := base.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)

	title := " Help "
	start := max(0, (w-textutil.DisplayWidth(title))/2)
	r.drawTextLine(start, 0, w-start, title, header)

	row := 2
	for _, e := range entries {
		if row >= h-1 {
			break
		}
		line := fmt.Sprintf("  %-24s %s", textutil.Sanitize(e.Keys), textutil.Sanitize(e.Desc))
		r.drawTextLine(2, row, w-4, textutil.Truncate(line, w-4), base)
		row++
	}

	if h > 1 {
		r.drawTextLine(0, h-1, w, textutil.Truncate("? toggle · Esc/q close", w), header)
	}
}
