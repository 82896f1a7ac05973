package render

import "github.com/takawasi/LightningFiler-sub000/internal/navigation"

const (
	// cellWidth is the minimum width of one grid column including the mark.
	cellWidth    = 24
	headerHeight = 1
	statusHeight = 1
)

// GridFor derives the grid layout for a w×h terminal.
func GridFor(w, h int) navigation.GridLayout {
	return navigation.GridLayout{
		Columns:     max(1, w/cellWidth),
		VisibleRows: max(1, h-headerHeight-statusHeight),
	}
}

// columnWidth spreads the terminal width evenly over the grid columns.
func columnWidth(w, columns int) int {
	if columns <= 0 {
		return w
	}
	return max(1, w/columns)
}

// scrollTop keeps the cursor row visible, moving the window as little as
// possible.
func scrollTop(top, cursorRow, visibleRows, totalRows int) int {
	if cursorRow < top {
		top = cursorRow
	}
	if cursorRow >= top+visibleRows {
		top = cursorRow - visibleRows + 1
	}
	top = min(top, max(0, totalRows-visibleRows))
	return max(0, top)
}
