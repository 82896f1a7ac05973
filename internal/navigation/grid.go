package navigation

import "math"

// GridLayout is the viewport geometry used for cursor arithmetic only.
type GridLayout struct {
	Columns     int
	VisibleRows int
}

// DefaultGridLayout is a single-column list with one visible row.
func DefaultGridLayout() GridLayout {
	return GridLayout{Columns: 1, VisibleRows: 1}
}

// Update stores the new geometry; both values are clamped to at least 1.
func (g *GridLayout) Update(columns, visibleRows int) {
	g.Columns = max(columns, 1)
	g.VisibleRows = max(visibleRows, 1)
}

// PageSize is the number of items on one screen.
func (g GridLayout) PageSize() int {
	cols, rows := max(g.Columns, 1), max(g.VisibleRows, 1)
	if rows > math.MaxInt/cols {
		return math.MaxInt
	}
	return cols * rows
}

func (g GridLayout) columns() int {
	return max(g.Columns, 1)
}
