package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionRangeIsSymmetric(t *testing.T) {
	for a := 0; a < 6; a++ {
		for b := 0; b < 6; b++ {
			var x, y Selection
			x.SelectRange(a, b)
			y.SelectRange(b, a)
			assert.Equal(t, x.Selected(), y.Selected(), "a=%d b=%d", a, b)
		}
	}
}

func TestSelectionSingleThenToggleIsEmpty(t *testing.T) {
	var s Selection
	s.SelectSingle(4)
	s.Toggle(4)
	assert.Empty(t, s.Selected())
	anchor, ok := s.Anchor()
	assert.True(t, ok, "toggle keeps the anchor")
	assert.Equal(t, 4, anchor)
}

func TestSelectionToggleKeepsInsertionOrder(t *testing.T) {
	var s Selection
	s.Toggle(5)
	s.Toggle(1)
	s.Toggle(3)
	s.Toggle(1)
	assert.Equal(t, []int{5, 3}, s.Selected())
	assert.True(t, s.IsSelected(3))
	assert.False(t, s.IsSelected(1))
	_, ok := s.Anchor()
	assert.False(t, ok)
}

func TestSelectionRangeKeepsAnchor(t *testing.T) {
	var s Selection
	s.SelectSingle(2)
	s.SelectRange(2, 5)
	assert.Equal(t, []int{2, 3, 4, 5}, s.Selected())
	anchor, ok := s.Anchor()
	assert.True(t, ok)
	assert.Equal(t, 2, anchor)
}

func TestSelectionClear(t *testing.T) {
	var s Selection
	s.SelectSingle(1)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Anchor()
	assert.False(t, ok)
}

func TestGridLayoutClampsToOne(t *testing.T) {
	g := DefaultGridLayout()
	g.Update(0, -3)
	assert.Equal(t, GridLayout{Columns: 1, VisibleRows: 1}, g)

	g.Update(4, 3)
	assert.Equal(t, 12, g.PageSize())
}
