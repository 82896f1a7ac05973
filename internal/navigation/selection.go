package navigation

// Selection is the multi-select set over a bounded index range plus the
// anchor used for shift-extend.
type Selection struct {
	selected  []int
	anchor    int
	hasAnchor bool
}

// Clear empties the selection and drops the anchor.
func (s *Selection) Clear() {
	s.selected = nil
	s.anchor = 0
	s.hasAnchor = false
}

// SelectSingle replaces the selection with i and anchors on it.
func (s *Selection) SelectSingle(i int) {
	s.selected = []int{i}
	s.anchor = i
	s.hasAnchor = true
}

// Toggle removes i if selected, otherwise appends it. The anchor is kept.
func (s *Selection) Toggle(i int) {
	for pos, v := range s.selected {
		if v == i {
			s.selected = append(s.selected[:pos:pos], s.selected[pos+1:]...)
			return
		}
	}
	s.selected = append(s.selected, i)
}

// SelectRange replaces the selection with every index in [min(from,to),
// max(from,to)]. The anchor is kept.
func (s *Selection) SelectRange(from, to int) {
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	selected := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		selected = append(selected, i)
	}
	s.selected = selected
}

// SetAnchor pins the shift-extend pivot without changing the selection.
func (s *Selection) SetAnchor(i int) {
	s.anchor = i
	s.hasAnchor = true
}

func (s *Selection) IsSelected(i int) bool {
	for _, v := range s.selected {
		if v == i {
			return true
		}
	}
	return false
}

// Selected returns a copy of the selected indices in insertion order.
func (s *Selection) Selected() []int {
	return append([]int{}, s.selected...)
}

func (s *Selection) Anchor() (int, bool) {
	return s.anchor, s.hasAnchor
}

func (s *Selection) Len() int {
	return len(s.selected)
}

// retain drops indices that are no longer below n.
func (s *Selection) retain(n int) {
	kept := s.selected[:0]
	for _, v := range s.selected {
		if v < n {
			kept = append(kept, v)
		}
	}
	s.selected = kept
	if s.hasAnchor && s.anchor >= n {
		s.anchor = 0
		s.hasAnchor = false
	}
}
