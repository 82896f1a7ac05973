package navigation

// moveTo is the shared tail of every cursor movement. It reports false
// without mutating anything when the list is empty or target is the
// current index.
func (s *State) moveTo(target int, extend bool) bool {
	n := len(s.context.entries)
	if n == 0 {
		return false
	}
	target = clamp(target, 0, n-1)
	cur := s.context.index
	if target == cur {
		return false
	}

	s.context.index = target
	if extend {
		anchor, ok := s.selection.Anchor()
		if !ok {
			anchor = cur
			s.selection.SetAnchor(cur)
		}
		s.selection.SelectRange(anchor, target)
	} else {
		s.selection.SelectSingle(target)
	}
	return true
}

// MoveUp moves amount rows up. Past the first row it lands on the same
// column of row 0, or on index 0 when already in row 0.
func (s *State) MoveUp(amount int, extend bool) bool {
	if amount <= 0 || len(s.context.entries) == 0 {
		return false
	}
	cols := s.grid.columns()
	cur := s.context.index
	step := saturatingMul(cols, amount, len(s.context.entries))

	var target int
	switch {
	case cur >= step:
		target = cur - step
	case cur >= cols:
		target = cur % cols
	default:
		target = 0
	}
	return s.moveTo(target, extend)
}

// MoveDown moves amount rows down, clamped to the last item.
func (s *State) MoveDown(amount int, extend bool) bool {
	n := len(s.context.entries)
	if amount <= 0 || n == 0 {
		return false
	}
	target := min(s.context.index+saturatingMul(s.grid.columns(), amount, n), n-1)
	return s.moveTo(target, extend)
}

// MoveLeft moves amount columns left within the row. When the row start
// would be crossed it wraps to the end of the previous row (if wrap and not
// in the first row) or stops at the row start.
func (s *State) MoveLeft(amount int, extend, wrap bool) bool {
	if amount <= 0 || len(s.context.entries) == 0 {
		return false
	}
	cols := s.grid.columns()
	cur := s.context.index
	col := cur % cols
	rowStart := cur - col

	var target int
	switch {
	case col >= amount:
		target = cur - amount
	case wrap && rowStart > 0:
		target = rowStart - 1
	default:
		target = rowStart
	}
	return s.moveTo(target, extend)
}

// MoveRight is the mirror of MoveLeft: it wraps to the start of the next
// row when allowed and one exists, otherwise stops at the row end.
func (s *State) MoveRight(amount int, extend, wrap bool) bool {
	n := len(s.context.entries)
	if amount <= 0 || n == 0 {
		return false
	}
	cols := s.grid.columns()
	cur := s.context.index
	col := cur % cols
	rowStart := cur - col
	rowEnd := min(rowStart+cols-1, n-1)

	var target int
	switch {
	case amount < cols-col && amount <= n-1-cur:
		target = cur + amount
	case wrap && rowStart+cols < n:
		target = rowStart + cols
	default:
		target = rowEnd
	}
	return s.moveTo(target, extend)
}

// PageUp moves amount screens up.
func (s *State) PageUp(amount int, extend bool) bool {
	if amount <= 0 || len(s.context.entries) == 0 {
		return false
	}
	target := max(s.context.index-saturatingMul(s.grid.PageSize(), amount, len(s.context.entries)), 0)
	return s.moveTo(target, extend)
}

// PageDown moves amount screens down.
func (s *State) PageDown(amount int, extend bool) bool {
	n := len(s.context.entries)
	if amount <= 0 || n == 0 {
		return false
	}
	target := min(s.context.index+saturatingMul(s.grid.PageSize(), amount, n), n-1)
	return s.moveTo(target, extend)
}

// Home jumps to the first item.
func (s *State) Home(extend bool) bool {
	return s.moveTo(0, extend)
}

// End jumps to the last item.
func (s *State) End(extend bool) bool {
	return s.moveTo(len(s.context.entries)-1, extend)
}

// NextItem steps amount items forward ignoring the grid. Past the end it
// either clamps to the last item or wraps modulo the list length.
func (s *State) NextItem(amount int, wrap bool) bool {
	n := len(s.context.entries)
	if amount <= 0 || n == 0 {
		return false
	}
	cur := s.context.index

	var target int
	switch {
	case amount <= n-1-cur:
		target = cur + amount
	case wrap:
		target = (cur + amount%n) % n
	default:
		target = n - 1
	}
	return s.moveTo(target, false)
}

// PrevItem steps amount items backward ignoring the grid. Below zero it
// either clamps to 0 or wraps: with diff = (amount-cur) mod n the result is
// 0 when diff is 0 and n-diff otherwise.
func (s *State) PrevItem(amount int, wrap bool) bool {
	n := len(s.context.entries)
	if amount <= 0 || n == 0 {
		return false
	}
	cur := s.context.index

	var target int
	switch {
	case amount <= cur:
		target = cur - amount
	case wrap:
		diff := (amount - cur) % n
		if diff == 0 {
			target = 0
		} else {
			target = n - diff
		}
	default:
		target = 0
	}
	return s.moveTo(target, false)
}

// saturatingMul returns a*b capped at limit. a and b are positive, so a step
// of limit or more already reaches past either end of the list.
func saturatingMul(a, b, limit int) int {
	if b > limit/a {
		return limit
	}
	return min(a*b, limit)
}
