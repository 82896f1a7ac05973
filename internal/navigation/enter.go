package navigation

// EnterDecision is the outcome of ShouldEnterViewer.
//
// For a directory the core does not count its files: Browse is set, View is
// not, and Count is 0. The caller resolves it against the threshold with its
// own directory count.
type EnterDecision struct {
	Browse bool
	View   bool
	Count  int
}

// Deferred reports whether the decision still needs a directory count.
func (d EnterDecision) Deferred() bool {
	return d.Browse && !d.View && d.Count == 0
}

// ShouldEnterViewer decides what entering the current item means. A regular
// file always opens the viewer. A directory is a browse entry whose
// jump-to-viewer decision is left to the caller. The threshold argument is
// accepted for the caller's resolution step and not consulted here.
func (s *State) ShouldEnterViewer(_ int) EnterDecision {
	cur, ok := s.context.Current()
	if !ok {
		return EnterDecision{}
	}
	if !cur.IsDir {
		return EnterDecision{View: true, Count: 1}
	}
	return EnterDecision{Browse: true}
}

// ResolveEnter turns a deferred directory decision into a concrete one using
// count, the number of files in the target directory. A non-empty directory
// with at most threshold files jumps straight to the viewer.
func ResolveEnter(d EnterDecision, count, threshold int) EnterDecision {
	if !d.Deferred() {
		return d
	}
	if count > 0 && count <= threshold {
		return EnterDecision{Browse: true, View: true, Count: count}
	}
	return EnterDecision{Browse: true, Count: count}
}

// IsCurrentDir reports whether the cursor is on a directory.
func (s *State) IsCurrentDir() bool {
	cur, ok := s.context.Current()
	return ok && cur.IsDir
}

// IsCurrentImage reports whether the cursor is on an image file.
func (s *State) IsCurrentImage() bool {
	cur, ok := s.context.Current()
	return ok && cur.IsImage()
}
