package navigation

// DefaultEnterThreshold is used when no configured value is supplied.
const DefaultEnterThreshold = 5

// Reloader refetches the entries of a source. It is consulted on history
// navigation only when installed with SetReloader; by default restored
// contexts keep the entries they had when they were left.
type Reloader interface {
	Reload(source Source) ([]FileEntry, error)
}

// ReloaderFunc adapts a function to Reloader.
type ReloaderFunc func(source Source) ([]FileEntry, error)

func (f ReloaderFunc) Reload(source Source) ([]FileEntry, error) { return f(source) }

// State is the navigation orchestrator. It owns the active context, the
// back and forward stacks, the grid geometry and the selection.
//
// State does no locking; callers must serialise access.
type State struct {
	context        *Context
	history        []*Context
	forward        []*Context
	grid           GridLayout
	selection      Selection
	enterThreshold int
	reloader       Reloader
}

// New returns a state positioned on an empty PhysicalFolder(".").
func New(enterThreshold int) *State {
	return &State{
		context:        NewFolderContext(".", nil),
		grid:           DefaultGridLayout(),
		enterThreshold: enterThreshold,
	}
}

// SetReloader opts into live history: contexts restored by GoBack or
// GoForward get fresh entries from r. A nil r restores frozen snapshots.
func (s *State) SetReloader(r Reloader) {
	s.reloader = r
}

// NavigateTo makes ctx current, pushing the previous context onto the back
// stack. The forward stack and the selection are cleared.
func (s *State) NavigateTo(ctx *Context) {
	if ctx == nil {
		return
	}
	s.history = append(s.history, s.context)
	s.context = ctx
	s.forward = nil
	s.selection.Clear()
}

// ReplaceCurrent swaps the active context without recording history.
func (s *State) ReplaceCurrent(ctx *Context) {
	if ctx == nil {
		return
	}
	s.context = ctx
	s.selection.Clear()
}

// GoBack restores the previous context. It reports whether a transition
// happened.
func (s *State) GoBack() bool {
	if len(s.history) == 0 {
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.forward = append(s.forward, s.context)
	s.install(prev)
	return true
}

// GoForward is the mirror of GoBack.
func (s *State) GoForward() bool {
	if len(s.forward) == 0 {
		return false
	}
	next := s.forward[len(s.forward)-1]
	s.forward = s.forward[:len(s.forward)-1]
	s.history = append(s.history, s.context)
	s.install(next)
	return true
}

func (s *State) install(ctx *Context) {
	s.context = ctx
	s.selection.Clear()
	if s.reloader == nil {
		return
	}
	entries, err := s.reloader.Reload(ctx.source)
	if err != nil {
		// Keep the snapshot when the source cannot be reloaded.
		return
	}
	ctx.replaceEntries(entries)
}

// Refresh replaces the active context's entries in place, keeping the cursor
// on the same path when it still exists.
func (s *State) Refresh(entries []FileEntry) {
	s.context.replaceEntries(entries)
	s.selection.retain(len(s.context.entries))
}

func (s *State) HistoryLen() int { return len(s.history) }

func (s *State) ForwardLen() int { return len(s.forward) }

// Context returns the active context.
func (s *State) Context() *Context { return s.context }

// CurrentFiles returns the active context's entries.
func (s *State) CurrentFiles() []FileEntry { return s.context.entries }

func (s *State) CurrentIndex() int { return s.context.index }

func (s *State) FileCount() int { return len(s.context.entries) }

// SetIndex moves the cursor without touching the selection.
func (s *State) SetIndex(index int) { s.context.SetIndex(index) }

// CurrentFile returns the entry under the cursor, if any.
func (s *State) CurrentFile() (FileEntry, bool) { return s.context.Current() }

// CurrentPath is the location of the active source.
func (s *State) CurrentPath() string { return s.context.source.Location() }

func (s *State) Grid() GridLayout { return s.grid }

// UpdateGrid stores new viewport geometry.
func (s *State) UpdateGrid(columns, visibleRows int) { s.grid.Update(columns, visibleRows) }

// Selection exposes the selection for direct manipulation by the command layer.
func (s *State) Selection() *Selection { return &s.selection }

func (s *State) EnterThreshold() int { return s.enterThreshold }

// SelectedEntries returns the selected entries in selection order.
func (s *State) SelectedEntries() []FileEntry {
	out := make([]FileEntry, 0, s.selection.Len())
	for _, idx := range s.selection.selected {
		if idx >= 0 && idx < len(s.context.entries) {
			out = append(out, s.context.entries[idx])
		}
	}
	return out
}

// ToggleCurrent flips the selection state of the entry under the cursor.
func (s *State) ToggleCurrent() bool {
	if len(s.context.entries) == 0 {
		return false
	}
	s.selection.Toggle(s.context.index)
	return true
}

// SelectAll selects every entry of the active context.
func (s *State) SelectAll() bool {
	if len(s.context.entries) == 0 {
		return false
	}
	s.selection.SelectRange(0, len(s.context.entries)-1)
	return true
}
