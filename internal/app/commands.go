package app

import (
	"strings"

	renderui "github.com/takawasi/LightningFiler-sub000/internal/ui/render"
)

// Command ids understood by Dispatch.
const (
	CmdNextItem     = "nav.next_item"
	CmdPrevItem     = "nav.prev_item"
	CmdFirstItem    = "nav.first_item"
	CmdLastItem     = "nav.last_item"
	CmdUpFolder     = "nav.up_folder"
	CmdEnterFolder  = "nav.enter_folder"
	CmdSkipForward  = "nav.skip_forward"
	CmdSkipBackward = "nav.skip_backward"
	CmdMoveUp       = "nav.move_up"
	CmdMoveDown     = "nav.move_down"
	CmdMoveLeft     = "nav.move_left"
	CmdMoveRight    = "nav.move_right"
	CmdPageUp       = "nav.page_up"
	CmdPageDown     = "nav.page_down"
	CmdBack         = "nav.back"
	CmdForward      = "nav.forward"
	CmdPrevSibling  = "nav.prev_sibling"
	CmdNextSibling  = "nav.next_sibling"
	CmdSelectToggle = "select.toggle"
	CmdSelectAll    = "select.all"
	CmdSelectClear  = "select.clear"
	CmdViewToggle   = "view.toggle"
	CmdSearch       = "app.search"
	CmdTagSearch    = "app.tag_search"
	CmdTimeline     = "app.timeline"
	CmdYank         = "app.yank"
	CmdHelp         = "app.help"
	CmdSuspend      = "app.suspend"
	CmdQuit         = "app.quit"

	extendSuffix = ".extend"
)

var commandDescriptions = map[string]string{
	CmdNextItem:     "Next item",
	CmdPrevItem:     "Previous item",
	CmdFirstItem:    "First item",
	CmdLastItem:     "Last item",
	CmdUpFolder:     "Parent folder",
	CmdEnterFolder:  "Open folder or view item",
	CmdSkipForward:  "Skip forward",
	CmdSkipBackward: "Skip backward",
	CmdMoveUp:       "Move up",
	CmdMoveDown:     "Move down",
	CmdMoveLeft:     "Move left",
	CmdMoveRight:    "Move right",
	CmdPageUp:       "Page up",
	CmdPageDown:     "Page down",
	CmdBack:         "History back",
	CmdForward:      "History forward",
	CmdPrevSibling:  "Previous sibling folder",
	CmdNextSibling:  "Next sibling folder",
	CmdSelectToggle: "Toggle mark",
	CmdSelectAll:    "Mark all",
	CmdSelectClear:  "Clear marks",
	CmdViewToggle:   "Toggle viewer",
	CmdSearch:       "Search names",
	CmdTagSearch:    "Browse tags",
	CmdTimeline:     "Browse timeline",
	CmdYank:         "Copy path",
	CmdHelp:         "Help",
	CmdSuspend:      "Suspend to shell",
	CmdQuit:         "Quit",
}

// Dispatch executes a command id. It reports whether the id was recognised.
func (app *Application) Dispatch(cmd string) bool {
	base, extend := strings.CutSuffix(cmd, extendSuffix)
	st := app.state
	nav := app.cfg.Navigation
	viewer := app.mode == ModeViewer

	switch base {
	case CmdNextItem:
		if viewer {
			st.NextItem(1, nav.WrapItems)
		} else {
			st.MoveRight(1, extend, nav.WrapGrid)
		}
	case CmdPrevItem:
		if viewer {
			st.PrevItem(1, nav.WrapItems)
		} else {
			st.MoveLeft(1, extend, nav.WrapGrid)
		}
	case CmdFirstItem:
		st.Home(extend)
	case CmdLastItem:
		st.End(extend)
	case CmdSkipForward:
		st.NextItem(nav.SkipAmount, nav.WrapItems)
	case CmdSkipBackward:
		st.PrevItem(nav.SkipAmount, nav.WrapItems)
	case CmdMoveUp:
		st.MoveUp(1, extend)
	case CmdMoveDown:
		st.MoveDown(1, extend)
	case CmdMoveLeft:
		st.MoveLeft(1, extend, nav.WrapGrid)
	case CmdMoveRight:
		st.MoveRight(1, extend, nav.WrapGrid)
	case CmdPageUp:
		st.PageUp(1, extend)
	case CmdPageDown:
		st.PageDown(1, extend)
	case CmdUpFolder:
		app.upFolder()
	case CmdEnterFolder:
		app.enter()
	case CmdBack:
		if st.GoBack() {
			app.afterHistoryMove()
		}
	case CmdForward:
		if st.GoForward() {
			app.afterHistoryMove()
		}
	case CmdPrevSibling:
		app.sibling(false)
	case CmdNextSibling:
		app.sibling(true)
	case CmdSelectToggle:
		st.ToggleCurrent()
	case CmdSelectAll:
		st.SelectAll()
	case CmdSelectClear:
		st.Selection().Clear()
	case CmdViewToggle:
		app.toggleViewer()
	case CmdSearch:
		app.openPrompt(promptSearch)
	case CmdTagSearch:
		app.openPrompt(promptTags)
	case CmdTimeline:
		app.openPrompt(promptTimeline)
	case CmdYank:
		app.yank()
	case CmdHelp:
		app.helpOpen = !app.helpOpen
	case CmdSuspend:
		app.suspendToShell()
	case CmdQuit:
		app.shouldQuit = true
	default:
		return false
	}

	app.log.Debug().Str("cmd", cmd).Int("index", st.CurrentIndex()).Str("mode", app.mode.String()).Msg("dispatch")
	return true
}

func (app *Application) toggleViewer() {
	if app.mode == ModeViewer {
		app.mode = ModeBrowse
		return
	}
	if app.state.IsCurrentDir() {
		app.enter()
		return
	}
	if _, ok := app.state.CurrentFile(); ok {
		app.mode = ModeViewer
	}
}

func (app *Application) afterHistoryMove() {
	app.mode = ModeBrowse
	app.syncWatcher()
	app.log.Debug().Str("location", app.state.CurrentPath()).
		Int("back", app.state.HistoryLen()).Int("forward", app.state.ForwardLen()).Msg("history")
}

func (app *Application) helpEntries() []renderui.HelpEntry {
	entries := make([]renderui.HelpEntry, 0, len(app.cfg.Keybindings))
	for _, cmd := range app.cfg.Commands() {
		keys := app.keymap.KeysFor(cmd)
		if len(keys) == 0 {
			continue
		}
		base, extend := strings.CutSuffix(cmd, extendSuffix)
		desc, ok := commandDescriptions[base]
		if !ok {
			desc = cmd
		}
		if extend {
			desc += " (extend)"
		}
		entries = append(entries, renderui.HelpEntry{Keys: strings.Join(keys, ", "), Desc: desc})
	}
	return entries
}
