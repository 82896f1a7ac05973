package config

// DefaultKeybindings maps command ids to key descriptions.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		"nav.next_item":     {"Right", "l", "Space"},
		"nav.prev_item":     {"Left", "h", "Shift+Space"},
		"nav.first_item":    {"Home", "g"},
		"nav.last_item":     {"End", "G"},
		"nav.up_folder":     {"Backspace", "u"},
		"nav.enter_folder":  {"Enter", "o"},
		"nav.skip_forward":  {"Ctrl+Right"},
		"nav.skip_backward": {"Ctrl+Left"},

		"nav.move_up":           {"Up", "k"},
		"nav.move_down":         {"Down", "j"},
		"nav.move_up.extend":    {"Shift+Up", "K"},
		"nav.move_down.extend":  {"Shift+Down", "J"},
		"nav.move_left.extend":  {"Shift+Left", "H"},
		"nav.move_right.extend": {"Shift+Right", "L"},
		"nav.page_up":           {"PgUp"},
		"nav.page_down":         {"PgDn"},
		"nav.back":              {"Alt+Left", "["},
		"nav.forward":           {"Alt+Right", "]"},
		"nav.prev_sibling":      {"Ctrl+Up", "{"},
		"nav.next_sibling":      {"Ctrl+Down", "}"},

		"select.toggle": {"Insert", "m"},
		"select.all":    {"Ctrl+A"},
		"select.clear":  {"Ctrl+D"},

		"view.toggle": {"v"},

		"app.search":     {"Ctrl+F", "/"},
		"app.tag_search": {"t"},
		"app.timeline":   {"T"},
		"app.yank":       {"y"},
		"app.help":       {"?", "F1"},
		"app.suspend":    {"Ctrl+Z"},
		"app.quit":       {"q", "Ctrl+C"},
	}
}
