package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		desc string
		want Key
	}{
		{"Right", Key{Code: tcell.KeyRight}},
		{"pgdn", Key{Code: tcell.KeyPgDn}},
		{"Ctrl+F", Key{Code: tcell.KeyCtrlF}},
		{"ctrl+f", Key{Code: tcell.KeyCtrlF}},
		{"Ctrl+Right", Key{Code: tcell.KeyRight, Mod: tcell.ModCtrl}},
		{"Shift+Up", Key{Code: tcell.KeyUp, Mod: tcell.ModShift}},
		{"Alt+Left", Key{Code: tcell.KeyLeft, Mod: tcell.ModAlt}},
		{"Space", Key{Code: tcell.KeyRune, Rune: ' '}},
		{"Shift+Space", Key{Code: tcell.KeyRune, Rune: ' ', Mod: tcell.ModShift}},
		{"h", Key{Code: tcell.KeyRune, Rune: 'h'}},
		{"G", Key{Code: tcell.KeyRune, Rune: 'G'}},
		{"Shift+g", Key{Code: tcell.KeyRune, Rune: 'G'}},
		{"+", Key{Code: tcell.KeyRune, Rune: '+'}},
		{"Alt++", Key{Code: tcell.KeyRune, Rune: '+', Mod: tcell.ModAlt}},
		{"Enter", Key{Code: tcell.KeyEnter}},
		{"Backspace", Key{Code: tcell.KeyBackspace}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ParseKey(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, desc := range []string{"", "Hyper+x", "Ctrl+", "NotAKey"} {
		_, err := ParseKey(desc)
		assert.Error(t, err, desc)
	}
}

func TestKeymapLookupNormalisesEvents(t *testing.T) {
	km, err := NewKeymap(map[string][]string{
		"nav.next_item":    {"Right", "l"},
		"nav.last_item":    {"G"},
		"nav.up_folder":    {"Backspace"},
		"app.search":       {"Ctrl+F"},
		"nav.skip_forward": {"Ctrl+Right"},
		"nav.prev_item":    {"Shift+Space"},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), "nav.next_item"},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), "nav.next_item"},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModShift), "nav.last_item"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "nav.up_folder"},
		{"ctrl code", tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), "app.search"},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModCtrl), "app.search"},
		{"ctrl arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl), "nav.skip_forward"},
		{"shift space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModShift), "nav.prev_item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Lookup(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := km.Lookup(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.False(t, ok)
	_, ok = km.Lookup(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.False(t, ok)

	assert.Equal(t, []string{"Right", "l"}, km.KeysFor("nav.next_item"))
	assert.Empty(t, km.KeysFor("nav.unknown"))
}

func TestKeymapRejectsConflicts(t *testing.T) {
	_, err := NewKeymap(map[string][]string{
		"nav.next_item": {"l"},
		"nav.last_item": {"l"},
	})
	assert.Error(t, err)

	_, err = NewKeymap(map[string][]string{"nav.next_item": {"Hyper+l"}})
	assert.Error(t, err)
}
