package input

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Key is a normalised key press.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

var namedKeys = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"backspace": tcell.KeyBackspace,
	"tab":       tcell.KeyTab,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"insert":    tcell.KeyInsert,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// ParseKey parses descriptions such as "Ctrl+F", "Shift+Space", "PgDn" or
// "G". Modifier names are case-insensitive; a single character is taken
// literally.
func ParseKey(desc string) (Key, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return Key{}, fmt.Errorf("empty key description")
	}

	var parts []string
	switch {
	case desc == "+":
		parts = []string{"+"}
	case strings.HasSuffix(desc, "++"):
		parts = append(strings.Split(strings.TrimSuffix(desc, "++"), "+"), "+")
	default:
		parts = strings.Split(desc, "+")
	}

	var mod tcell.ModMask
	for _, m := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "ctrl", "control":
			mod |= tcell.ModCtrl
		case "shift":
			mod |= tcell.ModShift
		case "alt", "meta", "option":
			mod |= tcell.ModAlt
		default:
			return Key{}, fmt.Errorf("unknown modifier %q in %q", m, desc)
		}
	}

	name := parts[len(parts)-1]
	if name == "" {
		return Key{}, fmt.Errorf("missing key in %q", desc)
	}

	if strings.EqualFold(name, "space") {
		return normalize(Key{Code: tcell.KeyRune, Rune: ' ', Mod: mod}), nil
	}
	if code, ok := namedKeys[strings.ToLower(name)]; ok {
		return normalize(Key{Code: code, Mod: mod}), nil
	}
	if utf8.RuneCountInString(name) != 1 {
		return Key{}, fmt.Errorf("unknown key %q in %q", name, desc)
	}

	r, _ := utf8.DecodeRuneInString(name)
	if mod&tcell.ModShift != 0 && unicode.IsLetter(r) {
		r = unicode.ToUpper(r)
	}
	return normalize(Key{Code: tcell.KeyRune, Rune: r, Mod: mod}), nil
}

// FromEvent normalises a tcell key event.
func FromEvent(ev *tcell.EventKey) Key {
	return normalize(Key{Code: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()})
}

// normalize folds the different ways terminals report the same key press
// into one representation.
func normalize(k Key) Key {
	switch k.Code {
	case tcell.KeyRune:
		if k.Mod&tcell.ModCtrl != 0 {
			lower := unicode.ToLower(k.Rune)
			if lower >= 'a' && lower <= 'z' {
				return Key{Code: tcell.KeyCtrlA + tcell.Key(lower-'a'), Mod: k.Mod &^ (tcell.ModCtrl | tcell.ModShift)}
			}
		}
		if k.Rune != ' ' {
			k.Mod &^= tcell.ModShift
		}
		return k
	case tcell.KeyBackspace2:
		k.Code = tcell.KeyBackspace
	}
	k.Rune = 0
	if k.Code < tcell.Key(' ') {
		k.Mod &^= tcell.ModCtrl | tcell.ModShift
	}
	return k
}

// Keymap resolves key presses to command ids.
type Keymap struct {
	bindings map[Key]string
	keys     map[string][]string
}

// NewKeymap builds a keymap from command id to key descriptions. A key bound
// to two commands is an error.
func NewKeymap(bindings map[string][]string) (*Keymap, error) {
	km := &Keymap{
		bindings: make(map[Key]string),
		keys:     make(map[string][]string),
	}

	commands := make([]string, 0, len(bindings))
	for cmd := range bindings {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)

	for _, cmd := range commands {
		for _, desc := range bindings[cmd] {
			key, err := ParseKey(desc)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", cmd, err)
			}
			if other, dup := km.bindings[key]; dup && other != cmd {
				return nil, fmt.Errorf("key %q bound to both %s and %s", desc, other, cmd)
			}
			km.bindings[key] = cmd
			km.keys[cmd] = append(km.keys[cmd], desc)
		}
	}
	return km, nil
}

// Lookup returns the command bound to ev.
func (km *Keymap) Lookup(ev *tcell.EventKey) (string, bool) {
	cmd, ok := km.bindings[FromEvent(ev)]
	return cmd, ok
}

// KeysFor returns the key descriptions bound to cmd, in configuration order.
func (km *Keymap) KeysFor(cmd string) []string {
	return append([]string(nil), km.keys[cmd]...)
}
