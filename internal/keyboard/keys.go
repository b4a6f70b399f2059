// Package keyboard resolves push-to-talk key names and tracks global key state.
package keyboard

import (
	"sort"
	"strings"
)

// DefaultKeyName is used whenever a configured key name cannot be resolved.
const DefaultKeyName = "RControl"

// Key is one resolvable PTT key. Code is the libuiohook virtual keycode
// reported by the global hook on every platform.
type Key struct {
	Name string
	Code uint16
}

func (k Key) String() string {
	return k.Name
}

var keyCodes = map[string]uint16{
	"lcontrol":   0x001D,
	"rcontrol":   0x0E1D,
	"lshift":     0x002A,
	"rshift":     0x0036,
	"lalt":       0x0038,
	"ralt":       0x0E38,
	"lmeta":      0x0E5B,
	"rmeta":      0x0E5C,
	"capslock":   0x003A,
	"space":      0x0039,
	"scrolllock": 0x0046,
	"pause":      0x0E45,
	"insert":     0x0E52,
	"f1":         0x003B,
	"f2":         0x003C,
	"f3":         0x003D,
	"f4":         0x003E,
	"f5":         0x003F,
	"f6":         0x0040,
	"f7":         0x0041,
	"f8":         0x0042,
	"f9":         0x0043,
	"f10":        0x0044,
	"f11":        0x0057,
	"f12":        0x0058,
}

var aliases = map[string]string{
	"loption":  "lalt",
	"roption":  "ralt",
	"meta":     "lmeta",
	"command":  "lmeta",
	"lcommand": "lmeta",
	"rcommand": "rmeta",
}

// Lookup resolves a key name case-insensitively.
func Lookup(name string) (Key, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[normalized]; ok {
		normalized = target
	}
	code, ok := keyCodes[normalized]
	if !ok {
		return Key{}, false
	}
	return Key{Name: strings.TrimSpace(name), Code: code}, true
}

// Resolve returns the named key, or RControl with ok=false when name is unknown.
func Resolve(name string) (Key, bool) {
	if key, ok := Lookup(name); ok {
		return key, true
	}
	key, _ := Lookup(DefaultKeyName)
	return key, false
}

// Names lists the canonical key names accepted by Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(keyCodes)+len(aliases))
	for name := range keyCodes {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
