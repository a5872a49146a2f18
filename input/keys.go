package input

import (
	"fmt"
	"strings"
)

// Key codes share raylib's numbering so the platform layer can pass them through.
const (
	KeySpace     Key = 32
	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyF1        Key = 290
	KeyLeftShift Key = 340
	KeyLeftCtrl  Key = 341
)

var namedKeys = map[string]Key{
	"space":     KeySpace,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"enter":     KeyEnter,
	"tab":       KeyTab,
	"right":     KeyRight,
	"left":      KeyLeft,
	"down":      KeyDown,
	"up":        KeyUp,
	"leftshift": KeyLeftShift,
	"shift":     KeyLeftShift,
	"leftctrl":  KeyLeftCtrl,
	"ctrl":      KeyLeftCtrl,
}

// ParseKey converts a key name from config ("W", "Up", "F3", "Escape") to a key code.
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if key, ok := namedKeys[n]; ok {
		return key, nil
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return Key('A' + (c - 'a')), nil
		case c >= '0' && c <= '9':
			return Key(c), nil
		}
	}
	if len(n) >= 2 && n[0] == 'f' {
		var num int
		if _, err := fmt.Sscanf(n[1:], "%d", &num); err == nil && num >= 1 && num <= 12 {
			return KeyF1 + Key(num-1), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
