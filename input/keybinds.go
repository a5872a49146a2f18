// Package input maps raw key polling onto a fixed set of game actions.
package input

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Action is a game-level input action.
type Action uint8

const (
	Boost Action = iota
	Slow
	Pause
	Debug
)

// Actions lists every action in enumeration order.
var Actions = [...]Action{Boost, Slow, Pause, Debug}

func (a Action) String() string {
	switch a {
	case Boost:
		return "boost"
	case Slow:
		return "slow"
	case Pause:
		return "pause"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// PressedState is the per-frame status of an action.
type PressedState uint8

const (
	Off PressedState = iota
	JustPressed
	Pressed
)

// IsJustPressed reports a rising edge this frame.
func (s PressedState) IsJustPressed() bool { return s == JustPressed }

// IsPressed reports whether the action is held, including the first frame.
func (s PressedState) IsPressed() bool { return s == JustPressed || s == Pressed }

// IsNotPressed is the negation of IsPressed.
func (s PressedState) IsNotPressed() bool { return !s.IsPressed() }

// Next returns the state following s given whether any bound key is down.
func (s PressedState) Next(down bool) PressedState {
	switch {
	case down && s == Off:
		return JustPressed
	case down:
		return Pressed
	default:
		return Off
	}
}

// Key is a raw keyboard key code.
type Key int32

// Source polls raw device state. Implemented by the platform layer.
type Source interface {
	IsKeyDown(key Key) bool
	// PointerPosition returns the pointer in window pixels.
	PointerPosition() r2.Vec
	// ScreenSize returns the window size in pixels.
	ScreenSize() r2.Vec
}

type binding struct {
	keys  []Key
	state PressedState
}

// Keybinds holds the key table and the current status of every action.
// Every action always has an entry.
type Keybinds struct {
	bindings [len(Actions)]binding
	pointer  r2.Vec
	screen   r2.Vec
}

// NewKeybinds creates a keybind table with no keys bound.
func NewKeybinds() *Keybinds {
	return &Keybinds{}
}

// Bind adds a key to an action.
func (k *Keybinds) Bind(action Action, key Key) {
	b := &k.bindings[action]
	for _, existing := range b.keys {
		if existing == key {
			return
		}
	}
	b.keys = append(b.keys, key)
}

// Unbind removes all keys from an action.
func (k *Keybinds) Unbind(action Action) {
	k.bindings[action].keys = nil
}

// Keys returns the keys bound to an action.
func (k *Keybinds) Keys(action Action) []Key {
	return k.bindings[action].keys
}

// Get returns the current status of an action.
func (k *Keybinds) Get(action Action) PressedState {
	return k.bindings[action].state
}

// Pointer returns the pointer position in window pixels as of the last Update.
func (k *Keybinds) Pointer() r2.Vec { return k.pointer }

// Screen returns the window size as of the last Update.
func (k *Keybinds) Screen() r2.Vec { return k.screen }

// Update refreshes every action from the source. Call once per frame.
func (k *Keybinds) Update(src Source) {
	for i := range k.bindings {
		b := &k.bindings[i]
		down := false
		for _, key := range b.keys {
			if src.IsKeyDown(key) {
				down = true
				break
			}
		}
		b.state = b.state.Next(down)
	}
	k.pointer = src.PointerPosition()
	k.screen = src.ScreenSize()
}

// BindNames binds each named key to the action, failing on an unknown name.
func (k *Keybinds) BindNames(action Action, names []string) error {
	for _, name := range names {
		key, err := ParseKey(name)
		if err != nil {
			return fmt.Errorf("binding %s: %w", action, err)
		}
		k.Bind(action, key)
	}
	return nil
}
