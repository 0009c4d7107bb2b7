// Package gamepad turns physical controllers into per-frame snapshots of the
// logical navigation buttons.
//
// Two backends implement Source: EbitenSource follows the event strategy
// (hot-plug signals from ebiten's input layer) and JoystickSource follows the
// polling strategy (try a fixed number of joystick slots until one opens).
package gamepad

import "strings"

// Button is a logical navigation button.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonActivate
	ButtonBack
	ButtonMenu

	buttonCount
)

// priority is the fixed dispatch order used when several buttons rise in the
// same tick. Only the first rising button in this order is acted on.
var priority = [...]Button{
	ButtonUp,
	ButtonDown,
	ButtonLeft,
	ButtonRight,
	ButtonActivate,
	ButtonBack,
	ButtonMenu,
}

// Priority returns the dispatch order, highest first. The result is a copy.
func Priority() []Button {
	order := priority
	return order[:]
}

// String returns the button name
func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "Up"
	case ButtonDown:
		return "Down"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonActivate:
		return "Activate"
	case ButtonBack:
		return "Back"
	case ButtonMenu:
		return "Menu"
	default:
		return "Unknown"
	}
}

// Buttons is a set of logical buttons stored as a bitset.
type Buttons uint8

// NewButtons builds a set from the given buttons.
func NewButtons(buttons ...Button) Buttons {
	var set Buttons
	for _, b := range buttons {
		set = set.With(b)
	}
	return set
}

// Has reports whether b is in the set.
func (s Buttons) Has(b Button) bool {
	if b >= buttonCount {
		return false
	}
	return s&(1<<b) != 0
}

// With returns the set with b added.
func (s Buttons) With(b Button) Buttons {
	if b >= buttonCount {
		return s
	}
	return s | 1<<b
}

// Empty reports whether no button is in the set.
func (s Buttons) Empty() bool {
	return s == 0
}

// First returns the highest priority button in the set.
func (s Buttons) First() (Button, bool) {
	for _, b := range priority {
		if s.Has(b) {
			return b, true
		}
	}
	return 0, false
}

// List returns the buttons in the set in priority order.
func (s Buttons) List() []Button {
	var out []Button
	for _, b := range priority {
		if s.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

// String returns the set as "Up|Activate", or "None" when empty.
func (s Buttons) String() string {
	if s.Empty() {
		return "None"
	}
	names := make([]string, 0, buttonCount)
	for _, b := range s.List() {
		names = append(names, b.String())
	}
	return strings.Join(names, "|")
}
