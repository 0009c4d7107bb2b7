// Package nav drives a UI tree from a gamepad: it polls a gamepad.Source on a
// fixed interval, turns rising button edges into navigation actions and keeps
// the host window's Desktop/Controller mode in step with device presence.
//
// All engine state is confined to the UI thread. Work that originates on
// other goroutines reaches the engine through an Inbox.
package nav

import "reflect"

// Node is a view of one element in the host UI tree. Implementations wrap the
// toolkit's own widgets and must not cache children; the tree may change
// between ticks.
type Node interface {
	// Children returns the node's children in document order.
	Children() []Node
	// Focusable reports whether the node can take input focus.
	Focusable() bool
	// Visible reports whether the node is currently shown.
	Visible() bool
}

// Keyed is implemented by nodes that can report a stable identity. Wrappers
// that are rebuilt on every traversal use it so two wrappers of the same
// widget compare equal.
type Keyed interface {
	NodeKey() any
}

// Command is an action bound to an element.
type Command interface {
	Execute(param any)
}

// CommandFunc adapts a function to Command.
type CommandFunc func(param any)

// Execute calls f(param).
func (f CommandFunc) Execute(param any) {
	f(param)
}

// Invocable is implemented by elements with a bound command, such as buttons.
// A nil command means nothing is bound.
type Invocable interface {
	Command() (cmd Command, param any)
}

// Toggleable is implemented by elements with a boolean state, such as
// switches and checkboxes.
type Toggleable interface {
	Toggled() bool
	SetToggled(on bool)
}

// Element is a node selected by the collector together with the flags it
// reported at collection time. It is only valid until the next collection.
type Element struct {
	Node      Node
	Focusable bool
	Visible   bool
}

// Activate runs the element's default action. Invocable elements execute
// their command; toggleable elements flip their state. Anything else is
// ignored. It reports whether an action ran.
func (e Element) Activate() bool {
	if inv, ok := e.Node.(Invocable); ok {
		if cmd, param := inv.Command(); cmd != nil {
			cmd.Execute(param)
			return true
		}
	}
	if tog, ok := e.Node.(Toggleable); ok {
		tog.SetToggled(!tog.Toggled())
		return true
	}
	return false
}

// nodeKey returns an identity usable as a map key. ok is false when the node
// has no usable identity.
func nodeKey(n Node) (key any, ok bool) {
	if n == nil {
		return nil, false
	}
	if k, isKeyed := n.(Keyed); isKeyed {
		key = k.NodeKey()
		if key == nil || !reflect.TypeOf(key).Comparable() {
			return nil, false
		}
		return key, true
	}
	if reflect.TypeOf(n).Comparable() {
		return n, true
	}
	return nil, false
}
