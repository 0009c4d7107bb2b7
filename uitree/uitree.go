// Package uitree exposes an ebitenui widget tree to the navigation engine.
//
// Containers and scroll containers are parents; every Focuser with a
// non-negative tab order that is not disabled is focusable. Buttons are
// invocable, and checkboxes and toggle-mode buttons are toggleable.
package uitree

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"

	"github.com/user-none/padnav/nav"
)

// parent is implemented by widget.Container and anything embedding it.
type parent interface {
	Children() []widget.PreferredSizeLocateableWidget
}

// Binding is the command a button runs when activated from a controller.
type Binding struct {
	Command nav.Command
	Param   any
}

// Bind attaches cmd and param to btn. Without a binding a button activates
// through Click, the same as a mouse press.
func Bind(btn *widget.Button, cmd nav.Command, param any) {
	btn.GetWidget().CustomData = &Binding{Command: cmd, Param: param}
}

// Wrap returns the node for w, or nil when w is nil.
func Wrap(w widget.HasWidget) nav.Node {
	if w == nil {
		return nil
	}
	switch v := w.(type) {
	case *widget.Button:
		if v.ToggleMode {
			return &buttonToggle{node: node{w: v}, btn: v}
		}
		return &button{node: node{w: v}, btn: v}
	case *widget.Checkbox:
		return &checkbox{node: node{w: v}, cb: v}
	}
	return &node{w: w}
}

// Unwrap returns the widget behind n, or nil when n did not come from Wrap.
func Unwrap(n nav.Node) widget.HasWidget {
	if u, ok := n.(interface{ unwrap() widget.HasWidget }); ok {
		return u.unwrap()
	}
	return nil
}

// Focus gives ui's input focus to the widget behind n. It reports false when
// n is not a focusable widget.
func Focus(ui *ebitenui.UI, n nav.Node) bool {
	f, ok := Unwrap(n).(widget.Focuser)
	if !ok || ui == nil {
		return false
	}
	ui.SetFocusedWidget(f)
	return true
}

type node struct {
	w widget.HasWidget
}

func (n *node) unwrap() widget.HasWidget {
	return n.w
}

// NodeKey implements nav.Keyed. Wrappers are rebuilt on every traversal, so
// identity comes from the underlying widget.
func (n *node) NodeKey() any {
	return n.w.GetWidget()
}

func (n *node) Children() []nav.Node {
	switch v := n.w.(type) {
	case *widget.ScrollContainer:
		// Content is private; the focusers are already filtered for
		// tab order, disabled and visibility.
		focusers := v.GetFocusers()
		out := make([]nav.Node, 0, len(focusers))
		for _, f := range focusers {
			out = append(out, Wrap(f))
		}
		return out
	case parent:
		children := v.Children()
		out := make([]nav.Node, 0, len(children))
		for _, c := range children {
			out = append(out, Wrap(c))
		}
		return out
	}
	return nil
}

func (n *node) Focusable() bool {
	f, ok := n.w.(widget.Focuser)
	if !ok {
		return false
	}
	return f.TabOrder() >= 0 && !n.w.GetWidget().Disabled
}

func (n *node) Visible() bool {
	return n.w.GetWidget().IsVisible()
}

type button struct {
	node
	btn *widget.Button
}

// Command implements nav.Invocable.
func (b *button) Command() (nav.Command, any) {
	if bind, ok := b.btn.GetWidget().CustomData.(*Binding); ok && bind.Command != nil {
		return bind.Command, bind.Param
	}
	return nav.CommandFunc(func(any) { b.btn.Click() }), nil
}

type buttonToggle struct {
	node
	btn *widget.Button
}

func (b *buttonToggle) Toggled() bool {
	return b.btn.State() == widget.WidgetChecked
}

func (b *buttonToggle) SetToggled(on bool) {
	b.btn.SetState(stateFor(on))
}

type checkbox struct {
	node
	cb *widget.Checkbox
}

func (c *checkbox) Toggled() bool {
	return c.cb.State() == widget.WidgetChecked
}

func (c *checkbox) SetToggled(on bool) {
	c.cb.SetState(stateFor(on))
}

func stateFor(on bool) widget.WidgetState {
	if on {
		return widget.WidgetChecked
	}
	return widget.WidgetUnchecked
}
