package nav

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user-none/padnav/gamepad"
)

type fakeNode struct {
	name      string
	focusable bool
	hidden    bool
	children  []Node
}

func (n *fakeNode) Children() []Node { return n.children }
func (n *fakeNode) Focusable() bool  { return n.focusable }
func (n *fakeNode) Visible() bool    { return !n.hidden }
func (n *fakeNode) String() string   { return n.name }

type fakeButton struct {
	fakeNode
	cmd   Command
	param any
}

func (b *fakeButton) Command() (Command, any) { return b.cmd, b.param }

type fakeToggle struct {
	fakeNode
	on bool
}

func (t *fakeToggle) Toggled() bool      { return t.on }
func (t *fakeToggle) SetToggled(on bool) { t.on = on }

func leaf(name string) *fakeNode       { return &fakeNode{name: name, focusable: true} }
func panel(children ...Node) *fakeNode { return &fakeNode{name: "panel", children: children} }
func inert(name string) *fakeNode      { return &fakeNode{name: name} }

func hiddenLeaf(name string) *fakeNode {
	return &fakeNode{name: name, focusable: true, hidden: true}
}

func button(name string, cmd Command, param any) *fakeButton {
	return &fakeButton{fakeNode: fakeNode{name: name, focusable: true}, cmd: cmd, param: param}
}

func names(elements []Element) []string {
	out := make([]string, 0, len(elements))
	for _, e := range elements {
		out = append(out, fmt.Sprint(e.Node))
	}
	return out
}

// pageOf builds a page with n focusable leaves named e0..e(n-1).
func pageOf(n int) *fakeNode {
	children := make([]Node, n)
	for i := range children {
		children[i] = leaf(fmt.Sprintf("e%d", i))
	}
	return panel(children...)
}

type fakeHost struct {
	page      Node
	focused   []Node
	canGoBack bool
	backs     int
	paneOpen  bool
	layouts   []Mode
	indicator bool
}

func (h *fakeHost) ActivePage() Node           { return h.page }
func (h *fakeHost) RequestFocus(n Node)        { h.focused = append(h.focused, n) }
func (h *fakeHost) CanGoBack() bool            { return h.canGoBack }
func (h *fakeHost) GoBack()                    { h.backs++ }
func (h *fakeHost) PaneOpen() bool             { return h.paneOpen }
func (h *fakeHost) SetPaneOpen(open bool)      { h.paneOpen = open }
func (h *fakeHost) SetLayout(m Mode)           { h.layouts = append(h.layouts, m) }
func (h *fakeHost) SetIndicatorVisible(v bool) { h.indicator = v }

func (h *fakeHost) lastFocused() Node {
	if len(h.focused) == 0 {
		return nil
	}
	return h.focused[len(h.focused)-1]
}

func (h *fakeHost) lastLayout() (Mode, bool) {
	if len(h.layouts) == 0 {
		return 0, false
	}
	return h.layouts[len(h.layouts)-1], true
}

var errFakeRead = errors.New("fake read failure")

// fakeSource is a single-device source. connected controls whether the device
// is plugged in; buttons is what the next Read returns.
type fakeSource struct {
	mu sync.Mutex

	connected   bool
	bound       bool
	buttons     gamepad.Buttons
	readErr        error
	panicOnRead    bool
	panicOnConnect bool
	packet         uint32

	tries    int
	reads    int
	releases int
	pumps    int
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) TryConnect() (gamepad.Device, bool) {
	s.tries++
	if s.panicOnConnect {
		panic("ioctl JSIOCGAXES failed")
	}
	if !s.connected {
		return gamepad.Device{}, false
	}
	s.bound = true
	return gamepad.Device{ID: 1, Name: "Fake Pad"}, true
}

func (s *fakeSource) Read(dev gamepad.Device) (gamepad.Snapshot, error) {
	s.reads++
	if s.panicOnRead {
		panic("driver exploded")
	}
	if !s.bound || !s.connected {
		s.bound = false
		return gamepad.Snapshot{}, fmt.Errorf("%w: %s", gamepad.ErrDeviceUnavailable, dev)
	}
	if s.readErr != nil {
		return gamepad.Snapshot{}, s.readErr
	}
	s.packet++
	return gamepad.NewSnapshot(s.buttons, s.packet), nil
}

func (s *fakeSource) Release() {
	s.releases++
	s.bound = false
}

// notifyingSource adds hot-plug signals that may be raised from any goroutine.
type notifyingSource struct {
	fakeSource
	watchers []func(gamepad.Event)
}

func (s *notifyingSource) Watch(fn func(gamepad.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

func (s *notifyingSource) Pump() {
	s.pumps++
}

func (s *notifyingSource) emit(ev gamepad.Event) {
	s.mu.Lock()
	watchers := append([]func(gamepad.Event){}, s.watchers...)
	s.mu.Unlock()
	for _, fn := range watchers {
		fn(ev)
	}
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
