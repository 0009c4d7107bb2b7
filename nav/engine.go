package nav

import (
	"log"
	"time"

	"github.com/user-none/padnav/gamepad"
)

// DefaultDiscoveryInterval is how often Desktop mode looks for a controller.
const DefaultDiscoveryInterval = 500 * time.Millisecond

// Stats are diagnostic counters.
type Stats struct {
	Ticks       uint64
	Dispatched  uint64
	Failures    uint64
	Discoveries uint64
	ModeChanges uint64
	Events      uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithPollInterval sets the Controller mode tick interval.
func WithPollInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.pollInterval = d
	}
}

// WithDiscoveryInterval sets how often Desktop mode looks for a controller.
func WithDiscoveryInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.discoveryInterval = d
	}
}

// WithMaxDepth bounds the UI tree traversal.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithDebug enables per-button trace logging.
func WithDebug(debug bool) Option {
	return func(e *Engine) {
		e.debug = debug
	}
}

// Engine is the gamepad navigation engine for one host window. Create it
// once at startup, pass it to whatever needs it and call Update from the
// window's update loop. It is not safe for concurrent use; hot-plug signals
// from other goroutines are queued and applied by Update.
type Engine struct {
	source gamepad.Source
	host   Host
	clock  Clock

	pollInterval      time.Duration
	discoveryInterval time.Duration
	maxDepth          int
	debug             bool

	inbox    Inbox
	mode     *ModeMachine
	poll     *Schedule
	retry    *Schedule
	poller   *Poller
	focus    *FocusController
	stats    Stats
	attached bool
}

// New creates an engine reading from source. It does nothing until
// Initialize is called.
func New(source gamepad.Source, opts ...Option) *Engine {
	e := &Engine{
		source:            source,
		clock:             SystemClock{},
		pollInterval:      DefaultPollInterval,
		discoveryInterval: DefaultDiscoveryInterval,
		maxDepth:          DefaultMaxDepth,
		mode:              NewModeMachine(),
	}
	e.mode.OnChange(e.applyLayout)
	for _, opt := range opts {
		opt(e)
	}

	e.poll = NewSchedule(e.pollInterval)
	e.retry = NewSchedule(e.discoveryInterval)
	e.poller = NewPoller(source, e.dispatch)
	e.focus = NewFocusController(nil, Collector{MaxDepth: e.maxDepth})

	if n, ok := source.(gamepad.Notifier); ok {
		n.Watch(func(ev gamepad.Event) {
			e.inbox.Post(func() { e.handleEvent(ev) })
		})
	}
	return e
}

// Initialize binds the engine to host and looks for a controller. Without
// one the window is put in the Desktop layout and discovery continues in the
// background.
func (e *Engine) Initialize(host Host) {
	e.host = host
	e.focus.SetHost(host)
	e.attached = true

	if e.poller.Discover() {
		e.stats.Discoveries++
		dev, _ := e.poller.Device()
		log.Printf("Controller found on %s: %s", e.source.Name(), dev)
		e.enterController()
		return
	}

	log.Printf("No controller found on %s", e.source.Name())
	e.applyDesktop()
	e.retry.Start(e.clock.Now())
}

// Update runs one frame of engine work: hot-plug signals, the poll tick when
// due and, in Desktop mode, the discovery retry.
func (e *Engine) Update() {
	if !e.attached {
		return
	}

	if p, ok := e.source.(gamepad.Pumper); ok {
		p.Pump()
	}
	e.inbox.Drain()

	now := e.clock.Now()
	if e.poll.Due(now) {
		e.tick()
	}
	if e.retry.Due(now) {
		e.discover()
	}
}

// Post queues fn to run on the UI thread during the next Update.
func (e *Engine) Post(fn func()) {
	e.inbox.Post(fn)
}

// IsControllerMode reports whether the window is in Controller mode.
func (e *Engine) IsControllerMode() bool {
	return e.mode.Mode() == ModeController
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode {
	return e.mode.Mode()
}

// OnModeChange registers fn to run on every Desktop/Controller transition,
// after the engine has applied the layout.
func (e *Engine) OnModeChange(fn func(from, to Mode)) {
	e.mode.OnChange(fn)
}

// PageChanged tells the engine the active page was replaced. The next
// navigation starts from the first element of the new page.
func (e *Engine) PageChanged() {
	e.focus.Reset()
}

// SelectionIndex returns the current selection index.
func (e *Engine) SelectionIndex() int {
	return e.focus.Index()
}

// Polling reports whether the Controller mode schedule is running.
func (e *Engine) Polling() bool {
	return e.poll.Running()
}

// Stats returns a copy of the diagnostic counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.ModeChanges = e.mode.Changes()
	return s
}

func (e *Engine) tick() {
	e.stats.Ticks++
	res := e.poller.Tick()

	switch res.Outcome {
	case TickDispatched:
		e.stats.Dispatched++
	case TickLost:
		e.lost(res.Err)
	}
}

func (e *Engine) discover() {
	if !e.poller.Discover() {
		return
	}
	e.stats.Discoveries++
	dev, _ := e.poller.Device()
	log.Printf("Controller connected: %s", dev)
	e.enterController()
}

// lost handles a dropped binding. A replacement device keeps Controller mode;
// otherwise the window returns to Desktop.
func (e *Engine) lost(err error) {
	e.stats.Failures++
	log.Printf("Controller released: %v", err)

	if e.poller.Discover() {
		e.stats.Discoveries++
		dev, _ := e.poller.Device()
		log.Printf("Switched to controller %s", dev)
		e.focus.Reset()
		return
	}
	e.enterDesktop()
}

func (e *Engine) handleEvent(ev gamepad.Event) {
	e.stats.Events++
	e.debugf("Device %s: %s", ev.Kind, ev.Device)

	switch ev.Kind {
	case gamepad.DeviceAdded:
		if !e.IsControllerMode() {
			e.discover()
		}
	case gamepad.DeviceRemoved:
		dev, bound := e.poller.Device()
		if !bound || dev.ID != ev.Device.ID {
			return
		}
		e.poller.Release()
		e.lost(gamepad.ErrDeviceUnavailable)
	}
}

func (e *Engine) enterController() {
	if !e.mode.EnterController() {
		return
	}
	now := e.clock.Now()
	e.retry.Stop()
	e.poll.Start(now)
	e.focus.Reset()
	log.Printf("Controller mode enabled")
}

func (e *Engine) enterDesktop() {
	if !e.mode.EnterDesktop() {
		return
	}
	e.poll.Stop()
	e.retry.Start(e.clock.Now())
	log.Printf("Controller mode disabled")
}

func (e *Engine) dispatch(b gamepad.Button) {
	e.debugf("Button %s", b)

	switch b {
	case gamepad.ButtonUp:
		e.focus.Navigate(DirectionUp)
	case gamepad.ButtonDown:
		e.focus.Navigate(DirectionDown)
	case gamepad.ButtonLeft, gamepad.ButtonRight:
		// No horizontal navigation yet; the button still consumes the tick
	case gamepad.ButtonActivate:
		e.focus.ActivateSelected()
	case gamepad.ButtonBack:
		e.goBack()
	case gamepad.ButtonMenu:
		e.toggleMenu()
	}
}

func (e *Engine) goBack() {
	if e.host != nil && e.host.CanGoBack() {
		e.host.GoBack()
	}
}

func (e *Engine) toggleMenu() {
	if e.host != nil {
		e.host.SetPaneOpen(!e.host.PaneOpen())
	}
}

// applyLayout pushes mode side effects to the host. It is registered as the
// first mode listener so host listeners see the new layout.
func (e *Engine) applyLayout(from, to Mode) {
	if e.host == nil {
		return
	}
	e.host.SetLayout(to)
	e.host.SetIndicatorVisible(to == ModeController)
}

func (e *Engine) applyDesktop() {
	e.applyLayout(ModeDesktop, ModeDesktop)
}

func (e *Engine) debugf(format string, args ...any) {
	if e.debug {
		log.Printf(format, args...)
	}
}
