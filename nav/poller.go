package nav

import (
	"errors"
	"fmt"
	"log"

	"github.com/user-none/padnav/gamepad"
)

// ErrTransientRead wraps a read or dispatch failure that was not reported as
// gamepad.ErrDeviceUnavailable. Both are handled the same way: the binding
// is dropped and the source has to discover again.
var ErrTransientRead = errors.New("nav: transient read error")

// TickOutcome describes what a single tick did.
type TickOutcome int

const (
	// TickIdle means no device was bound and none was found.
	TickIdle TickOutcome = iota
	// TickQuiet means a snapshot was read but no button rose.
	TickQuiet
	// TickDispatched means one button was dispatched.
	TickDispatched
	// TickLost means the device binding was dropped.
	TickLost
)

func (o TickOutcome) String() string {
	switch o {
	case TickIdle:
		return "idle"
	case TickQuiet:
		return "quiet"
	case TickDispatched:
		return "dispatched"
	case TickLost:
		return "lost"
	default:
		return "unknown"
	}
}

// TickResult is returned by Poller.Tick.
type TickResult struct {
	Outcome TickOutcome
	// Bound is set when the tick discovered a device.
	Bound bool
	// Button is the dispatched button when Outcome is TickDispatched.
	Button gamepad.Button
	// Err is the cause when Outcome is TickLost.
	Err error
}

// Poller reads a gamepad.Source once per tick and dispatches at most one
// rising edge, chosen in gamepad.Priority order.
type Poller struct {
	source   gamepad.Source
	dispatch func(gamepad.Button)

	bound    bool
	device   gamepad.Device
	previous gamepad.Snapshot
}

// NewPoller creates a poller that passes rising buttons to dispatch.
func NewPoller(source gamepad.Source, dispatch func(gamepad.Button)) *Poller {
	return &Poller{source: source, dispatch: dispatch}
}

// Bound reports whether a device is bound.
func (p *Poller) Bound() bool {
	return p.bound
}

// Device returns the bound device.
func (p *Poller) Device() (gamepad.Device, bool) {
	return p.device, p.bound
}

// Discover binds the source's connected device if nothing is bound. The edge
// baseline is cleared on every new binding so buttons already held on the
// new device count as pressed. A panic from the source counts as no device.
func (p *Poller) Discover() bool {
	if p.bound {
		return true
	}
	dev, ok := p.tryConnect()
	if !ok {
		return false
	}
	p.bound = true
	p.device = dev
	p.previous = gamepad.Snapshot{}
	return true
}

func (p *Poller) tryConnect() (dev gamepad.Device, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Controller discovery failed on %s: %v", p.source.Name(), r)
			dev, ok = gamepad.Device{}, false
		}
	}()
	return p.source.TryConnect()
}

// Release drops the binding in both the poller and the source.
func (p *Poller) Release() {
	p.bound = false
	p.device = gamepad.Device{}
	p.previous = gamepad.Snapshot{}
	p.source.Release()
}

// Tick runs one poll. Errors and panics from the source or the dispatch
// function never escape; they release the binding and are reported in the
// result.
func (p *Poller) Tick() (res TickResult) {
	if !p.bound {
		if !p.Discover() {
			return TickResult{Outcome: TickIdle}
		}
		res.Bound = true
	}

	defer func() {
		if r := recover(); r != nil {
			p.Release()
			res.Outcome = TickLost
			res.Err = fmt.Errorf("%w: panic: %v", ErrTransientRead, r)
		}
	}()

	snap, err := p.source.Read(p.device)
	if err != nil {
		if !errors.Is(err, gamepad.ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrTransientRead, err)
		}
		p.Release()
		res.Outcome = TickLost
		res.Err = err
		return res
	}

	res.Outcome = TickQuiet
	if b, ok := gamepad.RisingEdges(snap, p.previous).First(); ok {
		res.Outcome = TickDispatched
		res.Button = b
		if p.dispatch != nil {
			p.dispatch(b)
		}
	}
	p.previous = snap
	return res
}
