package gamepad

import (
	"errors"
	"fmt"
)

// ErrDeviceUnavailable is returned by Source.Read when the device has
// disconnected or was never valid. The binding is dropped before the error is
// returned, so the source has to discover again before reading.
var ErrDeviceUnavailable = errors.New("gamepad: device unavailable")

// ErrNoBackend is returned by Open when no backend can be used.
var ErrNoBackend = errors.New("gamepad: no usable backend")

// Device is a handle to a claimed controller. It is only meaningful to the
// Source that returned it and may go stale at any time.
type Device struct {
	ID   int
	Name string
}

func (d Device) String() string {
	if d.Name == "" {
		return fmt.Sprintf("#%d", d.ID)
	}
	return fmt.Sprintf("#%d (%s)", d.ID, d.Name)
}

// Source is a controller backend.
type Source interface {
	// Name identifies the backend in logs.
	Name() string
	// TryConnect returns the bound device, claiming the first connected one
	// when nothing is bound. ok is false when no device is connected.
	TryConnect() (dev Device, ok bool)
	// Read returns the current snapshot for dev. When dev is no longer the
	// bound device or it has disconnected, Read unbinds and returns an error
	// wrapping ErrDeviceUnavailable.
	Read(dev Device) (Snapshot, error)
	// Release drops the binding, if any.
	Release()
}

// EventKind is the kind of a hot-plug signal.
type EventKind int

const (
	DeviceAdded EventKind = iota
	DeviceRemoved
)

func (k EventKind) String() string {
	switch k {
	case DeviceAdded:
		return "added"
	case DeviceRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is a hot-plug signal.
type Event struct {
	Kind   EventKind
	Device Device
}

// Notifier is implemented by event strategy sources. The function passed to
// Watch may be called from any goroutine; callers are responsible for moving
// the event onto their own thread before acting on it.
type Notifier interface {
	Watch(fn func(Event))
}

// Pumper is implemented by sources whose signals have to be collected from the
// UI thread once per frame.
type Pumper interface {
	Pump()
}
