package gamepad

import (
	"fmt"

	"github.com/0xcafed00d/joystick"
)

// DefaultSlots is how many joystick slots are tried during discovery.
const DefaultSlots = 4

// JoystickSource reads controllers through the OS joystick API. It follows
// the polling strategy: every discovery attempt tries slots 0..slots-1 and
// claims the first one that opens.
type JoystickSource struct {
	open    func(id int) (joystick.Joystick, error)
	slots   int
	mapping Mapping

	js     joystick.Joystick
	device Device
	packet uint32
}

// NewJoystickSource creates a polling strategy source.
func NewJoystickSource(slots int, mapping Mapping) *JoystickSource {
	if slots <= 0 {
		slots = DefaultSlots
	}
	return &JoystickSource{
		open:    joystick.Open,
		slots:   slots,
		mapping: mapping,
	}
}

// Name implements Source.
func (s *JoystickSource) Name() string {
	return "joystick"
}

// TryConnect implements Source.
func (s *JoystickSource) TryConnect() (Device, bool) {
	if s.js != nil {
		return s.device, true
	}

	for i := 0; i < s.slots; i++ {
		js, err := s.open(i)
		if err != nil {
			continue
		}
		s.js = js
		s.device = Device{ID: i, Name: js.Name()}
		return s.device, true
	}
	return Device{}, false
}

// Read implements Source. A failed read closes the joystick and unbinds it.
func (s *JoystickSource) Read(dev Device) (Snapshot, error) {
	if s.js == nil || dev.ID != s.device.ID {
		return Snapshot{}, fmt.Errorf("%w: slot %s not bound", ErrDeviceUnavailable, dev)
	}

	state, err := s.js.Read()
	if err != nil {
		s.Release()
		return Snapshot{}, fmt.Errorf("%w: slot %s: %v", ErrDeviceUnavailable, dev, err)
	}

	s.packet++
	return NewSnapshot(s.mapping.Decode(state), s.packet), nil
}

// Release implements Source.
func (s *JoystickSource) Release() {
	if s.js != nil {
		s.js.Close()
	}
	s.js = nil
	s.device = Device{}
}
