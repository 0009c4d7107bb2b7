package gamepad

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// stickThreshold is how far the left stick has to move to count as a d-pad press
const stickThreshold = 0.5

// padState is the slice of ebiten's gamepad API the source depends on.
type padState interface {
	GamepadIDs() []ebiten.GamepadID
	JustConnected() []ebiten.GamepadID
	JustDisconnected(id ebiten.GamepadID) bool
	Name(id ebiten.GamepadID) string
	IsStandard(id ebiten.GamepadID) bool
	Pressed(id ebiten.GamepadID, b ebiten.StandardGamepadButton) bool
	Axis(id ebiten.GamepadID, a ebiten.StandardGamepadAxis) float64
}

type ebitenPads struct{}

func (ebitenPads) GamepadIDs() []ebiten.GamepadID { return ebiten.AppendGamepadIDs(nil) }
func (ebitenPads) JustConnected() []ebiten.GamepadID {
	return inpututil.AppendJustConnectedGamepadIDs(nil)
}
func (ebitenPads) JustDisconnected(id ebiten.GamepadID) bool {
	return inpututil.IsGamepadJustDisconnected(id)
}
func (ebitenPads) Name(id ebiten.GamepadID) string { return ebiten.GamepadName(id) }
func (ebitenPads) IsStandard(id ebiten.GamepadID) bool {
	return ebiten.IsStandardGamepadLayoutAvailable(id)
}
func (ebitenPads) Pressed(id ebiten.GamepadID, b ebiten.StandardGamepadButton) bool {
	return ebiten.IsStandardGamepadButtonPressed(id, b)
}
func (ebitenPads) Axis(id ebiten.GamepadID, a ebiten.StandardGamepadAxis) float64 {
	return ebiten.StandardGamepadAxisValue(id, a)
}

// standardButtons maps the W3C standard layout onto navigation buttons.
var standardButtons = []struct {
	pad ebiten.StandardGamepadButton
	nav Button
}{
	{ebiten.StandardGamepadButtonLeftTop, ButtonUp},
	{ebiten.StandardGamepadButtonLeftBottom, ButtonDown},
	{ebiten.StandardGamepadButtonLeftLeft, ButtonLeft},
	{ebiten.StandardGamepadButtonLeftRight, ButtonRight},
	{ebiten.StandardGamepadButtonRightBottom, ButtonActivate}, // A / Cross
	{ebiten.StandardGamepadButtonRightRight, ButtonBack},      // B / Circle
	{ebiten.StandardGamepadButtonCenterRight, ButtonMenu},     // Start
}

// EbitenSource reads controllers through ebiten's input layer. Hot-plug
// signals come from inpututil and are collected by Pump, so every method must
// be called from inside the ebiten Update loop.
type EbitenSource struct {
	pads padState

	bound    bool
	id       ebiten.GamepadID
	device   Device
	useStick bool
	packet   uint32

	watchers []func(Event)
}

// NewEbitenSource creates an event strategy source. When useStick is true the
// left analog stick mirrors the d-pad.
func NewEbitenSource(useStick bool) *EbitenSource {
	return &EbitenSource{
		pads:     ebitenPads{},
		useStick: useStick,
	}
}

// Name implements Source.
func (s *EbitenSource) Name() string {
	return "ebiten"
}

// Watch implements Notifier.
func (s *EbitenSource) Watch(fn func(Event)) {
	s.watchers = append(s.watchers, fn)
}

func (s *EbitenSource) emit(ev Event) {
	for _, fn := range s.watchers {
		fn(ev)
	}
}

// Pump collects hot-plug signals for this frame. The first added device is
// claimed when nothing is bound. Removal of the bound device drops the binding.
func (s *EbitenSource) Pump() {
	for _, id := range s.pads.JustConnected() {
		dev := s.describe(id)
		if !s.bound {
			s.claim(id)
		}
		s.emit(Event{Kind: DeviceAdded, Device: dev})
	}

	if s.bound && s.pads.JustDisconnected(s.id) {
		dev := s.device
		s.unbind()
		s.emit(Event{Kind: DeviceRemoved, Device: dev})
	}
}

// TryConnect implements Source. When the claimed device went away, any other
// connected gamepad is claimed instead, preferring standard layout pads.
func (s *EbitenSource) TryConnect() (Device, bool) {
	if s.bound {
		return s.device, true
	}

	ids := s.pads.GamepadIDs()
	if len(ids) == 0 {
		return Device{}, false
	}

	pick := ids[0]
	for _, id := range ids {
		if s.pads.IsStandard(id) {
			pick = id
			break
		}
	}
	s.claim(pick)
	return s.device, true
}

// Read implements Source.
func (s *EbitenSource) Read(dev Device) (Snapshot, error) {
	if !s.bound || dev.ID != int(s.id) {
		return Snapshot{}, fmt.Errorf("%w: %s not bound", ErrDeviceUnavailable, dev)
	}
	if !s.connected(s.id) {
		s.unbind()
		return Snapshot{}, fmt.Errorf("%w: %s disconnected", ErrDeviceUnavailable, dev)
	}

	var buttons Buttons
	for _, m := range standardButtons {
		if s.pads.Pressed(s.id, m.pad) {
			buttons = buttons.With(m.nav)
		}
	}

	if s.useStick {
		axisY := s.pads.Axis(s.id, ebiten.StandardGamepadAxisLeftStickVertical)
		axisX := s.pads.Axis(s.id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if axisY < -stickThreshold {
			buttons = buttons.With(ButtonUp)
		}
		if axisY > stickThreshold {
			buttons = buttons.With(ButtonDown)
		}
		if axisX < -stickThreshold {
			buttons = buttons.With(ButtonLeft)
		}
		if axisX > stickThreshold {
			buttons = buttons.With(ButtonRight)
		}
	}

	s.packet++
	return NewSnapshot(buttons, s.packet), nil
}

// Release implements Source.
func (s *EbitenSource) Release() {
	s.unbind()
}

func (s *EbitenSource) claim(id ebiten.GamepadID) {
	s.bound = true
	s.id = id
	s.device = s.describe(id)
}

func (s *EbitenSource) unbind() {
	s.bound = false
	s.device = Device{}
}

func (s *EbitenSource) describe(id ebiten.GamepadID) Device {
	return Device{ID: int(id), Name: s.pads.Name(id)}
}

func (s *EbitenSource) connected(id ebiten.GamepadID) bool {
	for _, other := range s.pads.GamepadIDs() {
		if other == id {
			return true
		}
	}
	return false
}
