package gamepad

import "github.com/0xcafed00d/joystick"

// Unmapped marks a button or axis that the mapping does not read.
const Unmapped = -1

// Mapping decodes raw joystick state into navigation buttons. Button values
// are bit indexes into joystick.State.Buttons; axis values are indexes into
// joystick.State.AxisData.
type Mapping struct {
	Buttons    map[Button]int
	DPadXAxis  int
	DPadYAxis  int
	StickXAxis int
	StickYAxis int
	Deadzone   int
}

// DefaultMapping returns the XInput style layout: A=0, B=1, Start=7 and the
// d-pad on bits 12-15. Linux reports the d-pad as hat axes 6/7 instead, so
// both are read. The left stick mirrors the d-pad.
func DefaultMapping() Mapping {
	return Mapping{
		Buttons: map[Button]int{
			ButtonActivate: 0,
			ButtonBack:     1,
			ButtonMenu:     7,
			ButtonUp:       12,
			ButtonDown:     13,
			ButtonLeft:     14,
			ButtonRight:    15,
		},
		DPadXAxis:  6,
		DPadYAxis:  7,
		StickXAxis: 0,
		StickYAxis: 1,
		Deadzone:   10000,
	}
}

// Decode converts one raw joystick reading into a button set.
func (m Mapping) Decode(state joystick.State) Buttons {
	var buttons Buttons
	for btn, bit := range m.Buttons {
		if bit < 0 || bit > 31 {
			continue
		}
		if state.Buttons&(1<<uint(bit)) != 0 {
			buttons = buttons.With(btn)
		}
	}

	buttons |= m.axisButtons(state.AxisData, m.DPadXAxis, m.DPadYAxis)
	buttons |= m.axisButtons(state.AxisData, m.StickXAxis, m.StickYAxis)
	return buttons
}

func (m Mapping) axisButtons(axes []int, xAxis, yAxis int) Buttons {
	var buttons Buttons
	if v, ok := axisValue(axes, yAxis); ok {
		if v < -m.Deadzone {
			buttons = buttons.With(ButtonUp)
		} else if v > m.Deadzone {
			buttons = buttons.With(ButtonDown)
		}
	}
	if v, ok := axisValue(axes, xAxis); ok {
		if v < -m.Deadzone {
			buttons = buttons.With(ButtonLeft)
		} else if v > m.Deadzone {
			buttons = buttons.With(ButtonRight)
		}
	}
	return buttons
}

func axisValue(axes []int, idx int) (int, bool) {
	if idx < 0 || idx >= len(axes) {
		return 0, false
	}
	return axes[idx], true
}
