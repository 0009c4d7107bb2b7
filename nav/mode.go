package nav

// Mode is the window's interaction mode.
type Mode int

const (
	// ModeDesktop is pointer and keyboard interaction.
	ModeDesktop Mode = iota
	// ModeController is gamepad interaction.
	ModeController
)

func (m Mode) String() string {
	switch m {
	case ModeDesktop:
		return "Desktop"
	case ModeController:
		return "Controller"
	default:
		return "Unknown"
	}
}

// ModeMachine holds the current mode. It starts in ModeDesktop and only
// changes through EnterController and EnterDesktop. Listeners run after the
// mode has changed, in registration order.
type ModeMachine struct {
	mode      Mode
	listeners []func(from, to Mode)
	changes   uint64
}

// NewModeMachine creates a machine in ModeDesktop.
func NewModeMachine() *ModeMachine {
	return &ModeMachine{mode: ModeDesktop}
}

// Mode returns the current mode
func (m *ModeMachine) Mode() Mode {
	return m.mode
}

// Changes returns how many transitions have happened.
func (m *ModeMachine) Changes() uint64 {
	return m.changes
}

// OnChange registers fn to run after every transition.
func (m *ModeMachine) OnChange(fn func(from, to Mode)) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// EnterController switches to ModeController. It reports false when already
// there.
func (m *ModeMachine) EnterController() bool {
	return m.transition(ModeController)
}

// EnterDesktop switches to ModeDesktop. It reports false when already there.
func (m *ModeMachine) EnterDesktop() bool {
	return m.transition(ModeDesktop)
}

func (m *ModeMachine) transition(to Mode) bool {
	if m.mode == to {
		return false
	}
	from := m.mode
	m.mode = to
	m.changes++
	for _, fn := range m.listeners {
		fn(from, to)
	}
	return true
}
