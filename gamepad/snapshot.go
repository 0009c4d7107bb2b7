package gamepad

import "fmt"

// Snapshot is the state of the navigation buttons captured in one poll tick.
// Snapshots are values; a new one is produced for every read.
type Snapshot struct {
	buttons Buttons
	packet  uint32
}

// NewSnapshot creates a snapshot. packet is a monotonically increasing
// sequence number used for diagnostics only.
func NewSnapshot(buttons Buttons, packet uint32) Snapshot {
	return Snapshot{buttons: buttons, packet: packet}
}

// Buttons returns the set of pressed buttons.
func (s Snapshot) Buttons() Buttons {
	return s.buttons
}

// Packet returns the diagnostic sequence number.
func (s Snapshot) Packet() uint32 {
	return s.packet
}

// IsPressed reports whether b was held when the snapshot was taken.
func (s Snapshot) IsPressed(b Button) bool {
	return s.buttons.Has(b)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("packet %d [%s]", s.packet, s.buttons)
}

// Pressed reports whether b transitioned from released to pressed between
// previous and current.
func Pressed(b Button, current, previous Snapshot) bool {
	return current.IsPressed(b) && !previous.IsPressed(b)
}

// RisingEdges returns every button that is pressed in current and released
// in previous. Two identical snapshots always yield an empty set.
func RisingEdges(current, previous Snapshot) Buttons {
	return current.buttons &^ previous.buttons
}
