package gamepad

import "testing"

func TestPressedAllPairs(t *testing.T) {
	all := Buttons(1<<buttonCount - 1)
	for cur := Buttons(0); cur <= all; cur++ {
		for prev := Buttons(0); prev <= all; prev++ {
			current := NewSnapshot(cur, 2)
			previous := NewSnapshot(prev, 1)
			edges := RisingEdges(current, previous)
			for _, b := range Priority() {
				want := cur.Has(b) && !prev.Has(b)
				if got := Pressed(b, current, previous); got != want {
					t.Fatalf("Pressed(%s, %s, %s) = %v, want %v", b, cur, prev, got, want)
				}
				if edges.Has(b) != want {
					t.Fatalf("RisingEdges(%s, %s) has %s = %v, want %v", cur, prev, b, edges.Has(b), want)
				}
			}
		}
	}
}

func TestHeldButtonDoesNotRefire(t *testing.T) {
	held := NewButtons(ButtonUp, ButtonActivate)
	first := NewSnapshot(held, 1)
	second := NewSnapshot(held, 2)

	if edges := RisingEdges(second, first); !edges.Empty() {
		t.Errorf("held buttons produced edges %s", edges)
	}
	if edges := RisingEdges(first, first); !edges.Empty() {
		t.Errorf("identical snapshots produced edges %s", edges)
	}
}

func TestReleaseIsNotAnEdge(t *testing.T) {
	pressed := NewSnapshot(NewButtons(ButtonBack), 1)
	released := NewSnapshot(0, 2)

	if Pressed(ButtonBack, released, pressed) {
		t.Error("release should not count as a press")
	}
}

func TestSnapshotAccessors(t *testing.T) {
	s := NewSnapshot(NewButtons(ButtonMenu), 42)
	if s.Packet() != 42 {
		t.Errorf("Packet() = %d, want 42", s.Packet())
	}
	if !s.IsPressed(ButtonMenu) {
		t.Error("Menu should be pressed")
	}
	if s.IsPressed(ButtonUp) {
		t.Error("Up should not be pressed")
	}
	if got := s.String(); got != "packet 42 [Menu]" {
		t.Errorf("String() = %q", got)
	}
}
