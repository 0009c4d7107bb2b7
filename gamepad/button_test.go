package gamepad

import "testing"

func TestButtonsFirstUsesPriority(t *testing.T) {
	tests := []struct {
		name string
		set  Buttons
		want Button
	}{
		{"up beats activate", NewButtons(ButtonActivate, ButtonUp), ButtonUp},
		{"down beats left", NewButtons(ButtonLeft, ButtonDown), ButtonDown},
		{"right beats activate", NewButtons(ButtonActivate, ButtonRight), ButtonRight},
		{"activate beats back", NewButtons(ButtonBack, ButtonActivate), ButtonActivate},
		{"back beats menu", NewButtons(ButtonMenu, ButtonBack), ButtonBack},
		{"menu alone", NewButtons(ButtonMenu), ButtonMenu},
		{"everything", NewButtons(Priority()...), ButtonUp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.set.First()
			if !ok {
				t.Fatal("First() returned no button")
			}
			if got != tc.want {
				t.Errorf("First() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestButtonsFirstEmpty(t *testing.T) {
	if _, ok := Buttons(0).First(); ok {
		t.Error("empty set should have no first button")
	}
}

func TestButtonsString(t *testing.T) {
	tests := []struct {
		set  Buttons
		want string
	}{
		{0, "None"},
		{NewButtons(ButtonUp), "Up"},
		{NewButtons(ButtonMenu, ButtonUp, ButtonActivate), "Up|Activate|Menu"},
	}
	for _, tc := range tests {
		if got := tc.set.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestButtonsIgnoreOutOfRange(t *testing.T) {
	set := NewButtons(Button(99))
	if !set.Empty() {
		t.Errorf("out of range button should be ignored, got %s", set)
	}
	if set.Has(Button(99)) {
		t.Error("Has should be false for out of range button")
	}
}

func TestButtonString(t *testing.T) {
	if ButtonActivate.String() != "Activate" {
		t.Errorf("ButtonActivate.String() = %q", ButtonActivate.String())
	}
	if Button(42).String() != "Unknown" {
		t.Errorf("Button(42).String() = %q", Button(42).String())
	}
}

func TestPriorityIsACopy(t *testing.T) {
	order := Priority()
	if len(order) != int(buttonCount) || order[0] != ButtonUp || order[len(order)-1] != ButtonMenu {
		t.Fatalf("Priority() = %v", order)
	}

	order[0] = ButtonMenu
	if got, _ := NewButtons(ButtonUp, ButtonMenu).First(); got != ButtonUp {
		t.Errorf("First() = %s after editing the returned order, want Up", got)
	}
	if Priority()[0] != ButtonUp {
		t.Error("Priority() returned shared storage")
	}
}
