package screens

import "testing"

func TestDetailLines(t *testing.T) {
	tests := []struct {
		name    string
		details []string
		want    int
		last    string
	}{
		{"none", nil, 0, ""},
		{"under cap", []string{"a", "b"}, 2, "b"},
		{"at cap", []string{"a", "b", "c", "d", "e"}, 5, "e"},
		{"over cap", []string{"a", "b", "c", "d", "e", "f", "g"}, 6, "+2 more"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := detailLines(tc.details)
			if len(got) != tc.want {
				t.Fatalf("len = %d, want %d", len(got), tc.want)
			}
			if tc.want > 0 && got[len(got)-1] != tc.last {
				t.Errorf("last = %q, want %q", got[len(got)-1], tc.last)
			}
		})
	}
}

func TestErrorScreenModes(t *testing.T) {
	repaired := false
	cb := newFakeCallback()
	s := NewErrorScreen(cb, "config.json", "/data/config.json", func() { repaired = true })
	if s.Mode() != ErrorModeCorrupted {
		t.Errorf("Mode = %v, want corrupted", s.Mode())
	}
	if s.Build() == nil {
		t.Fatal("Build returned nil")
	}

	s.SetValidationError("config.json", "/data/config.json", []string{"bad theme"}, func() { repaired = true })
	if s.Mode() != ErrorModeInvalid {
		t.Errorf("Mode = %v, want invalid", s.Mode())
	}
	s.onRepair()
	if !repaired {
		t.Error("repair callback should run")
	}
}
