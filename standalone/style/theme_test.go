package style

import "testing"

func TestGetThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			if got := GetThemeByName(name).Name; got != name {
				t.Errorf("GetThemeByName(%q).Name = %q", name, got)
			}
		})
	}

	t.Run("unknown returns Default", func(t *testing.T) {
		if got := GetThemeByName("Nonexistent").Name; got != "Default" {
			t.Errorf("GetThemeByName(\"Nonexistent\").Name = %q, want \"Default\"", got)
		}
	})
}

func TestNextThemeName(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"Default", "Dark"},
		{"Retro", "High Contrast"},
		{"High Contrast", "Default"},
		{"Nonexistent", "Default"},
	}
	for _, tc := range tests {
		if got := NextThemeName(tc.current); got != tc.want {
			t.Errorf("NextThemeName(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestApplyTheme(t *testing.T) {
	defer ApplyTheme(ThemeDefault)

	ApplyThemeByName("Light")
	if Background != ThemeLight.Background || Focus != ThemeLight.Focus {
		t.Error("colors were not updated from the Light theme")
	}
	if CurrentThemeName != "Light" {
		t.Errorf("CurrentThemeName = %q, want \"Light\"", CurrentThemeName)
	}
}

func TestAvailableThemesNoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, theme := range AvailableThemes {
		if seen[theme.Name] {
			t.Errorf("duplicate theme name %q", theme.Name)
		}
		seen[theme.Name] = true
	}
}

func TestThemeColorsOpaque(t *testing.T) {
	for _, theme := range AvailableThemes {
		for i, c := range []struct{ A uint8 }{
			{theme.Background.A}, {theme.Surface.A}, {theme.Primary.A}, {theme.PrimaryHover.A},
			{theme.Focus.A}, {theme.Text.A}, {theme.TextSecondary.A}, {theme.Accent.A}, {theme.Border.A},
		} {
			if c.A != 0xff {
				t.Errorf("%s color %d has alpha %#x", theme.Name, i, c.A)
			}
		}
	}
}

func TestSetDPIScale(t *testing.T) {
	defer SetDPIScale(1.0)

	SetDPIScale(2.0)
	if DefaultPadding != baseDefaultPadding*2 {
		t.Errorf("DefaultPadding = %d, want %d", DefaultPadding, baseDefaultPadding*2)
	}
	if PaneWidth != basePaneWidth*2 {
		t.Errorf("PaneWidth = %d, want %d", PaneWidth, basePaneWidth*2)
	}

	SetDPIScale(0.5)
	if DPIScale() != 1.0 {
		t.Errorf("DPIScale() = %v, want clamp to 1.0", DPIScale())
	}
}

func TestApplyFontSize(t *testing.T) {
	defer ApplyFontSize(14)

	ApplyFontSize(28)
	if FontScale() != 2.0 {
		t.Errorf("FontScale() = %v, want 2", FontScale())
	}
	if RowHeight != baseRowHeight*2 {
		t.Errorf("RowHeight = %d, want %d", RowHeight, baseRowHeight*2)
	}
}
