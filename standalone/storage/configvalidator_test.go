package storage

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/user-none/padnav/gamepad"
)

// validTestThemes is the list of theme names used in tests
var validTestThemes = []string{"Default", "Dark", "Light", "Retro"}

func TestDetectPresentKeys(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected map[string]bool
	}{
		{
			name: "all keys present",
			json: `{
				"version": 1,
				"theme": "Default",
				"fontSize": 14,
				"showDevNotice": false,
				"controller": {"backend": "auto", "pollIntervalMs": 16, "slots": 4, "axisDeadzone": 10000},
				"window": {"width": 900, "height": 650}
			}`,
			expected: map[string]bool{
				"version": true, "theme": true, "fontSize": true, "showDevNotice": true,
				"controller.backend": true, "controller.pollIntervalMs": true,
				"controller.slots": true, "controller.axisDeadzone": true,
				"window.width": true, "window.height": true,
			},
		},
		{
			name:     "empty object",
			json:     `{}`,
			expected: map[string]bool{},
		},
		{
			name: "partial controller section",
			json: `{
				"theme": "Dark",
				"controller": {"backend": "joystick"}
			}`,
			expected: map[string]bool{
				"theme": true, "controller.backend": true,
			},
		},
		{
			name: "zero values are still present",
			json: `{
				"fontSize": 0,
				"controller": {"axisDeadzone": 0},
				"window": {"width": 0, "height": 0}
			}`,
			expected: map[string]bool{
				"fontSize": true, "controller.axisDeadzone": true,
				"window.width": true, "window.height": true,
			},
		},
		{
			name:     "invalid JSON returns empty",
			json:     `{not valid json`,
			expected: map[string]bool{},
		},
		{
			name:     "section with wrong type",
			json:     `{"controller": "joystick", "window": {}}`,
			expected: map[string]bool{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := detectPresentKeys([]byte(tc.json))
			for k := range tc.expected {
				if !got[k] {
					t.Errorf("expected key %q to be present", k)
				}
			}
			for k := range got {
				if !tc.expected[k] {
					t.Errorf("unexpected key %q detected", k)
				}
			}
		})
	}
}

func TestApplyMissingDefaults(t *testing.T) {
	t.Run("all missing gets all defaults", func(t *testing.T) {
		config := &Config{}
		ApplyMissingDefaults(config, map[string]bool{})

		defaults := DefaultConfig()
		if config.Version != defaults.Version {
			t.Errorf("version: got %d, want %d", config.Version, defaults.Version)
		}
		if config.Theme != defaults.Theme {
			t.Errorf("theme: got %q, want %q", config.Theme, defaults.Theme)
		}
		if config.FontSize != defaults.FontSize {
			t.Errorf("fontSize: got %d, want %d", config.FontSize, defaults.FontSize)
		}
		if !config.ShowDevNotice {
			t.Error("showDevNotice: got false, want true")
		}
		if config.Controller.Backend != defaults.Controller.Backend ||
			config.Controller.PollIntervalMs != defaults.Controller.PollIntervalMs ||
			config.Controller.Slots != defaults.Controller.Slots ||
			config.Controller.AxisDeadzone != defaults.Controller.AxisDeadzone {
			t.Errorf("controller: got %+v, want %+v", config.Controller, defaults.Controller)
		}
		if config.Window.Width != defaults.Window.Width || config.Window.Height != defaults.Window.Height {
			t.Errorf("window: got %dx%d, want %dx%d",
				config.Window.Width, config.Window.Height, defaults.Window.Width, defaults.Window.Height)
		}
	})

	t.Run("present values are kept", func(t *testing.T) {
		jsonBytes := []byte(`{"showDevNotice": false, "controller": {"axisDeadzone": 0, "backend": "joystick"}}`)
		config := &Config{}
		if err := json.Unmarshal(jsonBytes, config); err != nil {
			t.Fatal(err)
		}
		ApplyMissingDefaults(config, detectPresentKeys(jsonBytes))

		if config.ShowDevNotice {
			t.Error("showDevNotice should stay false")
		}
		if config.Controller.AxisDeadzone != 0 {
			t.Errorf("axisDeadzone: got %d, want 0", config.Controller.AxisDeadzone)
		}
		if config.Controller.Backend != gamepad.BackendJoystick {
			t.Errorf("backend: got %q", config.Controller.Backend)
		}
		if config.Controller.PollIntervalMs != 16 {
			t.Errorf("pollIntervalMs: got %d, want default 16", config.Controller.PollIntervalMs)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantKey string
	}{
		{"default is valid", func(c *Config) {}, ""},
		{"bad version", func(c *Config) { c.Version = 2 }, "version"},
		{"unknown theme", func(c *Config) { c.Theme = "Neon" }, "theme"},
		{"font not a preset", func(c *Config) { c.FontSize = 15 }, "fontSize"},
		{"unknown backend", func(c *Config) { c.Controller.Backend = "sdl" }, "controller.backend"},
		{"poll too fast", func(c *Config) { c.Controller.PollIntervalMs = 1 }, "controller.pollIntervalMs"},
		{"poll too slow", func(c *Config) { c.Controller.PollIntervalMs = 250 }, "controller.pollIntervalMs"},
		{"no slots", func(c *Config) { c.Controller.Slots = 0 }, "controller.slots"},
		{"too many slots", func(c *Config) { c.Controller.Slots = 17 }, "controller.slots"},
		{"negative deadzone", func(c *Config) { c.Controller.AxisDeadzone = -1 }, "controller.axisDeadzone"},
		{"deadzone too large", func(c *Config) { c.Controller.AxisDeadzone = 40000 }, "controller.axisDeadzone"},
		{"unknown button name", func(c *Config) { c.Controller.ButtonMap = map[string]int{"Jump": 3} }, "controller.buttonMap"},
		{"button bit out of range", func(c *Config) { c.Controller.ButtonMap = map[string]int{"Menu": 40} }, "controller.buttonMap"},
		{"window too narrow", func(c *Config) { c.Window.Width = 640 }, "window.width"},
		{"window too short", func(c *Config) { c.Window.Height = 480 }, "window.height"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.modify(config)
			errors := ValidateConfig(config, validTestThemes)

			if tc.wantKey == "" {
				if len(errors) != 0 {
					t.Errorf("expected no errors, got %v", errors)
				}
				return
			}
			if len(errors) != 1 {
				t.Fatalf("expected 1 error, got %v", errors)
			}
			if !strings.HasPrefix(errors[0], tc.wantKey+":") {
				t.Errorf("error %q does not name %q", errors[0], tc.wantKey)
			}
		})
	}
}

func TestValidateConfigButtonMapAcceptsUnmapped(t *testing.T) {
	config := DefaultConfig()
	config.Controller.ButtonMap = map[string]int{"Menu": gamepad.Unmapped, "Back": 2}
	if errors := ValidateConfig(config, validTestThemes); len(errors) != 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestCorrectConfig(t *testing.T) {
	config := DefaultConfig()
	config.Theme = "Neon"
	config.FontSize = 13
	config.Controller.Backend = "sdl"
	config.Controller.PollIntervalMs = 500
	config.Controller.Slots = 2
	config.Controller.ButtonMap = map[string]int{"Jump": 3}
	config.Window.Width = 100
	config.Window.Height = 1080

	CorrectConfig(config, validTestThemes)
	defaults := DefaultConfig()

	if config.Theme != defaults.Theme {
		t.Errorf("theme: got %q, want %q", config.Theme, defaults.Theme)
	}
	if config.FontSize != defaults.FontSize {
		t.Errorf("fontSize: got %d, want %d", config.FontSize, defaults.FontSize)
	}
	if config.Controller.Backend != defaults.Controller.Backend {
		t.Errorf("backend: got %q", config.Controller.Backend)
	}
	if config.Controller.PollIntervalMs != defaults.Controller.PollIntervalMs {
		t.Errorf("pollIntervalMs: got %d", config.Controller.PollIntervalMs)
	}
	if config.Controller.Slots != 2 {
		t.Errorf("valid slots should be kept, got %d", config.Controller.Slots)
	}
	if config.Controller.ButtonMap != nil {
		t.Errorf("buttonMap should be cleared, got %v", config.Controller.ButtonMap)
	}
	if config.Window.Width != defaults.Window.Width {
		t.Errorf("window.width: got %d", config.Window.Width)
	}
	if config.Window.Height != 1080 {
		t.Errorf("valid window.height should be kept, got %d", config.Window.Height)
	}
	if errors := ValidateConfig(config, validTestThemes); len(errors) != 0 {
		t.Errorf("corrected config still invalid: %v", errors)
	}
}

func TestControllerMapping(t *testing.T) {
	c := DefaultConfig().Controller
	c.AxisDeadzone = 2000
	c.ButtonMap = map[string]int{"Menu": 9, "Activate": gamepad.Unmapped, "Jump": 4}

	m := c.Mapping()
	if m.Deadzone != 2000 {
		t.Errorf("deadzone: got %d, want 2000", m.Deadzone)
	}
	if m.Buttons[gamepad.ButtonMenu] != 9 {
		t.Errorf("menu bit: got %d, want 9", m.Buttons[gamepad.ButtonMenu])
	}
	if m.Buttons[gamepad.ButtonActivate] != gamepad.Unmapped {
		t.Errorf("activate bit: got %d, want unmapped", m.Buttons[gamepad.ButtonActivate])
	}
	if m.Buttons[gamepad.ButtonBack] != gamepad.DefaultMapping().Buttons[gamepad.ButtonBack] {
		t.Error("back bit should keep its default")
	}
}

func TestGamepadOptions(t *testing.T) {
	c := DefaultConfig().Controller
	c.Slots = 8
	c.DisableAnalogStick = true

	opts := c.GamepadOptions()
	if opts.Slots != 8 {
		t.Errorf("slots: got %d, want 8", opts.Slots)
	}
	if opts.UseStick {
		t.Error("UseStick should be false when the stick is disabled")
	}
}
