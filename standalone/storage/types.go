package storage

import "github.com/user-none/padnav/gamepad"

// Config represents the application configuration stored in config.json
type Config struct {
	Version             int              `json:"version"`
	Theme               string           `json:"theme"`    // Theme name: "Default", "Dark", "Light", "Retro"
	FontSize            int              `json:"fontSize"` // 10-32, default 14
	ShowDevNotice       bool             `json:"showDevNotice"`
	HorizontalScrolling bool             `json:"horizontalScrolling"`
	DebugLogging        bool             `json:"debugLogging"`
	Controller          ControllerConfig `json:"controller"`
	Window              WindowConfig     `json:"window"`
}

// ControllerConfig selects and tunes the gamepad backend.
type ControllerConfig struct {
	Backend            string         `json:"backend"`                      // "auto", "ebiten", "joystick"
	PollIntervalMs     int            `json:"pollIntervalMs"`               // 4-100, default 16
	Slots              int            `json:"slots"`                        // joystick slots tried, 1-16
	AxisDeadzone       int            `json:"axisDeadzone"`                 // 0-32767
	DisableAnalogStick bool           `json:"disableAnalogStick,omitempty"` // stop the left stick mirroring the d-pad
	ButtonMap          map[string]int `json:"buttonMap,omitempty"`          // button name -> raw joystick button bit
}

// WindowConfig contains window position and size
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	X          *int `json:"x,omitempty"` // nil = OS decides position
	Y          *int `json:"y,omitempty"`
	Fullscreen bool `json:"fullscreen"`
}

// Library is the list of installed packages stored in packages.json
type Library struct {
	Version         int                      `json:"version"`
	Packages        map[string]*PackageEntry `json:"packages"`                  // package id -> entry
	ScanDirectories []string                 `json:"scanDirectories,omitempty"` // searched for package manifests
}

// PackageEntry is one installed package
type PackageEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher,omitempty"`
	Version   string `json:"version,omitempty"`
	Patched   bool   `json:"patched"`
	Added     int64  `json:"added"`         // Unix timestamp when registered
	Dir       string `json:"dir,omitempty"` // folder holding the manifest
}

// FontSizePresets lists the available font size options
var FontSizePresets = []int{10, 12, 14, 16, 18, 20, 24, 28, 32}

// ValidFontSize returns the nearest valid preset font size.
func ValidFontSize(size int) int {
	best := FontSizePresets[0]
	for _, p := range FontSizePresets {
		if abs(p-size) < abs(best-size) {
			best = p
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:       1,
		Theme:         "Default",
		FontSize:      14,
		ShowDevNotice: true,
		Controller: ControllerConfig{
			Backend:        gamepad.BackendAuto,
			PollIntervalMs: 16,
			Slots:          gamepad.DefaultSlots,
			AxisDeadzone:   gamepad.DefaultMapping().Deadzone,
		},
		Window: WindowConfig{
			Width:  900,
			Height: 650,
		},
	}
}

// DefaultLibrary returns a new Library with default values
func DefaultLibrary() *Library {
	return &Library{
		Version:  1,
		Packages: make(map[string]*PackageEntry),
	}
}

// Mapping builds the raw joystick mapping from the defaults and the user's
// overrides. Unknown button names are ignored.
func (c ControllerConfig) Mapping() gamepad.Mapping {
	m := gamepad.DefaultMapping()
	m.Deadzone = c.AxisDeadzone
	for name, bit := range c.ButtonMap {
		for _, b := range gamepad.Priority() {
			if b.String() == name {
				m.Buttons[b] = bit
			}
		}
	}
	return m
}

// GamepadOptions converts the controller settings for gamepad.Open.
func (c ControllerConfig) GamepadOptions() gamepad.Options {
	return gamepad.Options{
		Slots:    c.Slots,
		Mapping:  c.Mapping(),
		UseStick: !c.DisableAnalogStick,
	}
}
