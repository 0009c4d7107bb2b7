package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/user-none/padnav/gamepad"
)

// presenceKeys are the dotted config paths whose absence from the file means
// "use the default". Booleans that default to false are not listed.
var presenceKeys = []string{
	"version",
	"theme",
	"fontSize",
	"showDevNotice",
	"controller.backend",
	"controller.pollIntervalMs",
	"controller.slots",
	"controller.axisDeadzone",
	"window.width",
	"window.height",
}

// detectPresentKeys returns the set of presenceKeys found in jsonBytes.
// Nested keys are matched one level deep (e.g. "window.width").
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	nested := make(map[string]map[string]json.RawMessage)
	for _, key := range presenceKeys {
		section, field, isNested := strings.Cut(key, ".")
		if !isNested {
			if _, ok := raw[key]; ok {
				present[key] = true
			}
			continue
		}

		obj, parsed := nested[section]
		if !parsed {
			if sectionRaw, ok := raw[section]; ok {
				if json.Unmarshal(sectionRaw, &obj) != nil {
					obj = nil
				}
			}
			nested[section] = obj
		}
		if _, ok := obj[field]; ok {
			present[key] = true
		}
	}
	return present
}

// ApplyMissingDefaults sets default values for config fields that are absent
// from the JSON file, preserving intentional zero values.
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	defaults := DefaultConfig()

	if !presentKeys["version"] {
		config.Version = defaults.Version
	}
	if !presentKeys["theme"] {
		config.Theme = defaults.Theme
	}
	if !presentKeys["fontSize"] {
		config.FontSize = defaults.FontSize
	}
	if !presentKeys["showDevNotice"] {
		config.ShowDevNotice = defaults.ShowDevNotice
	}
	if !presentKeys["controller.backend"] {
		config.Controller.Backend = defaults.Controller.Backend
	}
	if !presentKeys["controller.pollIntervalMs"] {
		config.Controller.PollIntervalMs = defaults.Controller.PollIntervalMs
	}
	if !presentKeys["controller.slots"] {
		config.Controller.Slots = defaults.Controller.Slots
	}
	if !presentKeys["controller.axisDeadzone"] {
		config.Controller.AxisDeadzone = defaults.Controller.AxisDeadzone
	}
	if !presentKeys["window.width"] {
		config.Window.Width = defaults.Window.Width
	}
	if !presentKeys["window.height"] {
		config.Window.Height = defaults.Window.Height
	}
}

// configRule checks one field. describe is only called for invalid values;
// reset copies the default into config.
type configRule struct {
	valid    func(c *Config) bool
	describe func(c *Config) string
	reset    func(c, defaults *Config)
}

func configRules(validThemes []string) []configRule {
	backends := gamepad.BackendNames()

	return []configRule{
		{
			valid:    func(c *Config) bool { return c.Version == 1 },
			describe: func(c *Config) string { return fmt.Sprintf("version: %d (valid: 1)", c.Version) },
			reset:    func(c, d *Config) { c.Version = d.Version },
		},
		{
			valid: func(c *Config) bool { return slices.Contains(validThemes, c.Theme) },
			describe: func(c *Config) string {
				return fmt.Sprintf("theme: %q (valid: %v)", c.Theme, validThemes)
			},
			reset: func(c, d *Config) { c.Theme = d.Theme },
		},
		{
			valid: func(c *Config) bool { return slices.Contains(FontSizePresets, c.FontSize) },
			describe: func(c *Config) string {
				return fmt.Sprintf("fontSize: %d (valid: %v)", c.FontSize, FontSizePresets)
			},
			reset: func(c, d *Config) { c.FontSize = d.FontSize },
		},
		{
			valid: func(c *Config) bool { return slices.Contains(backends, c.Controller.Backend) },
			describe: func(c *Config) string {
				return fmt.Sprintf("controller.backend: %q (valid: %v)", c.Controller.Backend, backends)
			},
			reset: func(c, d *Config) { c.Controller.Backend = d.Controller.Backend },
		},
		{
			valid: func(c *Config) bool {
				return c.Controller.PollIntervalMs >= 4 && c.Controller.PollIntervalMs <= 100
			},
			describe: func(c *Config) string {
				return fmt.Sprintf("controller.pollIntervalMs: %d (valid: 4-100)", c.Controller.PollIntervalMs)
			},
			reset: func(c, d *Config) { c.Controller.PollIntervalMs = d.Controller.PollIntervalMs },
		},
		{
			valid: func(c *Config) bool { return c.Controller.Slots >= 1 && c.Controller.Slots <= 16 },
			describe: func(c *Config) string {
				return fmt.Sprintf("controller.slots: %d (valid: 1-16)", c.Controller.Slots)
			},
			reset: func(c, d *Config) { c.Controller.Slots = d.Controller.Slots },
		},
		{
			valid: func(c *Config) bool {
				return c.Controller.AxisDeadzone >= 0 && c.Controller.AxisDeadzone <= 32767
			},
			describe: func(c *Config) string {
				return fmt.Sprintf("controller.axisDeadzone: %d (valid: 0-32767)", c.Controller.AxisDeadzone)
			},
			reset: func(c, d *Config) { c.Controller.AxisDeadzone = d.Controller.AxisDeadzone },
		},
		{
			valid: func(c *Config) bool { return invalidButtonMapEntry(c.Controller.ButtonMap) == "" },
			describe: func(c *Config) string {
				return fmt.Sprintf("controller.buttonMap: %s (valid: Up, Down, Left, Right, Activate, Back, Menu -> 0-31)",
					invalidButtonMapEntry(c.Controller.ButtonMap))
			},
			reset: func(c, d *Config) { c.Controller.ButtonMap = nil },
		},
		{
			valid: func(c *Config) bool { return c.Window.Width >= 900 },
			describe: func(c *Config) string {
				return fmt.Sprintf("window.width: %d (valid: >= 900)", c.Window.Width)
			},
			reset: func(c, d *Config) { c.Window.Width = d.Window.Width },
		},
		{
			valid: func(c *Config) bool { return c.Window.Height >= 650 },
			describe: func(c *Config) string {
				return fmt.Sprintf("window.height: %d (valid: >= 650)", c.Window.Height)
			},
			reset: func(c, d *Config) { c.Window.Height = d.Window.Height },
		},
	}
}

// invalidButtonMapEntry returns the first bad "name=bit" entry, or "".
func invalidButtonMapEntry(m map[string]int) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		bit := m[name]
		known := false
		for _, b := range gamepad.Priority() {
			if b.String() == name {
				known = true
				break
			}
		}
		if !known || (bit < 0 && bit != gamepad.Unmapped) || bit > 31 {
			return fmt.Sprintf("%s=%d", name, bit)
		}
	}
	return ""
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
// validThemes should be the list of known theme names.
func ValidateConfig(config *Config, validThemes []string) []string {
	var errors []string
	for _, rule := range configRules(validThemes) {
		if !rule.valid(config) {
			errors = append(errors, rule.describe(config))
		}
	}
	return errors
}

// CorrectConfig resets any invalid fields to their defaults from DefaultConfig().
// Valid fields are preserved. validThemes should be the list of known theme names.
func CorrectConfig(config *Config, validThemes []string) *Config {
	defaults := DefaultConfig()
	for _, rule := range configRules(validThemes) {
		if !rule.valid(config) {
			rule.reset(config, defaults)
		}
	}
	return config
}
