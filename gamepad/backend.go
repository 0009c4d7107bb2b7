package gamepad

import (
	"fmt"
	"runtime"
	"strings"
)

// Backend names accepted by Open
const (
	BackendAuto     = "auto"
	BackendEbiten   = "ebiten"
	BackendJoystick = "joystick"
)

// Options configures the backend created by Open.
type Options struct {
	Slots    int     // joystick slots to try
	Mapping  Mapping // raw joystick decoding
	UseStick bool    // left stick mirrors the d-pad (ebiten backend)
}

type backend struct {
	name      string
	available func(goos string) bool
	create    func(opts Options) Source
}

// backends is in preference order for BackendAuto.
var backends = []backend{
	{
		name: BackendEbiten,
		available: func(goos string) bool {
			switch goos {
			case "windows", "darwin", "linux", "freebsd", "js":
				return true
			}
			return false
		},
		create: func(opts Options) Source { return NewEbitenSource(opts.UseStick) },
	},
	{
		name: BackendJoystick,
		available: func(goos string) bool {
			switch goos {
			case "windows", "darwin", "linux":
				return true
			}
			return false
		},
		create: func(opts Options) Source { return NewJoystickSource(opts.Slots, opts.Mapping) },
	},
}

// Open creates the named backend. BackendAuto (or "") picks the first backend
// the running platform supports.
func Open(name string, opts Options) (Source, error) {
	return openFor(runtime.GOOS, name, opts)
}

func openFor(goos, name string, opts Options) (Source, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = BackendAuto
	}

	for _, b := range backends {
		if name != BackendAuto && name != b.name {
			continue
		}
		if !b.available(goos) {
			if name == b.name {
				return nil, fmt.Errorf("%w: %s is not supported on %s", ErrNoBackend, name, goos)
			}
			continue
		}
		return b.create(opts), nil
	}

	if name == BackendAuto {
		return nil, fmt.Errorf("%w: nothing supported on %s", ErrNoBackend, goos)
	}
	return nil, fmt.Errorf("%w: unknown backend %q", ErrNoBackend, name)
}

// BackendNames lists the accepted backend names.
func BackendNames() []string {
	names := []string{BackendAuto}
	for _, b := range backends {
		names = append(names, b.name)
	}
	return names
}
