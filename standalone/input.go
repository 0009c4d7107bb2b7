package standalone

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyActions are the window-level keyboard commands seen in one frame
type KeyActions struct {
	Back       bool // Escape
	Fullscreen bool // F11
	TogglePane bool // Menu key
	Search     bool // Slash
	Screenshot bool // F12
}

// keyboard reports key state and typed text for this frame
type keyboard interface {
	JustPressed(key ebiten.Key) bool
	Pressed(key ebiten.Key) bool
	Chars() []rune
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

func (ebitenKeyboard) Pressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (ebitenKeyboard) Chars() []rune {
	return ebiten.AppendInputChars(nil)
}

// InputManager handles desktop keys. Gamepad input belongs to the navigation
// engine; Tab focus cycling and Enter/Space activation are handled by
// ebitenui.
type InputManager struct {
	keys keyboard
}

// NewInputManager creates a new input manager
func NewInputManager() *InputManager {
	return &InputManager{keys: ebitenKeyboard{}}
}

// Update polls the keyboard. Should be called once per frame.
func (im *InputManager) Update() KeyActions {
	return KeyActions{
		Back:       im.keys.JustPressed(ebiten.KeyEscape),
		Fullscreen: im.keys.JustPressed(ebiten.KeyF11),
		TogglePane: im.keys.JustPressed(ebiten.KeyContextMenu),
		Search:     im.keys.JustPressed(ebiten.KeySlash),
		Screenshot: im.keys.JustPressed(ebiten.KeyF12),
	}
}
