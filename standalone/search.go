package standalone

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/user-none/padnav/standalone/style"
)

// SearchOverlay displays the package filter at the bottom-left of the screen
type SearchOverlay struct {
	keys      keyboard
	text      string
	active    bool              // Currently capturing keyboard input
	onChanged func(text string) // Callback when text changes

	bg *ebiten.Image
}

// NewSearchOverlay creates a new search overlay with the given change callback
func NewSearchOverlay(onChanged func(text string)) *SearchOverlay {
	return &SearchOverlay{
		keys:      ebitenKeyboard{},
		onChanged: onChanged,
	}
}

// Text returns the current filter
func (s *SearchOverlay) Text() string {
	return s.text
}

// IsVisible returns true if the search has text (overlay should be shown)
func (s *SearchOverlay) IsVisible() bool {
	return s.text != ""
}

// IsActive returns true if the overlay is capturing keyboard input
func (s *SearchOverlay) IsActive() bool {
	return s.active
}

// Activate starts capturing keyboard input
func (s *SearchOverlay) Activate() {
	s.active = true
}

// Clear removes all search text and deactivates
func (s *SearchOverlay) Clear() {
	changed := s.text != ""
	s.text = ""
	s.active = false
	if changed && s.onChanged != nil {
		s.onChanged(s.text)
	}
}

// HandleInput processes keyboard input when active.
// Returns true if input was handled and should not reach navigation.
func (s *SearchOverlay) HandleInput() bool {
	if !s.active {
		return false
	}

	// Arrow keys and Tab leave the filter in place and hand back navigation
	for _, k := range []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyTab, ebiten.KeyEnter} {
		if s.keys.Pressed(k) {
			s.active = false
			return false
		}
	}

	if s.keys.JustPressed(ebiten.KeyEscape) {
		s.Clear()
		return true
	}

	if s.keys.JustPressed(ebiten.KeyBackspace) && len(s.text) > 0 {
		r := []rune(s.text)
		s.text = string(r[:len(r)-1])
		s.notify()
		return true
	}

	chars := s.keys.Chars()
	if len(chars) > 0 {
		for _, c := range chars {
			// Don't add the '/' that activated search
			if c != '/' || s.text != "" {
				s.text += string(c)
			}
		}
		s.notify()
	}
	return true
}

func (s *SearchOverlay) notify() {
	if s.onChanged != nil {
		s.onChanged(s.text)
	}
}

// Draw renders the search overlay at bottom-left
func (s *SearchOverlay) Draw(screen *ebiten.Image) {
	if !s.IsVisible() && !s.active {
		return
	}

	bounds := screen.Bounds()
	displayText := "Filter: " + s.text
	if s.active {
		displayText += "_"
	}
	textWidth, textHeight := text.Measure(displayText, *style.FontFace(), 0)

	padding := style.SmallSpacing
	bgWidth := int(textWidth) + padding*2
	bgHeight := int(textHeight) + padding*2

	// Bottom-left, mirroring the notification at bottom-right
	margin := style.DefaultPadding
	bgX := margin
	bgY := bounds.Dy() - bgHeight - margin

	if s.bg == nil || s.bg.Bounds().Dx() < bgWidth || s.bg.Bounds().Dy() < bgHeight {
		s.bg = ebiten.NewImage(bgWidth, bgHeight)
	}
	s.bg.Clear()
	bg := style.Surface
	bg.A = 153
	s.bg.Fill(bg)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(s.bg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, displayText, *style.FontFace(), textOpts)
}
