package standalone

import (
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/user-none/padnav/standalone/style"
)

// defaultNotifyDuration is how long ShowDefault keeps a message up
const defaultNotifyDuration = 3 * time.Second

// Notification displays temporary messages in the bottom-right corner
type Notification struct {
	mu        sync.Mutex
	message   string
	startTime time.Time
	duration  time.Duration
	now       func() time.Time

	// Reused between frames
	bg *ebiten.Image
}

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{now: time.Now}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.startTime = n.now()
	n.duration = duration
}

// ShowDefault displays a notification with the default duration
func (n *Notification) ShowDefault(message string) {
	n.Show(message, defaultNotifyDuration)
}

// Current returns the visible message, or "" when nothing is shown.
func (n *Notification) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.message == "" || n.now().Sub(n.startTime) >= n.duration {
		return ""
	}
	return n.message
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
}

// Draw renders the notification
func (n *Notification) Draw(screen *ebiten.Image) {
	message := n.Current()
	if message == "" {
		return
	}

	bounds := screen.Bounds()
	textWidth, textHeight := text.Measure(message, *style.FontFace(), 0)

	padding := style.SmallSpacing
	bgWidth := int(textWidth) + padding*2
	bgHeight := int(textHeight) + padding*2
	margin := style.DefaultPadding
	bgX := bounds.Dx() - bgWidth - margin
	bgY := bounds.Dy() - bgHeight - margin

	if n.bg == nil || n.bg.Bounds().Dx() < bgWidth || n.bg.Bounds().Dy() < bgHeight {
		n.bg = ebiten.NewImage(bgWidth, bgHeight)
	}
	n.bg.Clear()
	bg := style.Surface
	bg.A = 230
	n.bg.Fill(bg)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(n.bg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, message, *style.FontFace(), textOpts)
}
