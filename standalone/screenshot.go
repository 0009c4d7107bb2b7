package standalone

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user-none/padnav/standalone/storage"
)

// ScreenshotManager saves window captures into the screenshot directory
type ScreenshotManager struct {
	pending bool
	now     func() time.Time
}

// NewScreenshotManager creates a new screenshot manager
func NewScreenshotManager() *ScreenshotManager {
	return &ScreenshotManager{now: time.Now}
}

// Request asks for a capture of the next drawn frame
func (m *ScreenshotManager) Request() {
	m.pending = true
}

// Pending reports whether a capture was requested and clears the request
func (m *ScreenshotManager) Pending() bool {
	p := m.pending
	m.pending = false
	return p
}

// Save writes img as "<page>-<unix time>.png" and returns the path
func (m *ScreenshotManager) Save(img image.Image, page string) (string, error) {
	dir, err := storage.GetScreenshotDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	name := fmt.Sprintf("%s-%d.png", strings.ToLower(page), m.now().Unix())
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return path, nil
}
