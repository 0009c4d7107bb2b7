package style

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
)

// TruncateStart truncates a string from the start, keeping the end portion.
// Returns the truncated string and whether truncation occurred.
// Used for paths where the last element is most relevant.
func TruncateStart(s string, maxLen int) (string, bool) {
	if len(s) <= maxLen {
		return s, false
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:], true
	}
	return "..." + s[len(s)-maxLen+3:], true
}

// TruncateToWidth truncates a string to fit within a given pixel width using actual font measurement.
// Returns the truncated string (with "..." suffix if truncated) and whether truncation occurred.
func TruncateToWidth(s string, face text.Face, maxWidth float64) (string, bool) {
	if s == "" {
		return s, false
	}
	w, _ := text.Measure(s, face, 0)
	if w <= maxWidth {
		return s, false
	}

	ellipsis := "..."
	ellipsisW, _ := text.Measure(ellipsis, face, 0)
	if ellipsisW > maxWidth {
		return ellipsis, true
	}

	// Binary search for the longest rune prefix that fits with the ellipsis
	lo, hi := 0, utf8.RuneCountInString(s)
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		cw, _ := text.Measure(truncateRunes(s, mid)+ellipsis, face, 0)
		if cw <= maxWidth {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return truncateRunes(s, best) + ellipsis, true
}

// truncateRunes returns the first n runes of s as a string.
func truncateRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			break
		}
		i += size
	}
	return s[:i]
}

// FormatAdded formats the install timestamp of a package relative to now.
// Returns "Unknown" for 0, "Today"/"Yesterday" for recent dates, otherwise
// "Jan 2" within the current year and "Jan 2, 2006" before it.
func FormatAdded(timestamp int64, now time.Time) string {
	if timestamp == 0 {
		return "Unknown"
	}

	t := time.Unix(timestamp, 0).In(now.Location())
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	if t.Year() == yesterday.Year() && t.YearDay() == yesterday.YearDay() {
		return "Yesterday"
	}
	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

// FormatCount renders n with a singular or plural noun.
func FormatCount(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// ErrClipboardUnavailable is returned when the platform clipboard could not be initialized.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// CopyText places s on the system clipboard.
func CopyText(s string) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}
