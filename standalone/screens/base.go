package screens

import (
	"github.com/ebitenui/ebitenui/widget"
)

// BaseScreen provides common scroll and focus management for pages.
// Embed this in page structs to get scroll position preservation
// and focus restoration after rebuilds.
type BaseScreen struct {
	scrollContainer *widget.ScrollContainer
	vSlider         *widget.Slider
	scrollTop       float64

	// Focusable widgets by key, for restoring focus after rebuild
	focusWidgets map[string]widget.Focuser

	// Key of widget to restore focus to after rebuild
	pendingFocus string
}

// InitBase initializes the base screen state.
// Call this in the page's constructor.
func (b *BaseScreen) InitBase() {
	b.focusWidgets = make(map[string]widget.Focuser)
}

// SetScrollWidgets stores references to the scroll widgets for position preservation.
// Call this during Build() after creating the scroll container.
func (b *BaseScreen) SetScrollWidgets(scrollContainer *widget.ScrollContainer, vSlider *widget.Slider) {
	b.scrollContainer = scrollContainer
	b.vSlider = vSlider
}

// SaveScrollPosition saves the current scroll position.
// Call this before rebuilding the page.
func (b *BaseScreen) SaveScrollPosition() {
	if b.scrollContainer != nil {
		b.scrollTop = b.scrollContainer.ScrollTop
	}
}

// RestoreScrollPosition restores the saved scroll position.
// Call this after rebuilding, once the scroll container is set.
func (b *BaseScreen) RestoreScrollPosition() {
	if b.scrollContainer != nil && b.scrollTop > 0 {
		b.scrollContainer.ScrollTop = b.scrollTop
		if b.vSlider != nil {
			b.vSlider.Current = int(b.scrollTop * 1000)
		}
	}
}

// RegisterFocus registers a widget for focus restoration.
// Call this during Build() for each focusable widget.
func (b *BaseScreen) RegisterFocus(key string, w widget.Focuser) {
	if b.focusWidgets == nil {
		b.focusWidgets = make(map[string]widget.Focuser)
	}
	b.focusWidgets[key] = w
}

// ClearFocus clears all registered focus widgets.
// Call this at the start of Build() before registering new widgets.
func (b *BaseScreen) ClearFocus() {
	b.focusWidgets = make(map[string]widget.Focuser)
}

// SaveFocusState records which registered widget currently has focus so a
// rebuild can restore it. Does nothing if a pending focus is already set.
func (b *BaseScreen) SaveFocusState(focused widget.Focuser) {
	if b.pendingFocus != "" || focused == nil {
		return
	}
	focusedWidget := focused.GetWidget()
	if focusedWidget == nil {
		return
	}
	for key, w := range b.focusWidgets {
		if w.GetWidget() == focusedWidget {
			b.pendingFocus = key
			return
		}
	}
}

// SetPendingFocus sets the key of the widget to focus after rebuild.
func (b *BaseScreen) SetPendingFocus(key string) {
	b.pendingFocus = key
}

// GetPendingFocus returns the widget that should receive focus after rebuild,
// or nil.
func (b *BaseScreen) GetPendingFocus() widget.Focuser {
	if b.pendingFocus == "" {
		return nil
	}
	return b.focusWidgets[b.pendingFocus]
}

// ClearPendingFocus clears the pending focus state.
func (b *BaseScreen) ClearPendingFocus() {
	b.pendingFocus = ""
}

// EnsureFocusedVisible scrolls the view so the focused widget is inside it.
// Widgets outside the page's scroll container are ignored.
func (b *BaseScreen) EnsureFocusedVisible(focused widget.Focuser) {
	if focused == nil || b.scrollContainer == nil {
		return
	}
	focusWidget := focused.GetWidget()
	if focusWidget == nil || !insideContent(focusWidget, b.scrollContainer) {
		return
	}
	focusRect := focusWidget.Rect

	viewRect := b.scrollContainer.ViewRect()
	contentRect := b.scrollContainer.ContentRect()

	// Content fits in view
	if contentRect.Dy() <= viewRect.Dy() {
		return
	}

	maxScroll := contentRect.Dy() - viewRect.Dy()
	scrollOffset := int(b.scrollContainer.ScrollTop * float64(maxScroll))

	widgetTopInView := focusRect.Min.Y - viewRect.Min.Y
	widgetBottomInView := focusRect.Max.Y - viewRect.Min.Y
	viewHeight := viewRect.Dy()

	newScrollOffset := scrollOffset
	if widgetTopInView < 0 {
		// Align widget top with view top
		newScrollOffset = max(scrollOffset+widgetTopInView, 0)
	} else if widgetBottomInView > viewHeight {
		// Align widget bottom with view bottom
		newScrollOffset = min(scrollOffset+(widgetBottomInView-viewHeight), maxScroll)
	}
	if newScrollOffset == scrollOffset {
		return
	}

	b.scrollContainer.ScrollTop = float64(newScrollOffset) / float64(maxScroll)
	if b.vSlider != nil {
		b.vSlider.Current = int(b.scrollContainer.ScrollTop * 1000)
	}
}

// insideContent reports whether w sits below the scroll container.
func insideContent(w *widget.Widget, sc *widget.ScrollContainer) bool {
	target := sc.GetWidget()
	for p := w.Parent(); p != nil; p = p.Parent() {
		if p == target {
			return true
		}
	}
	return false
}
