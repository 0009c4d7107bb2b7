package nav

// Host is the window the engine drives. Every method is called from the UI
// thread. A nil ActivePage means the window has no page yet; navigation is
// then a no-op.
type Host interface {
	// ActivePage returns the root of the page currently shown.
	ActivePage() Node
	// RequestFocus gives input focus to n.
	RequestFocus(n Node)

	// CanGoBack reports whether the page history has an entry to return to.
	CanGoBack() bool
	// GoBack returns to the previous page.
	GoBack()

	// PaneOpen reports whether the navigation pane is expanded.
	PaneOpen() bool
	// SetPaneOpen expands or collapses the navigation pane.
	SetPaneOpen(open bool)

	// SetLayout arranges the window for the given mode.
	SetLayout(m Mode)
	// SetIndicatorVisible shows or hides the on-screen controller indicator.
	SetIndicatorVisible(visible bool)
}
