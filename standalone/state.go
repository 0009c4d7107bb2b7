package standalone

// PageID identifies one page of the window
type PageID int

const (
	// PageApps lists installed packages
	PageApps PageID = iota
	// PageSettings shows application settings
	PageSettings
	// PageAbout shows the version and contributors
	PageAbout
)

// paneOrder is the order of the page buttons on the navigation pane
var paneOrder = []PageID{PageApps, PageSettings, PageAbout}

// String returns the string representation of the page
func (p PageID) String() string {
	switch p {
	case PageApps:
		return "Apps"
	case PageSettings:
		return "Settings"
	case PageAbout:
		return "About"
	default:
		return "Unknown"
	}
}

// history is the back stack of visited pages. The current page is not on it.
type history struct {
	pages []PageID
}

// push records p as the page to return to.
func (h *history) push(p PageID) {
	h.pages = append(h.pages, p)
}

// pop removes and returns the most recent page.
func (h *history) pop() (PageID, bool) {
	if len(h.pages) == 0 {
		return 0, false
	}
	p := h.pages[len(h.pages)-1]
	h.pages = h.pages[:len(h.pages)-1]
	return p, true
}

func (h *history) len() int {
	return len(h.pages)
}
