package screens

import (
	"context"

	"github.com/ebitenui/ebitenui/widget"
)

// Page is one page of the window.
type Page interface {
	// Title is shown on the navigation pane button.
	Title() string
	// Build creates the page's widget tree. It is called on every rebuild.
	Build() *widget.Container
	OnEnter()
	OnExit()
}

// ScreenCallback lets pages reach the window
type ScreenCallback interface {
	// RequestRebuild rebuilds the current page on the next frame.
	RequestRebuild()
	// Post runs fn on the UI thread. Safe to call from any goroutine.
	Post(fn func())
	// Notify shows a short message to the user.
	Notify(msg string)
	// Exit closes the window.
	Exit()
}

// PackageService performs the actions behind an installed package tile.
type PackageService interface {
	Launch(id string) error
	Patch(id string) error
}

// Contributor is one person credited on the About page.
type Contributor struct {
	Login         string
	URL           string
	Contributions int
}

// ContributorSource supplies the About page's contributor list.
type ContributorSource interface {
	Contributors(ctx context.Context) ([]Contributor, error)
}
