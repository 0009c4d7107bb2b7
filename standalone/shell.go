package standalone

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/padnav/nav"
	"github.com/user-none/padnav/standalone/style"
	"github.com/user-none/padnav/uitree"
)

// frame returns the stable container a page is built into. The page's root
// is replaced on every rebuild but the frame is not, so the engine sees the
// same page across rebuilds.
func (a *App) frame(p PageID) *widget.Container {
	f, ok := a.frames[p]
	if !ok {
		f = widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(1),
				widget.GridLayoutOpts.Stretch([]bool{true}, []bool{true}),
			)),
		)
		a.frames[p] = f
	}
	return f
}

// rebuildPage builds the current page into its frame
func (a *App) rebuildPage() {
	f := a.frame(a.page)
	f.RemoveChildren()
	f.AddChild(a.pages[a.page].Build())
}

// buildShell arranges the navigation pane and the current page. Desktop puts
// the pane on the left; Controller puts it above the page so the page keeps
// the full width.
func (a *App) buildShell() {
	if a.pages == nil {
		return
	}

	controller := a.layout == nav.ModeController
	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Background)),
		widget.ContainerOpts.Layout(a.shellLayout(controller)),
	)

	root.AddChild(a.buildPane(controller))
	root.AddChild(a.frame(a.page))

	a.ui = &ebitenui.UI{Container: root}
}

func (a *App) shellLayout(controller bool) widget.Layouter {
	if controller {
		return widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, true}),
		)
	}
	return widget.NewGridLayout(
		widget.GridLayoutOpts.Columns(2),
		widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
	)
}

// buildPane creates the navigation pane with the menu toggle, the page list
// and the controller indicator. The page list container is reused so an open
// pane keeps its identity across rebuilds.
func (a *App) buildPane(controller bool) *widget.Container {
	direction := widget.DirectionVertical
	if controller {
		direction = widget.DirectionHorizontal
	}

	pane := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Surface)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(direction),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(a.paneMinWidth(controller), 0),
		),
	)

	menu := style.PaneButton("Menu", false, func(args *widget.ButtonClickedEventArgs) {
		a.SetPaneOpen(!a.paneOpen)
	})
	pane.AddChild(menu)

	if a.paneList == nil {
		a.paneList = style.VerticalList(style.SmallSpacing)
	}
	a.paneList.RemoveChildren()
	for _, id := range paneOrder {
		btn := style.PaneButton(a.pages[id].Title(), id == a.page, func(args *widget.ButtonClickedEventArgs) {
			a.navigate(id)
		})
		uitree.Bind(btn, nav.CommandFunc(a.navigateCommand), id)
		a.paneList.AddChild(btn)
	}
	a.paneList.GetWidget().Visibility = widget.Visibility_Show
	if !a.paneOpen {
		a.paneList.GetWidget().Visibility = widget.Visibility_Hide
	}
	pane.AddChild(a.paneList)

	a.indicator = style.Label("Controller", style.Accent)
	a.indicator.GetWidget().Visibility = widget.Visibility_Show
	if !a.indicatorVisible {
		a.indicator.GetWidget().Visibility = widget.Visibility_Hide
	}
	pane.AddChild(a.indicator)

	return pane
}

func (a *App) paneMinWidth(controller bool) int {
	if controller || !a.paneOpen {
		return 0
	}
	return style.PaneWidth
}

// navigateCommand is the controller command bound to pane page buttons
func (a *App) navigateCommand(param any) {
	if id, ok := param.(PageID); ok {
		a.navigate(id)
	}
}

// navigate shows page p, recording the current page in the history
func (a *App) navigate(p PageID) {
	if p == a.page {
		a.closePaneForController()
		return
	}
	a.history.push(a.page)
	a.showPage(p)
}

// showPage replaces the current page with p
func (a *App) showPage(p PageID) {
	if _, ok := a.pages[p]; !ok {
		log.Printf("Unknown page: %s", p)
		return
	}
	a.pages[a.page].OnExit()
	if p != PageApps {
		a.search.Clear()
	}
	a.page = p
	a.pages[p].OnEnter()
	a.rebuildPage()
	a.closePaneForController()
	a.buildShell()
	a.engine.PageChanged()
}

// closePaneForController collapses the pane after a pick in Controller mode
// so the next input lands on the page.
func (a *App) closePaneForController() {
	if a.layout == nav.ModeController && a.paneOpen {
		a.SetPaneOpen(false)
	}
}

// rebuildCurrent rebuilds the page in place, keeping its scroll position and
// focused widget.
func (a *App) rebuildCurrent() {
	if a.showError {
		a.errorRoot = a.errorScreen.Build()
		a.ui = &ebitenui.UI{Container: a.errorRoot}
		return
	}
	page := a.pages[a.page]
	page.SaveScrollPosition()
	if a.ui != nil {
		page.SaveFocusState(a.ui.GetFocusedWidget())
	}
	a.rebuildPage()
	a.buildShell()
}

// restorePendingFocus focuses the widget a rebuilt page asked for
func (a *App) restorePendingFocus() {
	if a.showError || a.pages == nil {
		return
	}
	page := a.pages[a.page]
	if w := page.GetPendingFocus(); w != nil {
		a.ui.SetFocusedWidget(w)
		page.ClearPendingFocus()
		page.EnsureFocusedVisible(w)
	}
}

// nav.Host implementation

// ActivePage returns the error page while startup is blocked, the page list
// while the pane is open in Controller mode, and the current page otherwise.
func (a *App) ActivePage() nav.Node {
	switch {
	case a.showError:
		return uitree.Wrap(a.errorRoot)
	case a.pages == nil:
		return nil
	case a.layout == nav.ModeController && a.paneOpen:
		return uitree.Wrap(a.paneList)
	}
	return uitree.Wrap(a.frame(a.page))
}

// RequestFocus focuses n and scrolls it into view
func (a *App) RequestFocus(n nav.Node) {
	if !uitree.Focus(a.ui, n) {
		return
	}
	if a.showError || a.pages == nil {
		return
	}
	if f, ok := uitree.Unwrap(n).(widget.Focuser); ok {
		a.pages[a.page].EnsureFocusedVisible(f)
	}
}

// CanGoBack reports whether there is a previous page
func (a *App) CanGoBack() bool {
	return !a.showError && a.history.len() > 0
}

// GoBack returns to the previous page. An open pane in Controller mode is
// closed first.
func (a *App) GoBack() {
	if a.layout == nav.ModeController && a.paneOpen {
		a.SetPaneOpen(false)
		return
	}
	p, ok := a.history.pop()
	if !ok {
		return
	}
	a.showPage(p)
}

// PaneOpen reports whether the page list is shown
func (a *App) PaneOpen() bool {
	return a.paneOpen
}

// SetPaneOpen shows or hides the page list
func (a *App) SetPaneOpen(open bool) {
	if a.showError || a.paneOpen == open {
		return
	}
	a.paneOpen = open
	a.buildShell()
	a.engine.PageChanged()
}

// SetLayout arranges the window for m. Desktop starts with the pane open;
// Controller starts with it closed so input goes to the page.
func (a *App) SetLayout(m nav.Mode) {
	a.layout = m
	a.paneOpen = m == nav.ModeDesktop
	a.buildShell()
}

// SetIndicatorVisible shows or hides the controller indicator
func (a *App) SetIndicatorVisible(visible bool) {
	a.indicatorVisible = visible
	if a.indicator == nil {
		return
	}
	if visible {
		a.indicator.GetWidget().Visibility = widget.Visibility_Show
	} else {
		a.indicator.GetWidget().Visibility = widget.Visibility_Hide
	}
}
