package screens

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/padnav/nav"
	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/style"
	"github.com/user-none/padnav/uitree"
)

// AppsScreen lists installed packages. Each tile launches its package and,
// when unpatched, offers a patch button.
type AppsScreen struct {
	BaseScreen

	callback ScreenCallback
	library  *storage.Library
	service  PackageService
	now      func() time.Time

	scan       func()        // starts a package scan, nil hides the button
	scanStatus func() string // non-empty while a scan runs
	filter     string
	patching   map[string]bool
}

// NewAppsScreen creates the installed packages page
func NewAppsScreen(callback ScreenCallback, library *storage.Library, service PackageService) *AppsScreen {
	s := &AppsScreen{
		callback: callback,
		library:  library,
		service:  service,
		now:      time.Now,
		patching: make(map[string]bool),
	}
	s.InitBase()
	return s
}

// SetScanner adds a scan button to the page. status reports the running
// scan and returns "" when idle.
func (s *AppsScreen) SetScanner(start func(), status func() string) {
	s.scan = start
	s.scanStatus = status
}

// SetFilter limits the list to packages whose name, publisher or id
// contains text, ignoring case
func (s *AppsScreen) SetFilter(text string) {
	s.filter = text
}

func (s *AppsScreen) Title() string { return "Apps" }
func (s *AppsScreen) OnEnter()      {}
func (s *AppsScreen) OnExit()       { s.SaveScrollPosition() }

// Build creates the page UI
func (s *AppsScreen) Build() *widget.Container {
	s.ClearFocus()

	all := s.library.PackagesSorted()
	packages := filterPackages(all, s.filter)
	root := style.PageContainer([]bool{false, true})
	root.AddChild(s.buildHeader(len(all)))

	if len(all) == 0 {
		root.AddChild(style.EmptyState("No packages installed", "Register a package to see it here"))
		return root
	}
	if len(packages) == 0 {
		root.AddChild(style.EmptyState("No packages match \""+s.filter+"\"", "Press Escape to clear the filter"))
		return root
	}

	list := style.VerticalList(style.SmallSpacing)
	for i, entry := range packages {
		list.AddChild(s.buildTile(i, entry))
	}

	scrollContainer, vSlider, wrapper := style.ScrollableContainer(style.ScrollableOpts{Content: list})
	s.SetScrollWidgets(scrollContainer, vSlider)
	root.AddChild(wrapper)
	s.RestoreScrollPosition()

	return root
}

// buildHeader creates the package count and, when scanning is available,
// the scan button or the running scan's status.
func (s *AppsScreen) buildHeader(count int) *widget.Container {
	header := style.ButtonRow()
	header.AddChild(style.Label(
		fmt.Sprintf("Installed packages (%s)", style.FormatCount(count, "package", "packages")),
		style.TextSecondary,
	))
	if s.scan == nil {
		return header
	}

	if status := s.scanStatus(); status != "" {
		header.AddChild(style.Label(status, style.Accent))
		return header
	}
	scan := style.TextButton("Scan for packages", style.ButtonPaddingSmall, func(*widget.ButtonClickedEventArgs) {
		s.startScan()
	})
	s.RegisterFocus("scan", scan)
	header.AddChild(scan)
	return header
}

func (s *AppsScreen) startScan() {
	s.scan()
	s.callback.RequestRebuild()
}

// buildTile creates one package row: a launch button followed by an optional
// patch button.
func (s *AppsScreen) buildTile(index int, entry *storage.PackageEntry) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.AlternatingRowColor(index))),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.SmallSpacing, 0),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, style.TileHeight),
		),
	)

	launch := style.TextButton(tileLabel(entry, s.now()), style.ButtonPaddingMedium, func(*widget.ButtonClickedEventArgs) {
		s.launch(entry.ID)
	})
	uitree.Bind(launch, nav.CommandFunc(s.launch), entry.ID)
	s.RegisterFocus("launch-"+entry.ID, launch)
	row.AddChild(launch)

	if entry.Patched {
		row.AddChild(style.Label("Patched", style.Accent))
		return row
	}
	if s.patching[entry.ID] {
		row.AddChild(style.Label("Patching...", style.TextSecondary))
		return row
	}

	patch := style.TextButton("Patch", style.ButtonPaddingSmall, func(*widget.ButtonClickedEventArgs) {
		s.patch(entry.ID)
	})
	uitree.Bind(patch, nav.CommandFunc(s.patch), entry.ID)
	s.RegisterFocus("patch-"+entry.ID, patch)
	row.AddChild(patch)

	return row
}

func filterPackages(packages []*storage.PackageEntry, filter string) []*storage.PackageEntry {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return packages
	}
	var out []*storage.PackageEntry
	for _, p := range packages {
		if strings.Contains(strings.ToLower(p.Name), filter) ||
			strings.Contains(strings.ToLower(p.Publisher), filter) ||
			strings.Contains(strings.ToLower(p.ID), filter) {
			out = append(out, p)
		}
	}
	return out
}

func tileLabel(entry *storage.PackageEntry, now time.Time) string {
	label := entry.Name
	if entry.Publisher != "" {
		label += " - " + entry.Publisher
	}
	if entry.Version != "" {
		label += " " + entry.Version
	}
	return label + "  (added " + style.FormatAdded(entry.Added, now) + ")"
}

// launch starts the package whose id is param.
func (s *AppsScreen) launch(param any) {
	id, ok := param.(string)
	if !ok || s.service == nil {
		return
	}
	if err := s.service.Launch(id); err != nil {
		log.Printf("Failed to launch %s: %v", id, err)
		s.callback.Notify(fmt.Sprintf("Could not launch %s", id))
	}
}

// patch starts patching the package whose id is param. The patcher runs in
// the background and the result is applied on the UI thread.
func (s *AppsScreen) patch(param any) {
	id, ok := param.(string)
	if !ok || s.service == nil || s.patching[id] {
		return
	}
	s.patching[id] = true
	s.callback.Notify(fmt.Sprintf("Patching %s...", id))
	s.SetPendingFocus("launch-" + id)
	s.callback.RequestRebuild()

	go func() {
		err := s.service.Patch(id)
		s.callback.Post(func() {
			s.finishPatch(id, err)
		})
	}()
}

// finishPatch records a patch result in the library.
func (s *AppsScreen) finishPatch(id string, err error) {
	delete(s.patching, id)
	defer s.callback.RequestRebuild()

	if err != nil {
		log.Printf("Failed to patch %s: %v", id, err)
		s.callback.Notify(fmt.Sprintf("Could not patch %s", id))
		return
	}
	if !s.library.SetPatched(id, true) {
		return
	}
	if err := storage.SaveLibrary(s.library); err != nil {
		log.Printf("Failed to save library: %v", err)
	}
	s.SetPendingFocus("launch-" + id)
}
