package standalone

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sqweek/dialog"
	"github.com/user-none/padnav/gamepad"
	"github.com/user-none/padnav/nav"
	"github.com/user-none/padnav/standalone/screens"
	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/style"
)

const (
	appName = "padnav"

	configFile  = "config.json"
	libraryFile = "packages.json"

	minWindowWidth  = 900
	minWindowHeight = 650

	devNotice = "This UI is very early in development. There WILL be bugs, and some things will NOT work.\n\nDevelopers, check the README in the repository for the todo list."
)

// Options configures Run
type Options struct {
	Version string
	// Backend overrides the configured gamepad backend when not empty
	Backend string
	// Debug enables per-button engine logging in addition to the config setting
	Debug bool
	// DataDir overrides the per-OS data directory when not empty
	DataDir string
	// Service launches and patches installed packages
	Service screens.PackageService

	// ContributorRepos and ReleaseRepo default to DefaultContributorRepos
	// and DefaultReleaseRepo. An empty ReleaseRepo after defaults disables
	// the update check.
	ContributorRepos []string
	ReleaseRepo      string
}

// pageScreen is a page with the shared scroll and focus handling
type pageScreen interface {
	screens.Page
	SaveScrollPosition()
	SaveFocusState(focused widget.Focuser)
	GetPendingFocus() widget.Focuser
	ClearPendingFocus()
	EnsureFocusedVisible(focused widget.Focuser)
}

// App is the main application struct. It implements ebiten.Game and is the
// host window the navigation engine drives.
type App struct {
	ui     *ebitenui.UI
	opts   Options
	engine *nav.Engine
	github *GitHubClient

	// Data
	config           *storage.Config
	library          *storage.Library
	configReady      bool
	libraryReady     bool
	configLoadFailed bool // don't overwrite config.json on exit

	// Pages
	pages       map[PageID]pageScreen
	frames      map[PageID]*widget.Container // stable root per page, refilled on rebuild
	page        PageID
	history     history
	errorScreen *screens.ErrorScreen
	errorRoot   *widget.Container
	showError   bool

	// Shell
	layout           nav.Mode
	paneOpen         bool
	paneList         *widget.Container
	indicator        *widget.Text
	indicatorVisible bool

	scans        *ScanManager
	search       *SearchOverlay
	screenshots  *ScreenshotManager
	notification *Notification
	input        *InputManager
	showNotice   func(title, msg string)
	noticeDone   bool

	rebuildPending bool
	exitRequested  bool

	// Window tracking for persistence
	windowX, windowY    int
	lastWindowedWidth   int
	lastWindowedHeight  int
	lastFullscreenState bool
	currentDPIScale     float64
}

// Run is the public entry point. It initializes storage, configures the
// window, opens the gamepad backend and runs the Ebiten game loop until the
// window closes.
func Run(opts Options) error {
	storage.Init(appName)
	if opts.DataDir != "" {
		storage.SetDataDir(opts.DataDir)
	}

	ebiten.SetWindowTitle(appName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowWidth, minWindowHeight, -1, -1)

	app, err := newApp(opts, openSource)
	if err != nil {
		return err
	}

	width, height, x, y, fullscreen := app.GetWindowConfig()
	ebiten.SetWindowSize(max(width, minWindowWidth), max(height, minWindowHeight))
	if x != nil && y != nil {
		ebiten.SetWindowPosition(*x, *y)
	}
	if fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(app); err != nil {
		return err
	}

	app.SaveAndClose()
	return nil
}

// openSource opens the named gamepad backend, falling back to automatic
// selection when it cannot be used.
func openSource(name string, opts gamepad.Options) (gamepad.Source, error) {
	src, err := gamepad.Open(name, opts)
	if err == nil {
		return src, nil
	}
	log.Printf("Failed to open gamepad backend %q: %v", name, err)
	if name == gamepad.BackendAuto {
		return nil, err
	}
	return gamepad.Open(gamepad.BackendAuto, opts)
}

// newApp creates and initializes the application. open creates the gamepad
// backend once the config is known.
func newApp(opts Options, open func(string, gamepad.Options) (gamepad.Source, error)) (*App, error) {
	if opts.ContributorRepos == nil {
		opts.ContributorRepos = DefaultContributorRepos
	}
	if opts.ReleaseRepo == "" {
		opts.ReleaseRepo = DefaultReleaseRepo
	}

	a := &App{
		opts:         opts,
		github:       NewGitHubClient(opts.ContributorRepos...),
		frames:       make(map[PageID]*widget.Container),
		page:         PageApps,
		paneOpen:     true,
		notification: NewNotification(),
		input:        NewInputManager(),
		screenshots:  NewScreenshotManager(),
		showNotice: func(title, msg string) {
			dialog.Message("%s", msg).Title(title).Info()
		},
	}

	a.search = NewSearchOverlay(a.onFilterChanged)

	if err := storage.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	if err := storage.CreateConfigIfMissing(); err != nil {
		log.Printf("Warning: failed to create config: %v", err)
	}
	if err := storage.CreateLibraryIfMissing(); err != nil {
		log.Printf("Warning: failed to create library: %v", err)
	}

	ready := a.loadData()
	if ready {
		a.applyConfig()
	}

	// The engine runs on the error page too so a controller can answer it
	backend := opts.Backend
	if backend == "" {
		backend = a.config.Controller.Backend
	}
	source, err := open(backend, a.config.Controller.GamepadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open gamepad: %w", err)
	}
	a.engine = nav.New(source,
		nav.WithPollInterval(time.Duration(a.config.Controller.PollIntervalMs)*time.Millisecond),
		nav.WithDebug(opts.Debug || a.config.DebugLogging),
	)
	a.engine.OnModeChange(func(from, to nav.Mode) {
		a.notification.ShowDefault(to.String() + " mode")
	})

	if ready {
		a.startPages()
	}
	a.engine.Initialize(a)
	return a, nil
}

// loadData loads config.json and packages.json, showing the error page on
// the first problem. It reports whether startup can continue.
func (a *App) loadData() bool {
	if !a.configReady {
		path, _ := storage.GetConfigPath()
		config, err := storage.LoadConfig()
		if err != nil {
			log.Printf("Failed to load config: %v", err)
			a.config = storage.DefaultConfig()
			a.configLoadFailed = true
			a.showCorrupted(configFile, path, a.deleteConfigAndContinue)
			return false
		}
		a.config = config
		if errs := storage.ValidateConfig(config, style.ThemeNames()); len(errs) > 0 {
			a.configLoadFailed = true
			a.showInvalid(configFile, path, errs, a.resetConfigAndContinue)
			return false
		}
		a.configReady = true
		a.configLoadFailed = false
	}

	if !a.libraryReady {
		path, _ := storage.GetLibraryPath()
		library, err := storage.LoadLibrary()
		if err != nil {
			log.Printf("Failed to load library: %v", err)
			a.library = storage.DefaultLibrary()
			a.showCorrupted(libraryFile, path, a.deleteLibraryAndContinue)
			return false
		}
		a.library = library
		if errs := storage.ValidateLibrary(library); len(errs) > 0 {
			a.showInvalid(libraryFile, path, errs, a.resetLibraryAndContinue)
			return false
		}
		a.libraryReady = true
	}
	return true
}

// applyConfig applies the theme and font size from config
func (a *App) applyConfig() {
	style.ApplyThemeByName(a.config.Theme)
	style.ApplyFontSize(storage.ValidFontSize(a.config.FontSize))
}

// startPages creates the pages and shows the first one. Called once config
// and library are usable.
func (a *App) startPages() {
	a.showError = false
	a.scans = NewScanManager(a.library, a.scanDirectories, a.onScanProgress, a.onScanComplete)

	apps := screens.NewAppsScreen(a, a.library, a.opts.Service)
	apps.SetScanner(a.scans.Start, a.scans.Status)
	a.pages = map[PageID]pageScreen{
		PageApps:     apps,
		PageSettings: screens.NewSettingsScreen(a, a.config, a.dataDir(), a.controllerStatus),
		PageAbout:    screens.NewAboutScreen(a, a.opts.Version, a.github, bundledContributors()),
	}
	a.page = PageApps
	a.pages[a.page].OnEnter()
	a.rebuildPage()
	a.buildShell()
	a.engine.PageChanged()
	a.checkForUpdate()
}

// scanDirectories returns the library's scan directories, or the packages
// folder in the data directory when none are set
func (a *App) scanDirectories() []string {
	if len(a.library.ScanDirectories) > 0 {
		return a.library.ScanDirectories
	}
	return []string{filepath.Join(a.dataDir(), "packages")}
}

// onFilterChanged applies the search text to the Apps page
func (a *App) onFilterChanged(text string) {
	apps, ok := a.pages[PageApps].(*screens.AppsScreen)
	if !ok {
		return
	}
	apps.SetFilter(text)
	a.RequestRebuild()
}

func (a *App) onScanProgress() {
	if a.page == PageApps {
		a.RequestRebuild()
	}
}

func (a *App) onScanComplete(msg string) {
	if msg != "" {
		a.notification.ShowDefault(msg)
	}
	if a.page == PageApps {
		a.RequestRebuild()
	}
}

// continueStartup retries loading after the error page repaired a file
func (a *App) continueStartup() {
	if !a.loadData() {
		return
	}
	a.applyConfig()
	a.startPages()
}

func (a *App) showCorrupted(file, path string, onDelete func()) {
	a.errorScreen = screens.NewErrorScreen(a, file, path, onDelete)
	a.showErrorPage()
}

func (a *App) showInvalid(file, path string, details []string, onReset func()) {
	a.errorScreen = screens.NewErrorScreen(a, file, path, nil)
	a.errorScreen.SetValidationError(file, path, details, onReset)
	a.showErrorPage()
}

func (a *App) showErrorPage() {
	a.showError = true
	a.errorRoot = a.errorScreen.Build()
	a.ui = &ebitenui.UI{Container: a.errorRoot}
	if a.engine != nil {
		a.engine.PageChanged()
	}
}

func (a *App) deleteConfigAndContinue() {
	if err := storage.DeleteConfig(); err != nil {
		log.Printf("Failed to delete config: %v", err)
	}
	a.config = storage.DefaultConfig()
	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	a.configReady = true
	a.configLoadFailed = false
	a.continueStartup()
}

func (a *App) resetConfigAndContinue() {
	storage.CorrectConfig(a.config, style.ThemeNames())
	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save corrected config: %v", err)
	}
	a.configReady = true
	a.configLoadFailed = false
	a.continueStartup()
}

func (a *App) deleteLibraryAndContinue() {
	if err := storage.DeleteLibrary(); err != nil {
		log.Printf("Failed to delete library: %v", err)
	}
	a.library = storage.DefaultLibrary()
	if err := storage.SaveLibrary(a.library); err != nil {
		log.Printf("Failed to save library: %v", err)
	}
	a.libraryReady = true
	a.continueStartup()
}

func (a *App) resetLibraryAndContinue() {
	storage.CorrectLibrary(a.library)
	if err := storage.SaveLibrary(a.library); err != nil {
		log.Printf("Failed to save corrected library: %v", err)
	}
	a.libraryReady = true
	a.continueStartup()
}

// checkForUpdate looks for a newer release in the background
func (a *App) checkForUpdate() {
	if a.opts.ReleaseRepo == "" || a.opts.Version == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
		defer cancel()
		tag, err := a.github.LatestRelease(ctx, a.opts.ReleaseRepo, a.opts.Version)
		if err != nil {
			log.Printf("Failed to check for updates: %v", err)
			return
		}
		if tag == "" {
			log.Printf("No updates available")
			return
		}
		log.Printf("Update available: %s", tag)
		a.engine.Post(func() {
			a.notification.ShowDefault("Update available: " + tag)
		})
	}()
}

// showDevNotice shows the one-time developer notice
func (a *App) showDevNotice() {
	if a.noticeDone || a.showError {
		return
	}
	a.noticeDone = true
	if !a.config.ShowDevNotice {
		return
	}
	a.showNotice("Important", devNotice)
	a.config.ShowDevNotice = false
	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

func (a *App) dataDir() string {
	dir, err := storage.GetBaseDir()
	if err != nil {
		log.Printf("Failed to get data directory: %v", err)
	}
	return dir
}

// controllerStatus describes the controller state for the settings page
func (a *App) controllerStatus() string {
	if a.engine.IsControllerMode() {
		return "Controller connected"
	}
	return "No controller connected"
}

// GetWindowConfig returns the saved window dimensions, position, and fullscreen state from config.
// This should be called before RunGame to set the initial window size.
func (a *App) GetWindowConfig() (width, height int, x, y *int, fullscreen bool) {
	return a.config.Window.Width, a.config.Window.Height, a.config.Window.X, a.config.Window.Y, a.config.Window.Fullscreen
}

// saveWindowState saves current window position and size to config
func (a *App) saveWindowState() {
	// Leave a broken config.json for the user to fix
	if a.configLoadFailed {
		return
	}
	// Fullscreen for the whole session leaves no windowed size to save
	if a.lastWindowedWidth == 0 || a.lastWindowedHeight == 0 {
		return
	}

	s := style.DPIScale()
	a.config.Window.Width = int(float64(a.lastWindowedWidth) / s)
	a.config.Window.Height = int(float64(a.lastWindowedHeight) / s)
	a.config.Window.X = &a.windowX
	a.config.Window.Y = &a.windowY
	a.config.Window.Fullscreen = a.lastFullscreenState

	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// toggleFullscreen toggles between fullscreen and windowed mode
func (a *App) toggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
	a.lastFullscreenState = ebiten.IsFullscreen()
}

// SaveAndClose saves config and library before exit
func (a *App) SaveAndClose() {
	a.saveWindowState()

	if a.scans != nil {
		a.scans.Cancel()
	}

	if !a.libraryReady {
		return
	}
	if err := storage.SaveLibrary(a.library); err != nil {
		log.Printf("Failed to save library: %v", err)
	}
}

// Update implements ebiten.Game
func (a *App) Update() error {
	if a.exitRequested {
		return ebiten.Termination
	}

	// Position is not reported through Layout. Fullscreen is tracked here
	// because macOS leaves native fullscreen before the window closes.
	a.windowX, a.windowY = ebiten.WindowPosition()
	a.lastFullscreenState = ebiten.IsFullscreen()

	a.showDevNotice()
	if !a.search.HandleInput() {
		a.handleKeys(a.input.Update())
	}

	// Hot-plug, posted work and the controller tick
	a.engine.Update()
	if a.scans != nil {
		a.scans.Update()
	}

	if a.rebuildPending {
		a.rebuildPending = false
		a.rebuildCurrent()
	}

	a.ui.Update()
	if a.exitRequested {
		return ebiten.Termination
	}
	if !a.rebuildPending {
		a.restorePendingFocus()
	}
	return nil
}

// handleKeys applies the window-level keyboard commands
func (a *App) handleKeys(keys KeyActions) {
	if keys.Fullscreen {
		a.toggleFullscreen()
	}
	if keys.Screenshot {
		a.screenshots.Request()
	}
	switch {
	case keys.Back && a.search.IsVisible():
		a.search.Clear()
	case keys.Back && a.CanGoBack():
		a.GoBack()
	}
	if keys.Search && a.page == PageApps && !a.showError {
		a.search.Activate()
	}
	if keys.TogglePane && !a.showError {
		a.SetPaneOpen(!a.paneOpen)
	}
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	a.ui.Draw(screen)
	a.search.Draw(screen)

	// Captured before the notification so the toast is not in the image
	if a.screenshots.Pending() {
		name := a.page.String()
		if a.showError {
			name = "error"
		}
		if path, err := a.screenshots.Save(screen, name); err != nil {
			log.Printf("Failed to save screenshot: %v", err)
			a.notification.ShowDefault("Screenshot failed")
		} else {
			log.Printf("Saved screenshot %s", path)
			a.notification.ShowDefault("Screenshot saved")
		}
	}
	a.notification.Draw(screen)
}

// Layout implements ebiten.Game
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s != a.currentDPIScale {
		a.currentDPIScale = s
		style.SetDPIScale(s)
		a.rebuildPending = true
	}

	// Physical pixels so the UI renders at full resolution
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	if !ebiten.IsFullscreen() {
		a.lastWindowedWidth = w
		a.lastWindowedHeight = h
	}
	return w, h
}

// ScreenCallback implementations

// RequestRebuild rebuilds the window on the next frame. Must be called on
// the UI thread; other goroutines go through Post.
func (a *App) RequestRebuild() {
	a.rebuildPending = true
}

// Post runs fn on the UI thread during the next engine update
func (a *App) Post(fn func()) {
	a.engine.Post(fn)
}

// Notify shows a short message in the corner of the window
func (a *App) Notify(msg string) {
	a.notification.ShowDefault(msg)
}

// Exit closes the window at the end of the frame
func (a *App) Exit() {
	a.exitRequested = true
}
