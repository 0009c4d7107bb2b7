package screens

import (
	"fmt"
	"log"
	"slices"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/style"
)

// SettingsScreen displays application settings. Every change is saved
// immediately.
type SettingsScreen struct {
	BaseScreen

	callback ScreenCallback
	config   *storage.Config
	dataDir  string
	status   func() string // controller status line, may be nil
}

// NewSettingsScreen creates a new settings page. status reports the current
// controller state for display.
func NewSettingsScreen(callback ScreenCallback, config *storage.Config, dataDir string, status func() string) *SettingsScreen {
	s := &SettingsScreen{
		callback: callback,
		config:   config,
		dataDir:  dataDir,
		status:   status,
	}
	s.InitBase()
	return s
}

func (s *SettingsScreen) Title() string { return "Settings" }
func (s *SettingsScreen) OnEnter()      {}
func (s *SettingsScreen) OnExit()       { s.SaveScrollPosition() }

// Build creates the page UI
func (s *SettingsScreen) Build() *widget.Container {
	s.ClearFocus()

	root := style.PageContainer([]bool{true})
	list := style.VerticalList(style.DefaultSpacing)

	list.AddChild(style.Label("Interface", style.TextSecondary))

	theme := style.TextButton("Theme: "+s.config.Theme, style.ButtonPaddingSmall, func(*widget.ButtonClickedEventArgs) {
		s.cycleTheme()
	})
	s.RegisterFocus("theme", theme)
	list.AddChild(theme)

	fontSize := style.TextButton(fmt.Sprintf("Font size: %d", s.config.FontSize), style.ButtonPaddingSmall, func(*widget.ButtonClickedEventArgs) {
		s.cycleFontSize()
	})
	s.RegisterFocus("fontSize", fontSize)
	list.AddChild(fontSize)

	list.AddChild(s.checkbox("horizontalScrolling", "Horizontal scrolling", &s.config.HorizontalScrolling))
	list.AddChild(s.checkbox("showDevNotice", "Show developer notice at startup", &s.config.ShowDevNotice))
	list.AddChild(s.checkbox("debugLogging", "Debug logging (applies after restart)", &s.config.DebugLogging))

	list.AddChild(style.Label("Controller", style.TextSecondary))
	if s.status != nil {
		list.AddChild(style.Label(s.status(), style.Text))
	}
	stick := style.ToggleButton("Analog stick navigation (applies after restart)", !s.config.Controller.DisableAnalogStick, func(on bool) {
		s.config.Controller.DisableAnalogStick = !on
		s.save()
	})
	s.RegisterFocus("analogStick", stick)
	list.AddChild(stick)

	list.AddChild(style.Label("Data", style.TextSecondary))
	path, _ := style.TruncateStart(s.dataDir, 60)
	list.AddChild(style.Label(path, style.Text))
	copyPath := style.TextButton("Copy data folder path", style.ButtonPaddingSmall, func(*widget.ButtonClickedEventArgs) {
		s.copyDataDir()
	})
	s.RegisterFocus("copyPath", copyPath)
	list.AddChild(copyPath)

	scrollContainer, vSlider, wrapper := style.ScrollableContainer(style.ScrollableOpts{Content: list})
	s.SetScrollWidgets(scrollContainer, vSlider)
	root.AddChild(wrapper)
	s.RestoreScrollPosition()

	return root
}

// checkbox creates a checkbox bound to field.
func (s *SettingsScreen) checkbox(key, label string, field *bool) *widget.Checkbox {
	cb := style.LabeledCheckbox(label, *field, func(on bool) {
		*field = on
		s.save()
	})
	s.RegisterFocus(key, cb)
	return cb
}

func (s *SettingsScreen) cycleTheme() {
	s.config.Theme = style.NextThemeName(s.config.Theme)
	style.ApplyThemeByName(s.config.Theme)
	s.save()
	s.SetPendingFocus("theme")
	s.callback.RequestRebuild()
}

func (s *SettingsScreen) cycleFontSize() {
	presets := storage.FontSizePresets
	i := slices.Index(presets, s.config.FontSize)
	s.config.FontSize = presets[(i+1)%len(presets)]
	style.ApplyFontSize(s.config.FontSize)
	s.save()
	s.SetPendingFocus("fontSize")
	s.callback.RequestRebuild()
}

func (s *SettingsScreen) copyDataDir() {
	if err := style.CopyText(s.dataDir); err != nil {
		log.Printf("Failed to copy data path: %v", err)
		s.callback.Notify("Clipboard is not available")
		return
	}
	s.callback.Notify("Data folder path copied")
}

func (s *SettingsScreen) save() {
	if err := storage.SaveConfig(s.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}
