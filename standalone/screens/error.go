package screens

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/padnav/standalone/style"
)

// ErrorMode distinguishes between types of startup errors
type ErrorMode int

const (
	// ErrorModeCorrupted indicates the JSON file could not be parsed
	ErrorModeCorrupted ErrorMode = iota
	// ErrorModeInvalid indicates the JSON parsed but contains invalid values
	ErrorModeInvalid
)

// maxErrorDetails caps the listed validation problems so the buttons stay on
// screen.
const maxErrorDetails = 5

// ErrorScreen is shown instead of the pages when config.json or
// packages.json cannot be used.
type ErrorScreen struct {
	callback ScreenCallback
	filename string
	filepath string
	mode     ErrorMode
	details  []string
	onRepair func() // delete (corrupted) or reset (invalid), then continue
}

// NewErrorScreen creates an error page for a file that failed to parse.
// onDelete removes the file and continues startup.
func NewErrorScreen(callback ScreenCallback, filename, filepath string, onDelete func()) *ErrorScreen {
	return &ErrorScreen{
		callback: callback,
		filename: filename,
		filepath: filepath,
		mode:     ErrorModeCorrupted,
		onRepair: onDelete,
	}
}

// SetValidationError switches the page to list validation problems. onReset
// replaces the invalid values with defaults and continues startup.
func (s *ErrorScreen) SetValidationError(filename, filepath string, details []string, onReset func()) {
	s.filename = filename
	s.filepath = filepath
	s.mode = ErrorModeInvalid
	s.details = details
	s.onRepair = onReset
}

// Mode returns the kind of error being shown
func (s *ErrorScreen) Mode() ErrorMode {
	return s.mode
}

func (s *ErrorScreen) Title() string { return "Error" }
func (s *ErrorScreen) OnEnter()      {}
func (s *ErrorScreen) OnExit()       {}

// Build creates the error page UI
func (s *ErrorScreen) Build() *widget.Container {
	root := style.ScreenContainer()
	content := style.CenteredContainer(style.DefaultSpacing)

	title, message, help, repair := "Configuration Error",
		fmt.Sprintf("The file \"%s\" is invalid or corrupted.", s.filename),
		"You can delete the file and start fresh, or exit to manually fix the file.",
		"Delete and Continue"
	if s.mode == ErrorModeInvalid {
		title, message, help, repair = "Invalid Settings",
			fmt.Sprintf("The file \"%s\" contains invalid settings:", s.filename),
			"You can reset invalid settings to defaults, or exit to manually fix the file.",
			"Reset and Continue"
	}

	content.AddChild(centeredText(title, style.Text))
	content.AddChild(centeredText(message, style.Text))
	if s.filepath != "" {
		path, _ := style.TruncateStart(s.filepath, 70)
		content.AddChild(centeredText(path, style.TextSecondary))
	}
	for _, line := range detailLines(s.details) {
		content.AddChild(centeredText(line, style.TextSecondary))
	}
	content.AddChild(centeredText(help, style.TextSecondary))

	buttons := style.ButtonRow()
	buttons.AddChild(style.PrimaryTextButton(repair, style.ButtonPaddingMedium, func(*widget.ButtonClickedEventArgs) {
		if s.onRepair != nil {
			s.onRepair()
		}
	}))
	buttons.AddChild(style.TextButton("Exit", style.ButtonPaddingMedium, func(*widget.ButtonClickedEventArgs) {
		s.callback.Exit()
	}))
	content.AddChild(buttons)

	root.AddChild(content)
	return root
}

// detailLines returns the validation problems to display, summarising any
// beyond maxErrorDetails.
func detailLines(details []string) []string {
	if len(details) <= maxErrorDetails {
		return details
	}
	lines := append([]string(nil), details[:maxErrorDetails]...)
	return append(lines, fmt.Sprintf("+%d more", len(details)-maxErrorDetails))
}

func centeredText(s string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, style.FontFace(), c),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
	)
}
