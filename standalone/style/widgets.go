package style

import (
	"image/color"

	"github.com/ebitenui/ebitenui/event"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// ScrollSlider creates a vertical scroll slider bound to a scroll container.
// The needsScroll function should return true when content exceeds view height.
func ScrollSlider(scrollContainer *widget.ScrollContainer, needsScroll func() bool) *widget.Slider {
	return widget.NewSlider(
		widget.SliderOpts.TabOrder(-1), // Never part of controller navigation
		widget.SliderOpts.Direction(widget.DirectionVertical),
		widget.SliderOpts.MinMax(0, 1000),
		widget.SliderOpts.Images(
			&widget.SliderTrackImage{
				Idle:  image.NewNineSliceColor(Border),
				Hover: image.NewNineSliceColor(Border),
			},
			SliderButtonImage(),
		),
		widget.SliderOpts.FixedHandleSize(SliderHandleSize),
		widget.SliderOpts.PageSizeFunc(func() int {
			if !needsScroll() {
				return 1000
			}
			viewHeight := scrollContainer.ViewRect().Dy()
			contentHeight := scrollContainer.ContentRect().Dy()
			return int(float64(viewHeight) / float64(contentHeight) * 1000)
		}),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			if !needsScroll() {
				scrollContainer.ScrollTop = 0
				return
			}
			scrollContainer.ScrollTop = float64(args.Current) / 1000
		}),
	)
}

// SetupScrollHandler adds mouse wheel scroll support to a scroll container.
// The slider's Current value is kept in sync with scroll position.
func SetupScrollHandler(scrollContainer *widget.ScrollContainer, vSlider *widget.Slider, needsScroll func() bool) {
	scrollContainer.GetWidget().ScrolledEvent.AddHandler(func(args interface{}) {
		if !needsScroll() {
			scrollContainer.ScrollTop = 0
			return
		}
		a := args.(*widget.WidgetScrolledEventArgs)
		p := min(max(scrollContainer.ScrollTop+a.Y*ScrollWheelSensitivity, 0), 1)
		scrollContainer.ScrollTop = p
		vSlider.Current = int(p * 1000)
	})
}

// TextButton creates a standard text button with consistent styling.
func TextButton(text string, padding int, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(FocusButtonImage()),
		widget.ButtonOpts.Text(text, FontFace(), ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(padding)),
		widget.ButtonOpts.ClickedHandler(handler),
	)
}

// PrimaryTextButton creates a prominent text button with primary styling.
func PrimaryTextButton(text string, padding int, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(PrimaryButtonImage()),
		widget.ButtonOpts.Text(text, FontFace(), ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(padding)),
		widget.ButtonOpts.ClickedHandler(handler),
	)
}

// PaneButton creates a navigation pane item. The active item uses primary
// styling.
func PaneButton(text string, active bool, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
	img := ActiveButtonImage(active)
	img.Hover = image.NewNineSliceColor(Focus)
	return widget.NewButton(
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(text, FontFace(), ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(ButtonPaddingSmall)),
		widget.ButtonOpts.ClickedHandler(handler),
	)
}

// ToggleButton creates a toggle-mode button whose pressed state is the on
// state. changed receives the new state after each flip.
func ToggleButton(text string, on bool, changed func(on bool)) *widget.Button {
	btn := widget.NewButton(
		widget.ButtonOpts.Image(ButtonImage()),
		widget.ButtonOpts.Text(text, FontFace(), ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(ButtonPaddingSmall)),
		widget.ButtonOpts.ToggleMode(),
	)
	// Set before the handler is registered so the initial state is not reported
	if on {
		btn.SetState(widget.WidgetChecked)
	}
	if changed != nil {
		btn.StateChangedEvent.AddHandler(event.WrapHandler(func(args *widget.ButtonChangedEventArgs) {
			changed(args.State == widget.WidgetChecked)
		}))
	}
	return btn
}

// LabeledCheckbox creates a checkbox with a text label. changed receives the
// new state after each flip.
func LabeledCheckbox(label string, on bool, changed func(on bool)) *widget.Checkbox {
	initial := widget.WidgetUnchecked
	if on {
		initial = widget.WidgetChecked
	}
	return widget.NewCheckbox(
		widget.CheckboxOpts.Image(CheckboxImage()),
		widget.CheckboxOpts.Text(label, FontFace(), &widget.LabelColor{
			Idle:     Text,
			Disabled: TextSecondary,
		}),
		widget.CheckboxOpts.InitialState(initial),
		widget.CheckboxOpts.StateChangedHandler(func(args *widget.CheckboxChangedEventArgs) {
			if changed != nil {
				changed(args.State == widget.WidgetChecked)
			}
		}),
	)
}

// Label creates a plain text widget.
func Label(s string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, FontFace(), c),
	)
}

// ScrollableOpts configures a scrollable container.
type ScrollableOpts struct {
	Content *widget.Container // Required: content to scroll
	BgColor color.Color       // Background color for scroll area (default: Background)
	Spacing int               // Spacing between scroll area and slider (default: 4)
}

// ScrollableContainer creates a scrollable container with a vertical slider.
// Returns the scroll container, slider, and wrapper widget for embedding in layouts.
func ScrollableContainer(opts ScrollableOpts) (*widget.ScrollContainer, *widget.Slider, widget.PreferredSizeLocateableWidget) {
	bgColor := opts.BgColor
	if bgColor == nil {
		bgColor = Background
	}
	spacing := opts.Spacing
	if spacing == 0 {
		spacing = 4
	}

	scrollContainer := widget.NewScrollContainer(
		widget.ScrollContainerOpts.Content(opts.Content),
		widget.ScrollContainerOpts.StretchContentWidth(),
		widget.ScrollContainerOpts.Image(&widget.ScrollContainerImage{
			Idle: image.NewNineSliceColor(bgColor),
			Mask: image.NewNineSliceColor(bgColor),
		}),
	)

	needsScroll := func() bool {
		contentHeight := scrollContainer.ContentRect().Dy()
		viewHeight := scrollContainer.ViewRect().Dy()
		return contentHeight > 0 && viewHeight > 0 && contentHeight > viewHeight
	}

	vSlider := ScrollSlider(scrollContainer, needsScroll)
	SetupScrollHandler(scrollContainer, vSlider, needsScroll)

	// Stretching scroll area + fixed slider
	wrapper := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(spacing, 0),
		)),
	)
	wrapper.AddChild(scrollContainer)
	wrapper.AddChild(vSlider)

	return scrollContainer, vSlider, wrapper
}

// CenteredContainer creates a container with vertical layout, centered in its parent.
func CenteredContainer(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
}

// EmptyState creates a centered empty state display with a title and an
// optional subtitle. Pass empty string for subtitle to omit it.
func EmptyState(title, subtitle string) *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch: true,
			}),
		),
	)

	centerContent := CenteredContainer(DefaultSpacing)
	centerContent.AddChild(widget.NewText(
		widget.TextOpts.Text(title, FontFace(), Text),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
	))
	if subtitle != "" {
		centerContent.AddChild(widget.NewText(
			widget.TextOpts.Text(subtitle, FontFace(), TextSecondary),
			widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		))
	}

	container.AddChild(centerContent)
	return container
}

// ScreenContainer creates a full-screen root container with background.
func ScreenContainer() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(Background)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
}

// PageContainer creates the content container of a page: a single column
// with default padding and spacing. rowStretch controls which rows stretch.
func PageContainer(rowStretch []bool) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(DefaultPadding)),
			widget.GridLayoutOpts.Spacing(DefaultSpacing, DefaultSpacing),
			widget.GridLayoutOpts.Stretch([]bool{true}, rowStretch),
		)),
	)
}

// VerticalList creates a container stacking children top to bottom.
func VerticalList(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
	)
}

// ButtonRow creates a horizontal container for buttons with standard spacing.
func ButtonRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(SmallSpacing),
		)),
	)
}

// AlternatingRowColor returns the background color for alternating rows.
// Even indices return Background, odd indices return Surface.
func AlternatingRowColor(index int) color.Color {
	if index%2 == 0 {
		return Background
	}
	return Surface
}
