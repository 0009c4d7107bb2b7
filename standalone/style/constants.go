package style

// Logical-pixel reference values. The exported vars below are recalculated
// from these by SetDPIScale and ApplyFontSize.
const (
	baseDefaultPadding      = 16
	baseDefaultSpacing      = 16
	baseSmallSpacing        = 8
	baseLargeSpacing        = 24
	baseButtonPaddingSmall  = 8
	baseButtonPaddingMedium = 12
	basePaneWidth           = 180
	baseSliderHandleSize    = 40

	// Font-dependent (at 14pt, scale = 1.0)
	baseRowHeight  = 38
	baseTileHeight = 64
)

// Layout vars used across pages, DPI-scaled at runtime via SetDPIScale.
var (
	DefaultPadding = baseDefaultPadding
	DefaultSpacing = baseDefaultSpacing
	SmallSpacing   = baseSmallSpacing
	LargeSpacing   = baseLargeSpacing

	ButtonPaddingSmall  = baseButtonPaddingSmall
	ButtonPaddingMedium = baseButtonPaddingMedium

	// Width of the navigation pane in the left (desktop) layout
	PaneWidth = basePaneWidth

	SliderHandleSize = baseSliderHandleSize
)

// Font-dependent layout values (updated by ApplyFontSize)
var (
	RowHeight  = baseRowHeight
	TileHeight = baseTileHeight
)

// Mouse wheel scroll sensitivity
const ScrollWheelSensitivity = 0.05
