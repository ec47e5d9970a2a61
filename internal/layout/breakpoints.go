package layout

// Columns is the default number of cards per grid row.
const Columns = 5

// Viewport widths at which the card size steps up.
const (
	SmallBreakpoint = 768
	LargeBreakpoint = 1024
)

// CardWidth returns the card width in pixels for a viewport width.
func CardWidth(viewportWidth int) int {
	switch {
	case viewportWidth < SmallBreakpoint:
		return 280
	case viewportWidth < LargeBreakpoint:
		return 400
	default:
		return 480
	}
}

// CardHeight returns the card height in pixels for a viewport width.
func CardHeight(viewportWidth int) int {
	switch {
	case viewportWidth < SmallBreakpoint:
		return 420
	case viewportWidth < LargeBreakpoint:
		return 600
	default:
		return 720
	}
}

// GridWidth returns the width of a grid row. columns <= 0 uses [Columns].
func GridWidth(viewportWidth, columns int) int {
	if columns <= 0 {
		columns = Columns
	}
	return CardWidth(viewportWidth) * columns
}

// Compact reports whether the viewport is below the small breakpoint.
func Compact(viewportWidth int) bool {
	return viewportWidth < SmallBreakpoint
}

// Rows returns the number of grid rows needed for n cards.
func Rows(n, columns int) int {
	if columns <= 0 {
		columns = Columns
	}
	if n <= 0 {
		return 0
	}
	return (n + columns - 1) / columns
}
