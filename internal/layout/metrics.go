package layout

import "math"

const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
)

// Viewport is the visible area in pixels.
type Viewport struct {
	Width  int
	Height int
}

// CardWidth is the breakpoint card width for v.
func (v Viewport) CardWidth() int { return CardWidth(v.Width) }

// CardHeight is the breakpoint card height for v.
func (v Viewport) CardHeight() int { return CardHeight(v.Width) }

// Compact reports whether v is below the small breakpoint.
func (v Viewport) Compact() bool { return Compact(v.Width) }

// CellMetrics is the pixel size of one terminal cell.
type CellMetrics struct {
	Width  int
	Height int
}

// NewCellMetrics returns metrics with non-positive sizes replaced by 8×16.
func NewCellMetrics(width, height int) CellMetrics {
	if width <= 0 {
		width = defaultCellWidth
	}
	if height <= 0 {
		height = defaultCellHeight
	}
	return CellMetrics{Width: width, Height: height}
}

// Viewport converts a terminal size to a pixel viewport.
func (m CellMetrics) Viewport(cols, rows int) Viewport {
	return Viewport{Width: cols * m.Width, Height: rows * m.Height}
}

// Point returns the pixel position of the top-left corner of a cell.
func (m CellMetrics) Point(col, row int) (x, y float64) {
	return float64(col * m.Width), float64(row * m.Height)
}

// Cols converts a horizontal pixel length to whole cells, rounding to nearest.
func (m CellMetrics) Cols(px float64) int {
	return int(math.Round(px / float64(m.Width)))
}

// Lines converts a vertical pixel length to whole cells, rounding to nearest.
func (m CellMetrics) Lines(px float64) int {
	return int(math.Round(px / float64(m.Height)))
}

// Col returns the cell column containing pixel x.
func (m CellMetrics) Col(px float64) int {
	return int(math.Floor(px / float64(m.Width)))
}

// Line returns the cell row containing pixel y.
func (m CellMetrics) Line(px float64) int {
	return int(math.Floor(px / float64(m.Height)))
}
