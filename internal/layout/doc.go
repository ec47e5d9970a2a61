// Package layout derives the gallery geometry from the viewport and the pointer.
//
// Sizes are expressed in pixels, the unit the breakpoint table is written in. Terminal
// cells are converted to pixels through [CellMetrics]. The pipeline is:
//
//	pointer (cells) -> [PointerOffset] (px) -> [Spring] per axis -> [Remap] -> [RenderOffset] (px) -> cells
//
// [Parallax] owns one spring per axis and the pointer tracking state.
package layout
