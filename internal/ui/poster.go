package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

const (
	hoverBrightness = 0
	dimBrightness   = -35
	fadeBrightness  = -20 // per missing fade level
	halfBlock       = "▀"
)

// artKey identifies one rendition of a poster.
type artKey struct {
	width, height int
	brightness    float64
}

// posterArt is a decoded poster and its rendered half-block renditions.
type posterArt struct {
	img   image.Image
	lines map[artKey][]string
}

func newPosterArt(img image.Image) *posterArt {
	return &posterArt{img: img, lines: make(map[artKey][]string)}
}

// render returns the poster cropped to width×height cells. Each cell covers two pixel rows.
func (a *posterArt) render(width, height int, brightness float64) []string {
	key := artKey{width, height, brightness}
	if lines, ok := a.lines[key]; ok {
		return lines
	}

	img := imaging.Fill(a.img, width, height*2, imaging.Center, imaging.Lanczos)
	if brightness != 0 {
		img = imaging.AdjustBrightness(img, brightness)
	}
	lines := halfBlocks(img, width, height)
	a.lines[key] = lines
	return lines
}

// halfBlocks draws img as rows of upper half blocks: foreground is the upper pixel, background the lower.
func halfBlocks(img *image.NRGBA, width, height int) []string {
	lines := make([]string, height)
	var b strings.Builder
	for row := range height {
		b.Reset()
		for col := range width {
			top := img.NRGBAAt(col, row*2)
			bottom := img.NRGBAAt(col, row*2+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top.R, top.G, top.B))).
				Background(lipgloss.Color(hex(bottom.R, bottom.G, bottom.B))).
				Render(halfBlock))
		}
		lines[row] = b.String()
	}
	return lines
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// brightnessFor returns the poster brightness adjustment for a card's hover and fade state.
func brightnessFor(hovered bool, fade int) float64 {
	b := float64(dimBrightness)
	if hovered {
		b = hoverBrightness
	}
	if fade < fadeLevels {
		b += float64(fadeLevels-fade) * fadeBrightness
	}
	return max(b, -100)
}
