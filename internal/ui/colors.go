package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// loadingBackground is the fill of the loading placeholder.
const loadingBackground = "#240000"

// placeholderShades fill cards without a poster, from hidden to fully faded in.
var placeholderShades = []string{"#000000", "#0a0a0a", "#141414", "#1c1c1c", "#242424"}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	loading lipgloss.Style
	overlay lipgloss.Style
	heading lipgloss.Style
	tag     lipgloss.Style
	meta    lipgloss.Style
	focus   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:   NewBold(t),
		ok:      NewBold(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		loading: NewBold("#FFFFFF").Background(lipgloss.Color(loadingBackground)),
		overlay: NewStyle("#EEEEEE").Background(lipgloss.Color("#101010")).Padding(0, 1),
		heading: NewBold("#FFFFFF").Background(lipgloss.Color("#101010")),
		tag:     NewStyle("#FFFFFF").Background(lipgloss.Color(t)).Padding(0, 1),
		meta:    NewStyle(h).Background(lipgloss.Color("#101010")),
		focus:   NewBold("#FFFFFF").Background(lipgloss.Color(t)),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
