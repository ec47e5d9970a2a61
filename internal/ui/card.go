package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/desertthunder/marquee/internal/models"
)

// fadeLevels is the number of visible steps of a card fading in.
const fadeLevels = 4

var upper = cases.Upper(language.Und)

// Card renders one catalog item. Clicking it toggles the detail overlay.
type Card struct {
	item            models.CatalogItem
	showDescription bool

	frame cardFrame
	lines []string
}

// cardFrame is everything besides the card's own state that affects how it is drawn.
type cardFrame struct {
	width, height int // cells
	hovered       bool
	focused       bool
	compact       bool
	fade          int
	art           *posterArt
	showDetails   bool
}

// NewCard creates a card with its details hidden.
func NewCard(item models.CatalogItem) *Card {
	return &Card{item: item}
}

// Item returns the catalog item shown by the card.
func (c *Card) Item() models.CatalogItem { return c.item }

// ShowDescription reports whether the detail overlay is visible.
func (c *Card) ShowDescription() bool { return c.showDescription }

// Toggle flips the detail overlay.
func (c *Card) Toggle() {
	c.showDescription = !c.showDescription
}

// Lines returns the card drawn into exactly f.height lines of f.width cells.
func (c *Card) Lines(f cardFrame) []string {
	f.showDetails = c.showDescription
	if c.lines != nil && f == c.frame {
		return c.lines
	}

	c.frame = f
	c.lines = c.draw(f)
	return c.lines
}

func (c *Card) draw(f cardFrame) []string {
	if f.width <= 0 || f.height <= 0 {
		return nil
	}
	if f.fade <= 0 {
		return blank(f.width, f.height)
	}

	var base []string
	if f.art != nil {
		base = f.art.render(f.width, f.height, brightnessFor(f.hovered, f.fade))
	} else {
		base = c.placeholder(f)
	}

	lines := make([]string, f.height)
	copy(lines, base)

	if f.showDetails {
		over := c.overlay(f.width, f.height, f.compact)
		copy(lines[f.height-len(over):], over)
	}
	if f.focused {
		lines[0] = styles.focus.Width(f.width).Render(ansi.Truncate(" "+c.item.Title, f.width, "…"))
	}

	for i, line := range lines {
		lines[i] = fit(line, f.width)
	}
	return lines
}

// placeholder fills the card while no poster is available, with the title centered.
func (c *Card) placeholder(f cardFrame) []string {
	shade := placeholderShades[min(f.fade, len(placeholderShades)-1)]
	if f.hovered {
		shade = placeholderShades[len(placeholderShades)-1]
	}

	title := ansi.Truncate(c.item.Title, max(f.width-2, 1), "…")
	if f.showDetails {
		title = ""
	}

	box := lipgloss.NewStyle().
		Width(f.width).
		Height(f.height).
		MaxHeight(f.height).
		Align(lipgloss.Center, lipgloss.Center).
		Background(lipgloss.Color(shade)).
		Foreground(lipgloss.Color("#8a8a8a")).
		Render(title)
	return strings.Split(box, "\n")
}

// overlay renders the detail panel, at most height lines tall.
func (c *Card) overlay(width, height int, compact bool) []string {
	inner := max(width-2, 1)

	rows := []string{styles.heading.Render(ansi.Truncate(c.item.Title, inner, "…"))}
	rows = append(rows, tagRows(c.item.Genres, inner)...)

	var meta []string
	if c.item.OriginalLanguage != "" {
		meta = append(meta, upper.String(c.item.OriginalLanguage))
	}
	if c.item.ReleaseDate != "" {
		meta = append(meta, c.item.ReleaseDate)
	}
	if len(meta) > 0 {
		rows = append(rows, styles.meta.Render(strings.Join(meta, " • ")))
	}

	if !compact && c.item.Overview != "" {
		rows = append(rows, "")
		rows = append(rows, strings.Split(wordwrap.String(c.item.Overview, inner), "\n")...)
	}

	box := styles.overlay.Width(width).Render(strings.Join(rows, "\n"))
	lines := strings.Split(box, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

// tagRows lays genre tags out left to right, breaking when a row is full.
func tagRows(genres []string, width int) []string {
	var (
		rows    []string
		current string
	)
	for _, g := range genres {
		if g == "" {
			continue
		}
		tag := styles.tag.Render(g)
		switch {
		case current == "":
			current = tag
		case ansi.StringWidth(current)+1+ansi.StringWidth(tag) <= width:
			current += " " + tag
		default:
			rows = append(rows, current)
			current = tag
		}
	}
	if current != "" {
		rows = append(rows, current)
	}
	for i, row := range rows {
		rows[i] = ansi.Truncate(row, width, "")
	}
	return rows
}

// fit truncates or pads line to exactly width cells.
func fit(line string, width int) string {
	w := ansi.StringWidth(line)
	switch {
	case w > width:
		return ansi.Truncate(line, width, "")
	case w < width:
		return line + strings.Repeat(" ", width-w)
	default:
		return line
	}
}

func blank(width, height int) []string {
	lines := make([]string, height)
	row := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = row
	}
	return lines
}
