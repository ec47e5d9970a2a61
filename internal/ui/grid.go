package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/desertthunder/marquee/internal/layout"
)

func (m *Model) gridRows() int {
	return max(m.height-headerRows-footerRows, 0)
}

func (m *Model) viewport() layout.Viewport {
	return m.metrics.Viewport(m.width, m.height)
}

// cardCells returns the card size in cells for the current viewport.
func (m *Model) cardCells() (width, height int) {
	vp := m.viewport()
	return max(m.metrics.Cols(float64(vp.CardWidth())), 1), max(m.metrics.Lines(float64(vp.CardHeight())), 1)
}

// offsetCells returns the grid translation rounded to whole cells.
func (m *Model) offsetCells() (x, y int) {
	off := m.parallax.Offset()
	return m.metrics.Cols(off.TranslateX), m.metrics.Lines(off.TranslateY)
}

// hitTest returns the index of the card under screen cell (x, y), or -1.
func (m *Model) hitTest(x, y int) int {
	gy := y - headerRows
	if gy < 0 || gy >= m.gridRows() || x < 0 || x >= m.width {
		return -1
	}

	cw, ch := m.cardCells()
	ox, oy := m.offsetCells()
	cx, cy := x-ox, gy-oy
	if cx < 0 || cy < 0 {
		return -1
	}

	col, row := cx/cw, cy/ch
	if col >= m.columns {
		return -1
	}
	idx := row*m.columns + col
	if idx >= len(m.cards) {
		return -1
	}
	return idx
}

// hovered returns the index of the card under the pointer, or -1.
func (m *Model) hovered() int {
	if !m.hasMouse {
		return -1
	}
	return m.hitTest(m.mouseX, m.mouseY)
}

// fadeLevel maps the reveal progress of card i to [0, fadeLevels].
func (m *Model) fadeLevel(i int) int {
	p := m.reveal.Progress(i, m.now())
	return int(math.Ceil(p * fadeLevels))
}

// renderGrid draws the translated grid clipped to the visible area.
func (m *Model) renderGrid() []string {
	rows := m.gridRows()
	if len(m.cards) == 0 {
		msg := styles.help.Render(fmt.Sprintf("No titles on page %d of %s.", m.page, m.group.Label()))
		return strings.Split(lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, msg), "\n")
	}

	cw, ch := m.cardCells()
	ox, oy := m.offsetCells()
	hover := m.hovered()
	compact := m.viewport().Compact()
	gridHeight := layout.Rows(len(m.cards), m.columns) * ch
	gap := strings.Repeat(" ", cw)

	drawn := make([][]string, len(m.cards))
	lines := func(idx int) []string {
		if drawn[idx] == nil {
			c := m.cards[idx]
			drawn[idx] = c.Lines(cardFrame{
				width:   cw,
				height:  ch,
				hovered: idx == hover,
				focused: idx == m.focus,
				compact: compact,
				fade:    m.fadeLevel(idx),
				art:     m.art[c.Item().Image],
			})
		}
		return drawn[idx]
	}

	out := make([]string, rows)
	var b strings.Builder
	for r := range rows {
		cy := r - oy
		if cy < 0 || cy >= gridHeight {
			continue
		}
		row, inner := cy/ch, cy%ch

		b.Reset()
		for col := range m.columns {
			idx := row*m.columns + col
			if idx >= len(m.cards) {
				b.WriteString(gap)
				continue
			}
			b.WriteString(lines(idx)[inner])
		}
		out[r] = shift(b.String(), ox, m.width)
	}
	return out
}

// shift moves line right by dx cells (left when negative) and crops it to width.
func shift(line string, dx, width int) string {
	if dx >= 0 {
		if dx >= width {
			return ""
		}
		return strings.Repeat(" ", dx) + ansi.Cut(line, 0, width-dx)
	}
	return ansi.Cut(line, -dx, -dx+width)
}

func (m *Model) renderLoading() string {
	text := styles.loading.Render(m.spinner.View() + " LOADING...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(loadingBackground)))
}

func (m *Model) renderHeader() string {
	header := fmt.Sprintf("%s  %s • page %d", styles.title.Render("MARQUEE"), m.group.Label(), m.page)
	return fit(header, m.width)
}

func (m *Model) renderStatus() string {
	var status string
	switch err := m.tracker.Err(); {
	case err != nil:
		status = styles.err.Render("error: " + err.Error())
	case m.notice != "":
		status = m.notice
	default:
		status = styles.help.Render(fmt.Sprintf("%d titles", len(m.cards)))
		if at := m.tracker.LoadedAt(); !at.IsZero() {
			status += styles.help.Render(" • loaded " + at.Format("15:04:05"))
		}
	}
	return fit(status, m.width)
}

// fitRows returns exactly n lines of exactly width cells.
func fitRows(lines []string, width, n int) []string {
	out := make([]string, n)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = fit(line, width)
	}
	return out
}
