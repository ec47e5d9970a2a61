package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	tu "github.com/desertthunder/marquee/internal/testing"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type mockWatchlist struct {
	mu      sync.Mutex
	entries []*models.WatchlistEntry
	err     error
}

func (w *mockWatchlist) Add(group models.Group, item models.CatalogItem) (*models.WatchlistEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	entry := models.NewWatchlistEntry(len(w.entries)+1, group, item)
	w.entries = append(w.entries, entry)
	return entry, nil
}

func testCatalog() *tu.MockCatalog {
	return &tu.MockCatalog{
		Pages: map[int][]models.CatalogItem{
			1: tu.Items("page1", 20),
			2: tu.Items("page2", 20),
			3: tu.Items("page3", 7),
		},
	}
}

// newTestModel returns a model sized 200×60 cells (1600×960 px) on a fixed clock.
func newTestModel(t *testing.T, opts Options) (*Model, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	if opts.Catalog == nil {
		opts.Catalog = testCatalog()
	}
	opts.Now = clk.now
	m := NewModel(context.Background(), opts)
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	return m, clk
}

// collect runs cmd, flattening batches, and returns the messages it produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func only(msgs []tea.Msg, kind MsgKind) []Msg {
	var out []Msg
	for _, msg := range msgs {
		if m, ok := msg.(Msg); ok && m.kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// apply delivers every catalog, poster and watchlist message in msgs, then the messages of
// the commands they return. Frames are dropped.
func apply(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		if mm, ok := msg.(Msg); ok && mm.kind != MsgFrame {
			_, cmd := m.Update(mm)
			apply(m, collect(cmd))
		}
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(keyPress(s))
	return cmd
}

func titles(m *Model) []string {
	var out []string
	for _, c := range m.Cards() {
		out = append(out, c.Item().Title)
	}
	return out
}

func TestModelLoading(t *testing.T) {
	t.Run("Init Fetches Default Page", func(t *testing.T) {
		catalog := testCatalog()
		m, _ := newTestModel(t, Options{Catalog: catalog})

		cmd := m.Init()
		if !m.Busy() {
			t.Fatal("expected busy after Init")
		}

		apply(m, collect(cmd))
		if m.Busy() {
			t.Error("expected busy cleared after load")
		}
		if got := titles(m); len(got) != 20 || got[0] != "page1-1" {
			t.Errorf("unexpected cards %v", got)
		}

		calls := catalog.Calls()
		if len(calls) != 1 || calls[0].Group != models.GroupPopular || calls[0].Page != 1 {
			t.Errorf("unexpected catalog calls %+v", calls)
		}
	})

	t.Run("Loading Placeholder Replaces Grid", func(t *testing.T) {
		m, clk := newTestModel(t, Options{})
		cmd := m.Init()

		if view := m.View(); !strings.Contains(view, "LOADING...") {
			t.Errorf("expected loading placeholder, got:\n%s", view)
		}

		apply(m, collect(cmd))
		clk.advance(5 * time.Second)
		view := m.View()
		if strings.Contains(view, "LOADING...") {
			t.Error("expected placeholder gone after load")
		}
		if !strings.Contains(view, "page1-1") {
			t.Errorf("expected first card title in grid, got:\n%s", view)
		}
	})

	t.Run("Superseded Response Is Ignored", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		first := m.Init()
		second := press(m, "right")

		if m.Page() != 2 {
			t.Fatalf("expected page 2, got %d", m.Page())
		}

		apply(m, collect(second))
		apply(m, collect(first))

		if got := titles(m); got[0] != "page2-1" {
			t.Errorf("expected page 2 items after stale page 1 response, got %v", got[0])
		}
		if m.Busy() {
			t.Error("expected busy cleared")
		}
	})

	t.Run("Stale Response Before Current Keeps Busy", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		first := m.Init()
		second := press(m, "right")

		apply(m, collect(first))
		if !m.Busy() {
			t.Error("expected busy while page 2 is in flight")
		}
		if len(m.cards) != 0 {
			t.Error("expected stale response not to populate the grid")
		}

		apply(m, collect(second))
		if got := titles(m); len(got) != 20 || got[0] != "page2-1" {
			t.Errorf("expected page 2 items, got %v", got)
		}
	})

	t.Run("Cancelled Request Context", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		m.Init()

		m.Update(catalogLoadedMsg(m.tracker.Current(), nil, context.Canceled))
		if !m.Busy() {
			t.Error("expected cancelled response to leave busy set")
		}
		if m.tracker.Err() != nil {
			t.Errorf("expected cancellation not to be reported, got %v", m.tracker.Err())
		}
	})

	t.Run("Failure Keeps Items And Shows Error", func(t *testing.T) {
		catalog := testCatalog()
		m, _ := newTestModel(t, Options{Catalog: catalog})
		apply(m, collect(m.Init()))

		catalog.Err = shared.ErrAPIRequest
		apply(m, collect(press(m, "right")))

		if m.Busy() {
			t.Error("expected busy cleared on failure")
		}
		if got := titles(m); len(got) != 20 || got[0] != "page1-1" {
			t.Errorf("expected page 1 items kept, got %v", got)
		}
		if status := m.renderStatus(); !strings.Contains(status, "error:") || !strings.Contains(status, "API request failed") {
			t.Errorf("expected error in status bar, got %q", status)
		}

		catalog.Err = nil
		apply(m, collect(press(m, "right")))
		if status := m.renderStatus(); strings.Contains(status, "error:") {
			t.Errorf("expected error cleared after success, got %q", status)
		}
	})

	t.Run("Failure Restores Shown Page", func(t *testing.T) {
		catalog := testCatalog()
		m, _ := newTestModel(t, Options{Catalog: catalog})
		apply(m, collect(m.Init()))

		catalog.Err = shared.ErrAPIRequest
		apply(m, collect(press(m, "right")))

		if m.Page() != 1 {
			t.Errorf("expected page 1 after failed request, got %d", m.Page())
		}
		if view := m.View(); !strings.Contains(view, "page 1") {
			t.Errorf("expected header to name the shown page, got:\n%s", view)
		}

		catalog.Err = nil
		apply(m, collect(press(m, "right")))
		if m.Page() != 2 || len(catalog.Calls()) != 3 {
			t.Errorf("expected page 2 retried, got page %d after %d calls", m.Page(), len(catalog.Calls()))
		}
		if got := titles(m); got[0] != "page2-1" {
			t.Errorf("expected page 2 items, got %v", got[0])
		}
	})

	t.Run("Failed First Load Keeps Requested Page", func(t *testing.T) {
		catalog := testCatalog()
		catalog.Err = shared.ErrAPIRequest
		m, _ := newTestModel(t, Options{Catalog: catalog, Page: 2})
		apply(m, collect(m.Init()))

		if m.Page() != 2 || m.Busy() {
			t.Errorf("expected idle on page 2, got page %d busy=%v", m.Page(), m.Busy())
		}
	})

	t.Run("Empty Page", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Page: 9})
		apply(m, collect(m.Init()))

		if len(m.cards) != 0 {
			t.Fatalf("expected no cards, got %d", len(m.cards))
		}
		if view := m.View(); !strings.Contains(view, "No titles on page 9") {
			t.Errorf("expected empty message, got:\n%s", view)
		}
	})
}

func TestModelNavigation(t *testing.T) {
	t.Run("Previous Page Floors At One", func(t *testing.T) {
		catalog := testCatalog()
		m, _ := newTestModel(t, Options{Catalog: catalog})
		apply(m, collect(m.Init()))

		if cmd := press(m, "left"); cmd != nil {
			t.Error("expected no request when already on page 1")
		}
		if m.Page() != 1 || len(catalog.Calls()) != 1 {
			t.Errorf("expected page 1 and a single request, got page %d, %d calls", m.Page(), len(catalog.Calls()))
		}

		apply(m, collect(press(m, "l")))
		apply(m, collect(press(m, "h")))
		if m.Page() != 1 || len(catalog.Calls()) != 3 {
			t.Errorf("expected back on page 1 after 3 requests, got page %d, %d calls", m.Page(), len(catalog.Calls()))
		}
	})

	t.Run("Jump To Group", func(t *testing.T) {
		catalog := testCatalog()
		m, _ := newTestModel(t, Options{Catalog: catalog, Page: 3})
		apply(m, collect(m.Init()))

		apply(m, collect(press(m, "3")))
		if m.Group() != models.GroupUpcoming || m.Page() != 1 {
			t.Errorf("expected Upcoming page 1, got %s page %d", m.Group(), m.Page())
		}

		calls := catalog.Calls()
		if last := calls[len(calls)-1]; last.Group != models.GroupUpcoming {
			t.Errorf("expected request for Upcoming, got %s", last.Group)
		}
	})

	t.Run("Group Picker", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		press(m, "g")
		if !m.pickerOpen {
			t.Fatal("expected picker to open")
		}
		if view := m.View(); !strings.Contains(view, "Catalog Groups") {
			t.Errorf("expected picker in view, got:\n%s", view)
		}

		press(m, "down")
		cmd := press(m, "enter")
		if m.pickerOpen {
			t.Error("expected picker closed after selection")
		}
		if m.Group() != models.GroupTopRated || !m.Busy() {
			t.Errorf("expected TopRated request in flight, got %s busy=%v", m.Group(), m.Busy())
		}
		apply(m, collect(cmd))
		if m.Busy() {
			t.Error("expected load to complete")
		}
	})

	t.Run("Picker Escape", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		press(m, "g")
		if cmd := press(m, "esc"); cmd != nil {
			t.Error("expected no command when closing the picker")
		}
		if m.pickerOpen || m.Group() != models.GroupPopular {
			t.Error("expected picker closed without changing group")
		}
	})

	t.Run("Quit Cancels In-Flight Request", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		m.Init()

		cmd := press(m, "q")
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
		if m.Busy() {
			t.Error("expected busy cleared on quit")
		}
	})
}

func TestModelCards(t *testing.T) {
	t.Run("Cards Iterator", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		n := 0
		for i, c := range m.Cards() {
			if c != m.cards[i] {
				t.Fatalf("card %d out of order", i)
			}
			n++
		}
		if n != 20 {
			t.Errorf("expected 20 cards, got %d", n)
		}

		for i := range m.Cards() {
			if i == 2 {
				break
			}
		}
		if got := len(titles(m)); got != 20 {
			t.Errorf("expected sequence to restart, got %d", got)
		}
	})

	t.Run("Click Toggles Card", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		click := tea.MouseMsg{X: 5, Y: headerRows + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
		m.Update(click)
		if !m.cards[0].ShowDescription() {
			t.Fatal("expected first card details visible after click")
		}
		m.Update(click)
		if m.cards[0].ShowDescription() {
			t.Error("expected first card details hidden after second click")
		}

		cw, _ := m.cardCells()
		m.Update(tea.MouseMsg{X: cw + 1, Y: headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		if !m.cards[1].ShowDescription() || m.cards[0].ShowDescription() {
			t.Error("expected only the second card toggled")
		}
	})

	t.Run("Click Outside Grid", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		m.Update(tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		for i, c := range m.Cards() {
			if c.ShowDescription() {
				t.Errorf("card %d toggled by a header click", i)
			}
		}
	})

	t.Run("Keyboard Focus Toggle", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		press(m, "tab")
		press(m, "tab")
		if m.focus != 1 {
			t.Fatalf("expected focus on card 1, got %d", m.focus)
		}
		press(m, "enter")
		if !m.cards[1].ShowDescription() {
			t.Error("expected focused card toggled")
		}

		press(m, "esc")
		press(m, "shift+tab")
		if m.focus != 19 {
			t.Errorf("expected focus to wrap to the last card, got %d", m.focus)
		}
	})

	t.Run("Staggered Reveal", func(t *testing.T) {
		m, clk := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		if m.fadeLevel(0) != 0 {
			t.Errorf("expected card 0 hidden at load time, got level %d", m.fadeLevel(0))
		}
		clk.advance(100 * time.Millisecond)
		if m.fadeLevel(0) != 2 {
			t.Errorf("expected card 0 half visible, got level %d", m.fadeLevel(0))
		}
		if m.fadeLevel(2) != 0 {
			t.Errorf("expected card 2 still hidden, got level %d", m.fadeLevel(2))
		}
		if !m.animating() {
			t.Error("expected frames while cards fade in")
		}

		clk.advance(2 * time.Second)
		if m.fadeLevel(19) != fadeLevels {
			t.Errorf("expected last card fully visible, got level %d", m.fadeLevel(19))
		}
		if m.animating() {
			t.Error("expected no frames once the reveal is done")
		}
	})

	t.Run("Posters", func(t *testing.T) {
		catalog := testCatalog()
		catalog.Pages[1][0].Image = "https://img.test/a.jpg"
		catalog.Pages[1][1].Image = "https://img.test/a.jpg"
		catalog.Pages[1][2].Image = "https://img.test/b.jpg"
		m, _ := newTestModel(t, Options{Catalog: catalog, Posters: &tu.MockPosters{}})

		apply(m, collect(m.Init()))

		posters := only(collect(tea.Batch(m.fetchPosters(m.tracker.Items())...)), MsgPosterLoaded)
		if len(posters) != 0 {
			t.Errorf("expected no duplicate fetches, got %d", len(posters))
		}
		if len(m.art) != 2 {
			t.Errorf("expected 2 decoded posters, got %d", len(m.art))
		}
		if len(m.pending) != 0 {
			t.Errorf("expected no pending fetches, got %d", len(m.pending))
		}
	})

	t.Run("Poster Failure", func(t *testing.T) {
		catalog := testCatalog()
		catalog.Pages[1][0].Image = "https://img.test/broken.jpg"
		m, clk := newTestModel(t, Options{Catalog: catalog, Posters: &tu.MockPosters{Err: shared.ErrImageUnavailable}})

		apply(m, collect(m.Init()))
		if len(m.art) != 0 {
			t.Error("expected no poster stored on failure")
		}
		clk.advance(5 * time.Second)
		if view := m.View(); !strings.Contains(view, "page1-1") {
			t.Error("expected placeholder with title for a failed poster")
		}
	})
}

func TestModelParallax(t *testing.T) {
	motion := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
	}
	frames := func(m *Model, n int) {
		for range n {
			m.Update(frameMsg(time.Time{}))
		}
	}

	t.Run("Pointer Pans Grid", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		m.Update(motion(150, 50))
		if !m.animating() {
			t.Error("expected frames while the springs move")
		}
		if !m.Offset().IsZero() {
			t.Errorf("expected pan to start at origin, got %+v", m.Offset())
		}

		frames(m, 30)
		if off := m.Offset(); off.TranslateX >= 0 || off.TranslateY >= 0 {
			t.Errorf("expected grid panned up and left, got %+v", off)
		}
	})

	t.Run("Resize Resets Offset", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		m.Update(motion(150, 50))
		frames(m, 30)
		if m.Offset().IsZero() {
			t.Fatal("expected non-zero offset before resize")
		}

		m.Update(tea.WindowSizeMsg{Width: 90, Height: 40})
		if !m.Offset().IsZero() {
			t.Errorf("expected (0,0) after resize, got %+v", m.Offset())
		}
		if cw, _ := m.cardCells(); cw != 35 {
			t.Errorf("expected 280px cards (35 cells) at 720px, got %d", cw)
		}
	})

	t.Run("Pointer Ignored While Busy", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		m.Init()

		m.Update(motion(150, 50))
		if m.parallax.Tracking() {
			t.Error("expected pointer ignored while loading")
		}
	})

	t.Run("Springs Resume After Failed Fetch", func(t *testing.T) {
		catalog := testCatalog()
		m, _ := newTestModel(t, Options{Catalog: catalog})
		apply(m, collect(m.Init()))

		m.Update(motion(150, 50))
		frames(m, 2)

		catalog.Err = shared.ErrAPIRequest
		msgs := collect(press(m, "right"))
		frames(m, 1)
		if m.ticking {
			t.Fatal("expected no frame pending while busy")
		}

		loaded := only(msgs, MsgCatalogLoaded)
		if len(loaded) != 1 {
			t.Fatalf("expected one catalog response, got %d", len(loaded))
		}
		_, cmd := m.Update(loaded[0])
		if m.Busy() || m.parallax.Settled() {
			t.Fatalf("expected idle grid with moving springs, busy=%v settled=%v", m.Busy(), m.parallax.Settled())
		}
		if len(only(collect(cmd), MsgFrame)) != 1 {
			t.Error("expected a frame scheduled after the failure")
		}
	})

	t.Run("Hover Follows Translation", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		m.Update(motion(5, headerRows+1))
		if m.hovered() != 0 {
			t.Errorf("expected first card hovered, got %d", m.hovered())
		}
	})
}

func TestModelWatchlist(t *testing.T) {
	t.Run("Save Focused Card", func(t *testing.T) {
		wl := &mockWatchlist{}
		m, _ := newTestModel(t, Options{Watchlist: wl, Group: models.GroupTrending})
		apply(m, collect(m.Init()))

		press(m, "tab")
		apply(m, collect(press(m, "w")))

		if len(wl.entries) != 1 || wl.entries[0].Title() != "page1-1" || wl.entries[0].Group() != models.GroupTrending {
			t.Fatalf("unexpected entries %+v", wl.entries)
		}
		if !strings.Contains(m.renderStatus(), "Saved") {
			t.Errorf("expected confirmation, got %q", m.renderStatus())
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		wl := &mockWatchlist{err: fmt.Errorf("%w: Popular/page1-1", shared.ErrDuplicate)}
		m, _ := newTestModel(t, Options{Watchlist: wl})
		apply(m, collect(m.Init()))

		press(m, "tab")
		apply(m, collect(press(m, "w")))
		if !strings.Contains(m.renderStatus(), "already on the watchlist") {
			t.Errorf("expected duplicate notice, got %q", m.renderStatus())
		}
	})

	t.Run("Nothing Selected", func(t *testing.T) {
		wl := &mockWatchlist{}
		m, _ := newTestModel(t, Options{Watchlist: wl})
		apply(m, collect(m.Init()))

		if cmd := press(m, "w"); cmd != nil {
			t.Error("expected no save without focus or hover")
		}
	})

	t.Run("Not Configured", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		apply(m, collect(m.Init()))

		press(m, "tab")
		press(m, "w")
		if !strings.Contains(m.renderStatus(), "not configured") {
			t.Errorf("expected warning, got %q", m.renderStatus())
		}
	})
}
