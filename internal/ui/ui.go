package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/marquee/internal/gallery"
	"github.com/desertthunder/marquee/internal/layout"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

const (
	headerRows = 1
	footerRows = 2
)

// Watchlist saves catalog items for later.
type Watchlist interface {
	Add(group models.Group, item models.CatalogItem) (*models.WatchlistEntry, error)
}

// Options configures a [Model]. Catalog is required; the rest have defaults.
type Options struct {
	Catalog   services.Catalog
	Posters   services.PosterSource
	Watchlist Watchlist
	Logger    *log.Logger
	Metrics   layout.CellMetrics
	Parallax  layout.ParallaxOpts
	Columns   int
	Stagger   time.Duration
	Group     models.Group
	Page      int
	Now       func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	catalog   services.Catalog
	posters   services.PosterSource
	watchlist Watchlist
	logger    *log.Logger
	metrics   layout.CellMetrics
	columns   int
	fps       int
	stagger   time.Duration
	now       func() time.Time

	tracker  *gallery.Tracker
	parallax *layout.Parallax
	reveal   gallery.Reveal
	group    models.Group
	page     int
	cards    []*Card
	art      map[string]*posterArt
	pending  map[string]bool

	// coordinates of the page the cards came from
	shownGroup models.Group
	shownPage  int

	width    int
	height   int
	mouseX   int
	mouseY   int
	hasMouse bool
	focus    int
	ticking  bool
	notice   string

	picker     list.Model
	pickerOpen bool
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Metrics == (layout.CellMetrics{}) {
		opts.Metrics = layout.NewCellMetrics(0, 0)
	}
	if opts.Columns <= 0 {
		opts.Columns = layout.Columns
	}
	if opts.Parallax.FPS <= 0 {
		opts.Parallax.FPS = 60
	}
	if opts.Stagger <= 0 {
		opts.Stagger = gallery.DefaultStagger
	}
	if opts.Group == "" {
		opts.Group = models.DefaultGroup
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Model{
		ctx:       ctx,
		catalog:   opts.Catalog,
		posters:   opts.Posters,
		watchlist: opts.Watchlist,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		columns:   opts.Columns,
		fps:       opts.Parallax.FPS,
		stagger:   opts.Stagger,
		now:       opts.Now,
		tracker:   gallery.NewTracker(),
		parallax:  layout.NewParallax(opts.Parallax),
		group:     opts.Group,
		page:      opts.Page,
		art:       make(map[string]*posterArt),
		pending:   make(map[string]bool),
		focus:     -1,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.loading)),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init fetches the first page.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Busy reports whether a catalog request is in flight.
func (m *Model) Busy() bool { return m.tracker.Busy() }

// Page returns the current page number.
func (m *Model) Page() int { return m.page }

// Group returns the current catalog group.
func (m *Model) Group() models.Group { return m.group }

// Offset returns the current grid translation in pixels.
func (m *Model) Offset() layout.RenderOffset { return m.parallax.Offset() }

// Cards yields the cards of the current page in grid order.
func (m *Model) Cards() iter.Seq2[int, *Card] {
	return func(yield func(int, *Card) bool) {
		for i, c := range m.cards {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.pickerOpen {
			return m.handlePickerKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.tracker.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgCatalogLoaded:
			return m, m.handleCatalog(msg.data.(catalogResult))
		case MsgPosterLoaded:
			m.handlePoster(msg.data.(posterResult))
			return m, nil
		case MsgFrame:
			return m, m.handleFrame()
		case MsgWatchlistSaved:
			m.handleWatchlist(msg.data.(watchlistResult))
			return m, nil
		}
	}

	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.parallax.Resize(m.metrics.Viewport(width, height))
	m.hasMouse = false
	if m.pickerOpen {
		m.picker.SetSize(width, m.gridRows())
	}
}

// navigate switches to (group, page) and fetches it. Unchanged coordinates are a no-op.
func (m *Model) navigate(group models.Group, page int) tea.Cmd {
	page = max(page, 1)
	if group == m.group && page == m.page {
		return nil
	}
	m.group, m.page = group, page
	return m.load()
}

// load cancels the in-flight request and starts one for the current page.
func (m *Model) load() tea.Cmd {
	ctx, ticket := m.tracker.Begin(m.ctx, m.group, m.page)
	m.logger.Debug("requesting catalog page", "group", ticket.Group, "page", ticket.Page, "generation", ticket.Generation)

	catalog := m.catalog
	fetch := func() tea.Msg {
		items, err := catalog.ListCatalog(ctx, ticket.Group, ticket.Page)
		return catalogLoadedMsg(ticket, items, err)
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

func (m *Model) handleCatalog(res catalogResult) tea.Cmd {
	outcome := m.tracker.Resolve(res.ticket, res.items, res.err)
	switch outcome {
	case gallery.Superseded, gallery.Cancelled:
		m.logger.Debug("dropping catalog response", "generation", res.ticket.Generation, "outcome", outcome)
		return nil
	case gallery.Failed:
		m.logger.Error("catalog request failed", "group", res.ticket.Group, "page", res.ticket.Page, "err", res.err)
		if m.shownPage > 0 {
			m.group, m.page = m.shownGroup, m.shownPage
		}
		return m.animate()
	}

	m.shownGroup, m.shownPage = res.ticket.Group, res.ticket.Page

	items := m.tracker.Items()
	m.cards = make([]*Card, len(items))
	for i, item := range items {
		m.cards[i] = NewCard(item)
	}
	m.focus = -1
	m.notice = ""
	m.reveal = gallery.NewReveal(m.now(), m.stagger)
	m.logger.Info("catalog page loaded", "group", res.ticket.Group, "page", res.ticket.Page, "items", len(items))

	return tea.Batch(append(m.fetchPosters(items), m.animate())...)
}

func (m *Model) fetchPosters(items []models.CatalogItem) []tea.Cmd {
	if m.posters == nil {
		return nil
	}

	var cmds []tea.Cmd
	for _, item := range items {
		url := item.Image
		if url == "" || m.pending[url] || m.art[url] != nil {
			continue
		}
		m.pending[url] = true

		posters, ctx := m.posters, m.ctx
		cmds = append(cmds, func() tea.Msg {
			img, err := posters.Poster(ctx, url)
			return posterLoadedMsg(url, img, err)
		})
	}
	return cmds
}

func (m *Model) handlePoster(res posterResult) {
	delete(m.pending, res.url)
	if res.err != nil {
		if !errors.Is(res.err, context.Canceled) {
			m.logger.Warn("poster unavailable", "url", res.url, "err", res.err)
		}
		return
	}
	m.art[res.url] = newPosterArt(res.img)
}

func (m *Model) handleWatchlist(res watchlistResult) {
	switch {
	case errors.Is(res.err, shared.ErrDuplicate):
		m.notice = fmt.Sprintf("%q is already on the watchlist", res.title)
	case res.err != nil:
		m.logger.Error("watchlist save failed", "title", res.title, "err", res.err)
		m.notice = styles.err.Render("watchlist: " + res.err.Error())
	default:
		m.notice = styles.ok.Render(fmt.Sprintf("Saved %q to the watchlist", res.title))
	}
}

// animating reports whether another frame would change the picture.
func (m *Model) animating() bool {
	if m.tracker.Busy() {
		return false
	}
	if m.parallax.Tracking() && !m.parallax.Settled() {
		return true
	}
	return !m.reveal.Done(len(m.cards), m.now())
}

// animate schedules the next frame unless one is pending or nothing moves.
func (m *Model) animate() tea.Cmd {
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrame() tea.Cmd {
	m.ticking = false
	m.parallax.Step()
	return m.animate()
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.tracker.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.next):
		return m, m.navigate(m.group, m.page+1)
	case key.Matches(msg, m.keys.prev):
		return m, m.navigate(m.group, m.page-1)
	case key.Matches(msg, m.keys.jump):
		groups := models.Groups()
		if idx := int(msg.String()[0] - '1'); idx >= 0 && idx < len(groups) {
			return m, m.navigate(groups[idx], 1)
		}
	case key.Matches(msg, m.keys.groups):
		m.picker = newGroupPicker(m.group, m.width, m.gridRows())
		m.pickerOpen = true
	case m.tracker.Busy():
		return m, nil
	case key.Matches(msg, m.keys.focusNext):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.focusPrev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.toggle):
		if c := m.card(m.focus); c != nil {
			c.Toggle()
		}
	case key.Matches(msg, m.keys.save):
		return m, m.save()
	case key.Matches(msg, m.keys.back):
		m.focus = -1
	}
	return m, nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.tracker.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.groups):
		m.pickerOpen = false
		return m, nil
	case msg.String() == "enter":
		m.pickerOpen = false
		if g, ok := selectedGroup(m.picker); ok {
			return m, m.navigate(g, 1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	n := len(m.cards)
	if n == 0 {
		m.focus = -1
		return
	}
	if m.focus < 0 {
		if delta > 0 {
			m.focus = 0
		} else {
			m.focus = n - 1
		}
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

// save adds the focused card, or the hovered one, to the watchlist.
func (m *Model) save() tea.Cmd {
	if m.watchlist == nil {
		m.notice = styles.warn.Render("watchlist is not configured")
		return nil
	}

	idx := m.focus
	if idx < 0 {
		idx = m.hovered()
	}
	c := m.card(idx)
	if c == nil {
		return nil
	}

	watchlist, group, item := m.watchlist, m.group, c.Item()
	return func() tea.Msg {
		entry, err := watchlist.Add(group, item)
		return watchlistSavedMsg(item.Title, entry, err)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.tracker.Busy() || m.pickerOpen {
		return nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.mouseX, m.mouseY, m.hasMouse = msg.X, msg.Y, true
		x, y := m.metrics.Point(msg.X, msg.Y)
		m.parallax.Move(layout.PointerOffset{
			Left:   x,
			Top:    y,
			Width:  float64(layout.GridWidth(m.viewport().Width, m.columns)),
			Height: float64(layout.Rows(len(m.cards), m.columns) * m.viewport().CardHeight()),
		})
		return m.animate()

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.mouseX, m.mouseY, m.hasMouse = msg.X, msg.Y, true
		if idx := m.hitTest(msg.X, msg.Y); idx >= 0 {
			m.cards[idx].Toggle()
			m.focus = idx
		}
	}
	return nil
}

func (m *Model) card(idx int) *Card {
	if idx < 0 || idx >= len(m.cards) {
		return nil
	}
	return m.cards[idx]
}

// View renders the UI based on the current state.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.tracker.Busy() {
		return m.renderLoading()
	}

	var body []string
	if m.pickerOpen {
		body = strings.Split(m.picker.View(), "\n")
	} else {
		body = m.renderGrid()
	}
	body = fitRows(body, m.width, m.gridRows())

	if m.help.ShowAll {
		full := strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")
		if len(full) < len(body) {
			copy(body[len(body)-len(full):], fitRows(full, m.width, len(full)))
		}
	}

	rows := make([]string, 0, m.height)
	rows = append(rows, m.renderHeader())
	rows = append(rows, body...)
	rows = append(rows, m.renderStatus(), m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(rows, "\n")
}
