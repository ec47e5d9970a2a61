package ui

import (
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/marquee/internal/gallery"
	"github.com/desertthunder/marquee/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogLoaded MsgKind = iota
	MsgPosterLoaded
	MsgFrame
	MsgWatchlistSaved
)

type catalogResult struct {
	ticket gallery.Ticket
	items  []models.CatalogItem
	err    error
}

type posterResult struct {
	url string
	img image.Image
	err error
}

type watchlistResult struct {
	title string
	entry *models.WatchlistEntry
	err   error
}

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(ticket gallery.Ticket, items []models.CatalogItem, err error) Msg {
	return Msg{kind: MsgCatalogLoaded, data: catalogResult{ticket, items, err}}
}

// posterLoadedMsg is the constructor for [MsgPosterLoaded]
func posterLoadedMsg(url string, img image.Image, err error) Msg {
	return Msg{kind: MsgPosterLoaded, data: posterResult{url, img, err}}
}

// frameMsg is the constructor for [MsgFrame]
func frameMsg(t time.Time) Msg {
	return Msg{kind: MsgFrame, data: t}
}

// watchlistSavedMsg is the constructor for [MsgWatchlistSaved]
func watchlistSavedMsg(title string, entry *models.WatchlistEntry, err error) Msg {
	return Msg{kind: MsgWatchlistSaved, data: watchlistResult{title, entry, err}}
}
