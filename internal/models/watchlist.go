package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/shared"
)

var _ Model = (*WatchlistEntry)(nil)

// WatchlistEntry is a catalog item saved from the gallery.
//
// Entries are unique per (group, title).
type WatchlistEntry struct {
	id               string
	sequence         int
	group            Group
	title            string
	image            string
	releaseDate      string
	originalLanguage string
	genres           []string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewWatchlistEntry builds an unsaved entry from a catalog item.
func NewWatchlistEntry(sequence int, group Group, item CatalogItem) *WatchlistEntry {
	now := time.Now().UTC()
	return &WatchlistEntry{
		sequence:         sequence,
		group:            group,
		title:            item.Title,
		image:            item.Image,
		releaseDate:      item.ReleaseDate,
		originalLanguage: item.OriginalLanguage,
		genres:           append([]string(nil), item.Genres...),
		createdAt:        now,
		updatedAt:        now,
	}
}

func (w *WatchlistEntry) ID() string               { return w.id }
func (w *WatchlistEntry) Sequence() int            { return w.sequence }
func (w *WatchlistEntry) Group() Group             { return w.group }
func (w *WatchlistEntry) Title() string            { return w.title }
func (w *WatchlistEntry) Image() string            { return w.image }
func (w *WatchlistEntry) ReleaseDate() string      { return w.releaseDate }
func (w *WatchlistEntry) OriginalLanguage() string { return w.originalLanguage }
func (w *WatchlistEntry) Genres() []string         { return w.genres }
func (w *WatchlistEntry) CreatedAt() time.Time     { return w.createdAt }
func (w *WatchlistEntry) UpdatedAt() time.Time     { return w.updatedAt }

func (w *WatchlistEntry) SetID(id string)              { w.id = id }
func (w *WatchlistEntry) SetSequence(seq int)          { w.sequence = seq }
func (w *WatchlistEntry) SetCreatedAt(t time.Time)     { w.createdAt = t }
func (w *WatchlistEntry) SetUpdatedAt(t time.Time)     { w.updatedAt = t }
func (w *WatchlistEntry) SetTitle(title string)        { w.title = title }
func (w *WatchlistEntry) SetGenres(genres []string)    { w.genres = genres }
func (w *WatchlistEntry) SetImage(image string)        { w.image = image }
func (w *WatchlistEntry) SetReleaseDate(date string)   { w.releaseDate = date }
func (w *WatchlistEntry) SetOriginalLanguage(l string) { w.originalLanguage = l }

// GenresField joins genres for storage in a single column.
func (w *WatchlistEntry) GenresField() string {
	return strings.Join(w.genres, "|")
}

// ParseGenresField is the inverse of [WatchlistEntry.GenresField].
func ParseGenresField(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// Item converts the entry back into the catalog shape used by the formatter and UI.
func (w *WatchlistEntry) Item() CatalogItem {
	return CatalogItem{
		Title:            w.title,
		Image:            w.image,
		Genres:           w.genres,
		OriginalLanguage: w.originalLanguage,
		ReleaseDate:      w.releaseDate,
	}
}

// Validate requires an id, a title and a known group.
func (w *WatchlistEntry) Validate() error {
	if w.id == "" {
		return fmt.Errorf("%w: watchlist entry id is empty", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(w.title) == "" {
		return fmt.Errorf("%w: watchlist entry title is empty", shared.ErrInvalidInput)
	}
	if w.group.Index() < 0 {
		return fmt.Errorf("%w: %q", shared.ErrUnknownGroup, w.group)
	}
	return nil
}
