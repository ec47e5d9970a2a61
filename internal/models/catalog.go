package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/marquee/internal/shared"
)

// CatalogItem is one movie or show from a catalog listing.
//
// Fields are decoded as-is; absent or mistyped keys stay zero-valued and render blank.
type CatalogItem struct {
	Title            string   `json:"title"`
	Image            string   `json:"image"`
	Genres           []string `json:"genres"`
	OriginalLanguage string   `json:"originalLanguage"`
	ReleaseDate      string   `json:"releaseDate"`
	Overview         string   `json:"overview"`
}

// UnmarshalJSON decodes each known field on its own. A field whose JSON type does not
// match stays zero-valued, as does an item that is not an object.
func (c *CatalogItem) UnmarshalJSON(data []byte) error {
	*c = CatalogItem{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	decodeField(fields["title"], &c.Title)
	decodeField(fields["image"], &c.Image)
	decodeField(fields["genres"], &c.Genres)
	decodeField(fields["originalLanguage"], &c.OriginalLanguage)
	decodeField(fields["releaseDate"], &c.ReleaseDate)
	decodeField(fields["overview"], &c.Overview)
	return nil
}

func decodeField[T any](raw json.RawMessage, dst *T) {
	if len(raw) == 0 {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// CatalogPage holds the items of a single (group, page) listing.
type CatalogPage struct {
	Group Group         `json:"group"`
	Page  int           `json:"page"`
	Items []CatalogItem `json:"items"`
}

// Group selects which listing endpoint is queried. The value is used verbatim as a URL path segment.
type Group string

const (
	GroupPopular    Group = "Popular"
	GroupTopRated   Group = "TopRated"
	GroupUpcoming   Group = "Upcoming"
	GroupNowPlaying Group = "NowPlaying"
	GroupTrending   Group = "Trending"
)

// DefaultGroup is the listing shown on startup.
const DefaultGroup = GroupPopular

var groups = []Group{GroupPopular, GroupTopRated, GroupUpcoming, GroupNowPlaying, GroupTrending}

// Groups returns the fixed set of catalog groups in display order.
func Groups() []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	return out
}

// ParseGroup matches s against the known groups, ignoring case, spaces, dashes and underscores.
func ParseGroup(s string) (Group, error) {
	key := normalizeGroup(s)
	for _, g := range groups {
		if normalizeGroup(string(g)) == key {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", shared.ErrUnknownGroup, s)
}

// Label returns a human readable name, e.g. "Top Rated" for [GroupTopRated].
func (g Group) Label() string {
	var b strings.Builder
	for i, r := range string(g) {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Index returns the position of g in [Groups], or -1.
func (g Group) Index() int {
	for i, known := range groups {
		if known == g {
			return i
		}
	}
	return -1
}

func (g Group) String() string { return string(g) }

func normalizeGroup(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
