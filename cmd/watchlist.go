package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v3"
)

type watchlistRow struct {
	ID          string    `json:"id"`
	Group       string    `json:"group"`
	Title       string    `json:"title"`
	Genres      []string  `json:"genres"`
	Language    string    `json:"originalLanguage"`
	ReleaseDate string    `json:"releaseDate"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newWatchlistRow(e *models.WatchlistEntry) watchlistRow {
	return watchlistRow{
		ID:          e.ID(),
		Group:       string(e.Group()),
		Title:       e.Title(),
		Genres:      e.Genres(),
		Language:    e.OriginalLanguage(),
		ReleaseDate: e.ReleaseDate(),
		Image:       e.Image(),
		CreatedAt:   e.CreatedAt(),
	}
}

// WatchlistList prints saved titles, optionally filtered by --group.
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	criteria := map[string]any{}
	if name := cmd.String("group"); name != "" {
		group, err := models.ParseGroup(name)
		if err != nil {
			return err
		}
		criteria["group"] = group
	}

	repo, err := r.watchlist()
	if err != nil {
		return fmt.Errorf("failed to open watchlist: %w", err)
	}

	entries, err := repo.List(criteria)
	if err != nil {
		return err
	}

	rows := make([]watchlistRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, newWatchlistRow(e))
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	if len(rows) == 0 {
		return r.writePlain("Watchlist is empty. Press 'w' on a card in 'marquee browse' to save it.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Watchlist (%d)", len(rows)))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow("ID", "GROUP", "TITLE", "GENRES", "RELEASED", "SAVED")
	for _, row := range rows {
		tbl.AddRow(row.ID, models.Group(row.Group).Label(), row.Title, strings.Join(row.Genres, ", "), row.ReleaseDate, row.CreatedAt.Local().Format(time.DateOnly))
	}
	return r.writePlain("%s\n", tbl.String())
}

// WatchlistRemove deletes one saved title by ID.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	repo, err := r.watchlist()
	if err != nil {
		return fmt.Errorf("failed to open watchlist: %w", err)
	}

	entry, err := repo.Get(id)
	if err != nil {
		return err
	}
	if err := repo.Delete(id); err != nil {
		return err
	}

	r.logger.Info("removed from watchlist", "id", id, "title", entry.Title())
	return r.writePlain("✓ Removed %s\n", entry.Title())
}
