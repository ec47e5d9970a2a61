package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/layout"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/ui"
	"github.com/urfave/cli/v3"
)

func springParams(c shared.SpringConfig) layout.SpringParams {
	return layout.SpringParams{Stiffness: c.Stiffness, Damping: c.Damping, Mass: c.Mass}
}

// galleryOptions maps the display section of the config onto [ui.Options].
func (r *Runner) galleryOptions(group models.Group, page int, logger *log.Logger) ui.Options {
	d := r.config.Display
	return ui.Options{
		Catalog: r.catalog,
		Posters: r.posters,
		Logger:  logger,
		Metrics: layout.NewCellMetrics(d.CellWidth, d.CellHeight),
		Parallax: layout.ParallaxOpts{
			FPS:     d.FPS,
			SpringX: springParams(d.SpringX),
			SpringY: springParams(d.SpringY),
			Clamp:   d.ClampOffset,
		},
		Columns: d.Columns,
		Stagger: time.Duration(d.StaggerMS) * time.Millisecond,
		Group:   group,
		Page:    page,
	}
}

// Browse launches the interactive catalog gallery.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	group, err := r.resolveGroup(cmd.String("group"))
	if err != nil {
		return err
	}
	page := int(cmd.Int("page"))
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", shared.ErrInvalidArgument, page)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Logging.Level))
	r.SetLogger(fileLogger)

	if r.config.Catalog.APIKey == "" {
		r.logger.Warn("catalog API key is empty", "env", shared.EnvAPIKey, "error", shared.ErrMissingCredentials)
	}

	opts := r.galleryOptions(group, page, shared.WithLogger(fileLogger, "component", "gallery"))
	if cmd.Bool("no-posters") {
		opts.Posters = nil
	}
	if !cmd.Bool("no-watchlist") {
		if repo, err := r.watchlist(); err != nil {
			r.logger.Warn("watchlist disabled", "error", err)
		} else {
			opts.Watchlist = repo
		}
	}

	model := ui.NewModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
