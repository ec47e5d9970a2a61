package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// resolveGroup parses name, falling back to the configured default group.
func (r *Runner) resolveGroup(name string) (models.Group, error) {
	if name == "" {
		name = r.config.Catalog.DefaultGroup
	}
	if name == "" {
		return models.DefaultGroup, nil
	}
	return models.ParseGroup(name)
}

// Fetch requests one catalog page and renders it with the formatter package.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	group, err := r.resolveGroup(cmd.String("group"))
	if err != nil {
		return err
	}

	pageNum := int(cmd.Int("page"))
	if pageNum < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", shared.ErrInvalidArgument, pageNum)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r.logger.Info("fetching catalog page", "group", group, "page", pageNum, "provider", r.catalog.Name())

	items, err := r.catalog.ListCatalog(ctx, group, pageNum)
	if err != nil {
		return fmt.Errorf("failed to fetch %s page %d: %w", group, pageNum, err)
	}
	r.logger.Debug("catalog page fetched", "items", len(items))

	page := &models.CatalogPage{Group: group, Page: pageNum, Items: items}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	if output := cmd.String("output"); output != "" || cmd.Bool("save") {
		path, err := formatter.WriteExport(page, format, output)
		if err != nil {
			return err
		}
		r.logger.Info("export written", "path", path, "format", format)
		return r.writePlain("✓ Wrote %d titles to %s\n", len(items), path)
	}

	data, err := formatter.Render(page, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
