package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes a range of catalog pages to disk, one file per page.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	group, err := r.resolveGroup(cmd.String("group"))
	if err != nil {
		return err
	}

	pages, err := tasks.PageRange(int(cmd.Int("from")), int(cmd.Int("to")))
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r.logger.Info("bulk export requested", "group", group, "pages", len(pages), "format", format)
	r.writePlain("Exporting %d pages of %s...\n\n", len(pages), group.Label())

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchPage:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportPage:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	exporter := tasks.NewExporter(r.catalog, r.logger)
	result, err := exporter.BulkExport(ctx, progressCh, tasks.BulkExportOpts{
		Group:      group,
		Pages:      pages,
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Pages: %d/%d exported\n", result.Successful, result.TotalPages)

	if result.Failed > 0 {
		r.writePlain("\nFailed pages:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - page %d: %s\n", res.Page, res.Error)
			}
		}
		return fmt.Errorf("%d of %d pages failed", result.Failed, result.TotalPages)
	}

	return nil
}

// exportCommand bulk-exports a page range of one group.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a range of catalog pages to files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "group",
				Aliases: []string{"g"},
				Usage:   "Catalog group (" + groupNames() + ")",
			},
			&cli.IntFlag{
				Name:  "from",
				Usage: "First page",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "to",
				Usage: "Last page (inclusive)",
				Value: 1,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (csv, md, text, table, json)",
				Value:   "md",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory (default: {group}_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent file writers",
				Value: 3,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Page requests per second",
				Value: 2,
			},
		},
		Action: r.Export,
	}
}
