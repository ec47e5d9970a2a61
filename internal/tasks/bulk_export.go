package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

const (
	defaultWorkers   = 3
	maxWorkers       = 10
	defaultRateLimit = 2.0
	manifestFilename = "export_manifest.json"
)

// BulkExportOpts contains configuration for bulk page exports.
type BulkExportOpts struct {
	Group      models.Group     // Catalog group to export
	Pages      []int            // Pages to fetch, in request order
	Format     formatter.Format // Output format of each page file
	OutputDir  string           // Base output directory (default: {group}_export_{epoch})
	NumWorkers int              // Concurrent writers (default: 3, max: 10)
	RateLimit  float64          // Page requests per second (default: 2)
}

// PageExportResult records the outcome for a single page.
type PageExportResult struct {
	Page    int    `json:"page"`
	Items   int    `json:"items"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export. Results are ordered by page.
type BulkExportResult struct {
	Group           models.Group       `json:"group"`
	Format          formatter.Format   `json:"format"`
	TotalPages      int                `json:"totalPages"`
	Successful      int                `json:"successful"`
	Failed          int                `json:"failed"`
	OutputDirectory string             `json:"outputDirectory"`
	CreatedAt       time.Time          `json:"createdAt"`
	Results         []PageExportResult `json:"results"`
	ManifestPath    string             `json:"-"`
}

// pageJob carries a fetched page, or the page number and error of a failed fetch.
type pageJob struct {
	page    *models.CatalogPage
	pageNum int
	err     error
}

// Exporter runs bulk operations against a [services.Catalog].
type Exporter struct {
	catalog services.Catalog
	logger  *log.Logger
}

// NewExporter creates an exporter. A nil logger logs to stderr.
func NewExporter(catalog services.Catalog, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{catalog: catalog, logger: logger}
}

// PageRange returns the inclusive list of pages from..to.
func PageRange(from, to int) ([]int, error) {
	if from < 1 {
		return nil, fmt.Errorf("%w: first page must be >= 1, got %d", shared.ErrInvalidArgument, from)
	}
	if to < from {
		return nil, fmt.Errorf("%w: last page %d is before first page %d", shared.ErrInvalidArgument, to, from)
	}
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages, nil
}

// BulkExport fetches opts.Pages of opts.Group and writes one file per page plus a manifest.
//
// Pages are fetched sequentially under a rate limit and handed, with any fetch error,
// to a worker pool that writes them. Only the workers send on the results channel.
// Per-page failures are reported in the result; only setup errors, cancellation
// and a manifest write failure are returned as errors.
func (e *Exporter) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if len(opts.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages to export", shared.ErrInvalidArgument)
	}
	if opts.Group.Index() < 0 {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownGroup, opts.Group)
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatMarkdown
	}

	now := time.Now()
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("%s_export_%d", strings.ToLower(string(opts.Group)), now.Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger := shared.WithLogger(e.logger, "group", opts.Group, "format", opts.Format)
	logger.Info("starting bulk export", "pages", len(opts.Pages), "dir", opts.OutputDir)

	result := &BulkExportResult{
		Group:           opts.Group,
		Format:          opts.Format,
		TotalPages:      len(opts.Pages),
		OutputDirectory: opts.OutputDir,
		CreatedAt:       now.UTC(),
		Results:         make([]PageExportResult, 0, len(opts.Pages)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	total := len(opts.Pages)

	jobs := make(chan pageJob, total)
	results := make(chan PageExportResult, total)

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, pageNum := range opts.Pages {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			sendProgress(prog, fetchingPageUpdate(i+1, total, opts.Group, pageNum))

			items, err := e.catalog.ListCatalog(ctx, opts.Group, pageNum)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("page fetch failed", "page", pageNum, "error", err)
				jobs <- pageJob{pageNum: pageNum, err: err}
				continue
			}

			jobs <- pageJob{page: &models.CatalogPage{Group: opts.Group, Page: pageNum, Items: items}}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Successful++
			sendProgress(prog, exportCompletedUpdate(completed, total, res))
		} else {
			result.Failed++
			sendProgress(prog, exportFailedUpdate(completed, total, res))
		}
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].Page < result.Results[j].Page
	})

	if err := ctx.Err(); err != nil {
		logger.Warn("bulk export cancelled", "completed", completed, "total", total)
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestFilename)
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	logger.Info("bulk export finished", "successful", result.Successful, "failed", result.Failed)
	return result, nil
}

// exportWorker writes pages from the jobs channel until it is closed.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan pageJob,
	results chan<- PageExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		if job.err != nil {
			results <- PageExportResult{Page: job.pageNum, Error: fmt.Sprintf("failed to fetch page: %v", job.err)}
			continue
		}
		results <- exportPage(job.page, opts)
	}
}

func exportPage(page *models.CatalogPage, opts BulkExportOpts) PageExportResult {
	res := PageExportResult{Page: page.Page, Items: len(page.Items)}

	path := filepath.Join(opts.OutputDir, formatter.DefaultFilename(page, opts.Format))
	written, err := formatter.WriteExport(page, opts.Format, path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.File = written
	res.Success = true
	return res
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func sendProgress(prog chan<- ProgressUpdate, u ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- u:
	default:
	}
}
