package services

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/time/rate"

	"github.com/desertthunder/marquee/internal/shared"
)

var _ PosterSource = (*PosterFetcher)(nil)

// PosterFetcher downloads and decodes card background images.
//
// All downloads share one token bucket so a freshly loaded page doesn't burst
// a request per card at the image host.
type PosterFetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPosterFetcher creates a fetcher allowing perSecond downloads per second (default 4).
func NewPosterFetcher(client *http.Client, perSecond float64) *PosterFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if perSecond <= 0 {
		perSecond = 4
	}

	return &PosterFetcher{
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// NewPosterFetcherFromConfig builds a [PosterFetcher] from the [shared.PostersConfig] section.
// Returns nil when posters are disabled.
func NewPosterFetcherFromConfig(c shared.PostersConfig) *PosterFetcher {
	if !c.Enabled {
		return nil
	}
	timeout := time.Duration(c.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewPosterFetcher(&http.Client{Timeout: timeout}, c.RateLimit)
}

// Poster downloads url and decodes it, honoring EXIF orientation.
func (p *PosterFetcher) Poster(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL", shared.ErrImageUnavailable)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrImageUnavailable, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrImageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", shared.ErrImageUnavailable, resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrImageUnavailable, err)
	}

	return img, nil
}
