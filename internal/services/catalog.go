// Catalog listing [Catalog] implementation
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

const (
	defaultCatalogHost     = "tvshow.p.rapidapi.com"
	defaultCatalogLanguage = "en-US"

	headerAPIKey  = "x-rapidapi-key"
	headerAPIHost = "x-rapidapi-host"
)

var _ Catalog = (*CatalogService)(nil)

// CatalogOpts configures a [CatalogService].
type CatalogOpts struct {
	BaseURL    string
	APIKey     string
	Host       string
	Language   string
	Adult      bool
	Timeout    time.Duration
	HTTPClient *http.Client
}

// CatalogService fetches catalog listings over HTTP.
type CatalogService struct {
	baseURL    string
	apiKey     string
	host       string
	language   string
	adult      bool
	httpClient *http.Client
}

// NewCatalogService creates a catalog client. Host and language fall back to the RapidAPI defaults.
func NewCatalogService(opts CatalogOpts) *CatalogService {
	if opts.Host == "" {
		opts.Host = defaultCatalogHost
	}
	if opts.Language == "" {
		opts.Language = defaultCatalogLanguage
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &CatalogService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		host:       opts.Host,
		language:   opts.Language,
		adult:      opts.Adult,
		httpClient: client,
	}
}

// NewCatalogServiceFromConfig builds a [CatalogService] from the [shared.CatalogConfig] section.
func NewCatalogServiceFromConfig(c shared.CatalogConfig, client *http.Client) *CatalogService {
	return NewCatalogService(CatalogOpts{
		BaseURL:    c.BaseURL,
		APIKey:     c.APIKey,
		Host:       c.Host,
		Language:   c.Language,
		Adult:      c.Adult,
		Timeout:    time.Duration(c.TimeoutSeconds) * time.Second,
		HTTPClient: client,
	})
}

// Name returns the service name.
func (c *CatalogService) Name() string {
	return c.host
}

// ListingURL returns the listing URL for group and page, keeping the query order the API documents.
func (c *CatalogService) ListingURL(group models.Group, page int) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: catalog base URL is empty", shared.ErrInvalidConfig)
	}
	if page < 1 {
		return "", fmt.Errorf("%w: page must be >= 1, got %d", shared.ErrInvalidArgument, page)
	}
	if group == "" {
		return "", fmt.Errorf("%w: empty group", shared.ErrUnknownGroup)
	}

	return fmt.Sprintf("%s/%s?Page=%d&Language=%s&Adult=%t",
		c.baseURL, url.PathEscape(string(group)), page, url.QueryEscape(c.language), c.adult), nil
}

// ListCatalog fetches one listing page and decodes the JSON array body.
func (c *CatalogService) ListCatalog(ctx context.Context, group models.Group, page int) ([]models.CatalogItem, error) {
	listingURL, err := c.ListingURL(group, page)
	if err != nil {
		return nil, err
	}

	var items []models.CatalogItem
	if err := c.doRequest(ctx, listingURL, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// authorize attaches the API credentials to req.
func (c *CatalogService) authorize(req *http.Request) {
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPIHost, c.host)
	req.Header.Set("Accept", "application/json")
}

func (c *CatalogService) doRequest(ctx context.Context, fullURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", shared.ErrDecodeResponse, err)
	}

	return nil
}
