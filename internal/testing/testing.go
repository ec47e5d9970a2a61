// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
)

// CatalogCall records one [MockCatalog.ListCatalog] invocation.
type CatalogCall struct {
	Group models.Group
	Page  int
}

// MockCatalog is a test double for [services.Catalog].
//
// Pages maps a page number to the items returned for it. When Block is set,
// ListCatalog waits for ctx to be cancelled or for Release to be closed.
type MockCatalog struct {
	Pages   map[int][]models.CatalogItem
	Err     error
	Block   bool
	Release chan struct{}

	mu    sync.Mutex
	calls []CatalogCall
}

func (m *MockCatalog) ListCatalog(ctx context.Context, group models.Group, page int) ([]models.CatalogItem, error) {
	m.mu.Lock()
	m.calls = append(m.calls, CatalogCall{Group: group, Page: page})
	m.mu.Unlock()

	if m.Block {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.Release:
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pages[page], nil
}

func (m *MockCatalog) Name() string { return "mock" }

// Calls returns a copy of the recorded invocations.
func (m *MockCatalog) Calls() []CatalogCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CatalogCall(nil), m.calls...)
}

// MockPosters is a test double for [services.PosterSource] returning a solid image.
type MockPosters struct {
	Err error
}

func (m *MockPosters) Poster(ctx context.Context, url string) (image.Image, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return SolidImage(8, 12, color.RGBA{R: 200, G: 40, B: 40, A: 255}), nil
}

// SolidImage returns a w×h image filled with c.
func SolidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// Items builds n catalog items titled prefix-1 ... prefix-n.
func Items(prefix string, n int) []models.CatalogItem {
	items := make([]models.CatalogItem, n)
	for i := range items {
		items[i] = models.CatalogItem{
			Title:            prefix + "-" + strconv.Itoa(i+1),
			Genres:           []string{"Drama"},
			OriginalLanguage: "en",
			ReleaseDate:      "2024-01-01",
			Overview:         "Overview of " + prefix,
		}
	}
	return items
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails once maxWrites writes have gone through
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
