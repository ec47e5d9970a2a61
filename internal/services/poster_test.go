package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/marquee/internal/shared"
	tu "github.com/desertthunder/marquee/internal/testing"
)

func TestPosterFetcher(t *testing.T) {
	pngBytes := func(t *testing.T) []byte {
		t.Helper()
		var buf bytes.Buffer
		if err := png.Encode(&buf, tu.SolidImage(4, 6, color.RGBA{G: 255, A: 255})); err != nil {
			t.Fatalf("failed to encode png: %v", err)
		}
		return buf.Bytes()
	}

	t.Run("Decodes Image", func(t *testing.T) {
		data := pngBytes(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		}))
		defer server.Close()

		fetcher := NewPosterFetcher(nil, 100)
		img, err := fetcher.Poster(context.Background(), server.URL+"/poster.png")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if img.Bounds() != image.Rect(0, 0, 4, 6) {
			t.Errorf("unexpected bounds %v", img.Bounds())
		}
	})

	t.Run("Empty URL", func(t *testing.T) {
		_, err := NewPosterFetcher(nil, 0).Poster(context.Background(), "")
		if !errors.Is(err, shared.ErrImageUnavailable) {
			t.Errorf("expected ErrImageUnavailable, got %v", err)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := NewPosterFetcher(nil, 100).Poster(context.Background(), server.URL)
		if !errors.Is(err, shared.ErrImageUnavailable) {
			t.Errorf("expected ErrImageUnavailable, got %v", err)
		}
	})

	t.Run("Undecodable Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("definitely not an image"))
		}))
		defer server.Close()

		_, err := NewPosterFetcher(nil, 100).Poster(context.Background(), server.URL)
		if !errors.Is(err, shared.ErrImageUnavailable) {
			t.Errorf("expected ErrImageUnavailable, got %v", err)
		}
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewPosterFetcher(nil, 100).Poster(ctx, "http://example.com/a.png")
		if err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("From Config", func(t *testing.T) {
		config := shared.DefaultConfig()
		if NewPosterFetcherFromConfig(config.Posters) == nil {
			t.Error("expected fetcher when posters are enabled")
		}
		config.Posters.Enabled = false
		if NewPosterFetcherFromConfig(config.Posters) != nil {
			t.Error("expected nil fetcher when posters are disabled")
		}
	})
}
