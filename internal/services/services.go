// package services defines the Catalog and PosterSource interfaces for the HTTP collaborators of the gallery
package services

import (
	"context"
	"image"

	"github.com/desertthunder/marquee/internal/models"
)

// Catalog lists catalog items for a group and page.
type Catalog interface {
	// ListCatalog fetches one page of a listing group.
	// Implementations must return ctx.Err() (or an error wrapping it) once ctx is cancelled.
	ListCatalog(ctx context.Context, group models.Group, page int) ([]models.CatalogItem, error)

	// Name returns a display name for the catalog provider.
	Name() string
}

// PosterSource loads the background image of a card.
type PosterSource interface {
	Poster(ctx context.Context, url string) (image.Image, error)
}
