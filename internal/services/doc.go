// Package services implements the HTTP clients used by the gallery.
//
// # Catalog
//
// [CatalogService] implements [Catalog] against a RapidAPI-style listing endpoint:
//
//	GET <base>/<group>?Page=<page>&Language=<lang>&Adult=<bool>
//
// with the API key sent as x-rapidapi-key and the host identifier as x-rapidapi-host.
// The response body is a JSON array of [models.CatalogItem] and is decoded without validation.
// Requests honor context cancellation, which is how the gallery aborts superseded page loads.
//
// # Posters
//
// [PosterFetcher] implements [PosterSource]: it downloads card background images through a
// shared rate limiter and decodes them with imaging.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrDecodeResponse] : body was not the expected JSON shape
//   - [shared.ErrImageUnavailable] : poster could not be downloaded or decoded
//
// Context cancellation is returned unwrapped-compatible so callers can test it with errors.Is.
package services
