// Package models defines the catalog entities shown by the gallery and the persisted watchlist entity.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs decoded verbatim from the catalog API
//   - [CatalogItem] : one movie or show as returned by a listing endpoint
//   - [CatalogPage] : the items of one (group, page) listing
//   - [Group] : the fixed set of listing categories
//
// 2. Persistent Entities: database-backed models
//   - [WatchlistEntry] : a catalog item bookmarked from the gallery
//
// Persistent entities implement the [Model] interface and are stored through a [Repository].
package models
