// Package repositories implements SQLite persistence for the watchlist.
//
// [WatchlistRepository] implements models.Repository[*models.WatchlistEntry]. Entries are unique per
// (group, title); inserting a second copy fails with shared.ErrDuplicate.
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
