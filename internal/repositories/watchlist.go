package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

var _ models.Repository[*models.WatchlistEntry] = (*WatchlistRepository)(nil)

const watchlistColumns = `id, sequence, catalog_group, title, image, release_date, original_language, genres, created_at, updated_at`

// WatchlistRepository implements models.Repository[*models.WatchlistEntry] on the watchlist table.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository with the given database connection
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create inserts a new entry with a generated ID and sequence
func (r *WatchlistRepository) Create(entry *models.WatchlistEntry) error {
	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "watchlist")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	entry.SetSequence(sequence)

	query := `
		INSERT INTO watchlist (` + watchlistColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		string(entry.Group()),
		entry.Title(),
		entry.Image(),
		entry.ReleaseDate(),
		entry.OriginalLanguage(),
		entry.GenresField(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert watchlist entry: %w", classify(err))
	}

	return nil
}

// Add saves item from group, returning the stored entry.
func (r *WatchlistRepository) Add(group models.Group, item models.CatalogItem) (*models.WatchlistEntry, error) {
	entry := models.NewWatchlistEntry(0, group, item)
	if err := r.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get retrieves an entry by ID
func (r *WatchlistRepository) Get(id string) (*models.WatchlistEntry, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist WHERE id = ?`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByTitle retrieves the entry saved for title within group
func (r *WatchlistRepository) GetByTitle(group models.Group, title string) (*models.WatchlistEntry, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist WHERE catalog_group = ? AND title = ?`
	return r.scan(r.db.QueryRow(query, string(group), title))
}

// Update rewrites the catalog fields of an existing entry
func (r *WatchlistRepository) Update(entry *models.WatchlistEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE watchlist
		SET title = ?, image = ?, release_date = ?, original_language = ?, genres = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		entry.Title(),
		entry.Image(),
		entry.ReleaseDate(),
		entry.OriginalLanguage(),
		entry.GenresField(),
		now,
		entry.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update watchlist entry: %w", classify(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: watchlist entry %s", shared.ErrNotFound, entry.ID())
	}

	return nil
}

// Delete removes an entry by ID
func (r *WatchlistRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM watchlist WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: watchlist entry %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves entries in insertion order. Supported criteria: "group" (string or [models.Group]).
func (r *WatchlistRepository) List(criteria map[string]any) ([]*models.WatchlistEntry, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist WHERE 1 = 1`
	args := []any{}

	switch group := criteria["group"].(type) {
	case models.Group:
		if group != "" {
			query += " AND catalog_group = ?"
			args = append(args, string(group))
		}
	case string:
		if group != "" {
			query += " AND catalog_group = ?"
			args = append(args, group)
		}
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var entries []*models.WatchlistEntry
	for rows.Next() {
		entry, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func (r *WatchlistRepository) scan(row scanner) (*models.WatchlistEntry, error) {
	var (
		id               string
		sequence         int
		group            string
		title            string
		image            string
		releaseDate      string
		originalLanguage string
		genres           string
		createdAt        time.Time
		updatedAt        time.Time
	)

	err := row.Scan(&id, &sequence, &group, &title, &image, &releaseDate, &originalLanguage, &genres, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: watchlist entry", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
	}

	entry := models.NewWatchlistEntry(sequence, models.Group(group), models.CatalogItem{
		Title:            title,
		Image:            image,
		ReleaseDate:      releaseDate,
		OriginalLanguage: originalLanguage,
		Genres:           models.ParseGenresField(genres),
	})
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)

	return entry, nil
}
