package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/shared"
)

// CatalogRepository stores and loads the whole catalog.
type CatalogRepository struct {
	db       *sql.DB
	series   *SeriesRepository
	episodes *EpisodeRepository
}

// NewCatalogRepository creates a new CatalogRepository with the given database connection
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{
		db:       db,
		series:   NewSeriesRepository(db),
		episodes: NewEpisodeRepository(db),
	}
}

// Series exposes the series repository.
func (r *CatalogRepository) Series() *SeriesRepository { return r.series }

// Episodes exposes the episode repository.
func (r *CatalogRepository) Episodes() *EpisodeRepository { return r.episodes }

// Replace swaps the stored catalog for c in a single transaction and records the import.
func (r *CatalogRepository) Replace(c *models.Catalog, source string) (*models.Import, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"episodes", "series"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, s := range c.Series {
		if err := r.series.insert(tx, s, i); err != nil {
			return nil, err
		}
	}
	for i, ep := range c.Episodes {
		if err := r.episodes.insert(tx, ep, i); err != nil {
			return nil, err
		}
	}

	imp := &models.Import{
		ID:         shared.GenerateID(),
		Source:     source,
		Episodes:   len(c.Episodes),
		Series:     len(c.Series),
		ImportedAt: time.Now().UTC(),
	}
	_, err = tx.Exec(
		`INSERT INTO catalog_imports (id, source, episodes, series, imported_at) VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.Episodes, imp.Series, imp.ImportedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit catalog: %w", err)
	}
	return imp, nil
}

// Load returns the stored catalog in its stored order.
func (r *CatalogRepository) Load() (*models.Catalog, error) {
	series, err := r.series.List()
	if err != nil {
		return nil, err
	}
	episodes, err := r.episodes.List()
	if err != nil {
		return nil, err
	}
	return &models.Catalog{Series: series, Episodes: episodes}, nil
}

// LastImport returns the most recent import, or nil when the catalog was never imported.
func (r *CatalogRepository) LastImport() (*models.Import, error) {
	var imp models.Import
	err := r.db.QueryRow(`
		SELECT id, source, episodes, series, imported_at
		FROM catalog_imports
		ORDER BY imported_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&imp.ID, &imp.Source, &imp.Episodes, &imp.Series, &imp.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last import: %w", err)
	}
	return &imp, nil
}
