package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/shared"
)

// EpisodeRepository persists episodes in import order.
type EpisodeRepository struct {
	db *sql.DB
}

// NewEpisodeRepository creates a new EpisodeRepository with the given database connection
func NewEpisodeRepository(db *sql.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// insert stores ep at position through ex with a generated ID.
func (r *EpisodeRepository) insert(ex execer, ep models.Episode, position int) error {
	if err := ep.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO episodes (id, position, title, description, series_code, series, date, link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := ex.Exec(query,
		shared.GenerateID(),
		position,
		ep.Title,
		nullable(ep.Description),
		ep.SeriesCode,
		ep.Series,
		ep.Date.String(),
		ep.Link,
	)
	if err != nil {
		return fmt.Errorf("failed to insert episode %q: %w", ep.Title, err)
	}
	return nil
}

// List returns every episode in import order
func (r *EpisodeRepository) List() ([]models.Episode, error) {
	return r.query(`
		SELECT title, description, series_code, series, date, link
		FROM episodes
		ORDER BY position
	`)
}

// ListBySeries returns the episodes of one series in import order
func (r *EpisodeRepository) ListBySeries(code string) ([]models.Episode, error) {
	return r.query(`
		SELECT title, description, series_code, series, date, link
		FROM episodes
		WHERE series_code = ?
		ORDER BY position
	`, code)
}

// Count returns the number of stored episodes
func (r *EpisodeRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM episodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count episodes: %w", err)
	}
	return count, nil
}

func (r *EpisodeRepository) query(query string, args ...any) ([]models.Episode, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []models.Episode
	for rows.Next() {
		var (
			ep          models.Episode
			description sql.NullString
			date        string
		)
		if err := rows.Scan(&ep.Title, &description, &ep.SeriesCode, &ep.Series, &date, &ep.Link); err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		ep.Description = description.String
		if ep.Date, err = models.ParseDate(date); err != nil {
			return nil, fmt.Errorf("episode %q: %w", ep.Title, err)
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}
