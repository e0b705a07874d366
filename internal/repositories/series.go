package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/podshelf/internal/models"
)

// SeriesRepository persists the ordered series list.
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new SeriesRepository with the given database connection
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// insert stores series at position through ex.
func (r *SeriesRepository) insert(ex execer, s models.Series, position int) error {
	_, err := ex.Exec(`INSERT INTO series (code, title, position) VALUES (?, ?, ?)`, s.Code, s.Title, position)
	if err != nil {
		return fmt.Errorf("failed to insert series %q: %w", s.Code, err)
	}
	return nil
}

// List returns every series in display order
func (r *SeriesRepository) List() ([]models.Series, error) {
	rows, err := r.db.Query(`SELECT code, title FROM series ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var series []models.Series
	for rows.Next() {
		var s models.Series
		if err := rows.Scan(&s.Code, &s.Title); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

// Get retrieves a series by code
func (r *SeriesRepository) Get(code string) (*models.Series, error) {
	var s models.Series
	err := r.db.QueryRow(`SELECT code, title FROM series WHERE code = ?`, code).Scan(&s.Code, &s.Title)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("series not found: %s", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}
	return &s, nil
}
