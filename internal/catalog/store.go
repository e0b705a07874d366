package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/repositories"
	"github.com/desertthunder/podshelf/internal/shared"
	"github.com/gofrs/flock"
)

// Store supplies the catalog to browsing sessions: the sqlite copy when it has
// episodes, otherwise a fallback catalog file.
type Store struct {
	repo     *repositories.CatalogRepository
	lockPath string
	logger   *log.Logger
}

// NewStore wraps db. lockPath guards imports against concurrent writers; it is
// usually the database path with a ".lock" suffix.
func NewStore(db *sql.DB, lockPath string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		repo:     repositories.NewCatalogRepository(db),
		lockPath: lockPath,
		logger:   shared.WithLogger(logger, "component", "catalog"),
	}
}

// Import loads paths, merges them in order and replaces the stored catalog.
//
// Fails with [shared.ErrCatalogLocked] when another import holds the lock.
func (s *Store) Import(paths ...string) (*models.Import, error) {
	c, err := LoadAll(paths...)
	if err != nil {
		return nil, err
	}
	if len(c.Episodes) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrEmptyCatalog, strings.Join(paths, ", "))
	}

	lock := flock.New(s.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrCatalogLocked, s.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release catalog lock", "error", err)
		}
	}()

	imp, err := s.repo.Replace(c, strings.Join(paths, ","))
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog imported", "episodes", imp.Episodes, "series", imp.Series, "files", len(paths))
	return imp, nil
}

// Open returns the stored catalog, falling back to the file at fallback when the
// database holds no episodes. An empty fallback with an empty database is an error.
func (s *Store) Open(fallback string) (*models.Catalog, error) {
	count, err := s.repo.Episodes().Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		s.logger.Debug("catalog loaded from database", "episodes", count)
		return s.repo.Load()
	}

	if fallback == "" {
		return nil, shared.ErrEmptyCatalog
	}
	s.logger.Debug("database empty, reading catalog file", "path", fallback)
	return Load(fallback)
}

// LastImport reports the most recent import, nil if none.
func (s *Store) LastImport() (*models.Import, error) {
	return s.repo.LastImport()
}
