package catalog

import (
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podshelf/internal/shared"
	th "github.com/desertthunder/podshelf/internal/testing"
	"github.com/gofrs/flock"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	lockPath := filepath.Join(t.TempDir(), "podshelf.db.lock")
	return NewStore(db, lockPath, log.New(io.Discard)), lockPath
}

func TestStore(t *testing.T) {
	t.Run("Open falls back to the catalog file", func(t *testing.T) {
		store, _ := newTestStore(t)
		path := th.WriteFile(t, t.TempDir(), "episodes.json", jsonCatalog)

		c, err := store.Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if len(c.Episodes) != 2 {
			t.Errorf("expected 2 episodes, got %d", len(c.Episodes))
		}
	})

	t.Run("Open with nothing to read", func(t *testing.T) {
		store, _ := newTestStore(t)
		if _, err := store.Open(""); !errors.Is(err, shared.ErrEmptyCatalog) {
			t.Errorf("expected ErrEmptyCatalog, got %v", err)
		}
	})

	t.Run("Import then Open reads the database", func(t *testing.T) {
		store, _ := newTestStore(t)
		dir := t.TempDir()
		a := th.WriteFile(t, dir, "a.json", jsonCatalog)
		b := th.WriteFile(t, dir, "b.yaml", yamlCatalog)

		imp, err := store.Import(a, b)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if imp.Episodes != 3 {
			t.Errorf("expected 3 episodes imported, got %d", imp.Episodes)
		}

		c, err := store.Open("does-not-exist.json")
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if got := th.Titles(c.Episodes); !slices.Equal(got, []string{"Alpha", "Beta", "Delta"}) {
			t.Errorf("unexpected episodes %v", got)
		}

		last, err := store.LastImport()
		if err != nil || last == nil {
			t.Fatalf("LastImport failed: %v %v", last, err)
		}
	})

	t.Run("Import refuses while locked", func(t *testing.T) {
		store, lockPath := newTestStore(t)
		held := flock.New(lockPath)
		ok, err := held.TryLock()
		if err != nil || !ok {
			t.Fatalf("failed to take lock: %v", err)
		}
		defer held.Unlock()

		path := th.WriteFile(t, t.TempDir(), "a.json", jsonCatalog)
		if _, err := store.Import(path); !errors.Is(err, shared.ErrCatalogLocked) {
			t.Errorf("expected ErrCatalogLocked, got %v", err)
		}
	})

	t.Run("Import rejects empty catalogs", func(t *testing.T) {
		store, _ := newTestStore(t)
		path := th.WriteFile(t, t.TempDir(), "empty.json", `{"series": [], "episodes": []}`)
		if _, err := store.Import(path); !errors.Is(err, shared.ErrEmptyCatalog) {
			t.Errorf("expected ErrEmptyCatalog, got %v", err)
		}
	})
}
