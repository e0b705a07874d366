// Package catalog reads episode catalogs from JSON, TOML and YAML files.
//
// A catalog file holds the ordered series list and every episode:
//
//	{"series": [{"series_code": "A", "title": "Alpha Talks"}],
//	 "episodes": [{"title": "...", "series_code": "A", "series": "Alpha Talks", "date": "2024-01-05", "link": "..."}]}
//
// The same keys are used in TOML ([[series]], [[episodes]]) and YAML.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: catalog file %s", shared.ErrUnsupportedFormat, path)
	}
}

// Decode reads a catalog in the given format and validates it.
func Decode(r io.Reader, format Format) (*models.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c models.Catalog
	switch format {
	case JSON:
		err = json.Unmarshal(data, &c)
	case TOML:
		_, err = toml.Decode(string(data), &c)
	case YAML:
		err = yaml.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("%w: catalog format %q", shared.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s catalog: %w", format, err)
	}

	fillSeries(&c)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return &c, nil
}

// Load reads the catalog file at path.
func Load(path string) (*models.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadAll loads and merges the given files in order. Earlier series titles win.
func LoadAll(paths ...string) (*models.Catalog, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no catalog files", shared.ErrMissingArgument)
	}

	merged := &models.Catalog{}
	for _, path := range paths {
		c, err := Load(path)
		if err != nil {
			return nil, err
		}
		merged.Merge(c)
	}
	return merged, nil
}

// Glob expands a doublestar pattern (e.g. "data/**/*.yaml") to sorted catalog file paths.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: glob %q: %v", shared.ErrInvalidArgument, pattern, err)
	}

	paths := matches[:0]
	for _, m := range matches {
		if _, err := FormatFromPath(m); err == nil {
			paths = append(paths, m)
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// fillSeries adds a series entry for every episode series code the list does not mention,
// titled from the episode's series name, in first-seen order.
func fillSeries(c *models.Catalog) {
	known := make(map[string]bool, len(c.Series))
	for _, s := range c.Series {
		known[s.Code] = true
	}
	for _, ep := range c.Episodes {
		if ep.SeriesCode == "" || known[ep.SeriesCode] {
			continue
		}
		title := ep.Series
		if title == "" {
			title = ep.SeriesCode
		}
		c.Series = append(c.Series, models.Series{Code: ep.SeriesCode, Title: title})
		known[ep.SeriesCode] = true
	}
}
