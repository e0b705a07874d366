package catalog

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/podshelf/internal/shared"
	th "github.com/desertthunder/podshelf/internal/testing"
)

const jsonCatalog = `{
  "series": [{"series_code": "A", "title": "Alpha Talks"}],
  "episodes": [
    {"title": "Alpha", "description": "Opening", "series_code": "A", "series": "Alpha Talks", "date": "2024-01-05", "link": "https://example.com/1"},
    {"title": "Beta", "series_code": "B", "series": "Beta Hour", "date": "2024-02-09", "link": "https://example.com/2"}
  ]
}`

const tomlCatalog = `[[series]]
series_code = "B"
title = "Beta Hour"

[[episodes]]
title = "Gamma"
series_code = "B"
series = "Beta Hour"
date = "2024-03-01"
link = "https://example.com/3"
`

const yamlCatalog = `series:
  - series_code: C
    title: Gamma Club
episodes:
  - title: Delta
    description: Space
    series_code: C
    series: Gamma Club
    date: 2024-04-12
    link: https://example.com/4
`

func TestDecode(t *testing.T) {
	t.Run("json fills series from episodes", func(t *testing.T) {
		c, err := Decode(strings.NewReader(jsonCatalog), JSON)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if got := c.SeriesCodes(); !slices.Equal(got, []string{"A", "B"}) {
			t.Errorf("unexpected series %v", got)
		}
		if c.Series[1].Title != "Beta Hour" {
			t.Errorf("expected derived title, got %q", c.Series[1].Title)
		}
		if c.Episodes[0].Date.String() != "2024-01-05" {
			t.Errorf("unexpected date %q", c.Episodes[0].Date)
		}
	})

	t.Run("toml", func(t *testing.T) {
		c, err := Decode(strings.NewReader(tomlCatalog), TOML)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if len(c.Episodes) != 1 || c.Episodes[0].Date.String() != "2024-03-01" {
			t.Errorf("unexpected episodes %+v", c.Episodes)
		}
	})

	t.Run("yaml with bare date", func(t *testing.T) {
		c, err := Decode(strings.NewReader(yamlCatalog), YAML)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if c.Episodes[0].Date.String() != "2024-04-12" {
			t.Errorf("unexpected date %q", c.Episodes[0].Date)
		}
		if c.Episodes[0].Description != "Space" {
			t.Errorf("unexpected description %q", c.Episodes[0].Description)
		}
	})

	t.Run("invalid episode", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"episodes": [{"title": "", "series_code": "A"}]}`), JSON)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"episodes": [{"title": "x", "series_code": "A", "date": "soon"}]}`), JSON)
		if err == nil {
			t.Error("expected date parse error")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := Decode(strings.NewReader("{}"), Format("xml")); !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := th.WriteFile(t, dir, "a/episodes.json", jsonCatalog)
	tomlPath := th.WriteFile(t, dir, "b/more.toml", tomlCatalog)
	yamlPath := th.WriteFile(t, dir, "b/deep/extra.yml", yamlCatalog)
	th.WriteFile(t, dir, "b/notes.txt", "ignored")

	t.Run("Load", func(t *testing.T) {
		c, err := Load(yamlPath)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(c.Episodes) != 1 {
			t.Errorf("expected 1 episode, got %d", len(c.Episodes))
		}
	})

	t.Run("Load unsupported extension", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "b/notes.txt")); !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("LoadAll merges in order", func(t *testing.T) {
		c, err := LoadAll(jsonPath, tomlPath, yamlPath)
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		if got := th.Titles(c.Episodes); !slices.Equal(got, []string{"Alpha", "Beta", "Gamma", "Delta"}) {
			t.Errorf("unexpected episode order %v", got)
		}
		if got := c.SeriesCodes(); !slices.Equal(got, []string{"A", "B", "C"}) {
			t.Errorf("unexpected series %v", got)
		}
	})

	t.Run("LoadAll without files", func(t *testing.T) {
		if _, err := LoadAll(); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Glob", func(t *testing.T) {
		paths, err := Glob(filepath.Join(dir, "**", "*"))
		if err != nil {
			t.Fatalf("Glob failed: %v", err)
		}
		want := []string{jsonPath, yamlPath, tomlPath}
		slices.Sort(want)
		if !slices.Equal(paths, want) {
			t.Errorf("Glob = %v, want %v", paths, want)
		}
	})
}
