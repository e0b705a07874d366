// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/podshelf/internal/browse"
	"github.com/desertthunder/podshelf/internal/models"
)

// SampleSeries is the series list used by [SampleCatalog].
var SampleSeries = []models.Series{
	{Code: "A", Title: "Alpha Talks"},
	{Code: "B", Title: "Beta Hour"},
	{Code: "C D", Title: "Spaced Out"},
}

// SampleCatalog returns a small catalog with one episode per series plus a description-only match.
func SampleCatalog() *models.Catalog {
	return &models.Catalog{
		Series: append([]models.Series(nil), SampleSeries...),
		Episodes: []models.Episode{
			{Title: "Alpha", Description: "Opening the season", SeriesCode: "A", Series: "Alpha Talks", Date: models.NewDate(2024, time.January, 5), Link: "https://open.spotify.com/episode/alpha"},
			{Title: "Beta", SeriesCode: "B", Series: "Beta Hour", Date: models.NewDate(2024, time.February, 9), Link: "https://open.spotify.com/episode/beta"},
			{Title: "Gamma", Description: "An ALPHA retrospective", SeriesCode: "B", Series: "Beta Hour", Date: models.NewDate(2024, time.March, 1), Link: "https://open.spotify.com/episode/gamma"},
			{Title: "Delta", Description: "Space", SeriesCode: "C D", Series: "Spaced Out", Date: models.NewDate(2024, time.April, 12), Link: "https://open.spotify.com/episode/delta"},
		},
	}
}

// NumberedEpisodes returns n episodes titled "Episode 1".."Episode n", alternating series A and B.
func NumberedEpisodes(n int) []models.Episode {
	episodes := make([]models.Episode, n)
	start := models.NewDate(2023, time.January, 1).Time()
	for i := range episodes {
		code := "A"
		if i%2 == 1 {
			code = "B"
		}
		episodes[i] = models.Episode{
			Title:      fmt.Sprintf("Episode %d", i+1),
			SeriesCode: code,
			Series:     "Series " + code,
			Date:       models.NewDate(start.AddDate(0, 0, 7*i).Date()),
			Link:       fmt.Sprintf("https://open.spotify.com/episode/%d", i+1),
		}
	}
	return episodes
}

// RecordingRenderer is a [browse.Renderer] that keeps every view it is given.
type RecordingRenderer struct {
	Views []browse.View
}

func (r *RecordingRenderer) Render(v browse.View) { r.Views = append(r.Views, v) }

// Last returns the most recent view, failing the test when nothing was rendered.
func (r *RecordingRenderer) Last(t *testing.T) browse.View {
	t.Helper()
	if len(r.Views) == 0 {
		t.Fatal("expected at least one render")
	}
	return r.Views[len(r.Views)-1]
}

// Titles returns the episode titles in order.
func Titles(episodes []models.Episode) []string {
	titles := make([]string, len(episodes))
	for i, ep := range episodes {
		titles[i] = ep.Title
	}
	return titles
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// WriteFile writes content under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
