package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/podshelf/internal/formatter"
	"github.com/desertthunder/podshelf/internal/models"
)

var (
	_ list.DefaultItem = episodeItem{}
)

const descriptionWidth = 60

// episodeItem wraps [models.Episode] to implement [list.Item].
type episodeItem struct {
	episode models.Episode
	now     time.Time
}

func (i episodeItem) FilterValue() string { return i.episode.Title }
func (i episodeItem) Title() string       { return i.episode.Title }
func (i episodeItem) Description() string {
	parts := []string{i.episode.Series}
	if !i.episode.Date.IsZero() {
		parts = append(parts, formatter.FormatDate(i.episode.Date)+" ("+formatter.RelativeDate(i.episode.Date, i.now)+")")
	}
	if i.episode.Description != "" {
		parts = append(parts, formatter.TruncateText(i.episode.Description, descriptionWidth))
	}
	return strings.Join(parts, " • ")
}

func episodeItems(episodes []models.Episode, now time.Time) []list.Item {
	items := make([]list.Item, len(episodes))
	for i, ep := range episodes {
		items[i] = episodeItem{episode: ep, now: now}
	}
	return items
}
