package browse

import (
	"strings"

	"github.com/desertthunder/podshelf/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower folds s to lower case with Unicode special casing (final sigma and friends).
//
// A [cases.Caser] keeps state between calls, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// NormalizeSearch trims and lowercases raw search input.
func NormalizeSearch(raw string) string {
	return lower(strings.TrimSpace(raw))
}

// MatchesSearch reports whether the title or description contains term, ignoring case.
// An empty term matches every episode; a missing description never matches.
func MatchesSearch(ep models.Episode, term string) bool {
	return matchesLowered(ep, lower(term))
}

func matchesLowered(ep models.Episode, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(lower(ep.Title), term) {
		return true
	}
	return ep.Description != "" && strings.Contains(lower(ep.Description), term)
}

// MatchesSeries reports whether the episode belongs to series. An empty series matches everything.
func MatchesSeries(ep models.Episode, series string) bool {
	return series == "" || ep.SeriesCode == series
}

// Filter returns the episodes matching both searchTerm and series, in input order.
//
// The input slice is never modified and the result never aliases it.
func Filter(episodes []models.Episode, searchTerm, series string) []models.Episode {
	term := lower(searchTerm)
	filtered := make([]models.Episode, 0, len(episodes))
	for _, ep := range episodes {
		if MatchesSeries(ep, series) && matchesLowered(ep, term) {
			filtered = append(filtered, ep)
		}
	}
	return filtered
}
