// Package repositories implements SQLite persistence for the episode catalog.
//
// Key Implementations:
//   - [SeriesRepository] : the ordered series list
//   - [EpisodeRepository] : episodes in import order
//   - [CatalogRepository] : whole-catalog replace/load in one transaction, plus import history
//
// Order matters to the browser, so every row carries a position column and
// lists are always read back ORDER BY position.
package repositories
