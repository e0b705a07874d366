// Package models defines the data model for the episode catalog.
//
// [Episode] and [Series] are immutable once loaded; every front end receives
// copies. [Date] is a calendar date whose text form ("2006-01-02") is shared by
// the JSON, TOML, YAML and sqlite representations.
package models
