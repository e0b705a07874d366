package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the text layout of a [Date].
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
type Date struct {
	t time.Time
}

// NewDate returns the Date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string. The empty string yields the zero Date.
//
// RFC 3339 timestamps are accepted too (TOML local dates arrive that way) and truncated to the day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		return NewDate(ts.Date()), nil
	}
	return Date{t}, nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String returns the "YYYY-MM-DD" form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Episode is a single podcast episode as supplied by the catalog.
type Episode struct {
	Title       string `json:"title" toml:"title" yaml:"title"`
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	SeriesCode  string `json:"series_code" toml:"series_code" yaml:"series_code"`
	Series      string `json:"series" toml:"series" yaml:"series"`
	Date        Date   `json:"date" toml:"date" yaml:"date"`
	Link        string `json:"link" toml:"link" yaml:"link"`
}

// Validate checks the fields the browser relies on.
func (e Episode) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("episode title is required")
	}
	if e.SeriesCode == "" {
		return fmt.Errorf("episode %q: series_code is required", e.Title)
	}
	return nil
}

// Series is a named grouping of episodes identified by a short code.
type Series struct {
	Code  string `json:"series_code" toml:"series_code" yaml:"series_code"`
	Title string `json:"title" toml:"title" yaml:"title"`
}

// Catalog is the full static data set: the ordered series list and every episode.
type Catalog struct {
	Series   []Series  `json:"series" toml:"series" yaml:"series"`
	Episodes []Episode `json:"episodes" toml:"episodes" yaml:"episodes"`
}

// Validate checks every episode and rejects duplicate series codes.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Series))
	for _, s := range c.Series {
		if s.Code == "" {
			return fmt.Errorf("series %q: series_code is required", s.Title)
		}
		if seen[s.Code] {
			return fmt.Errorf("duplicate series code %q", s.Code)
		}
		seen[s.Code] = true
	}
	for i, e := range c.Episodes {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("episode %d: %w", i, err)
		}
	}
	return nil
}

// SeriesCodes returns the codes of the known series in order.
func (c *Catalog) SeriesCodes() []string {
	codes := make([]string, len(c.Series))
	for i, s := range c.Series {
		codes[i] = s.Code
	}
	return codes
}

// Merge appends other's episodes and any series whose code is not yet known.
func (c *Catalog) Merge(other *Catalog) {
	known := make(map[string]bool, len(c.Series))
	for _, s := range c.Series {
		known[s.Code] = true
	}
	for _, s := range other.Series {
		if !known[s.Code] {
			c.Series = append(c.Series, s)
			known[s.Code] = true
		}
	}
	c.Episodes = append(c.Episodes, other.Episodes...)
}

// Import records a catalog import into the database.
type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Episodes   int       `json:"episodes"`
	Series     int       `json:"series"`
	ImportedAt time.Time `json:"imported_at"`
}
