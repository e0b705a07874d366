package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	t.Run("ParseDate", func(t *testing.T) {
		tc := []struct {
			name  string
			input string
			want  string
			err   bool
		}{
			{name: "calendar date", input: "2024-03-05", want: "2024-03-05"},
			{name: "padded", input: "  2024-03-05 ", want: "2024-03-05"},
			{name: "empty", input: "", want: ""},
			{name: "timestamp truncated", input: "2024-03-05T00:00:00Z", want: "2024-03-05"},
			{name: "garbage", input: "March 5th", err: true},
		}

		for _, c := range tc {
			t.Run(c.name, func(t *testing.T) {
				got, err := ParseDate(c.input)
				if c.err {
					if err == nil {
						t.Fatalf("expected error for %q", c.input)
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.String() != c.want {
					t.Errorf("got %q, want %q", got.String(), c.want)
				}
			})
		}
	})

	t.Run("JSON uses calendar form", func(t *testing.T) {
		ep := Episode{Title: "Alpha", SeriesCode: "A", Date: NewDate(2023, time.November, 2)}
		data, err := json.Marshal(ep)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if decoded["date"] != "2023-11-02" {
			t.Errorf("expected date 2023-11-02, got %v", decoded["date"])
		}
		if _, ok := decoded["description"]; ok {
			t.Error("empty description should be omitted")
		}
	})
}

func TestCatalog(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		valid := &Catalog{
			Series:   []Series{{Code: "A", Title: "Alpha"}},
			Episodes: []Episode{{Title: "One", SeriesCode: "A"}},
		}
		if err := valid.Validate(); err != nil {
			t.Errorf("expected valid catalog, got %v", err)
		}

		dup := &Catalog{Series: []Series{{Code: "A"}, {Code: "A"}}}
		if err := dup.Validate(); err == nil {
			t.Error("expected duplicate series error")
		}

		untitled := &Catalog{Episodes: []Episode{{SeriesCode: "A"}}}
		if err := untitled.Validate(); err == nil {
			t.Error("expected missing title error")
		}
	})

	t.Run("Merge keeps first series title and appends episodes", func(t *testing.T) {
		c := &Catalog{
			Series:   []Series{{Code: "A", Title: "Alpha"}},
			Episodes: []Episode{{Title: "One", SeriesCode: "A"}},
		}
		c.Merge(&Catalog{
			Series:   []Series{{Code: "A", Title: "Other"}, {Code: "B", Title: "Beta"}},
			Episodes: []Episode{{Title: "Two", SeriesCode: "B"}},
		})

		codes := c.SeriesCodes()
		if len(codes) != 2 || codes[0] != "A" || codes[1] != "B" {
			t.Errorf("unexpected series codes %v", codes)
		}
		if c.Series[0].Title != "Alpha" {
			t.Errorf("expected first title to win, got %s", c.Series[0].Title)
		}
		if len(c.Episodes) != 2 || c.Episodes[1].Title != "Two" {
			t.Errorf("unexpected episodes %+v", c.Episodes)
		}
	})
}
