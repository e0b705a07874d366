package browse_test

import (
	"testing"

	"github.com/desertthunder/podshelf/internal/browse"
)

func TestPermalink(t *testing.T) {
	known := []string{"A", "B", "C D", "x/y", "50%"}

	t.Run("SeriesToFragment", func(t *testing.T) {
		tc := map[string]string{
			"":    "",
			"A":   "A",
			"C D": "C%20D",
			"x/y": "x%2Fy",
			"50%": "50%25",
		}
		for code, want := range tc {
			if got := browse.SeriesToFragment(code); got != want {
				t.Errorf("SeriesToFragment(%q) = %q, want %q", code, got, want)
			}
		}
	})

	t.Run("round trip for every known code", func(t *testing.T) {
		for _, code := range append(known, "") {
			if got := browse.FragmentToSeries(browse.SeriesToFragment(code), known); got != code {
				t.Errorf("round trip of %q gave %q", code, got)
			}
		}
	})

	t.Run("FragmentToSeries", func(t *testing.T) {
		tc := []struct {
			fragment string
			want     string
		}{
			{"", ""},
			{"#", ""},
			{"A", "A"},
			{"#B", "B"},
			{"Z", ""},
			{"a", ""},
			{"%zz", ""},
			{"C%20D", "C D"},
			{"##A", ""},
		}
		for _, c := range tc {
			if got := browse.FragmentToSeries(c.fragment, []string{"A", "B", "C D"}); got != c.want {
				t.Errorf("FragmentToSeries(%q) = %q, want %q", c.fragment, got, c.want)
			}
		}
	})

	t.Run("unknown fragment resolves to all series", func(t *testing.T) {
		if got := browse.FragmentToSeries("Z", []string{"A", "B"}); got != "" {
			t.Errorf("expected empty series, got %q", got)
		}
	})

	t.Run("Permalink read and write", func(t *testing.T) {
		loc := browse.NewMemoryLocation("#B")
		p := browse.NewPermalink(loc, known)
		if got := p.Read(); got != "B" {
			t.Errorf("expected B, got %q", got)
		}

		p.Write("C D")
		if loc.Fragment() != "C%20D" {
			t.Errorf("expected encoded fragment, got %q", loc.Fragment())
		}

		p.Write("")
		if loc.Fragment() != "" {
			t.Errorf("expected cleared fragment, got %q", loc.Fragment())
		}
	})

	t.Run("URL", func(t *testing.T) {
		tc := []struct {
			base, code, want string
		}{
			{"https://pod.example.com/", "A", "https://pod.example.com/#A"},
			{"https://pod.example.com/#old", "C D", "https://pod.example.com/#C%20D"},
			{"https://pod.example.com/#old", "", "https://pod.example.com/"},
			{"https://pod.example.com/list?x=1", "B", "https://pod.example.com/list?x=1#B"},
		}
		for _, c := range tc {
			if got := browse.URL(c.base, c.code); got != c.want {
				t.Errorf("URL(%q, %q) = %q, want %q", c.base, c.code, got, c.want)
			}
		}
	})
}
