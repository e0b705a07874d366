package browse

import (
	"net/url"
	"slices"
	"strings"
)

// Location is the page address whose fragment carries the selected series.
type Location interface {
	Fragment() string
	SetFragment(fragment string)
}

// MemoryLocation is a [Location] held in memory, used where there is no browser address bar.
type MemoryLocation struct {
	fragment string
}

// NewMemoryLocation returns a location starting at fragment ("#" prefix optional).
func NewMemoryLocation(fragment string) *MemoryLocation {
	return &MemoryLocation{fragment: strings.TrimPrefix(fragment, "#")}
}

func (l *MemoryLocation) Fragment() string { return l.fragment }

func (l *MemoryLocation) SetFragment(fragment string) {
	l.fragment = strings.TrimPrefix(fragment, "#")
}

// SeriesToFragment encodes a series code as a URL fragment (without the leading "#").
// The empty code clears the fragment.
func SeriesToFragment(code string) string {
	if code == "" {
		return ""
	}
	return strings.ReplaceAll(url.QueryEscape(code), "+", "%20")
}

// FragmentToSeries resolves a fragment to one of knownCodes.
//
// One leading "#" is stripped and the rest percent-decoded; anything that is not an
// exact known code, including malformed escapes, resolves to "" (all series).
func FragmentToSeries(fragment string, knownCodes []string) string {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return ""
	}
	code, err := url.PathUnescape(fragment)
	if err != nil {
		return ""
	}
	if slices.Contains(knownCodes, code) {
		return code
	}
	return ""
}

// Permalink keeps a [Location] and the selected series in step.
type Permalink struct {
	location Location
	known    []string
}

// NewPermalink binds location to the known series codes.
func NewPermalink(location Location, knownCodes []string) *Permalink {
	return &Permalink{location: location, known: slices.Clone(knownCodes)}
}

// Read resolves the current fragment to a known series code or "".
func (p *Permalink) Read() string {
	return FragmentToSeries(p.location.Fragment(), p.known)
}

// Write stores code in the fragment, clearing it for "".
func (p *Permalink) Write(code string) {
	p.location.SetFragment(SeriesToFragment(code))
}

// Fragment returns the raw fragment currently held by the location.
func (p *Permalink) Fragment() string {
	return p.location.Fragment()
}

// URL returns base with its fragment replaced by the one for code.
// An unparsable base is returned with "#fragment" appended.
func URL(base, code string) string {
	fragment := SeriesToFragment(code)
	u, err := url.Parse(base)
	if err != nil {
		base, _, _ = strings.Cut(base, "#")
		if fragment == "" {
			return base
		}
		return base + "#" + fragment
	}
	u.Fragment = ""
	u.RawFragment = ""
	s := u.String()
	if fragment != "" {
		s += "#" + fragment
	}
	return s
}
