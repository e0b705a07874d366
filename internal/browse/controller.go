package browse

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/shared"
)

// View is everything a front end needs to draw one frame of the browser.
type View struct {
	Episodes       []models.Episode `json:"episodes"`        // Episodes on the current page
	CurrentPage    int              `json:"current_page"`    // 1-based page number
	TotalPages     int              `json:"total_pages"`     // 0 when nothing matches
	ShownCount     int              `json:"shown_count"`     // Episodes matching the filters
	TotalCount     int              `json:"total_count"`     // Episodes in the catalog
	SearchTerm     string           `json:"search_term"`     // Normalized search term
	SelectedSeries string           `json:"selected_series"` // Series code, "" for all series
	Fragment       string           `json:"fragment"`        // URL fragment, "" when cleared or permalinks are off
	HasPrev        bool             `json:"has_prev"`
	HasNext        bool             `json:"has_next"`
}

// Empty reports whether no episode matches the filters.
func (v View) Empty() bool { return v.ShownCount == 0 }

// Renderer draws a [View]. Implementations must not call back into the [Controller].
type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to [Renderer].
type RenderFunc func(View)

func (f RenderFunc) Render(v View) { f(v) }

// Session is the mutable browsing state owned by a [Controller].
type Session struct {
	SearchTerm       string
	SelectedSeries   string
	CurrentPage      int
	EpisodesPerPage  int
	FilteredEpisodes []models.Episode
	TotalPages       int
}

// Options configures a [Controller].
type Options struct {
	PageSize int             // Episodes per page, [DefaultPageSize] when zero
	Series   []models.Series // Known series, used for validation
	Location Location        // Fragment holder; nil disables permalinks
	Renderer Renderer        // Required
	Logger   *log.Logger     // Defaults to a discarding logger
}

// Controller owns a browsing [Session] and is the only thing that mutates it.
//
// Every handler that changes the session finishes by rendering once.
type Controller struct {
	episodes  []models.Episode
	series    []models.Series
	codes     []string
	permalink *Permalink
	renderer  Renderer
	logger    *log.Logger
	state     Session
}

// NewController creates a controller over a copy of episodes.
//
// It fails when no renderer is supplied or the page size is negative.
// Nothing is rendered until [Controller.Start].
func NewController(episodes []models.Episode, opts Options) (*Controller, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("%w: browse controller needs a renderer", shared.ErrMissingRenderTarget)
	}
	if opts.PageSize < 0 {
		return nil, fmt.Errorf("%w: got %d", shared.ErrInvalidPageSize, opts.PageSize)
	}
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	c := &Controller{
		episodes: slices.Clone(episodes),
		series:   slices.Clone(opts.Series),
		renderer: opts.Renderer,
		logger:   opts.Logger,
		state:    Session{EpisodesPerPage: opts.PageSize},
	}
	c.codes = make([]string, len(c.series))
	for i, s := range c.series {
		c.codes[i] = s.Code
	}
	if opts.Location != nil {
		c.permalink = NewPermalink(opts.Location, c.codes)
	}

	c.applyFilters()
	return c, nil
}

// Start resolves the initial fragment, when permalinks are on, and renders the first frame.
func (c *Controller) Start() {
	if c.permalink != nil {
		c.state.SelectedSeries = c.permalink.Read()
	}
	c.applyFilters()
	c.logger.Debug("browser started",
		"episodes", len(c.episodes), "series", c.state.SelectedSeries, "pages", c.state.TotalPages)
	c.render()
}

// OnSearchInput stores the normalized search term, returns to page 1 and renders.
//
// Callers debounce keystrokes; repeated calls with the same input yield the same view.
func (c *Controller) OnSearchInput(raw string) {
	c.state.SearchTerm = NormalizeSearch(raw)
	c.applyFilters()
	c.logger.Debug("search", "term", c.state.SearchTerm, "matches", len(c.state.FilteredEpisodes))
	c.render()
}

// OnClearSearch drops the search term. Renderers clear their input when the view's term is empty.
func (c *Controller) OnClearSearch() {
	c.OnSearchInput("")
}

// OnSeriesChange selects a series, writes the permalink, returns to page 1 and renders.
// Unknown codes select all series.
func (c *Controller) OnSeriesChange(code string) {
	if code != "" && !slices.Contains(c.codes, code) {
		c.logger.Debug("unknown series selected, showing all", "code", code)
		code = ""
	}
	c.state.SelectedSeries = code
	if c.permalink != nil {
		c.permalink.Write(code)
	}
	c.applyFilters()
	c.logger.Debug("series", "code", code, "matches", len(c.state.FilteredEpisodes))
	c.render()
}

// OnFragmentChange reads the fragment and applies the series it names.
//
// It reports whether the selection changed; an unchanged selection (or disabled
// permalinks) leaves the session untouched and renders nothing.
func (c *Controller) OnFragmentChange() bool {
	if c.permalink == nil {
		return false
	}
	code := c.permalink.Read()
	if code == c.state.SelectedSeries {
		return false
	}
	c.state.SelectedSeries = code
	c.applyFilters()
	c.logger.Debug("fragment", "fragment", c.permalink.Fragment(), "series", code)
	c.render()
	return true
}

// OnPrevPage moves back one page. It is a no-op on the first page.
func (c *Controller) OnPrevPage() bool {
	if c.state.CurrentPage <= 1 {
		return false
	}
	c.state.CurrentPage--
	c.render()
	return true
}

// OnNextPage moves forward one page. It is a no-op on the last page.
func (c *Controller) OnNextPage() bool {
	if c.state.CurrentPage >= c.state.TotalPages {
		return false
	}
	c.state.CurrentPage++
	c.render()
	return true
}

// View builds the current frame without rendering it.
func (c *Controller) View() View {
	page, total := Paginate(c.state.FilteredEpisodes, c.state.CurrentPage, c.state.EpisodesPerPage)
	v := View{
		Episodes:       slices.Clone(page),
		CurrentPage:    c.state.CurrentPage,
		TotalPages:     total,
		ShownCount:     len(c.state.FilteredEpisodes),
		TotalCount:     len(c.episodes),
		SearchTerm:     c.state.SearchTerm,
		SelectedSeries: c.state.SelectedSeries,
		HasPrev:        c.state.CurrentPage > 1,
		HasNext:        c.state.CurrentPage < total,
	}
	if c.permalink != nil {
		v.Fragment = c.permalink.Fragment()
	}
	return v
}

// Session returns a copy of the current state.
func (c *Controller) Session() Session {
	s := c.state
	s.FilteredEpisodes = slices.Clone(c.state.FilteredEpisodes)
	return s
}

// Series returns the known series in order.
func (c *Controller) Series() []models.Series {
	return slices.Clone(c.series)
}

// Permalinks reports whether the controller keeps a URL fragment in sync.
func (c *Controller) Permalinks() bool {
	return c.permalink != nil
}

// applyFilters recomputes the derived state and returns to the first page.
func (c *Controller) applyFilters() {
	c.state.FilteredEpisodes = Filter(c.episodes, c.state.SearchTerm, c.state.SelectedSeries)
	c.state.TotalPages = TotalPages(len(c.state.FilteredEpisodes), c.state.EpisodesPerPage)
	c.state.CurrentPage = 1
}

func (c *Controller) render() {
	c.renderer.Render(c.View())
}
