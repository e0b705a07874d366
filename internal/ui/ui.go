package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/podshelf/internal/browse"
	"github.com/desertthunder/podshelf/internal/formatter"
	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/shared"
)

var (
	_ tea.Model       = (*Model)(nil)
	_ browse.Renderer = (*Model)(nil)
)

// InputMode is the component receiving key presses.
type InputMode int

const (
	BrowseMode InputMode = iota
	SearchMode
	FragmentMode
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusErr
)

const (
	defaultWidth   = 80
	itemHeight     = 3 // default delegate: two lines plus spacing
	statusLifetime = 3 * time.Second
)

// Options configures a [Model].
type Options struct {
	PageSize   int
	Series     []models.Series
	Fragment   string        // Initial URL fragment
	Permalinks bool          // Keep an in-memory fragment in sync with the series
	BaseURL    string        // Base for copied permalinks
	Debounce   time.Duration // Quiet period before a search is applied
	Logger     *log.Logger

	OpenLink func(string) error // Defaults to [shared.OpenLink]
	Copy     func(string) error // Defaults to the system clipboard
	Now      func() time.Time
}

// Model represents the TUI application state. It is the [browse.Renderer] for its controller.
type Model struct {
	controller *browse.Controller
	location   *browse.MemoryLocation
	view       browse.View
	mode       InputMode

	search    textinput.Model
	fragment  textinput.Model
	list      list.Model
	pager     paginator.Model
	help      help.Model
	keys      keyMap
	debounce  time.Duration
	searchSeq int

	status     string
	statusKind statusKind
	statusSeq  int

	baseURL  string
	openLink func(string) error
	copy     func(string) error
	now      func() time.Time
	logger   *log.Logger
	width    int
}

// NewModel creates the browser over episodes and renders its first frame.
func NewModel(episodes []models.Episode, opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.OpenLink == nil {
		opts.OpenLink = shared.OpenLink
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search episodes"

	fragment := textinput.New()
	fragment.Prompt = "# "
	fragment.Placeholder = "series code"

	items := list.New(nil, list.NewDefaultDelegate(), defaultWidth, itemHeight)
	items.SetShowTitle(false)
	items.SetShowStatusBar(false)
	items.SetShowPagination(false)
	items.SetShowHelp(false)
	items.SetFilteringEnabled(false)

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = styles.title.UnsetMarginBottom().Render("•")
	pager.InactiveDot = styles.help.Render("•")

	m := &Model{
		mode:     BrowseMode,
		search:   search,
		fragment: fragment,
		list:     items,
		pager:    pager,
		help:     help.New(),
		keys:     newKeyMap(),
		debounce: opts.Debounce,
		baseURL:  opts.BaseURL,
		openLink: opts.OpenLink,
		copy:     opts.Copy,
		now:      opts.Now,
		logger:   opts.Logger,
		width:    defaultWidth,
	}

	bopts := browse.Options{
		PageSize: opts.PageSize,
		Series:   opts.Series,
		Renderer: m,
		Logger:   opts.Logger,
	}
	if opts.Permalinks {
		m.location = browse.NewMemoryLocation(opts.Fragment)
		bopts.Location = m.location
	}

	c, err := browse.NewController(episodes, bopts)
	if err != nil {
		return nil, err
	}
	m.controller = c
	c.Start()
	return m, nil
}

// Render implements [browse.Renderer].
func (m *Model) Render(v browse.View) {
	m.view = v
	m.syncList()
	m.list.SetItems(episodeItems(v.Episodes, m.now()))
	m.list.Select(0)
	m.pager.TotalPages = max(v.TotalPages, 1)
	m.pager.Page = max(v.CurrentPage-1, 0)
	if v.SearchTerm == "" && m.mode != SearchMode {
		m.search.SetValue("")
	}
}

// Init implements [tea.Model]. The first frame is rendered by [NewModel].
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.syncList()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case SearchMode:
			return m.handleSearchKeys(msg)
		case FragmentMode:
			return m.handleFragmentKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchSettled:
		s := msg.data.(searchSettled)
		if s.seq != m.searchSeq {
			m.logger.Debug("dropping superseded search", "value", s.value)
			return m, nil
		}
		m.controller.OnSearchInput(s.value)
	case MsgStatusExpired:
		if msg.data.(int) == m.statusSeq {
			m.status = ""
		}
	case MsgLinkOpened:
		r := msg.data.(actionResult)
		if r.err != nil {
			m.logger.Warn("failed to open link", "link", r.target, "err", r.err)
			return m, m.setStatus(statusErr, fmt.Sprintf("Could not open %s: %v", r.target, r.err))
		}
		return m, m.setStatus(statusOK, "Opened "+r.target)
	case MsgPermalinkCopied:
		r := msg.data.(actionResult)
		if r.err != nil {
			m.logger.Warn("failed to copy permalink", "url", r.target, "err", r.err)
			return m, m.setStatus(statusErr, fmt.Sprintf("Could not copy link: %v", r.err))
		}
		return m, m.setStatus(statusOK, "Copied "+r.target)
	}
	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.mode = SearchMode
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.clear):
		m.searchSeq++
		m.search.SetValue("")
		m.controller.OnClearSearch()
	case key.Matches(msg, m.keys.nextSeries):
		m.cycleSeries(1)
	case key.Matches(msg, m.keys.prevSeries):
		m.cycleSeries(-1)
	case key.Matches(msg, m.keys.prevPage):
		m.controller.OnPrevPage()
	case key.Matches(msg, m.keys.nextPage):
		m.controller.OnNextPage()
	case key.Matches(msg, m.keys.up):
		m.list.CursorUp()
	case key.Matches(msg, m.keys.down):
		m.list.CursorDown()
	case key.Matches(msg, m.keys.open):
		return m, m.openSelected()
	case key.Matches(msg, m.keys.copy):
		return m, m.copyPermalink()
	case key.Matches(msg, m.keys.fragment):
		if m.location == nil {
			return m, m.setStatus(statusWarn, "Permalinks are disabled")
		}
		m.mode = FragmentMode
		m.fragment.SetValue(m.location.Fragment())
		m.fragment.CursorEnd()
		return m, m.fragment.Focus()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.mode = BrowseMode
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		m.mode = BrowseMode
		m.search.Blur()
		m.searchSeq++
		m.controller.OnSearchInput(m.search.Value())
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounceSearch(m.search.Value()))
}

func (m *Model) handleFragmentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.mode = BrowseMode
		m.fragment.Blur()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		m.mode = BrowseMode
		m.fragment.Blur()
		m.location.SetFragment(m.fragment.Value())
		if !m.controller.OnFragmentChange() {
			return m, m.setStatus(statusWarn, "Fragment did not change the selected series")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.fragment, cmd = m.fragment.Update(msg)
	return m, cmd
}

// debounceSearch schedules value to be applied once typing pauses. Each call supersedes the previous one.
func (m *Model) debounceSearch(value string) tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchSettledMsg(seq, value)
	})
}

func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.status = text
	m.statusKind = kind
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return statusExpiredMsg(seq)
	})
}

// cycleSeries moves the selection through "all series" followed by each known series.
func (m *Model) cycleSeries(step int) {
	codes := []string{""}
	for _, s := range m.controller.Series() {
		codes = append(codes, s.Code)
	}
	i := max(slices.Index(codes, m.view.SelectedSeries), 0)
	next := (i + step + len(codes)) % len(codes)
	m.controller.OnSeriesChange(codes[next])
}

func (m *Model) openSelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(episodeItem)
	if !ok {
		return nil
	}
	link, open := item.episode.Link, m.openLink
	return func() tea.Msg {
		return linkOpenedMsg(link, open(link))
	}
}

func (m *Model) copyPermalink() tea.Cmd {
	if m.location == nil {
		return m.setStatus(statusWarn, "Permalinks are disabled")
	}
	url, write := browse.URL(m.baseURL, m.view.SelectedSeries), m.copy
	return func() tea.Msg {
		return permalinkCopiedMsg(url, write(url))
	}
}

// syncList sizes the list so the whole page fits without the list paging on its own.
func (m *Model) syncList() {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	m.list.SetSize(width, max(len(m.view.Episodes), 1)*itemHeight)
}

// View renders the browser.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("podshelf"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderSeries())
	b.WriteString("\n\n")
	b.WriteString(styles.help.Render(formatter.Stats(m.view.ShownCount, m.view.TotalCount)))
	b.WriteString("\n\n")

	if m.view.Empty() {
		b.WriteString(styles.warn.Render("No episodes found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.view.TotalPages > 1 {
		fmt.Fprintf(&b, "%s  page %d of %d\n", m.pager.View(), m.view.CurrentPage, m.view.TotalPages)
	}
	if m.mode == FragmentMode {
		b.WriteString("\n")
		b.WriteString(m.fragment.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderSeries() string {
	names := []string{"All series"}
	selected := 0
	for i, s := range m.controller.Series() {
		names = append(names, s.Title)
		if s.Code == m.view.SelectedSeries {
			selected = i + 1
		}
	}
	for i, name := range names {
		if i == selected {
			names[i] = styles.active.Render(name)
		} else {
			names[i] = styles.series.Render(name)
		}
	}
	return strings.Join(names, " · ")
}

func (m *Model) renderStatus() string {
	switch m.statusKind {
	case statusErr:
		return styles.err.Render(m.status)
	case statusWarn:
		return styles.warn.Render(m.status)
	default:
		return styles.ok.Render(m.status)
	}
}
