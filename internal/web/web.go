// Package web serves the episode browser over HTTP.
//
// Each browser tab creates a session holding its own [browse.Controller] and an in-memory fragment.
// The embedded page forwards input events and mirrors the returned view, writing its fragment into
// location.hash and posting hashchange events back.
//
// Routes
//
//	GET  /                         → embedded page
//	GET  /api/series               → known series
//	POST /api/sessions             → {id, view}, body {fragment}
//	GET  /api/sessions/{id}        → {id, view}
//	POST /api/sessions/{id}/events → {view, rendered}, body {type, value}
//
// Sessions live in an LRU so the table stays bounded; the least recently used session is dropped first.
package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podshelf/internal/browse"
	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/server"
	"github.com/desertthunder/podshelf/internal/shared"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed index.html
var indexPage []byte

// Event kinds accepted by the events endpoint.
const (
	EventSearch   = "search"
	EventClear    = "clear"
	EventSeries   = "series"
	EventFragment = "fragment"
	EventPrev     = "prev"
	EventNext     = "next"
)

// Event is one user interaction forwarded by the page.
type Event struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SessionResponse is returned when a session is created or fetched.
type SessionResponse struct {
	ID   string      `json:"id"`
	View browse.View `json:"view"`
}

// EventResponse is returned after an event; Rendered is false when the event changed nothing.
type EventResponse struct {
	View     browse.View `json:"view"`
	Rendered bool        `json:"rendered"`
}

type createRequest struct {
	Fragment string `json:"fragment"`
}

// session serializes all events for one browser tab.
type session struct {
	mu         sync.Mutex
	controller *browse.Controller
	location   *browse.MemoryLocation
	renders    int
}

// Options configures a [Handler].
type Options struct {
	PageSize    int
	Permalinks  bool
	MaxSessions int
	Logger      *log.Logger
}

// Handler implements [server.Handler] for the browser page and its session API.
type Handler struct {
	catalog  *models.Catalog
	opts     Options
	sessions *lru.Cache[string, *session]
	mux      *http.ServeMux
	logger   *log.Logger
}

// NewHandler creates a handler over catalog.
func NewHandler(catalog *models.Catalog, opts Options) (*Handler, error) {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 256
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	sessions, err := lru.New[string, *session](opts.MaxSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	h := &Handler{
		catalog:  catalog,
		opts:     opts,
		sessions: sessions,
		mux:      http.NewServeMux(),
		logger:   shared.WithLogger(opts.Logger, "component", "web"),
	}
	h.mux.HandleFunc("GET /{$}", h.index)
	h.mux.HandleFunc("GET /api/series", h.series)
	h.mux.HandleFunc("POST /api/sessions", h.createSession)
	h.mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
	h.mux.HandleFunc("POST /api/sessions/{id}/events", h.postEvent)
	return h, nil
}

// Routes implements [server.Handler].
func (h *Handler) Routes() []string {
	return []string{
		"GET /{$}",
		"GET /api/series",
		"POST /api/sessions",
		"GET /api/sessions/{id}",
		"POST /api/sessions/{id}/events",
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Sessions reports how many sessions are live.
func (h *Handler) Sessions() int {
	return h.sessions.Len()
}

func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (h *Handler) series(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusOK, h.catalog.Series)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
			return
		}
	}

	s, err := h.newSession(req.Fragment)
	if err != nil {
		h.fail(w, err)
		return
	}
	id := uuid.NewString()
	if evicted := h.sessions.Add(id, s); evicted {
		h.logger.Debug("evicted least recently used session")
	}
	h.logger.Debug("session created", "id", id, "fragment", req.Fragment)

	s.mu.Lock()
	defer s.mu.Unlock()
	server.WriteJSON(w, http.StatusCreated, SessionResponse{ID: id, View: s.controller.View()})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s, ok := h.sessions.Get(id)
	if !ok {
		h.fail(w, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	server.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, View: s.controller.View()})
}

func (h *Handler) postEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s, ok := h.sessions.Get(id)
	if !ok {
		h.fail(w, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id))
		return
	}

	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		h.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.renders
	if err := s.apply(ev); err != nil {
		h.fail(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, EventResponse{View: s.controller.View(), Rendered: s.renders > before})
}

func (h *Handler) newSession(fragment string) (*session, error) {
	s := &session{}
	opts := browse.Options{
		PageSize: h.opts.PageSize,
		Series:   h.catalog.Series,
		Renderer: browse.RenderFunc(func(browse.View) { s.renders++ }),
		Logger:   h.logger,
	}
	if h.opts.Permalinks {
		s.location = browse.NewMemoryLocation(fragment)
		opts.Location = s.location
	}

	c, err := browse.NewController(h.catalog.Episodes, opts)
	if err != nil {
		return nil, err
	}
	s.controller = c
	c.Start()
	return s, nil
}

// apply dispatches one event to the controller. Callers hold s.mu.
func (s *session) apply(ev Event) error {
	switch ev.Type {
	case EventSearch:
		s.controller.OnSearchInput(ev.Value)
	case EventClear:
		s.controller.OnClearSearch()
	case EventSeries:
		s.controller.OnSeriesChange(ev.Value)
	case EventFragment:
		if s.location == nil {
			return nil
		}
		s.location.SetFragment(ev.Value)
		s.controller.OnFragmentChange()
	case EventPrev:
		s.controller.OnPrevPage()
	case EventNext:
		s.controller.OnNextPage()
	default:
		return fmt.Errorf("%w: %q", shared.ErrUnknownEvent, ev.Type)
	}
	return nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrUnknownEvent), errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		h.logger.Error("request failed", "err", err)
	}
	server.WriteError(w, status, err.Error())
}
