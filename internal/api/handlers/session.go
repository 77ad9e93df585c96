package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/ygo-catalog/internal/api/response"
	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
)

// SessionHandler exposes browsing sessions over REST.
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// SessionResponse is a session ID with its current view and the filter
// values of the dataset it browses.
type SessionResponse struct {
	ID     string         `json:"id"`
	View   session.View   `json:"view"`
	Facets catalog.Facets `json:"facets"`
}

func newSessionResponse(s *session.Handle, v session.View) SessionResponse {
	return SessionResponse{ID: s.ID(), View: v, Facets: s.Facets()}
}

// PageChangeResponse reports whether a navigation request moved the session.
type PageChangeResponse struct {
	Changed bool         `json:"changed"`
	View    session.View `json:"view"`
}

// CreateSession starts a session over the current catalog.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, _ *http.Request) {
	s := h.manager.Create()
	response.Created(w, newSessionResponse(s, s.View()))
}

// GetSession returns the current view of a session.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	response.Success(w, newSessionResponse(s, s.View()))
}

// SetCriteria replaces the criteria of a session and returns to page 1.
func (h *SessionHandler) SetCriteria(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var criteria catalog.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	v := s.Update(func(in *session.Input) { in.SetCriteria(criteria) })
	response.Success(w, newSessionResponse(s, v))
}

// SetPage moves a session to {"page": n}. A page out of range leaves the
// session untouched and is reported with changed=false.
func (h *SessionHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var body struct {
		Page *int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.Page == nil {
		response.BadRequest(w, errors.New("page is required"))
		return
	}

	h.navigate(w, s, func(in *session.Input) bool { return in.GoToPage(*body.Page) })
}

// NextPage moves a session forward one page.
func (h *SessionHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.lookup(w, r); ok {
		h.navigate(w, s, (*session.Input).NextPage)
	}
}

// PrevPage moves a session back one page.
func (h *SessionHandler) PrevPage(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.lookup(w, r); ok {
		h.navigate(w, s, (*session.Input).PrevPage)
	}
}

// DeleteSession ends a session.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !h.manager.Delete(id) {
		response.NotFound(w, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id))
		return
	}
	response.NoContent(w)
}

func (h *SessionHandler) navigate(w http.ResponseWriter, s *session.Handle, move func(*session.Input) bool) {
	var changed bool
	v := s.Update(func(in *session.Input) { changed = move(in) })
	response.Success(w, PageChangeResponse{Changed: changed, View: v})
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Handle, bool) {
	id := chi.URLParam(r, "sessionID")
	s, err := h.manager.Get(id)
	if err != nil {
		response.NotFound(w, fmt.Errorf("%w: %s", err, id))
		return nil, false
	}
	return s, true
}
