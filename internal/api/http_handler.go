package api

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/domain"
	"catalog-browser/internal/metrics"
	"catalog-browser/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html.tmpl").Funcs(template.FuncMap{
	"toneClass": toneClass,
}).ParseFS(templateFS, "templates/index.html.tmpl"))

// toneClass maps an owner tone to the CSS class of the owner cell.
func toneClass(t catalog.Tone) string {
	switch t {
	case catalog.ToneMale:
		return "has-text-link"
	case catalog.ToneFemale:
		return "has-text-danger"
	default:
		return ""
	}
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	browser  *catalog.Browser
	sessions *session.Registry
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(b *catalog.Browser, sessions *session.Registry, m *metrics.Metrics) *HTTPHandler {
	return &HTTPHandler{
		browser:  b,
		sessions: sessions,
		metrics:  m,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// errInvalidOwner is returned by parseOwnerParam for malformed owner values.
var errInvalidOwner = errors.New("invalid owner ID format")

// parseOwnerParam reads the optional "owner" query parameter. Missing or empty means no owner.
func parseOwnerParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("owner")
	if raw == "" {
		return catalog.NoOwner, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidOwner
	}
	return id, nil
}

// stateFromRequest builds a state from the owner and q query parameters.
func (h *HTTPHandler) stateFromRequest(r *http.Request) (catalog.State, int, error) {
	ownerID, err := parseOwnerParam(r)
	if err != nil {
		return catalog.State{}, http.StatusBadRequest, err
	}
	s, err := h.browser.StateFor(ownerID, r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownOwner) {
			return catalog.State{}, http.StatusNotFound, err
		}
		return catalog.State{}, http.StatusInternalServerError, err
	}
	return s, http.StatusOK, nil
}

func (h *HTTPHandler) render(s catalog.State) catalog.View {
	v := h.browser.Render(s)
	h.metrics.ObserveRender(v.NoResults)
	return v
}

// --- Page ---

type pageTab struct {
	catalog.OwnerTab
	URL string
}

type pageData struct {
	View     catalog.View
	Tabs     []pageTab
	ClearURL string
}

// pageURL builds a link to the page for the given owner and query.
func pageURL(ownerID int64, query string) string {
	q := url.Values{}
	if ownerID != catalog.NoOwner {
		q.Set("owner", strconv.FormatInt(ownerID, 10))
	}
	if query != "" {
		q.Set("q", query)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// Index renders the catalog page for the owner and q query parameters.
// Every control on the page is a link or a GET form, so the page works without scripts.
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	s, code, err := h.stateFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}

	v := h.render(s)
	data := pageData{View: v, ClearURL: pageURL(s.OwnerID, "")}
	for _, tab := range v.Tabs {
		data.Tabs = append(data.Tabs, pageTab{OwnerTab: tab, URL: pageURL(tab.ID, s.Query)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.Error("Failed to render catalog page", "error", err)
	}
}

// --- Catalog API ---

func (h *HTTPHandler) ListOwners(w http.ResponseWriter, r *http.Request) {
	owners := h.browser.Owners()
	if owners == nil {
		owners = []domain.User{}
	}
	respondWithJSON(w, http.StatusOK, owners)
}

// ListProducts returns the view for the owner and q query parameters without creating a session.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	s, code, err := h.stateFromRequest(r)
	if err != nil {
		respondWithError(w, code, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, h.render(s))
}

// --- Session API ---

// SessionResponse is returned by every session endpoint.
type SessionResponse struct {
	ID    uuid.UUID     `json:"id"`
	State catalog.State `json:"state"`
	View  catalog.View  `json:"view"`
}

func parseSessionID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "sessionId"))
}

func (h *HTTPHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, s, err := h.sessions.Create()
	if err != nil {
		slog.Warn("CreateSession failed", "error", err)
		if errors.Is(err, session.ErrSessionLimit) {
			respondWithError(w, http.StatusServiceUnavailable, session.ErrSessionLimit.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to create session")
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, SessionResponse{ID: id, State: s, View: h.render(s)})
}

func (h *HTTPHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, session.ErrSessionNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve session")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, SessionResponse{ID: id, State: s, View: h.render(s)})
}

// ApplyAction runs one UI event against a session and returns the new view.
func (h *HTTPHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var input catalog.Action
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	s, err := h.sessions.Apply(id, input)
	if err != nil {
		slog.Warn("ApplyAction failed", "session", id, "action", input.Type, "error", err)
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			respondWithError(w, http.StatusNotFound, session.ErrSessionNotFound.Error())
		case errors.Is(err, catalog.ErrUnknownOwner):
			respondWithError(w, http.StatusNotFound, catalog.ErrUnknownOwner.Error())
		case errors.Is(err, catalog.ErrUnknownAction):
			respondWithError(w, http.StatusBadRequest, catalog.ErrUnknownAction.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to apply action")
		}
		return
	}

	h.metrics.ObserveAction(string(input.Type))
	respondWithJSON(w, http.StatusOK, SessionResponse{ID: id, State: s, View: h.render(s)})
}

func (h *HTTPHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, session.ErrSessionNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete session")
		}
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)

	r.Get("/api/v1/owners", h.ListOwners)
	r.Get("/api/v1/products", h.ListProducts)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/actions", h.ApplyAction)
		})
	})
}
