// Package web provides the gateway's HTTP surface: directory SEO pages,
// the canonical-path builder, lead capture, and the popup state endpoints.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	corecatalog "github.com/bizdir/edgegate/internal/core/catalog"
	"github.com/bizdir/edgegate/internal/core/lead"
	"github.com/bizdir/edgegate/internal/core/seo"
	"github.com/bizdir/edgegate/internal/core/slug"
	"github.com/bizdir/edgegate/internal/shell/catalog"
	"github.com/bizdir/edgegate/internal/shell/store"
)

// LeadSink forwards accepted leads to the backend. Satisfied by the
// upstream client.
type LeadSink interface {
	SubmitLead(ctx context.Context, l lead.Lead) error
}

// =============================================================================
// Handler
// =============================================================================

// Config holds the handler's collaborators.
type Config struct {
	Catalog  catalog.Provider
	Leads    LeadSink
	Store    store.Store
	Sessions *Manager
	Logger   *slog.Logger
}

// Handler provides the gateway's HTTP handlers.
type Handler struct {
	catalog  catalog.Provider
	leads    LeadSink
	store    store.Store
	sessions *Manager
	logger   *slog.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handler{
		catalog:  cfg.Catalog,
		leads:    cfg.Leads,
		store:    cfg.Store,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
	}
}

// Routes returns the router with all routes configured. The subdomain
// middleware is applied by the caller, outside this router, so rewrites
// land before route matching.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestIDHeader)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	// Directory SEO pages
	r.Route("/directory", func(r chi.Router) {
		r.Get("/", h.handleDirectoryIndex)
		r.Get("/*", h.handleDirectoryPage)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/seo-path", h.handleSeoPath)

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", h.handleCreateLead)
			r.Get("/", h.handleListLeads)
		})

		r.Route("/popup", func(r chi.Router) {
			r.Get("/", h.handlePopupState)
			r.Post("/view", h.handlePopupView)
			r.Post("/open", h.handlePopupOpen)
			r.Post("/close", h.handlePopupClose)
		})
	})

	return r
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	checks := make(map[string]string)
	ready := true

	if _, err := h.store.CountLeads(ctx); err != nil {
		checks["database"] = "failed"
		ready = false
	} else {
		checks["database"] = "ok"
	}

	if _, err := h.catalog.Categories(ctx); err != nil {
		checks["catalog"] = "failed"
		ready = false
	} else {
		checks["catalog"] = "ok"
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, ReadyResponse{Ready: ready, Checks: checks})
}

// =============================================================================
// Directory Handlers
// =============================================================================

func (h *Handler) handleDirectoryIndex(w http.ResponseWriter, r *http.Request) {
	cats := h.categories(r.Context())

	resp := DirectoryIndexResponse{Categories: make([]CategoryListing, 0, len(cats))}
	for _, c := range cats {
		path, ok := seo.BuildPath(seo.PathInput{ServiceName: c.Name})
		if !ok {
			continue
		}
		listing := CategoryListing{Name: c.Name, Path: path}
		for _, sc := range c.SubCategories {
			scPath, ok := seo.BuildPath(seo.PathInput{ServiceName: sc.Name})
			if !ok {
				continue
			}
			listing.MicroCategories = append(listing.MicroCategories, MicroListing{
				Name: sc.Name,
				Path: scPath,
			})
		}
		resp.Categories = append(resp.Categories, listing)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDirectoryPage(w http.ResponseWriter, r *http.Request) {
	wildcard := strings.Trim(chi.URLParam(r, "*"), "/")
	if wildcard == "" {
		h.handleDirectoryIndex(w, r)
		return
	}

	triple := seo.ParseSlug(strings.Split(wildcard, "/"))

	// Humanized slugs are a fallback; catalog names are the source of truth
	// for display whenever a match exists.
	serviceName := slug.Humanize(triple.Service)
	resolved := corecatalog.Resolve(serviceName, h.categories(r.Context()))
	if resolved.MicroCategory != "" {
		serviceName = resolved.MicroCategory
	} else if resolved.HeadCategory != "" {
		serviceName = resolved.HeadCategory
	}

	cityName := slug.Humanize(triple.City)
	stateName := slug.Humanize(triple.State)

	canonical, _ := seo.BuildPath(seo.PathInput{
		ServiceName: serviceName,
		CityName:    cityName,
		StateName:   stateName,
	})

	resp := DirectoryPageResponse{
		ServiceName:   serviceName,
		CityName:      cityName,
		StateName:     stateName,
		HeadCategory:  resolved.HeadCategory,
		MicroCategory: resolved.MicroCategory,
		ServiceSlug:   triple.Service,
		CitySlug:      triple.City,
		StateSlug:     triple.State,
		CanonicalPath: canonical,
		Breadcrumb:    h.breadcrumb(serviceName, cityName, stateName, resolved, canonical),
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// breadcrumb builds the trail Home > head category > service > location.
func (h *Handler) breadcrumb(serviceName, cityName, stateName string, resolved corecatalog.CategoryPath, canonical string) []Crumb {
	crumbs := []Crumb{{Label: "Home", Path: "/"}}

	if resolved.HeadCategory != "" && resolved.HeadCategory != serviceName {
		if path, ok := seo.BuildPath(seo.PathInput{ServiceName: resolved.HeadCategory}); ok {
			crumbs = append(crumbs, Crumb{Label: resolved.HeadCategory, Path: path})
		}
	}

	if serviceName != "" {
		if path, ok := seo.BuildPath(seo.PathInput{ServiceName: serviceName}); ok {
			crumbs = append(crumbs, Crumb{Label: serviceName, Path: path})
		}
	}

	if cityName != "" && stateName != "" && canonical != "" {
		crumbs = append(crumbs, Crumb{Label: cityName + ", " + stateName, Path: canonical})
	}

	return crumbs
}

// categories returns the current catalog snapshot, degrading to an empty
// tree when the provider fails: directory pages still render from
// humanized slugs.
func (h *Handler) categories(ctx context.Context) []corecatalog.Category {
	cats, err := h.catalog.Categories(ctx)
	if err != nil {
		h.logger.Warn("catalog unavailable, rendering without categories", "error", err)
		return nil
	}
	return cats
}

// =============================================================================
// SEO Path Handler
// =============================================================================

func (h *Handler) handleSeoPath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := seo.PathInput{
		ServiceName: q.Get("service"),
		CityName:    q.Get("city"),
		StateName:   q.Get("state"),
	}

	if path, ok := seo.BuildPath(in); ok {
		h.writeJSON(w, http.StatusOK, SeoPathResponse{Path: path, Canonical: true})
		return
	}

	// No canonical path without a service: fall back to a query search.
	values := url.Values{}
	for key, v := range map[string]string{"service": in.ServiceName, "city": in.CityName, "state": in.StateName} {
		if v != "" {
			values.Set(key, v)
		}
	}
	path := seo.PathPrefix
	if len(values) > 0 {
		path += "?" + values.Encode()
	}
	h.writeJSON(w, http.StatusOK, SeoPathResponse{Path: path, Canonical: false})
}

// =============================================================================
// Lead Handlers
// =============================================================================

func (h *Handler) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var l lead.Lead
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", "invalid_body")
		return
	}
	if err := l.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "invalid_lead")
		return
	}

	if err := h.leads.SubmitLead(ctx, l); err != nil {
		h.logger.Error("lead submission to backend failed", "error", err, "service", l.ServiceName)
		h.writeError(w, http.StatusBadGateway, "lead submission failed", "upstream_failed")
		return
	}

	// Audit trail is best effort: the lead already reached the backend.
	if err := h.store.CreateLead(ctx, &l); err != nil {
		h.logger.Error("failed to record lead audit row", "error", err, "lead_id", l.ID)
	}

	// The popup never auto-opens again this session.
	sid := h.sessions.SessionID(w, r)
	h.sessions.Scheduler(ctx, sid).MarkSubmitted(ctx)

	h.writeJSON(w, http.StatusCreated, LeadResponse{ID: l.ID})
}

func (h *Handler) handleListLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts := store.ListOptions{}
	if v := r.URL.Query().Get("limit"); v != "" {
		opts.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		opts.Offset, _ = strconv.Atoi(v)
	}

	leads, err := h.store.ListLeads(ctx, opts)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list leads", "store_error")
		return
	}

	total, err := h.store.CountLeads(ctx)
	if err != nil {
		h.logger.Error("failed to count leads", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to count leads", "store_error")
		return
	}

	h.writeJSON(w, http.StatusOK, LeadListResponse{Leads: leads, Total: total})
}

// =============================================================================
// Popup Handlers
// =============================================================================

func (h *Handler) handlePopupState(w http.ResponseWriter, r *http.Request) {
	sid := h.sessions.SessionID(w, r)
	s := h.sessions.Scheduler(r.Context(), sid)
	h.writePopup(w, s.State().String(), s.IsOpen(), s.Submitted())
}

func (h *Handler) handlePopupView(w http.ResponseWriter, r *http.Request) {
	// An absent body means default gating (no auto-open).
	var req PopupViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", "invalid_body")
		return
	}

	sid := h.sessions.SessionID(w, r)
	s := h.sessions.BeginView(r.Context(), sid, req.AutoOpen)
	h.writePopup(w, s.State().String(), s.IsOpen(), s.Submitted())
}

func (h *Handler) handlePopupOpen(w http.ResponseWriter, r *http.Request) {
	sid := h.sessions.SessionID(w, r)
	s := h.sessions.Scheduler(r.Context(), sid)
	s.Open()
	h.writePopup(w, s.State().String(), s.IsOpen(), s.Submitted())
}

func (h *Handler) handlePopupClose(w http.ResponseWriter, r *http.Request) {
	sid := h.sessions.SessionID(w, r)
	s := h.sessions.Scheduler(r.Context(), sid)
	s.Close()
	h.writePopup(w, s.State().String(), s.IsOpen(), s.Submitted())
}

func (h *Handler) writePopup(w http.ResponseWriter, state string, open, submitted bool) {
	h.writeJSON(w, http.StatusOK, PopupResponse{
		State:     state,
		Open:      open,
		Submitted: submitted,
	})
}

// =============================================================================
// Response Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
