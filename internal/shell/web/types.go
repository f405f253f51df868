package web

import "github.com/bizdir/edgegate/internal/core/lead"

// =============================================================================
// Response Types
// =============================================================================

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is returned by the readiness endpoint.
type ReadyResponse struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Crumb is one breadcrumb entry on a directory page.
type Crumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// DirectoryPageResponse is the page data for one directory SEO page.
type DirectoryPageResponse struct {
	ServiceName   string  `json:"serviceName,omitempty"`
	CityName      string  `json:"cityName,omitempty"`
	StateName     string  `json:"stateName,omitempty"`
	HeadCategory  string  `json:"headCategory,omitempty"`
	MicroCategory string  `json:"microCategory,omitempty"`
	ServiceSlug   string  `json:"serviceSlug,omitempty"`
	CitySlug      string  `json:"citySlug,omitempty"`
	StateSlug     string  `json:"stateSlug,omitempty"`
	CanonicalPath string  `json:"canonicalPath,omitempty"`
	Breadcrumb    []Crumb `json:"breadcrumb"`
}

// CategoryListing is one head category on the directory index.
type CategoryListing struct {
	Name            string         `json:"name"`
	Path            string         `json:"path"`
	MicroCategories []MicroListing `json:"microCategories,omitempty"`
}

// MicroListing is one micro category on the directory index.
type MicroListing struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// DirectoryIndexResponse is the page data for the directory landing page.
type DirectoryIndexResponse struct {
	Categories []CategoryListing `json:"categories"`
}

// SeoPathResponse is the outcome of building a canonical path.
type SeoPathResponse struct {
	Path      string `json:"path"`
	Canonical bool   `json:"canonical"`
}

// LeadResponse acknowledges an accepted lead.
type LeadResponse struct {
	ID string `json:"id"`
}

// LeadListResponse is the audit listing of recorded leads.
type LeadListResponse struct {
	Leads []lead.Lead `json:"leads"`
	Total int         `json:"total"`
}

// PopupResponse describes the popup state for the visitor's session.
type PopupResponse struct {
	State     string `json:"state"`
	Open      bool   `json:"open"`
	Submitted bool   `json:"submitted"`
}

// =============================================================================
// Request Types
// =============================================================================

// PopupViewRequest begins a page view.
type PopupViewRequest struct {
	AutoOpen bool `json:"autoOpen"`
}
