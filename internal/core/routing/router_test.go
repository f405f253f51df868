package routing

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Decide(t *testing.T) {
	rt := NewRouter("example.com")

	tests := []struct {
		name string
		host string
		path string
		want Decision
	}{
		// Stage 1: static assets bypass everything.
		{
			name: "favicon bypasses routing",
			host: "example.com",
			path: "/favicon.ico",
			want: Decision{Action: ActionPass},
		},
		{
			name: "nested asset bypasses routing",
			host: "vendor.example.com",
			path: "/assets/img/logo.svg",
			want: Decision{Action: ActionPass},
		},

		// Stage 2: auth pages redirect to their role subdomain.
		{
			name: "vendor auth on main domain redirects to vendor",
			host: "example.com",
			path: "/auth/vendor/login",
			want: Decision{
				Action: ActionRedirect,
				Host:   "vendor.example.com",
				Path:   "/auth/vendor/login",
				Status: http.StatusTemporaryRedirect,
			},
		},
		{
			name: "user auth on dir subdomain redirects to buyer",
			host: "dir.example.com:3000",
			path: "/auth/user/signup",
			want: Decision{
				Action: ActionRedirect,
				Host:   "buyer.example.com:3000",
				Path:   "/auth/user/signup",
				Status: http.StatusTemporaryRedirect,
			},
		},

		// Stage 3: directory paths redirect to the dir subdomain.
		{
			name: "directory path on vendor subdomain redirects to dir",
			host: "vendor.example.com",
			path: "/directory/land-surveyors",
			want: Decision{
				Action: ActionRedirect,
				Host:   "dir.example.com",
				Path:   "/directory/land-surveyors",
				Status: http.StatusTemporaryRedirect,
			},
		},
		{
			name: "bare directory path on main domain redirects to dir",
			host: "example.com",
			path: "/directory",
			want: Decision{
				Action: ActionRedirect,
				Host:   "dir.example.com",
				Path:   "/directory",
				Status: http.StatusTemporaryRedirect,
			},
		},

		// Stage 4: auth paths on the right subdomain are never rewritten.
		{
			name: "vendor auth on vendor subdomain passes",
			host: "vendor.example.com",
			path: "/auth/vendor/login",
			want: Decision{Action: ActionPass},
		},
		{
			name: "generic auth path passes",
			host: "buyer.example.com",
			path: "/auth/forgot-password",
			want: Decision{Action: ActionPass},
		},

		// Stage 5: directory subdomain rewrites bare slugs internally.
		{
			name: "bare slug on dir subdomain rewrites to directory",
			host: "dir.example.com",
			path: "/land-surveyors",
			want: Decision{Action: ActionRewrite, Path: "/directory/land-surveyors"},
		},
		{
			name: "root on dir subdomain passes",
			host: "dir.example.com",
			path: "/",
			want: Decision{Action: ActionPass},
		},
		{
			name: "directory path on dir subdomain is not double-prefixed",
			host: "dir.example.com",
			path: "/directory/land-surveyors",
			want: Decision{Action: ActionPass},
		},
		{
			name: "api path on dir subdomain passes",
			host: "dir.example.com",
			path: "/api/v1/leads",
			want: Decision{Action: ActionPass},
		},

		// Stage 6: bare slugs on the main domain permanently redirect.
		{
			name: "bare slug on main domain redirects to dir with 308",
			host: "example.com",
			path: "/land-surveyors",
			want: Decision{
				Action: ActionRedirect,
				Host:   "dir.example.com",
				Path:   "/land-surveyors",
				Status: http.StatusPermanentRedirect,
			},
		},
		{
			name: "bare slug on www redirects to dir with 308",
			host: "www.example.com:8080",
			path: "/soil-testing-in-pune-maharashtra",
			want: Decision{
				Action: ActionRedirect,
				Host:   "dir.example.com:8080",
				Path:   "/soil-testing-in-pune-maharashtra",
				Status: http.StatusPermanentRedirect,
			},
		},
		{
			name: "main domain root passes",
			host: "example.com",
			path: "/",
			want: Decision{Action: ActionPass},
		},
		{
			name: "reserved vendor prefix on main domain passes",
			host: "example.com",
			path: "/vendor/onboarding",
			want: Decision{Action: ActionPass},
		},
		{
			name: "dashboard on main domain passes",
			host: "www.example.com",
			path: "/dashboard/stats",
			want: Decision{Action: ActionPass},
		},

		// Stage 7: generic subdomain-to-path rewrite.
		{
			name: "vendor subdomain rewrites under vendor prefix",
			host: "vendor.example.com",
			path: "/products",
			want: Decision{Action: ActionRewrite, Path: "/vendor/products"},
		},
		{
			name: "vendor root rewrites to bare prefix",
			host: "vendor.example.com",
			path: "/",
			want: Decision{Action: ActionRewrite, Path: "/vendor"},
		},
		{
			name: "already prefixed vendor path passes",
			host: "vendor.example.com",
			path: "/vendor/products",
			want: Decision{Action: ActionPass},
		},
		{
			name: "dashboard is exempt from the generic rewrite",
			host: "vendor.example.com",
			path: "/dashboard/x",
			want: Decision{Action: ActionPass},
		},
		{
			name: "employee subdomain rewrites to employee prefix",
			host: "emp.example.com",
			path: "/timesheets",
			want: Decision{Action: ActionRewrite, Path: "/employee/timesheets"},
		},
		{
			name: "management subdomain rewrites to management prefix",
			host: "man.example.com",
			path: "/reports",
			want: Decision{Action: ActionRewrite, Path: "/management/reports"},
		},

		// Stage 8: everything else passes.
		{
			name: "unknown subdomain passes",
			host: "blog.example.com",
			path: "/anything",
			want: Decision{Action: ActionPass},
		},
		{
			name: "foreign host passes",
			host: "evil.other.com",
			path: "/land-surveyors",
			want: Decision{Action: ActionPass},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rt.Decide(tt.host, tt.path))
		})
	}
}

// The auth and directory redirects must win over the generic rewrite:
// a /directory path on the vendor subdomain redirects instead of being
// rewritten to /vendor/directory/...
func TestRouter_Decide_StageOrder(t *testing.T) {
	rt := NewRouter("example.com")

	d := rt.Decide("vendor.example.com", "/directory/soil-testing")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "dir.example.com", d.Host)

	d = rt.Decide("buyer.example.com", "/auth/vendor/login")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "vendor.example.com", d.Host)
}

func TestIsStaticAsset(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/favicon.ico", true},
		{"/static/app.js", true},
		{"/assets/fonts/inter.woff2", true},
		{"/land-surveyors", false},
		{"/", false},
		{"/directory/peb-3.5-consultant", true}, // dots in slugs look like assets; accepted
		{"/.well-known", false},                 // leading dot is not an extension
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isStaticAsset(tt.path))
		})
	}
}
