package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdir/edgegate/internal/core/routing"
)

// echoPath records the path the inner handler actually received.
func echoPath(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
}

func TestSubdomain_RewriteIsInternal(t *testing.T) {
	var got string
	mw := Subdomain(routing.NewRouter("example.com"), nil)
	srv := mw(echoPath(&got))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Host = "vendor.example.com"
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/vendor/products", got, "inner handler must see the rewritten path")
}

func TestSubdomain_DashboardNotRewritten(t *testing.T) {
	var got string
	mw := Subdomain(routing.NewRouter("example.com"), nil)
	srv := mw(echoPath(&got))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/x", nil)
	req.Host = "vendor.example.com"
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, "/dashboard/x", got)
}

func TestSubdomain_BareSlugRedirectsPermanently(t *testing.T) {
	mw := Subdomain(routing.NewRouter("example.com"), nil)
	srv := mw(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/land-surveyors", nil)
	req.Host = "example.com"
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "http://dir.example.com/land-surveyors", rec.Header().Get("Location"))
}

func TestSubdomain_RedirectPreservesPortAndQuery(t *testing.T) {
	mw := Subdomain(routing.NewRouter("example.com"), nil)
	srv := mw(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/directory/soil-testing?page=2", nil)
	req.Host = "www.example.com:3000"
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "http://dir.example.com:3000/directory/soil-testing?page=2", rec.Header().Get("Location"))
}

func TestSubdomain_RedirectHonorsForwardedProto(t *testing.T) {
	mw := Subdomain(routing.NewRouter("example.com"), nil)
	srv := mw(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/land-surveyors", nil)
	req.Host = "example.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "https://dir.example.com/land-surveyors", rec.Header().Get("Location"))
}

func TestSubdomain_DirSubdomainRewritesWithoutRedirect(t *testing.T) {
	var got string
	mw := Subdomain(routing.NewRouter("example.com"), nil)
	srv := mw(echoPath(&got))

	req := httptest.NewRequest(http.MethodGet, "/land-surveyors", nil)
	req.Host = "dir.example.com"
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Equal(t, "/directory/land-surveyors", got)
}

func TestSubdomain_StaticAssetPassesThrough(t *testing.T) {
	var got string
	mw := Subdomain(routing.NewRouter("example.com"), nil)
	srv := mw(echoPath(&got))

	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	req.Host = "dir.example.com"
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, "/favicon.ico", got)
}
