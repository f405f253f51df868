package web

import (
	"log/slog"
	"net/http"

	"github.com/bizdir/edgegate/internal/core/routing"
)

// Subdomain returns the middleware that applies subdomain routing ahead of
// route matching: pass-through, internal path rewrite, or cross-subdomain
// redirect. It runs before everything else so a redirect fires before any
// rewrite could send the request down a wrong internal path.
func Subdomain(rt *routing.Router, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "subdomain")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := rt.Decide(r.Host, r.URL.Path)

			switch d.Action {
			case routing.ActionRewrite:
				logger.Debug("rewriting request path",
					"host", r.Host,
					"from", r.URL.Path,
					"to", d.Path,
				)
				// Internal rewrite only; the URL the client sees is unchanged.
				r.URL.Path = d.Path
				next.ServeHTTP(w, r)

			case routing.ActionRedirect:
				target := scheme(r) + "://" + d.Host + d.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				logger.Debug("redirecting across subdomains",
					"host", r.Host,
					"path", r.URL.Path,
					"target", target,
					"status", d.Status,
				)
				http.Redirect(w, r, target, d.Status)

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// scheme resolves the request scheme, trusting a forwarding proxy's header
// first.
func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
