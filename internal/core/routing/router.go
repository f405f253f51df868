package routing

import (
	"net/http"
	"strings"
)

// =============================================================================
// Decisions
// =============================================================================

// Action is the kind of routing decision taken for a request.
type Action int

const (
	// ActionPass leaves the request untouched.
	ActionPass Action = iota
	// ActionRewrite changes the internal routing path; the URL the client
	// sees is unchanged.
	ActionRewrite
	// ActionRedirect sends the client to another host (and sometimes path).
	ActionRedirect
)

// Decision is the outcome of routing one request.
type Decision struct {
	Action Action

	// Path is the internal path to serve for ActionRewrite.
	Path string

	// Host and Status describe the redirect target for ActionRedirect;
	// Path carries the redirect path.
	Host   string
	Status int
}

func pass() Decision {
	return Decision{Action: ActionPass}
}

func rewrite(path string) Decision {
	return Decision{Action: ActionRewrite, Path: path}
}

func redirect(host, path string, status int) Decision {
	return Decision{Action: ActionRedirect, Host: host, Path: path, Status: status}
}

// =============================================================================
// Router
// =============================================================================

// DefaultRoutes is the static subdomain-to-path table. Immutable for the
// process lifetime.
func DefaultRoutes() map[string]string {
	return map[string]string{
		SubVendor:    "/vendor",
		SubBuyer:     "/buyer",
		SubEmployee:  "/employee",
		SubDirectory: "/directory",
		SubManage:    "/management",
	}
}

// reservedDirPrefixes are paths on the directory subdomain that are never
// rewritten under /directory.
var reservedDirPrefixes = []string{
	"/directory", "/api", "/_next", "/dashboard", "/auth",
	"/static", "/assets", "/favicon",
}

// reservedMainPrefixes are paths on the bare/www domain that are never
// redirected to the directory subdomain.
var reservedMainPrefixes = []string{
	"/api", "/_next", "/dashboard", "/auth", "/static", "/assets", "/favicon",
	"/directory", "/vendor", "/buyer", "/employee", "/management",
}

// Router decides, per request, whether to pass through, rewrite the internal
// path, or redirect across subdomains. Stages are evaluated strictly in
// order and the first match wins; the auth and directory redirects must run
// before the generic subdomain rewrite or a request would be rewritten into
// the wrong internal path before the redirect could fire.
type Router struct {
	parser HostParser
	routes map[string]string
}

// NewRouter creates a router for the given base domain using the default
// subdomain route table.
func NewRouter(baseDomain string) *Router {
	return &Router{
		parser: HostParser{BaseDomain: baseDomain},
		routes: DefaultRoutes(),
	}
}

// Parser exposes the host parser so callers can rebuild hosts consistently.
func (rt *Router) Parser() HostParser {
	return rt.parser
}

// Decide evaluates the routing stages for one request.
func (rt *Router) Decide(host, path string) Decision {
	// Static assets bypass routing entirely.
	if isStaticAsset(path) {
		return pass()
	}

	info, ok := rt.parser.Parse(host)
	if !ok {
		// Unrecognized host: never block rendering.
		return pass()
	}
	sub := info.Subdomain

	// Auth pages live on the subdomain of the role they authenticate.
	if strings.HasPrefix(path, "/auth/vendor/") && sub != SubVendor {
		return redirect(rt.parser.HostFor(SubVendor, info), path, http.StatusTemporaryRedirect)
	}
	if strings.HasPrefix(path, "/auth/user/") && sub != SubBuyer {
		return redirect(rt.parser.HostFor(SubBuyer, info), path, http.StatusTemporaryRedirect)
	}

	// Directory pages live on the directory subdomain.
	if (path == "/directory" || strings.HasPrefix(path, "/directory/")) && sub != SubDirectory {
		return redirect(rt.parser.HostFor(SubDirectory, info), path, http.StatusTemporaryRedirect)
	}

	// Remaining auth paths are already on the right subdomain; never rewrite.
	if strings.HasPrefix(path, "/auth/") || path == "/auth" {
		return pass()
	}

	// Directory subdomain serves bare SEO slugs from /directory internally.
	if sub == SubDirectory {
		if path != "/" && !hasAnyPrefix(path, reservedDirPrefixes) {
			return rewrite("/directory" + path)
		}
		return pass()
	}

	// Bare SEO slugs on the main domain permanently redirect to the
	// directory subdomain so crawlers converge on one canonical host.
	if sub == "" || sub == SubWWW {
		if path != "/" && !hasAnyPrefix(path, reservedMainPrefixes) {
			return redirect(rt.parser.HostFor(SubDirectory, info), path, http.StatusPermanentRedirect)
		}
		return pass()
	}

	// Generic subdomain-to-path rewrite. Dashboard routes are
	// subdomain-invariant and stay untouched.
	if prefix, found := rt.routes[sub]; found {
		if strings.HasPrefix(path, prefix) || strings.HasPrefix(path, "/dashboard") {
			return pass()
		}
		if path == "/" {
			return rewrite(prefix)
		}
		return rewrite(prefix + path)
	}

	return pass()
}

// isStaticAsset reports whether the final path segment carries a file
// extension, e.g. /favicon.ico or /assets/logo.svg.
func isStaticAsset(path string) bool {
	last := path
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		last = path[idx+1:]
	}
	dot := strings.LastIndex(last, ".")
	return dot > 0 && dot < len(last)-1
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
