// Package routing decides how inbound requests are routed across the
// marketplace subdomains: pass-through, internal path rewrite, or
// cross-subdomain redirect. Pure logic, no I/O.
package routing

import "strings"

// Known subdomains of the marketplace.
const (
	SubVendor    = "vendor"
	SubBuyer     = "buyer"
	SubEmployee  = "emp"
	SubDirectory = "dir"
	SubManage    = "man"
	SubWWW       = "www"
)

// =============================================================================
// Host Parsing
// =============================================================================

// HostParser extracts the subdomain from a request host.
// Pure function - no I/O.
type HostParser struct {
	BaseDomain string // e.g., "example.com" or "localhost"
}

// HostInfo is the decomposition of a request host.
type HostInfo struct {
	Subdomain string // "" for the bare base domain
	Port      string // without the colon, "" if absent
}

// Parse decomposes a host into subdomain and port.
// "vendor.example.com:8080" with base "example.com" → {vendor, 8080}.
// Returns false when the host does not belong to the base domain; callers
// treat an unrecognized host as pass-through.
func (p HostParser) Parse(host string) (HostInfo, bool) {
	if host == "" {
		return HostInfo{}, false
	}

	var info HostInfo

	// Strip port if present (find last colon, check if it's followed by digits)
	name := host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		potentialPort := host[idx+1:]
		isPort := len(potentialPort) > 0
		for _, c := range potentialPort {
			if c < '0' || c > '9' {
				isPort = false
				break
			}
		}
		if isPort {
			name = host[:idx]
			info.Port = potentialPort
		}
	}

	if strings.EqualFold(name, p.BaseDomain) {
		return info, true
	}

	suffix := "." + p.BaseDomain
	if len(name) <= len(suffix) || !strings.EqualFold(name[len(name)-len(suffix):], suffix) {
		return HostInfo{}, false
	}

	info.Subdomain = strings.ToLower(name[:len(name)-len(suffix)])
	return info, true
}

// HostFor rebuilds a host for the given subdomain, preserving the port the
// request arrived with. An empty subdomain yields the bare base domain.
func (p HostParser) HostFor(subdomain string, info HostInfo) string {
	host := p.BaseDomain
	if subdomain != "" {
		host = subdomain + "." + p.BaseDomain
	}
	if info.Port != "" {
		host += ":" + info.Port
	}
	return host
}
