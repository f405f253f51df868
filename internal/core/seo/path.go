// Package seo builds and parses canonical directory URL paths.
//
// The canonical shapes are:
//
//	/directory/{service-slug}
//	/directory/{service-slug}-in-{city-slug}-{state-slug}
//
// These paths are a contract surface: the backend sitemap generator emits
// them and published URLs depend on them, so the parsing heuristic must not
// change without a coordinated migration.
package seo

import (
	"strings"

	"github.com/bizdir/edgegate/internal/core/slug"
)

// PathPrefix is the path prefix all canonical directory URLs share.
const PathPrefix = "/directory"

// locationMarker separates the service part of a combined slug from the
// city/state part.
const locationMarker = "-in-"

// =============================================================================
// Types
// =============================================================================

// SlugTriple is the decomposition of a directory URL into its slug parts.
// An empty field means the part is unknown.
type SlugTriple struct {
	Service string
	City    string
	State   string
}

// PathInput names the entities a canonical path is built from.
type PathInput struct {
	ServiceName string
	CityName    string
	StateName   string
}

// =============================================================================
// Building
// =============================================================================

// BuildPath composes the canonical directory path for the given names.
//
// With service, city and state all present it returns the combined
// service-in-city-state form. With only a service it returns the service-only
// form. Without a service there is no canonical path and ok is false; the
// caller must fall back to a query-parameter search. A partial location
// (city without state, or state without city) is treated as no location.
func BuildPath(in PathInput) (path string, ok bool) {
	service := slug.Slugify(in.ServiceName)
	if service == "" {
		return "", false
	}

	city := slug.Slugify(in.CityName)
	state := slug.Slugify(in.StateName)
	if city != "" && state != "" {
		return PathPrefix + "/" + service + locationMarker + city + "-" + state, true
	}

	return PathPrefix + "/" + service, true
}

// =============================================================================
// Parsing
// =============================================================================

// ParseSlug decomposes catch-all URL segments into a SlugTriple.
//
// The segments are joined with hyphens and split on the first "-in-"
// occurrence. The location part is then split positionally: the last two
// tokens are taken as the state, anything before them as the city. This is a
// heuristic, not a guaranteed-correct parse. It matches the two-token state
// names of the target locale; a state or region name with one or three
// hyphenated words will be mis-split. The rule is kept as-is because
// published URLs already encode it.
func ParseSlug(segments []string) SlugTriple {
	joined := strings.Join(segments, "-")
	if joined == "" {
		return SlugTriple{}
	}

	idx := strings.Index(joined, locationMarker)
	if idx < 0 {
		return SlugTriple{Service: joined}
	}

	triple := SlugTriple{Service: joined[:idx]}

	location := joined[idx+len(locationMarker):]
	if location == "" {
		return triple
	}

	parts := strings.Split(location, "-")
	switch {
	case len(parts) >= 3:
		triple.State = strings.Join(parts[len(parts)-2:], "-")
		triple.City = strings.Join(parts[:len(parts)-2], "-")
	case len(parts) == 2:
		triple.City = parts[0]
		triple.State = parts[1]
	case len(parts) == 1:
		triple.City = parts[0]
	}

	return triple
}
