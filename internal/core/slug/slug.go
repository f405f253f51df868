// Package slug converts display names to URL-safe slugs and back.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// Slug Generation
// =============================================================================

// Slugify converts a display name to a URL-safe slug.
//
// The transformation rules are:
//   - Uppercase letters (A-Z) are converted to lowercase
//   - Lowercase letters, digits and hyphens are kept as-is
//   - Runs of whitespace are collapsed to a single hyphen
//   - Runs of hyphens are collapsed to one
//   - Leading and trailing hyphens are trimmed
//   - All other characters are removed
//
// This is a pure, total function: empty or all-punctuation input yields
// the empty string.
//
// Example:
//
//	Slugify("Land Surveyors")                  // returns "land-surveyors"
//	Slugify("PEB Building Design Consultant")  // returns "peb-building-design-consultant"
//	Slugify("  Multiple   Spaces--and--dashes  ")  // returns "multiple-spaces-and-dashes"
func Slugify(name string) string {
	lower := strings.ToLower(name)

	var kept strings.Builder
	kept.Grow(len(lower))
	for _, r := range lower {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteByte(' ')
		}
		// All other characters are dropped
	}

	// Collapse whitespace runs to a single hyphen
	joined := strings.Join(strings.Fields(kept.String()), "-")

	// Collapse hyphen runs and trim the leading edge
	out := make([]byte, 0, len(joined))
	for i := 0; i < len(joined); i++ {
		if joined[i] == '-' && (len(out) == 0 || out[len(out)-1] == '-') {
			continue
		}
		out = append(out, joined[i])
	}

	return strings.TrimRight(string(out), "-")
}

// =============================================================================
// Humanization
// =============================================================================

// Humanize converts a slug back to a display string: it splits on hyphens,
// uppercases the first character of each token and joins with spaces.
// Characters after the first are left unchanged, so capitals that survived
// inside a token are preserved.
//
// This is not a strict inverse of Slugify: the original casing and
// punctuation destroyed by slugification cannot be recovered, so the result
// is an approximation of the original name. Empty input yields the empty
// string.
//
// Example:
//
//	Humanize("land-surveyors")  // returns "Land Surveyors"
//	Humanize("andhra-pradesh")  // returns "Andhra Pradesh"
func Humanize(s string) string {
	if s == "" {
		return ""
	}

	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}

	return strings.Join(parts, " ")
}
