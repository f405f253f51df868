// Package catalog resolves service names against the marketplace category
// tree for breadcrumbs and display labels.
package catalog

import "strings"

// =============================================================================
// Types
// =============================================================================

// SubCategory is a micro category under a head category.
type SubCategory struct {
	Name string `json:"name" yaml:"name"`
}

// Category is a head category with its micro categories.
type Category struct {
	Name          string        `json:"name" yaml:"name"`
	SubCategories []SubCategory `json:"subCategories" yaml:"sub_categories"`
}

// CategoryPath is the resolved position of a service name in the category
// tree. Empty fields mean no match; ServiceName is always carried through so
// the caller can still display something for an unrecognized service.
type CategoryPath struct {
	HeadCategory  string
	MicroCategory string
	ServiceName   string
}

// =============================================================================
// Resolution
// =============================================================================

// Resolve looks up a service name in the category snapshot.
//
// Matching is a trimmed, case-insensitive exact comparison - no fuzzy or
// partial matching. Head categories are checked before subcategories, and
// the first match in catalog order wins. A missing name or empty catalog
// resolves to no categories with the service name passed through unchanged;
// absence of a match is an expected case, not an error.
func Resolve(serviceName string, categories []Category) CategoryPath {
	path := CategoryPath{ServiceName: serviceName}

	needle := normalize(serviceName)
	if needle == "" || len(categories) == 0 {
		return path
	}

	for _, c := range categories {
		if normalize(c.Name) == needle {
			path.HeadCategory = c.Name
			return path
		}
	}

	for _, c := range categories {
		for _, sc := range c.SubCategories {
			if normalize(sc.Name) == needle {
				path.HeadCategory = c.Name
				path.MicroCategory = sc.Name
				return path
			}
		}
	}

	return path
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
