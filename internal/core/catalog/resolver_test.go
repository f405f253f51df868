package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []Category {
	return []Category{
		{
			Name: "Land Surveyors",
			SubCategories: []SubCategory{
				{Name: "Boundary Survey"},
				{Name: "Topographic Survey"},
			},
		},
		{
			Name: "Soil Testing",
			SubCategories: []SubCategory{
				{Name: "Boundary Survey"}, // duplicate on purpose: first match wins
				{Name: "Plate Load Test"},
			},
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		categories  []Category
		want        CategoryPath
	}{
		{
			name:        "head category match",
			serviceName: "Land Surveyors",
			categories:  testCatalog(),
			want:        CategoryPath{HeadCategory: "Land Surveyors", ServiceName: "Land Surveyors"},
		},
		{
			name:        "subcategory match carries parent",
			serviceName: "Boundary Survey",
			categories:  testCatalog(),
			want: CategoryPath{
				HeadCategory:  "Land Surveyors",
				MicroCategory: "Boundary Survey",
				ServiceName:   "Boundary Survey",
			},
		},
		{
			name:        "case insensitive and trimmed",
			serviceName: "  plate load TEST ",
			categories:  testCatalog(),
			want: CategoryPath{
				HeadCategory:  "Soil Testing",
				MicroCategory: "Plate Load Test",
				ServiceName:   "  plate load TEST ",
			},
		},
		{
			name:        "no match preserves service name",
			serviceName: "Drone Mapping",
			categories:  testCatalog(),
			want:        CategoryPath{ServiceName: "Drone Mapping"},
		},
		{
			name:        "no partial matching",
			serviceName: "Land",
			categories:  testCatalog(),
			want:        CategoryPath{ServiceName: "Land"},
		},
		{
			name:        "empty service name",
			serviceName: "",
			categories:  testCatalog(),
			want:        CategoryPath{},
		},
		{
			name:        "empty catalog",
			serviceName: "Land Surveyors",
			categories:  nil,
			want:        CategoryPath{ServiceName: "Land Surveyors"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.serviceName, tt.categories))
		})
	}
}

func TestResolve_HeadBeatsSub(t *testing.T) {
	// A name that is both a head category and someone's subcategory resolves
	// as the head category.
	cats := []Category{
		{Name: "Consulting", SubCategories: []SubCategory{{Name: "Soil Testing"}}},
		{Name: "Soil Testing"},
	}

	got := Resolve("Soil Testing", cats)
	assert.Equal(t, "Soil Testing", got.HeadCategory)
	assert.Empty(t, got.MicroCategory)
}
