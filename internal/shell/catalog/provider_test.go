package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corecatalog "github.com/bizdir/edgegate/internal/core/catalog"
)

// fakeFetcher counts calls and can fail on demand.
type fakeFetcher struct {
	calls int
	err   error
	cats  []corecatalog.Category
}

func (f *fakeFetcher) FetchCategories(ctx context.Context) ([]corecatalog.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cats, nil
}

func testCategories() []corecatalog.Category {
	return []corecatalog.Category{
		{Name: "Land Surveyors", SubCategories: []corecatalog.SubCategory{{Name: "Boundary Survey"}}},
	}
}

func TestUpstreamProvider_CachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{cats: testCategories()}
	p := NewUpstreamProvider(f, time.Minute, nil)

	for i := 0; i < 3; i++ {
		cats, err := p.Categories(ctx)
		require.NoError(t, err)
		assert.Len(t, cats, 1)
	}
	assert.Equal(t, 1, f.calls)
}

func TestUpstreamProvider_RefreshesAfterTTL(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{cats: testCategories()}
	p := NewUpstreamProvider(f, 10*time.Millisecond, nil)

	_, err := p.Categories(ctx)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = p.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)
}

func TestUpstreamProvider_ServesStaleOnRefreshFailure(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{cats: testCategories()}
	p := NewUpstreamProvider(f, 10*time.Millisecond, nil)

	_, err := p.Categories(ctx)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	f.err = errors.New("backend down")

	cats, err := p.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Land Surveyors", cats[0].Name)
}

func TestUpstreamProvider_ErrorsWithoutAnySnapshot(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{err: errors.New("backend down")}
	p := NewUpstreamProvider(f, time.Minute, nil)

	_, err := p.Categories(ctx)
	assert.Error(t, err)
}

func TestFileProvider(t *testing.T) {
	content := `
categories:
  - name: Land Surveyors
    sub_categories:
      - name: Boundary Survey
      - name: Topographic Survey
  - name: Soil Testing
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := NewFileProvider(path)
	require.NoError(t, err)

	cats, err := p.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Land Surveyors", cats[0].Name)
	assert.Len(t, cats[0].SubCategories, 2)
	assert.Empty(t, cats[1].SubCategories)
}

func TestFileProvider_MissingFile(t *testing.T) {
	_, err := NewFileProvider("/nonexistent/catalog.yaml")
	assert.Error(t, err)
}

func TestFileProvider_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [[["), 0644))

	_, err := NewFileProvider(path)
	assert.Error(t, err)
}
