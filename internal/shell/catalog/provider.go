// Package catalog supplies the read-only category snapshot consumed by the
// directory pages, either from the backend API (with a TTL cache) or from a
// local YAML file.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	corecatalog "github.com/bizdir/edgegate/internal/core/catalog"
)

// DefaultTTL is how long a fetched catalog snapshot is served before being
// refreshed.
const DefaultTTL = 5 * time.Minute

// =============================================================================
// Provider Interface
// =============================================================================

// Provider supplies the current category snapshot.
type Provider interface {
	Categories(ctx context.Context) ([]corecatalog.Category, error)
}

// Fetcher retrieves the catalog from its source of truth. Satisfied by the
// upstream backend client.
type Fetcher interface {
	FetchCategories(ctx context.Context) ([]corecatalog.Category, error)
}

// =============================================================================
// Upstream Provider
// =============================================================================

// UpstreamProvider caches one catalog snapshot for a TTL and refreshes it
// from the backend on expiry. When a refresh fails the stale snapshot is
// served instead; the catalog changes rarely and a stale tree beats an
// empty directory page.
type UpstreamProvider struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  *slog.Logger

	mu        sync.Mutex
	snapshot  []corecatalog.Category
	fetchedAt time.Time
}

// NewUpstreamProvider creates a TTL-cached catalog provider.
func NewUpstreamProvider(fetcher Fetcher, ttl time.Duration, logger *slog.Logger) *UpstreamProvider {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UpstreamProvider{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger.With("component", "catalog"),
	}
}

// Categories returns the cached snapshot, refreshing it when the TTL has
// elapsed.
func (p *UpstreamProvider) Categories(ctx context.Context) ([]corecatalog.Category, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snapshot != nil && time.Since(p.fetchedAt) < p.ttl {
		return p.snapshot, nil
	}

	cats, err := p.fetcher.FetchCategories(ctx)
	if err != nil {
		if p.snapshot != nil {
			p.logger.Warn("catalog refresh failed, serving stale snapshot",
				"error", err,
				"age", time.Since(p.fetchedAt),
			)
			return p.snapshot, nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	p.snapshot = cats
	p.fetchedAt = time.Now()
	return p.snapshot, nil
}

// =============================================================================
// File Provider
// =============================================================================

// FileProvider serves a catalog loaded once from a YAML file. Used in
// development and deployments without backend access.
type FileProvider struct {
	categories []corecatalog.Category
}

type catalogFile struct {
	Categories []corecatalog.Category `yaml:"categories"`
}

// NewFileProvider loads the catalog from path.
func NewFileProvider(path string) (*FileProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	return &FileProvider{categories: f.Categories}, nil
}

// Categories returns the loaded snapshot.
func (p *FileProvider) Categories(ctx context.Context) ([]corecatalog.Category, error) {
	return p.categories, nil
}
