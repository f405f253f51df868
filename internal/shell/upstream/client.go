// Package upstream is the typed REST client for the marketplace backend
// API: the category catalog and the lead submission sink.
package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resty.dev/v3"

	"github.com/bizdir/edgegate/internal/core/catalog"
	"github.com/bizdir/edgegate/internal/core/lead"
)

// =============================================================================
// Client
// =============================================================================

// Config holds backend API client configuration.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
}

// DefaultConfig returns sensible client defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:          15 * time.Second,
		RetryCount:       2,
		RetryWaitTime:    500 * time.Millisecond,
		RetryMaxWaitTime: 5 * time.Second,
	}
}

// Client calls the marketplace backend.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a backend API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRetryMaxWaitTime(cfg.RetryMaxWaitTime).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   http,
		logger: logger.With("component", "upstream"),
	}
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

// =============================================================================
// Categories
// =============================================================================

type categoriesResponse struct {
	Categories []catalog.Category `json:"categories"`
}

// FetchCategories retrieves the category catalog snapshot.
func (c *Client) FetchCategories(ctx context.Context) ([]catalog.Category, error) {
	var out categoriesResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v1/categories")
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch categories: backend returned %s", resp.Status())
	}

	c.logger.Debug("fetched category catalog", "categories", len(out.Categories))
	return out.Categories, nil
}

// =============================================================================
// Leads
// =============================================================================

// SubmitLead forwards a lead to the backend sink.
func (c *Client) SubmitLead(ctx context.Context, l lead.Lead) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(l).
		Post("/api/v1/leads")
	if err != nil {
		return fmt.Errorf("submit lead: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("submit lead: backend returned %s", resp.Status())
	}

	c.logger.Info("lead forwarded to backend",
		"service", l.ServiceName,
		"trigger", l.TriggerType,
	)
	return nil
}
