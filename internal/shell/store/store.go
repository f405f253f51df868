package store

import (
	"context"

	"github.com/bizdir/edgegate/internal/core/lead"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for the lead audit trail: every
// lead the gateway accepts and forwards is recorded locally so the
// marketplace can reconcile against the backend.
type Store interface {
	CreateLead(ctx context.Context, l *lead.Lead) error
	GetLead(ctx context.Context, id string) (*lead.Lead, error)
	ListLeads(ctx context.Context, opts ListOptions) ([]lead.Lead, error)
	CountLeads(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}

// =============================================================================
// Options
// =============================================================================

// ListOptions defines pagination options.
type ListOptions struct {
	Limit  int
	Offset int
}

// withDefaults clamps options to sane bounds.
func (o ListOptions) withDefaults() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Limit > 500 {
		o.Limit = 500
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
