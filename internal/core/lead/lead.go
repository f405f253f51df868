// Package lead models the contact-and-interest records anonymous visitors
// submit through the lead-capture popup.
package lead

import (
	"errors"
	"strings"
	"time"
)

// Trigger values describe how the popup that captured the lead was opened.
const (
	TriggerAuto   = "auto"   // timer-driven auto-open
	TriggerManual = "manual" // CTA button
)

// Validation errors.
var (
	ErrMissingContact = errors.New("lead requires an email or phone")
	ErrInvalidEmail   = errors.New("lead email is malformed")
	ErrMissingService = errors.New("lead requires a service name")
	ErrBadQuantity    = errors.New("lead quantity must be positive")
	ErrBadTrigger     = errors.New("lead trigger type is unknown")
)

// Lead is a demand record for a service or product.
type Lead struct {
	ID          string    `json:"id,omitempty" db:"id"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Unit        string    `json:"unit" db:"unit"`
	ServiceName string    `json:"serviceName" db:"service_name"`
	ProductID   string    `json:"productId,omitempty" db:"product_id"`
	VendorID    string    `json:"vendorId,omitempty" db:"vendor_id"`
	SourcePage  string    `json:"sourcePage,omitempty" db:"source_page"`
	TriggerType string    `json:"triggerType" db:"trigger_type"`
	CreatedAt   time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// Validate checks the lead is complete enough to forward.
func (l Lead) Validate() error {
	if strings.TrimSpace(l.Email) == "" && strings.TrimSpace(l.Phone) == "" {
		return ErrMissingContact
	}
	if l.Email != "" && !strings.Contains(l.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(l.ServiceName) == "" {
		return ErrMissingService
	}
	if l.Quantity < 0 {
		return ErrBadQuantity
	}
	switch l.TriggerType {
	case "", TriggerAuto, TriggerManual:
		return nil
	default:
		return ErrBadTrigger
	}
}
