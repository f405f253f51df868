// Package popup schedules the lead-capture overlay shown to anonymous
// visitors: a one-shot delayed auto-open with a manual override, a
// per-view dismissal having no memory across views, and a submitted flag
// persisted for the rest of the browser session.
package popup

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDelay is how long a page view must last before the popup
// auto-opens.
const DefaultDelay = 20 * time.Second

// DefaultStorageKey is the session storage key for the submitted flag.
const DefaultStorageKey = "lead_popup_submitted"

// submittedValue is the value written under the storage key on submission.
const submittedValue = "1"

// =============================================================================
// Storage Capability
// =============================================================================

// Storage is the session-scoped key-value capability the scheduler persists
// the submitted flag through. It is read once at construction and written
// once on submission.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// =============================================================================
// States
// =============================================================================

// State is the scheduler's position in its lifecycle.
type State int

const (
	// StateIdle is the initial state: no timer armed.
	StateIdle State = iota
	// StateScheduled means the auto-open timer is armed.
	StateScheduled
	// StateOpen means the popup is showing.
	StateOpen
	// StateDismissed means the visitor closed the popup this view.
	StateDismissed
	// StateSubmitted means the visitor submitted a lead this session.
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateOpen:
		return "open"
	case StateDismissed:
		return "dismissed"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// =============================================================================
// Scheduler
// =============================================================================

// Config configures a Scheduler.
type Config struct {
	Delay      time.Duration // auto-open delay; DefaultDelay if zero
	StorageKey string        // DefaultStorageKey if empty
	Logger     *slog.Logger
}

// Scheduler owns the popup state for one page view. The timer callback
// fires on its own goroutine, so all transitions are mutex-guarded.
type Scheduler struct {
	storage Storage
	cfg     Config

	mu        sync.Mutex
	state     State
	timer     *time.Timer
	submitted bool // persists for the session; dismissal does not
}

// NewScheduler creates a scheduler for a fresh page view, reading the
// persisted submitted flag. A storage read failure counts as "not
// submitted": the scheduler fails open toward showing the popup rather than
// silently suppressing lead capture.
func NewScheduler(ctx context.Context, storage Storage, cfg Config) *Scheduler {
	if cfg.Delay == 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Scheduler{storage: storage, cfg: cfg, state: StateIdle}

	if v, err := storage.Get(ctx, cfg.StorageKey); err != nil {
		cfg.Logger.Warn("popup storage read failed, treating as not submitted", "error", err)
	} else if v == submittedValue {
		s.submitted = true
		s.state = StateSubmitted
	}

	return s
}

// Arm schedules the auto-open timer. autoOpen is the caller's gating signal
// (typically "visitor is not authenticated"). The timer is never armed once
// a lead was submitted this session, nor after a dismissal this view.
func (s *Scheduler) Arm(autoOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !autoOpen || s.submitted || s.state != StateIdle {
		return
	}

	s.state = StateScheduled
	s.timer = time.AfterFunc(s.cfg.Delay, s.fire)
}

// fire is the timer callback.
func (s *Scheduler) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A superseding transition may have raced the timer.
	if s.state != StateScheduled {
		return
	}
	s.state = StateOpen
	s.timer = nil
}

// Open opens the popup immediately. This is the override behind CTA
// buttons: it is honored from any state, including after submission, and
// cancels a pending timer.
func (s *Scheduler) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.state = StateOpen
}

// Close dismisses an open popup. Dismissal is in-memory only: a fresh page
// view may arm the timer again.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return
	}
	s.state = StateDismissed
}

// MarkSubmitted records a successful lead submission and persists the flag
// for the rest of the browser session. The auto-open timer never re-arms
// after this; manual Open remains available.
func (s *Scheduler) MarkSubmitted(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.submitted = true
	s.state = StateSubmitted

	if err := s.storage.Set(ctx, s.cfg.StorageKey, submittedValue); err != nil {
		s.cfg.Logger.Warn("failed to persist popup submitted flag", "error", err)
	}
}

// Stop tears the view down, cancelling any pending timer so a stale
// callback cannot reopen a detached view.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	if s.state == StateScheduled {
		s.state = StateIdle
	}
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsOpen reports whether the popup is currently showing.
func (s *Scheduler) IsOpen() bool {
	return s.State() == StateOpen
}

// Submitted reports whether a lead was submitted this session.
func (s *Scheduler) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

func (s *Scheduler) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
