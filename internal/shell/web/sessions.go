package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bizdir/edgegate/internal/core/popup"
	"github.com/bizdir/edgegate/internal/shell/session"
)

// SessionCookie is the visitor session cookie name.
const SessionCookie = "edgegate_session"

// =============================================================================
// Session Manager
// =============================================================================

// Manager issues visitor session IDs and owns the per-session popup
// schedulers. Scheduler state is in-memory per gateway instance; the
// submitted flag alone travels through the session store so it survives
// instance hops and restarts.
type Manager struct {
	store    session.Store
	popupCfg popup.Config
	logger   *slog.Logger

	mu         sync.Mutex
	schedulers map[string]*sessionEntry
}

type sessionEntry struct {
	scheduler *popup.Scheduler
	lastSeen  time.Time
}

// NewManager creates a session manager.
func NewManager(store session.Store, popupCfg popup.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:      store,
		popupCfg:   popupCfg,
		logger:     logger.With("component", "sessions"),
		schedulers: make(map[string]*sessionEntry),
	}
}

// SessionID returns the visitor's session ID, issuing a cookie when the
// request carries none.
func (m *Manager) SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Scheduler returns the popup scheduler for a session, creating one on
// first use.
func (m *Manager) Scheduler(ctx context.Context, sessionID string) *popup.Scheduler {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.schedulers[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.scheduler
	}

	s := popup.NewScheduler(ctx, m.storageFor(sessionID), m.popupCfg)
	m.schedulers[sessionID] = &sessionEntry{scheduler: s, lastSeen: time.Now()}
	return s
}

// BeginView starts a fresh page view for a session: the previous view's
// scheduler is torn down (cancelling its timer and dropping any dismissal,
// which is per-view only) and a new one is armed.
func (m *Manager) BeginView(ctx context.Context, sessionID string, autoOpen bool) *popup.Scheduler {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.schedulers[sessionID]; ok {
		e.scheduler.Stop()
	}

	s := popup.NewScheduler(ctx, m.storageFor(sessionID), m.popupCfg)
	m.schedulers[sessionID] = &sessionEntry{scheduler: s, lastSeen: time.Now()}
	s.Arm(autoOpen)
	return s
}

// PurgeIdle tears down schedulers idle longer than maxIdle and returns how
// many were dropped.
func (m *Manager) PurgeIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	dropped := 0
	for id, e := range m.schedulers {
		if e.lastSeen.Before(cutoff) {
			e.scheduler.Stop()
			delete(m.schedulers, id)
			dropped++
		}
	}
	return dropped
}

// storageFor scopes session-store keys to one session.
func (m *Manager) storageFor(sessionID string) popup.Storage {
	return scopedStorage{store: m.store, prefix: sessionID + ":"}
}

// scopedStorage namespaces a shared session store by session ID.
type scopedStorage struct {
	store  session.Store
	prefix string
}

func (s scopedStorage) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s scopedStorage) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.prefix+key, value)
}
