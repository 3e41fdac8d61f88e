// File: internal/session/manager.go
package session

import (
	"context"
	"net/http"

	"converse_backend/internal/config"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userIDKey is the only session key this backend writes.
const userIDKey = "userId"

// Manager owns the cookie-carried session. The store keeps the records; the
// workflows only bind a user id, read it back, or destroy the record.
type Manager struct {
	scs    *scs.SessionManager
	logger *zap.Logger
}

// NewManager configures an scs session manager with the cookie attributes
// the frontend expects: 7-day lifetime, SameSite=Lax, and Secure plus an
// explicit domain in release mode.
func NewManager(cfg *config.Config, logger *zap.Logger) *Manager {
	sm := scs.New()
	sm.Lifetime = cfg.SessionLifetime
	sm.Cookie.Name = cfg.SessionCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = cfg.IsProduction()
	if cfg.IsProduction() {
		sm.Cookie.Domain = "." + cfg.CookieDomain
	}

	return &Manager{scs: sm, logger: logger}
}

// LoadAndSave wraps an http.Handler so every request carries a loaded
// session in its context.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.scs.LoadAndSave(next)
}

// Bind writes the authenticated user's internal id into the current session.
func (m *Manager) Bind(ctx context.Context, userID uuid.UUID) {
	m.scs.Put(ctx, userIDKey, userID.String())
}

// UserID reads the bound user id back out. The second return value is false
// when the session is anonymous.
func (m *Manager) UserID(ctx context.Context) (uuid.UUID, bool) {
	raw := m.scs.GetString(ctx, userIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// A corrupt session value is treated the same as logged-out.
		m.logger.Warn("Session carried a malformed user id", zap.String("value", raw))
		return uuid.Nil, false
	}
	return id, true
}

// Destroy deletes the session record. Failures are logged but not returned;
// the caller still reports a successful logout.
func (m *Manager) Destroy(ctx context.Context) {
	if err := m.scs.Destroy(ctx); err != nil {
		m.logger.Error("Failed to destroy session", zap.Error(err))
	}
}
