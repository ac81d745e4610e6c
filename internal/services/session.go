package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/dkcards/internal/auth"
	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/dmitrijs2005/dkcards/internal/logging"
	"github.com/dmitrijs2005/dkcards/internal/models"
)

// Authenticator checks an email/secret pair.
type Authenticator interface {
	Authenticate(ctx context.Context, email string, secret []byte) (*models.User, error)
}

// SessionManager holds at most one authenticated principal for the lifetime
// of the process. It is safe for concurrent use; a Logout from any goroutine
// is seen by the next Current.
type SessionManager struct {
	creds  Authenticator
	secret []byte
	ttl    time.Duration
	log    logging.Logger

	mu  sync.RWMutex
	ref *models.UserRef
}

// NewSessionManager signs session tokens with secret, or with a random key
// when secret is empty. A ttl of zero issues tokens that never expire.
func NewSessionManager(creds Authenticator, secret []byte, ttl time.Duration, log logging.Logger) (*SessionManager, error) {
	if len(secret) == 0 {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
		secret = []byte(key)
	}
	return &SessionManager{creds: creds, secret: secret, ttl: ttl, log: log}, nil
}

// Login authenticates and populates the session. On any error the session
// is left as it was.
func (m *SessionManager) Login(ctx context.Context, email string, secret []byte) (models.UserRef, error) {
	u, err := m.creds.Authenticate(ctx, email, secret)
	if err != nil {
		return models.UserRef{}, err
	}

	token, err := auth.GenerateToken(u.ID, u.Email, m.secret, m.ttl)
	if err != nil {
		return models.UserRef{}, fmt.Errorf("session token: %w", err)
	}
	ref := u.Ref()
	ref.Token = token

	m.mu.Lock()
	m.ref = &ref
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "user_id", ref.ID)
	return ref, nil
}

// Logout clears the session. It is idempotent.
func (m *SessionManager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ref != nil {
		m.log.Info(context.Background(), "logged out", "user_id", m.ref.ID)
	}
	m.ref = nil
}

// Current reports the authenticated principal. With a TTL configured, a
// principal whose token has expired is reported as absent.
func (m *SessionManager) Current() (models.UserRef, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ref == nil {
		return models.UserRef{}, false
	}
	if m.ttl > 0 {
		if _, err := auth.ParseToken(m.ref.Token, m.secret); err != nil {
			if !errors.Is(err, auth.ErrTokenExpired) {
				m.log.Warn(context.Background(), "session token rejected", "user_id", m.ref.ID, "error", err)
			}
			return models.UserRef{}, false
		}
	}
	return *m.ref, true
}
