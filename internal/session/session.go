// Package session owns the bearer credential: where it lives on the device,
// whether it is still usable, and when it must be thrown away.
package session

import (
	"context"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrExpired     = errors.New("session expired, please login again")
)

// Store persists the raw access token.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Manager hands the token to API calls and refuses tokens that are already
// expired, so a dead credential never reaches the network.
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

func (m *Manager) Token(_ context.Context) (string, error) {
	token, err := m.store.Load()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}
	if expired, err := m.expired(token); err == nil && expired {
		_ = m.store.Clear()
		return "", ErrExpired
	}
	return token, nil
}

func (m *Manager) Save(token string) error {
	return m.store.Save(token)
}

// Invalidate drops the stored credential. Called on logout and whenever the
// server answers 401.
func (m *Manager) Invalidate() error {
	return m.store.Clear()
}

// expired inspects the token's exp claim without verifying the signature;
// only the server holds the signing secret. Tokens without an exp claim are
// passed through and left to the server to judge.
func (m *Manager) expired(token string) (bool, error) {
	claims := jwtlib.RegisteredClaims{}
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false, err
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return claims.ExpiresAt.Before(m.now()), nil
}
