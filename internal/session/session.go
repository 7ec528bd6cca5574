// Package session holds the externally-issued viewer identity.
// The auth collaborator sets and clears it; the rest of the runtime only
// reads. No token issuance or refresh happens here.
package session

import (
	"log/slog"
	"sync"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

// Store is the process-wide holder for the current viewer identity.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current domain.Identity
	logger  *slog.Logger
}

// NewStore creates an empty session store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// Set installs the signed-in identity. Called by the auth collaborator on
// sign-in and on credential refresh.
func (s *Store) Set(identity domain.Identity) {
	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()

	s.logger.Info("session established", slog.String("user", identity.Email))
}

// Clear tears down the session on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	email := s.current.Email
	s.current = domain.Identity{}
	s.mu.Unlock()

	s.logger.Info("session cleared", slog.String("user", email))
}

// Current returns the viewer identity and whether it is authenticated.
func (s *Store) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current.Authenticated()
}

// Token returns the bearer credential for outbound requests.
// Implements the catalog client's token source.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.current.Authenticated() {
		return "", false
	}
	return s.current.Token, true
}
