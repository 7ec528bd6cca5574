package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

func newTestStore() *Store {
	return NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_Lifecycle(t *testing.T) {
	s := newTestStore()

	_, ok := s.Current()
	assert.False(t, ok, "empty store should not be authenticated")

	s.Set(domain.Identity{Email: "ana@example.com", Token: "tok-1"})

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", current.Email)

	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)

	s.Clear()

	_, ok = s.Current()
	assert.False(t, ok)
	_, ok = s.Token()
	assert.False(t, ok)
}

func TestStore_TokenRequiresFullIdentity(t *testing.T) {
	s := newTestStore()

	// A token without an identity is not a usable session.
	s.Set(domain.Identity{Token: "tok-1"})
	_, ok := s.Token()
	assert.False(t, ok)
}
