package status

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	apperr "github.com/shelfmarkapp/shelfmark-client/internal/errors"
)

type fakeCatalog struct {
	calls   int
	patches []catalog.BookPatch
	result  *domain.Book
	err     error
}

func (f *fakeCatalog) UpdateBook(_ context.Context, _ string, patch catalog.BookPatch) (*domain.Book, error) {
	f.calls++
	f.patches = append(f.patches, patch)
	return f.result, f.err
}

type fakeSessions struct {
	identity domain.Identity
}

func (f fakeSessions) Current() (domain.Identity, bool) {
	return f.identity, f.identity.Authenticated()
}

var owner = domain.Identity{Email: "owner@example.com", Token: "tok"}

func newTestMachine(api CatalogAPI, sessions SessionSource) (*Machine, *broadcast.Hub) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := broadcast.NewHub(logger)
	return NewMachine(api, sessions, hub, logger), hub
}

func ownedBook() *domain.Book {
	return &domain.Book{ID: "book-1", OwnerEmail: owner.Email, ReadingStatus: domain.StatusWantToRead}
}

func TestMachine_OwnerTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.ReadingStatus
		to   domain.ReadingStatus
	}{
		{"want to read to reading", domain.StatusWantToRead, domain.StatusReading},
		{"reading to read", domain.StatusReading, domain.StatusRead},
		{"read back to reading", domain.StatusRead, domain.StatusReading},
		{"remove status", domain.StatusRead, domain.StatusUnset},
		{"unset to read directly", domain.StatusUnset, domain.StatusRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCatalog{}
			machine, hub := newTestMachine(api, fakeSessions{owner})

			var got domain.ReadingStatus
			sub := hub.Subscribe("book-1", func(u broadcast.Update) { got = u.Book.ReadingStatus })
			defer sub.Cancel()

			book := ownedBook()
			book.ReadingStatus = tt.from

			require.NoError(t, machine.SetStatus(context.Background(), book, tt.to))
			assert.Equal(t, 1, api.calls)
			require.Len(t, api.patches, 1)
			require.NotNil(t, api.patches[0].ReadingStatus)
			assert.Equal(t, tt.to, *api.patches[0].ReadingStatus)
			assert.Equal(t, tt.to, got, "new status must be broadcast")
		})
	}
}

func TestMachine_NonOwnerForbidden(t *testing.T) {
	api := &fakeCatalog{}
	machine, hub := newTestMachine(api, fakeSessions{domain.Identity{Email: "other@example.com", Token: "tok"}})

	published := false
	sub := hub.SubscribeAll(func(broadcast.Update) { published = true })
	defer sub.Cancel()

	book := ownedBook()
	err := machine.SetStatus(context.Background(), book, domain.StatusRead)

	assert.True(t, apperr.Is(err, apperr.ErrForbidden))
	assert.Zero(t, api.calls)
	assert.False(t, published, "status must remain unchanged everywhere")
	assert.Equal(t, domain.StatusWantToRead, book.ReadingStatus)
}

func TestMachine_Unauthenticated(t *testing.T) {
	api := &fakeCatalog{}
	machine, _ := newTestMachine(api, fakeSessions{})

	err := machine.SetStatus(context.Background(), ownedBook(), domain.StatusRead)

	assert.True(t, apperr.Is(err, apperr.ErrUnauthenticated))
	assert.Zero(t, api.calls)
}

func TestMachine_SameStatusIsNoOp(t *testing.T) {
	api := &fakeCatalog{}
	machine, _ := newTestMachine(api, fakeSessions{owner})

	err := machine.SetStatus(context.Background(), ownedBook(), domain.StatusWantToRead)

	assert.NoError(t, err, "no-op transition succeeds trivially")
	assert.Zero(t, api.calls, "no network call for a no-op")
}

func TestMachine_InvalidStatus(t *testing.T) {
	api := &fakeCatalog{}
	machine, _ := newTestMachine(api, fakeSessions{owner})

	err := machine.SetStatus(context.Background(), ownedBook(), domain.ReadingStatus("Paused"))

	assert.True(t, apperr.Is(err, apperr.ErrValidation))
	assert.Zero(t, api.calls)
}

func TestMachine_ServerFailureSurfaced(t *testing.T) {
	api := &fakeCatalog{err: apperr.Forbidden("not your book")}
	machine, hub := newTestMachine(api, fakeSessions{owner})

	published := false
	sub := hub.SubscribeAll(func(broadcast.Update) { published = true })
	defer sub.Cancel()

	err := machine.SetStatus(context.Background(), ownedBook(), domain.StatusRead)

	// The server stays authoritative even when the fast path passed.
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))
	assert.False(t, published)
}

func TestMachine_PreservesViewerFlags(t *testing.T) {
	confirmed := ownedBook()
	confirmed.ReadingStatus = domain.StatusRead
	api := &fakeCatalog{result: confirmed}
	machine, hub := newTestMachine(api, fakeSessions{owner})

	var got domain.Book
	sub := hub.Subscribe("book-1", func(u broadcast.Update) { got = *u.Book })
	defer sub.Cancel()

	book := ownedBook()
	book.ViewerBookmarked = true

	require.NoError(t, machine.SetStatus(context.Background(), book, domain.StatusRead))
	assert.True(t, got.ViewerBookmarked, "viewer flags survive the PATCH response")
	assert.Equal(t, domain.StatusRead, got.ReadingStatus)
}
