// Package status implements the reading-status state machine: owner-gated
// transitions between Want-to-Read, Reading, Read and unset, propagated to
// every mounted view.
package status

import (
	"context"
	"log/slog"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	apperr "github.com/shelfmarkapp/shelfmark-client/internal/errors"
)

// CatalogAPI is the slice of the catalog client the machine needs.
type CatalogAPI interface {
	UpdateBook(ctx context.Context, bookID string, patch catalog.BookPatch) (*domain.Book, error)
}

// SessionSource exposes the current viewer identity.
type SessionSource interface {
	Current() (domain.Identity, bool)
}

// Machine applies reading-status transitions. Every state is reachable from
// every other, including back to unset ("Remove Status"); only the book's
// owner may transition.
type Machine struct {
	catalog  CatalogAPI
	sessions SessionSource
	hub      *broadcast.Hub
	logger   *slog.Logger
}

// NewMachine creates a reading-status machine.
func NewMachine(api CatalogAPI, sessions SessionSource, hub *broadcast.Hub, logger *slog.Logger) *Machine {
	return &Machine{
		catalog:  api,
		sessions: sessions,
		hub:      hub,
		logger:   logger,
	}
}

// SetStatus moves the book to newStatus and broadcasts the change.
//
// Fails with ErrUnauthenticated without a session and ErrForbidden for
// non-owners (the server enforces ownership too; this is the fast path).
// Setting the current status again is a no-op with no network call.
func (m *Machine) SetStatus(ctx context.Context, snapshot *domain.Book, newStatus domain.ReadingStatus) error {
	if !newStatus.Valid() {
		return apperr.Validation("unknown reading status: " + string(newStatus))
	}

	viewer, ok := m.sessions.Current()
	if !ok {
		return apperr.Unauthenticated("sign in to update reading status")
	}
	if !snapshot.OwnedBy(viewer.Email) {
		return apperr.Forbidden("only the book's owner can change its reading status")
	}

	if snapshot.ReadingStatus == newStatus {
		return nil
	}

	confirmed, err := m.catalog.UpdateBook(ctx, snapshot.ID, catalog.BookPatch{ReadingStatus: &newStatus})
	if err != nil {
		m.logger.Warn("reading status update failed",
			slog.String("book_id", snapshot.ID),
			slog.String("status", string(newStatus)),
			slog.Any("error", err))
		return err
	}

	// The view's snapshot carries viewer flags the PATCH response lacks.
	updated := *snapshot
	if confirmed != nil && confirmed.ID != "" {
		updated = *confirmed
		updated.ViewerBookmarked = snapshot.ViewerBookmarked
		updated.ViewerLiked = snapshot.ViewerLiked
		updated.ViewerUpvoted = snapshot.ViewerUpvoted
	}
	updated.ReadingStatus = newStatus
	m.hub.Publish(broadcast.NewBookUpdate(&updated))

	m.logger.Debug("reading status updated",
		slog.String("book_id", snapshot.ID),
		slog.String("status", string(newStatus)))
	return nil
}
