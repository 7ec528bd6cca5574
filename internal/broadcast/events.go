// Package broadcast implements the in-process update hub that keeps every
// mounted view's entity snapshot in sync with reconciled server state.
//
// Views hold partial copies of remote entities. Any mutation result
// (toggle reconciliation, status change, deletion) is published here as an
// update carrying the entity id plus the canonical patch, and delivered
// synchronously to every registered subscriber before control returns to
// the publisher.
package broadcast

import "github.com/shelfmarkapp/shelfmark-client/internal/domain"

// UpdateType represents the kind of entity update being broadcast.
type UpdateType string

const (
	// UpdateBookPatched carries canonical book counters/flags/status.
	UpdateBookPatched UpdateType = "book.patched"
	// UpdateBookDeleted tells views to drop the book everywhere.
	UpdateBookDeleted UpdateType = "book.deleted"
	// UpdateReviewPatched carries canonical review vote counts and
	// viewer flags.
	UpdateReviewPatched UpdateType = "review.patched"
)

// Update is a single entity patch delivered to subscribers.
type Update struct {
	Type     UpdateType
	EntityID string

	// Exactly one of these is set, matching Type.
	Book   *domain.Book
	Review *domain.Review
}

// NewBookUpdate builds a book patch update.
func NewBookUpdate(book *domain.Book) Update {
	return Update{Type: UpdateBookPatched, EntityID: book.ID, Book: book}
}

// NewBookDeleted builds a deletion update for a book id.
func NewBookDeleted(bookID string) Update {
	return Update{Type: UpdateBookDeleted, EntityID: bookID}
}

// NewReviewUpdate builds a review patch update.
func NewReviewUpdate(review *domain.Review) Update {
	return Update{Type: UpdateReviewPatched, EntityID: review.ID, Review: review}
}
