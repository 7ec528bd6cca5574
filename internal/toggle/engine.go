// Package toggle implements the interaction toggle engine: optimistic
// bookmark/like/upvote/review-vote flips reconciled against server-confirmed
// state and broadcast to every mounted view.
package toggle

import (
	"context"
	"log/slog"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	apperr "github.com/shelfmarkapp/shelfmark-client/internal/errors"
)

// CatalogAPI is the slice of the catalog client the engine needs.
type CatalogAPI interface {
	SetBookmark(ctx context.Context, bookID string, establish bool) error
	SetLike(ctx context.Context, bookID string, establish bool) (*domain.Book, error)
	Upvote(ctx context.Context, bookID string) (*domain.Book, error)
	VoteReview(ctx context.Context, reviewID string, kind domain.RelationKind) (*catalog.ReviewVote, error)
}

// SessionSource exposes the current viewer identity.
type SessionSource interface {
	Current() (domain.Identity, bool)
}

// Request describes one toggle. The embedded entity is the calling view's
// snapshot copy; its flags are the "current relation state" the flip is
// computed from. Exactly one of Book/Review is set, matching Kind.
type Request struct {
	Kind   domain.RelationKind
	Book   *domain.Book
	Review *domain.Review
}

// Result is the reconciled outcome of a successful toggle.
type Result struct {
	// Active is the relation's confirmed state after reconciliation.
	Active bool
	// Book carries server-confirmed counters for book-level toggles.
	Book *domain.Book
	// Review carries server-confirmed vote state for review-level toggles.
	Review *domain.Review
}

// Engine mediates optimistic toggle mutations against confirmed server state.
// It owns no durable storage - only in-flight reconciliation.
type Engine struct {
	catalog  CatalogAPI
	sessions SessionSource
	hub      *broadcast.Hub
	inflight *inflightGuard
	logger   *slog.Logger
}

// NewEngine creates a toggle engine.
func NewEngine(api CatalogAPI, sessions SessionSource, hub *broadcast.Hub, logger *slog.Logger) *Engine {
	return &Engine{
		catalog:  api,
		sessions: sessions,
		hub:      hub,
		inflight: newInflightGuard(),
		logger:   logger,
	}
}

// Toggle establishes or removes the viewer's relation described by req.
//
// Pre-checks run before any network call: the viewer must be authenticated,
// and self-guarded kinds are rejected on the viewer's own entity. While a
// toggle for the same (entity, kind) pair is resolving, further toggles fail
// with ErrToggleInFlight.
//
// The flag flip is optimistic and broadcast immediately; counters are only
// ever replaced by the server's confirmed values. On failure the flip is
// rolled back, counters untouched, and the typed error returned for the
// caller to report.
func (e *Engine) Toggle(ctx context.Context, req Request) (*Result, error) {
	if !req.Kind.Valid() {
		return nil, apperr.Validation("unknown toggle kind: " + string(req.Kind))
	}
	if req.Kind.ReviewLevel() {
		if req.Review == nil {
			return nil, apperr.Validation("review toggle without a review")
		}
		return e.toggleReview(ctx, req.Kind, req.Review)
	}
	if req.Book == nil {
		return nil, apperr.Validation("book toggle without a book")
	}
	return e.toggleBook(ctx, req.Kind, req.Book)
}

func (e *Engine) toggleBook(ctx context.Context, kind domain.RelationKind, snapshot *domain.Book) (*Result, error) {
	viewer, ok := e.sessions.Current()
	if !ok {
		return nil, apperr.Unauthenticated("sign in to " + string(kind) + " books")
	}
	if kind.SelfGuarded() && snapshot.OwnedBy(viewer.Email) {
		return nil, apperr.SelfInteractionf("cannot %s your own book", kind)
	}

	wasActive := snapshot.RelationFlag(kind)
	establish := !wasActive

	// Upvotes cannot be withdrawn on this API.
	if kind == domain.RelationUpvote && wasActive {
		return nil, apperr.Conflict("already upvoted")
	}

	key := snapshot.ID + "/" + string(kind)
	if !e.inflight.tryAcquire(key) {
		return nil, apperr.ToggleInFlight("a " + string(kind) + " for this book is still resolving")
	}
	defer e.inflight.release(key)

	// Optimistic flip: flag only. Counters stay at the snapshot values
	// until the server confirms - the engine never guesses arithmetic.
	optimistic := *snapshot
	optimistic.SetRelationFlag(kind, establish)
	e.hub.Publish(broadcast.NewBookUpdate(&optimistic))

	confirmed, err := e.callBookEndpoint(ctx, kind, snapshot.ID, establish)
	if err != nil {
		rollback := *snapshot
		rollback.SetRelationFlag(kind, wasActive)
		e.hub.Publish(broadcast.NewBookUpdate(&rollback))

		e.logger.Warn("toggle rolled back",
			slog.String("book_id", snapshot.ID),
			slog.String("kind", string(kind)),
			slog.Any("error", err))
		return nil, err
	}

	// Reconcile: server counters are authoritative, viewer flags are ours.
	// An envelope missing the book object decodes to a zero value; keep the
	// local snapshot rather than reconciling against it.
	reconciled := *snapshot
	if confirmed != nil && confirmed.ID != "" {
		reconciled = *confirmed
		reconciled.ViewerBookmarked = snapshot.ViewerBookmarked
		reconciled.ViewerLiked = snapshot.ViewerLiked
		reconciled.ViewerUpvoted = snapshot.ViewerUpvoted
	}
	reconciled.SetRelationFlag(kind, establish)
	e.hub.Publish(broadcast.NewBookUpdate(&reconciled))

	e.logger.Debug("toggle reconciled",
		slog.String("book_id", snapshot.ID),
		slog.String("kind", string(kind)),
		slog.Bool("active", establish))

	return &Result{Active: establish, Book: &reconciled}, nil
}

// callBookEndpoint issues the toggle's network call. Bookmarks return no
// counters; likes and upvotes return the updated book.
func (e *Engine) callBookEndpoint(ctx context.Context, kind domain.RelationKind, bookID string, establish bool) (*domain.Book, error) {
	switch kind {
	case domain.RelationBookmark:
		return nil, e.catalog.SetBookmark(ctx, bookID, establish)
	case domain.RelationLike:
		return e.catalog.SetLike(ctx, bookID, establish)
	default:
		return e.catalog.Upvote(ctx, bookID)
	}
}

func (e *Engine) toggleReview(ctx context.Context, kind domain.RelationKind, snapshot *domain.Review) (*Result, error) {
	viewer, ok := e.sessions.Current()
	if !ok {
		return nil, apperr.Unauthenticated("sign in to vote on reviews")
	}
	if snapshot.AuthoredBy(viewer.Email) {
		return nil, apperr.SelfInteraction("cannot vote on your own review")
	}

	key := snapshot.ID + "/" + string(kind)
	if !e.inflight.tryAcquire(key) {
		return nil, apperr.ToggleInFlight("a vote for this review is still resolving")
	}
	defer e.inflight.release(key)

	// Optimistic: flip only the pressed flag. The opposite flag and both
	// counters wait for the server - mutual exclusion is its call.
	optimistic := *snapshot
	if kind == domain.RelationReviewLike {
		optimistic.ViewerLiked = !snapshot.ViewerLiked
	} else {
		optimistic.ViewerDisliked = !snapshot.ViewerDisliked
	}
	e.hub.Publish(broadcast.NewReviewUpdate(&optimistic))

	vote, err := e.catalog.VoteReview(ctx, snapshot.ID, kind)
	if err != nil {
		rollback := *snapshot
		e.hub.Publish(broadcast.NewReviewUpdate(&rollback))

		e.logger.Warn("review vote rolled back",
			slog.String("review_id", snapshot.ID),
			slog.String("kind", string(kind)),
			slog.Any("error", err))
		return nil, err
	}

	reconciled := *snapshot
	reconciled.Likes = vote.Likes
	reconciled.Dislikes = vote.Dislikes
	reconciled.ViewerLiked = vote.ViewerLiked
	reconciled.ViewerDisliked = vote.ViewerDisliked
	e.hub.Publish(broadcast.NewReviewUpdate(&reconciled))

	active := reconciled.ViewerLiked
	if kind == domain.RelationReviewDislike {
		active = reconciled.ViewerDisliked
	}
	return &Result{Active: active, Review: &reconciled}, nil
}
