// Package shelfmark is the embeddable client runtime for the Shelfmark book
// catalog. An application shell (UI) drives it: the runtime owns
// interaction-state synchronization (bookmarks, likes, upvotes, review
// votes), reading-status transitions, debounced catalog search with local
// type-ahead suggestions, and keeps every mounted view snapshot consistent
// through an in-process broadcast hub.
package shelfmark

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/config"
	"github.com/shelfmarkapp/shelfmark-client/internal/di"
	"github.com/shelfmarkapp/shelfmark-client/internal/di/providers"
	"github.com/shelfmarkapp/shelfmark-client/internal/projection"
	"github.com/shelfmarkapp/shelfmark-client/internal/session"
	"github.com/shelfmarkapp/shelfmark-client/internal/status"
	"github.com/shelfmarkapp/shelfmark-client/internal/toggle"
	"github.com/shelfmarkapp/shelfmark-client/internal/validation"
)

// Runtime is the assembled client runtime. One Runtime serves one signed-in
// (or anonymous) viewer; all methods are safe for concurrent use.
type Runtime struct {
	injector *do.RootScope

	cfg         *config.Config
	logger      *slog.Logger
	sessions    *session.Store
	hub         *broadcast.Hub
	catalog     *catalog.Client
	engine      *toggle.Engine
	machine     *status.Machine
	pipeline    *providers.PipelineHandle
	suggester   *providers.SuggesterHandle
	projections *projection.Manager
	validator   *validation.Validator
}

// New builds a runtime from environment configuration (SHELFMARK_* variables
// plus an optional .env file). The caller must Close it.
func New() (*Runtime, error) {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		// Release whatever was constructed before the failure.
		_ = injector.Shutdown()
		return nil, err
	}

	return &Runtime{
		injector:    injector,
		cfg:         do.MustInvoke[*config.Config](injector),
		logger:      do.MustInvoke[*slog.Logger](injector),
		sessions:    do.MustInvoke[*session.Store](injector),
		hub:         do.MustInvoke[*broadcast.Hub](injector),
		catalog:     do.MustInvoke[*catalog.Client](injector),
		engine:      do.MustInvoke[*toggle.Engine](injector),
		machine:     do.MustInvoke[*status.Machine](injector),
		pipeline:    do.MustInvoke[*providers.PipelineHandle](injector),
		suggester:   do.MustInvoke[*providers.SuggesterHandle](injector),
		projections: do.MustInvoke[*projection.Manager](injector),
		validator:   do.MustInvoke[*validation.Validator](injector),
	}, nil
}

// Close shuts the runtime down: the search pipeline stops emitting, the
// suggestion index is released, and all DI-managed services shut down in
// reverse dependency order.
func (r *Runtime) Close() error {
	return r.injector.Shutdown()
}

// --- Session ---

// SignIn installs the externally-issued viewer identity. Authentication
// itself (credential exchange, token refresh) is the embedding
// application's concern.
func (r *Runtime) SignIn(identity Identity) {
	r.sessions.Set(identity)
}

// SignOut clears the viewer identity. Subsequent authenticated operations
// fail with ErrUnauthenticated.
func (r *Runtime) SignOut() {
	r.sessions.Clear()
}

// Viewer returns the current identity, if signed in.
func (r *Runtime) Viewer() (Identity, bool) {
	return r.sessions.Current()
}

// --- Interactions ---

// Toggle establishes or removes the viewer's relation (bookmark, like,
// upvote, review vote) described by req, flipping the flag optimistically
// and reconciling counters from the server response.
func (r *Runtime) Toggle(ctx context.Context, req ToggleRequest) (*ToggleResult, error) {
	return r.engine.Toggle(ctx, req)
}

// SetReadingStatus transitions the book's reading status. Owner only; any
// state is reachable from any other, including back to unset. The updated
// book reaches mounted views through the broadcast hub.
func (r *Runtime) SetReadingStatus(ctx context.Context, book *Book, newStatus ReadingStatus) error {
	return r.machine.SetStatus(ctx, book, newStatus)
}

// --- Search ---

// SetSearchQuery feeds keystroke input to the debounced search pipeline.
func (r *Runtime) SetSearchQuery(raw string) {
	r.pipeline.SetQuery(raw)
}

// SearchResults is the stream of settled search emissions.
func (r *Runtime) SearchResults() <-chan SearchResultSet {
	return r.pipeline.Results()
}

// Suggest returns local type-ahead candidates without a network call.
func (r *Runtime) Suggest(partial string) ([]Suggestion, error) {
	return r.suggester.Suggest(partial, r.cfg.Search.SuggestLimit)
}

// --- Views ---

// Views returns the projection manager used to mount live view snapshots.
func (r *Runtime) Views() *projection.Manager {
	return r.projections
}

// Subscribe registers a callback for updates to one entity id.
func (r *Runtime) Subscribe(entityID string, fn func(Update)) *Subscription {
	return r.hub.Subscribe(entityID, fn)
}

// SubscribeAll registers a callback for every update.
func (r *Runtime) SubscribeAll(fn func(Update)) *Subscription {
	return r.hub.SubscribeAll(fn)
}

// --- Reviews ---

// SubmitReview validates and creates a review for a book. Validation
// failures surface as ErrValidation with per-field details before any
// network call; the server remains authoritative.
func (r *Runtime) SubmitReview(ctx context.Context, bookID string, draft ReviewDraft) (*CreatedReview, error) {
	if err := r.validator.Validate(draft); err != nil {
		return nil, err
	}
	return r.catalog.CreateReview(ctx, bookID, draft)
}

// UpdateReview validates and updates an existing review, broadcasting the
// server's canonical copy so mounted detail views patch their rows.
func (r *Runtime) UpdateReview(ctx context.Context, reviewID string, draft ReviewDraft) (*Review, error) {
	if err := r.validator.Validate(draft); err != nil {
		return nil, err
	}
	review, err := r.catalog.UpdateReview(ctx, reviewID, draft)
	if err != nil {
		return nil, err
	}
	r.hub.Publish(broadcast.NewReviewUpdate(review))
	return review, nil
}

// DeleteReview removes the viewer's review.
func (r *Runtime) DeleteReview(ctx context.Context, reviewID string) error {
	return r.catalog.DeleteReview(ctx, reviewID)
}

// --- Books ---

// AddBook validates and creates a catalog entry owned by the viewer. The
// new book is indexed for local suggestions immediately.
func (r *Runtime) AddBook(ctx context.Context, draft BookDraft) (*Book, error) {
	if err := r.validator.Validate(draft); err != nil {
		return nil, err
	}
	book, err := r.catalog.CreateBook(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := r.suggester.IndexBook(*book); err != nil {
		r.logger.Debug("failed to index new book for suggestions",
			slog.String("book_id", book.ID), slog.String("error", err.Error()))
	}
	return book, nil
}

// DeleteBook removes a book (owner only, server-enforced) and broadcasts
// the deletion so every mounted view drops the row.
func (r *Runtime) DeleteBook(ctx context.Context, bookID string) error {
	if err := r.catalog.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	if err := r.suggester.Remove(bookID); err != nil {
		r.logger.Debug("failed to drop deleted book from suggestions",
			slog.String("book_id", bookID), slog.String("error", err.Error()))
	}
	r.hub.Publish(broadcast.NewBookDeleted(bookID))
	return nil
}

// --- Profile ---

// Profile fetches the viewer's profile.
func (r *Runtime) Profile(ctx context.Context) (*UserProfile, error) {
	return r.catalog.Profile(ctx)
}

// UpdateProfile updates the viewer's profile.
func (r *Runtime) UpdateProfile(ctx context.Context, profile UserProfile) (*UserProfile, error) {
	return r.catalog.UpdateProfile(ctx, profile)
}

// Stats fetches the viewer's activity stats.
func (r *Runtime) Stats(ctx context.Context) (*UserStats, error) {
	return r.catalog.Stats(ctx)
}

// Catalog exposes the underlying API client for listing and fetching that
// needs no runtime mediation.
func (r *Runtime) Catalog() *catalog.Client {
	return r.catalog
}
