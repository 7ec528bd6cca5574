// Package projection maintains per-view entity snapshots. A mounted view
// loads its initial set from the catalog, derives viewer-relative flags from
// the viewer's relation sets, and then stays current purely by applying hub
// broadcasts until it is unmounted.
package projection

import (
	"context"
	"log/slog"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	"github.com/shelfmarkapp/shelfmark-client/internal/search"
)

// CatalogAPI is the slice of the catalog client projections load from.
type CatalogAPI interface {
	Trending(ctx context.Context) ([]domain.Book, error)
	ListBooks(ctx context.Context, filters catalog.BookFilters) (*catalog.BookPage, error)
	GetBook(ctx context.Context, bookID string) (*domain.Book, error)
	Bookmarks(ctx context.Context) ([]domain.Book, error)
	LikedBooks(ctx context.Context) ([]domain.Book, error)
	ListReviews(ctx context.Context, bookID string) ([]domain.Review, error)
	ReviewStatus(ctx context.Context, reviewID string) (*catalog.ReviewVote, error)
}

// SessionSource resolves the current viewer identity.
type SessionSource interface {
	Current() (domain.Identity, bool)
}

// Manager mounts views. One manager is shared by all views in a runtime.
type Manager struct {
	catalog  CatalogAPI
	hub      *broadcast.Hub
	sessions SessionSource
	suggest  *search.Suggester // optional; fed from every loaded set
	logger   *slog.Logger
}

// NewManager creates a projection manager. The suggester may be nil.
func NewManager(api CatalogAPI, hub *broadcast.Hub, sessions SessionSource, suggest *search.Suggester, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		catalog:  api,
		hub:      hub,
		sessions: sessions,
		suggest:  suggest,
		logger:   logger,
	}
}

// relationSets holds the viewer's bookmark and like relations as id sets,
// used to derive initial flags on loaded snapshots.
type relationSets struct {
	bookmarked map[string]struct{}
	liked      map[string]struct{}
}

// loadRelations fetches the viewer's relation sets. Anonymous viewers get
// empty sets; a failed fetch degrades to unflagged rows rather than failing
// the mount.
func (m *Manager) loadRelations(ctx context.Context) relationSets {
	rels := relationSets{
		bookmarked: make(map[string]struct{}),
		liked:      make(map[string]struct{}),
	}

	identity, ok := m.sessions.Current()
	if !ok || !identity.Authenticated() {
		return rels
	}

	bookmarks, err := m.catalog.Bookmarks(ctx)
	if err != nil {
		m.logger.Warn("failed to load bookmark relations", slog.String("error", err.Error()))
	}
	for _, b := range bookmarks {
		rels.bookmarked[b.ID] = struct{}{}
	}

	liked, err := m.catalog.LikedBooks(ctx)
	if err != nil {
		m.logger.Warn("failed to load like relations", slog.String("error", err.Error()))
	}
	for _, b := range liked {
		rels.liked[b.ID] = struct{}{}
	}

	return rels
}

func (rels relationSets) decorate(books []domain.Book) {
	for i := range books {
		_, bookmarked := rels.bookmarked[books[i].ID]
		_, liked := rels.liked[books[i].ID]
		books[i].ViewerBookmarked = bookmarked
		books[i].ViewerLiked = liked
	}
}

// mountBooks wraps a loaded set into a live view subscribed to the hub.
func (m *Manager) mountBooks(books []domain.Book, totalPages, totalBooks int) *BookView {
	view := &BookView{
		books:      books,
		totalPages: totalPages,
		totalBooks: totalBooks,
	}
	view.sub = m.hub.SubscribeAll(view.apply)
	m.feedSuggester(books)
	return view
}

func (m *Manager) feedSuggester(books []domain.Book) {
	if m.suggest == nil || len(books) == 0 {
		return
	}
	if err := m.suggest.IndexBooks(books); err != nil {
		m.logger.Debug("failed to index books for suggestions", slog.String("error", err.Error()))
	}
}

// MountTrending loads the trending shelf.
func (m *Manager) MountTrending(ctx context.Context) (*BookView, error) {
	books, err := m.catalog.Trending(ctx)
	if err != nil {
		return nil, err
	}
	m.loadRelations(ctx).decorate(books)
	return m.mountBooks(books, 0, 0), nil
}

// MountListing loads a filtered, paginated catalog listing.
func (m *Manager) MountListing(ctx context.Context, filters catalog.BookFilters) (*BookView, error) {
	page, err := m.catalog.ListBooks(ctx, filters)
	if err != nil {
		return nil, err
	}
	m.loadRelations(ctx).decorate(page.Books)
	return m.mountBooks(page.Books, page.TotalPages, page.TotalBooks), nil
}

// MountBookshelf loads the viewer's bookmarked books. Every row is
// bookmarked by definition; likes are derived from the like relation set.
func (m *Manager) MountBookshelf(ctx context.Context) (*BookView, error) {
	books, err := m.catalog.Bookmarks(ctx)
	if err != nil {
		return nil, err
	}
	rels := m.loadRelations(ctx)
	for i := range books {
		books[i].ViewerBookmarked = true
		_, liked := rels.liked[books[i].ID]
		books[i].ViewerLiked = liked
	}
	return m.mountBooks(books, 0, 0), nil
}

// MountLiked loads the viewer's liked books.
func (m *Manager) MountLiked(ctx context.Context) (*BookView, error) {
	books, err := m.catalog.LikedBooks(ctx)
	if err != nil {
		return nil, err
	}
	rels := m.loadRelations(ctx)
	for i := range books {
		books[i].ViewerLiked = true
		_, bookmarked := rels.bookmarked[books[i].ID]
		books[i].ViewerBookmarked = bookmarked
	}
	return m.mountBooks(books, 0, 0), nil
}

// MountResults wraps an already-loaded result set (typically from the search
// pipeline) into a live view. Flags are derived the same way as for fetched
// sets.
func (m *Manager) MountResults(ctx context.Context, books []domain.Book) *BookView {
	snapshot := append([]domain.Book(nil), books...)
	m.loadRelations(ctx).decorate(snapshot)
	return m.mountBooks(snapshot, 0, 0)
}

// MountBook loads a single book plus its reviews.
func (m *Manager) MountBook(ctx context.Context, bookID string) (*BookDetail, error) {
	book, err := m.catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	reviews, err := m.catalog.ListReviews(ctx, bookID)
	if err != nil {
		return nil, err
	}
	m.loadReviewVotes(ctx, reviews)

	single := []domain.Book{*book}
	m.loadRelations(ctx).decorate(single)

	detail := &BookDetail{
		book:    single[0],
		reviews: reviews,
	}
	detail.sub = m.hub.SubscribeAll(detail.apply)
	m.feedSuggester(single)
	return detail, nil
}

// loadReviewVotes fetches the viewer's vote status for each review and sets
// the viewer-relative flags in place. The review listing itself is public, so
// flags only come back through the per-review status endpoint. Anonymous
// viewers are skipped, as are the viewer's own reviews; a failed lookup
// degrades to unflagged rather than failing the mount.
func (m *Manager) loadReviewVotes(ctx context.Context, reviews []domain.Review) {
	identity, ok := m.sessions.Current()
	if !ok || !identity.Authenticated() {
		return
	}

	for i := range reviews {
		if reviews[i].AuthoredBy(identity.Email) {
			continue
		}
		vote, err := m.catalog.ReviewStatus(ctx, reviews[i].ID)
		if err != nil {
			m.logger.Warn("failed to load review vote status",
				slog.String("review_id", reviews[i].ID),
				slog.String("error", err.Error()))
			continue
		}
		reviews[i].ViewerLiked = vote.ViewerLiked
		reviews[i].ViewerDisliked = vote.ViewerDisliked
	}
}
