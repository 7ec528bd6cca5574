package shelfmark

import (
	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	apperr "github.com/shelfmarkapp/shelfmark-client/internal/errors"
	"github.com/shelfmarkapp/shelfmark-client/internal/projection"
	"github.com/shelfmarkapp/shelfmark-client/internal/search"
	"github.com/shelfmarkapp/shelfmark-client/internal/toggle"
)

// Domain entities. Aliased so embedding applications can name them without
// reaching into internal packages.
type (
	Book        = domain.Book
	Review      = domain.Review
	ReviewDraft = domain.ReviewDraft
	Identity    = domain.Identity
	UserProfile = domain.UserProfile
	UserStats   = domain.UserStats

	ReadingStatus = domain.ReadingStatus
	RelationKind  = domain.RelationKind
)

// Reading statuses. Any state is reachable from any other.
const (
	StatusUnset      = domain.StatusUnset
	StatusWantToRead = domain.StatusWantToRead
	StatusReading    = domain.StatusReading
	StatusRead       = domain.StatusRead
)

// Toggleable relation kinds.
const (
	RelationBookmark      = domain.RelationBookmark
	RelationLike          = domain.RelationLike
	RelationUpvote        = domain.RelationUpvote
	RelationReviewLike    = domain.RelationReviewLike
	RelationReviewDislike = domain.RelationReviewDislike
)

// Interaction types.
type (
	ToggleRequest = toggle.Request
	ToggleResult  = toggle.Result
)

// Broadcast types. Subscribers receive Updates; the Subscription handle's
// Cancel removes the callback.
type (
	Update       = broadcast.Update
	UpdateType   = broadcast.UpdateType
	Subscription = broadcast.Subscription
)

const (
	UpdateBookPatched   = broadcast.UpdateBookPatched
	UpdateBookDeleted   = broadcast.UpdateBookDeleted
	UpdateReviewPatched = broadcast.UpdateReviewPatched
)

// Search types.
type (
	SearchResultSet = search.ResultSet
	Suggestion      = search.Suggestion
)

// View projection types.
type (
	BookView   = projection.BookView
	BookDetail = projection.BookDetail
)

// Catalog types.
type (
	BookFilters   = catalog.BookFilters
	BookPage      = catalog.BookPage
	BookDraft     = catalog.BookDraft
	CreatedReview = catalog.CreatedReview
)

// Sentinel errors, for use with errors.Is.
var (
	ErrUnauthenticated = apperr.ErrUnauthenticated
	ErrSelfInteraction = apperr.ErrSelfInteraction
	ErrForbidden       = apperr.ErrForbidden
	ErrToggleInFlight  = apperr.ErrToggleInFlight
	ErrNotFound        = apperr.ErrNotFound
	ErrNetwork         = apperr.ErrNetwork
	ErrValidation      = apperr.ErrValidation
	ErrConflict        = apperr.ErrConflict
)
