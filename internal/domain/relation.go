package domain

// RelationKind identifies a toggleable viewer-to-entity relation.
type RelationKind string

const (
	RelationBookmark      RelationKind = "bookmark"
	RelationLike          RelationKind = "like"
	RelationUpvote        RelationKind = "upvote"
	RelationReviewLike    RelationKind = "review-like"
	RelationReviewDislike RelationKind = "review-dislike"
)

// Valid checks if the relation kind is one the toggle engine understands.
func (k RelationKind) Valid() bool {
	switch k {
	case RelationBookmark, RelationLike, RelationUpvote,
		RelationReviewLike, RelationReviewDislike:
		return true
	default:
		return false
	}
}

// ReviewLevel reports whether the relation targets a review rather than a book.
func (k RelationKind) ReviewLevel() bool {
	return k == RelationReviewLike || k == RelationReviewDislike
}

// SelfGuarded reports whether the relation is forbidden on the viewer's own
// entity. Bookmarking your own book is allowed; liking or upvoting it is not.
func (k RelationKind) SelfGuarded() bool {
	return k != RelationBookmark
}
