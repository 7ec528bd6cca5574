// Package domain contains the core entities the Shelfmark client runtime synchronizes.
package domain

import "time"

// Book represents a cataloged book as returned by the remote catalog API.
//
// JSON tags follow the catalog's wire format (camelCase), not this module's
// naming preferences - the server owns the contract.
type Book struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	Category      string        `json:"category,omitempty"`
	CoverImage    string        `json:"coverImage,omitempty"`
	Overview      string        `json:"overview,omitempty"`
	TotalPages    int           `json:"totalPages,omitempty"`
	OwnerEmail    string        `json:"userEmail"`
	Upvotes       int           `json:"upvote"`
	Likes         int           `json:"likes"`
	Rating        float64       `json:"rating"`
	TotalReviews  int           `json:"totalReviews"`
	ReadingStatus ReadingStatus `json:"readingStatus,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`

	// Viewer-relative flags. Derived from the viewer's relation sets on
	// load and kept in sync by the toggle engine; never part of the
	// server's book payload contract.
	ViewerBookmarked bool `json:"-"`
	ViewerLiked      bool `json:"-"`
	ViewerUpvoted    bool `json:"-"`
}

// OwnedBy reports whether the given viewer identity owns this book.
func (b *Book) OwnedBy(email string) bool {
	return email != "" && b.OwnerEmail == email
}

// RelationFlag returns the viewer-relative flag for a book-level relation.
func (b *Book) RelationFlag(kind RelationKind) bool {
	switch kind {
	case RelationBookmark:
		return b.ViewerBookmarked
	case RelationLike:
		return b.ViewerLiked
	case RelationUpvote:
		return b.ViewerUpvoted
	default:
		return false
	}
}

// SetRelationFlag sets the viewer-relative flag for a book-level relation.
func (b *Book) SetRelationFlag(kind RelationKind, active bool) {
	switch kind {
	case RelationBookmark:
		b.ViewerBookmarked = active
	case RelationLike:
		b.ViewerLiked = active
	case RelationUpvote:
		b.ViewerUpvoted = active
	}
}
