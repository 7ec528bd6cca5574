package domain

import "time"

// Review represents a book review with viewer-relative vote state.
type Review struct {
	ID          string    `json:"id"`
	BookID      string    `json:"bookId"`
	AuthorEmail string    `json:"userEmail"`
	AuthorName  string    `json:"userName,omitempty"`
	Rating      int       `json:"rating"`
	Text        string    `json:"reviewText"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	CreatedAt   time.Time `json:"createdAt"`

	// Viewer-relative vote flags. The server includes these relative to
	// the authenticated requester; like and dislike are mutually
	// exclusive, which the server enforces.
	ViewerLiked    bool `json:"userLiked"`
	ViewerDisliked bool `json:"userDisliked"`
}

// AuthoredBy reports whether the given viewer identity wrote this review.
func (r *Review) AuthoredBy(email string) bool {
	return email != "" && r.AuthorEmail == email
}

// ReviewDraft is the client-side payload for creating a review.
// Validated before submission; the server is still authoritative.
type ReviewDraft struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"reviewText" validate:"required,notblank"`
}
