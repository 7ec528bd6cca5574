package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

// bookEnvelope is the server's response to book-level mutations: the
// updated book with canonical counters.
type bookEnvelope struct {
	Book    domain.Book `json:"book"`
	Message string      `json:"message"`
}

// SetBookmark establishes (POST) or removes (DELETE) the viewer's bookmark
// on a book.
func (c *Client) SetBookmark(ctx context.Context, bookID string, establish bool) error {
	method := http.MethodDelete
	if establish {
		method = http.MethodPost
	}
	if _, err := c.do(ctx, method, "/books/"+bookID+"/bookmark", nil, nil, true); err != nil {
		return fmt.Errorf("bookmark %s: %w", bookID, err)
	}
	return nil
}

// SetLike establishes or removes the viewer's like on a book and returns
// the book with the server-confirmed like count.
func (c *Client) SetLike(ctx context.Context, bookID string, establish bool) (*domain.Book, error) {
	method := http.MethodDelete
	if establish {
		method = http.MethodPost
	}

	data, err := c.do(ctx, method, "/books/"+bookID+"/like", nil, nil, true)
	if err != nil {
		return nil, fmt.Errorf("like %s: %w", bookID, err)
	}

	var resp bookEnvelope
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse like response: %w", err)
	}
	return &resp.Book, nil
}

// Upvote establishes the viewer's upvote on a book. Upvotes have no remove
// operation on the catalog API.
func (c *Client) Upvote(ctx context.Context, bookID string) (*domain.Book, error) {
	data, err := c.do(ctx, http.MethodPost, "/books/"+bookID+"/upvote", nil, nil, true)
	if err != nil {
		return nil, fmt.Errorf("upvote %s: %w", bookID, err)
	}

	var resp bookEnvelope
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse upvote response: %w", err)
	}
	return &resp.Book, nil
}

// ReviewVote is the server's canonical vote state for a review relative to
// the viewer. Like and dislike are mutually exclusive; when a like clears a
// prior dislike the server reports both changed counts here, and only then
// does the client mirror them.
type ReviewVote struct {
	Likes          int  `json:"likes"`
	Dislikes       int  `json:"dislikes"`
	ViewerLiked    bool `json:"userLiked"`
	ViewerDisliked bool `json:"userDisliked"`
}

// VoteReview toggles the viewer's like or dislike on a review.
// The server treats a repeated vote as removal.
func (c *Client) VoteReview(ctx context.Context, reviewID string, kind domain.RelationKind) (*ReviewVote, error) {
	var path string
	switch kind {
	case domain.RelationReviewLike:
		path = "/reviews/" + reviewID + "/like"
	case domain.RelationReviewDislike:
		path = "/reviews/" + reviewID + "/dislike"
	default:
		return nil, fmt.Errorf("vote review: kind %q is not a review vote", kind)
	}

	data, err := c.do(ctx, http.MethodPost, path, nil, nil, true)
	if err != nil {
		return nil, fmt.Errorf("vote review %s: %w", reviewID, err)
	}

	var vote ReviewVote
	if err := json.Unmarshal(data, &vote); err != nil {
		return nil, fmt.Errorf("parse vote response: %w", err)
	}
	return &vote, nil
}

// ReviewStatus fetches the viewer's current vote state for a review.
func (c *Client) ReviewStatus(ctx context.Context, reviewID string) (*ReviewVote, error) {
	var vote ReviewVote
	if err := c.get(ctx, "/reviews/"+reviewID+"/status", nil, true, &vote); err != nil {
		return nil, fmt.Errorf("review status %s: %w", reviewID, err)
	}
	return &vote, nil
}
