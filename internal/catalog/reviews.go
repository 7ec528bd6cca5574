package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

// ListReviews fetches all reviews for a book, newest first.
func (c *Client) ListReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.get(ctx, "/books/"+bookID+"/reviews", nil, false, &reviews); err != nil {
		return nil, fmt.Errorf("list reviews for %s: %w", bookID, err)
	}
	return reviews, nil
}

// CreatedReview is the server's response to a review submission: the stored
// review plus the book's recalculated aggregate rating.
type CreatedReview struct {
	Review        domain.Review `json:"review"`
	AverageRating float64       `json:"averageRating"`
	TotalReviews  int           `json:"totalReviews"`
}

// CreateReview submits a new review for a book.
func (c *Client) CreateReview(ctx context.Context, bookID string, draft domain.ReviewDraft) (*CreatedReview, error) {
	data, err := c.do(ctx, http.MethodPost, "/books/"+bookID+"/reviews", nil, draft, true)
	if err != nil {
		return nil, fmt.Errorf("create review for %s: %w", bookID, err)
	}

	var created CreatedReview
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}
	return &created, nil
}

// UpdateReview edits the viewer's own review.
func (c *Client) UpdateReview(ctx context.Context, reviewID string, draft domain.ReviewDraft) (*domain.Review, error) {
	data, err := c.do(ctx, http.MethodPatch, "/reviews/"+reviewID, nil, draft, true)
	if err != nil {
		return nil, fmt.Errorf("update review %s: %w", reviewID, err)
	}

	var resp struct {
		Review domain.Review `json:"review"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}
	return &resp.Review, nil
}

// DeleteReview removes the viewer's own review.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/reviews/"+reviewID, nil, nil, true); err != nil {
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}
	return nil
}
