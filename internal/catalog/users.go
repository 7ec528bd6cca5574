package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

// Bookmarks fetches the viewer's bookmarked books. Projections use this to
// derive initial bookmark flags.
func (c *Client) Bookmarks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.get(ctx, "/users/bookmarks", nil, true, &books); err != nil {
		return nil, fmt.Errorf("bookmarks: %w", err)
	}
	return books, nil
}

// LikedBooks fetches the viewer's liked books for initial like flags.
func (c *Client) LikedBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.get(ctx, "/users/likes", nil, true, &books); err != nil {
		return nil, fmt.Errorf("liked books: %w", err)
	}
	return books, nil
}

// Profile fetches the viewer's profile.
func (c *Client) Profile(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.get(ctx, "/users/profile", nil, true, &profile); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile saves profile edits.
func (c *Client) UpdateProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	data, err := c.do(ctx, http.MethodPatch, "/users/profile", nil, profile, true)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	var updated domain.UserProfile
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("parse profile response: %w", err)
	}
	return &updated, nil
}

// Stats fetches the viewer's activity counts.
func (c *Client) Stats(ctx context.Context) (*domain.UserStats, error) {
	var stats domain.UserStats
	if err := c.get(ctx, "/users/stats", nil, true, &stats); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &stats, nil
}
