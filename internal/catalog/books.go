package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

// BookFilters narrows a catalog listing.
type BookFilters struct {
	Category   string
	OwnerEmail string
	Page       int
	Limit      int
}

// BookPage is one page of a filtered listing.
type BookPage struct {
	Books      []domain.Book `json:"books"`
	TotalPages int           `json:"totalPages"`
	TotalBooks int           `json:"totalBooks"`
}

// ListBooks fetches a filtered, paginated book listing.
func (c *Client) ListBooks(ctx context.Context, filters BookFilters) (*BookPage, error) {
	query := url.Values{}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.OwnerEmail != "" {
		query.Set("userEmail", filters.OwnerEmail)
	}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var page BookPage
	if err := c.get(ctx, "/books", query, false, &page); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return &page, nil
}

// Trending fetches the home-feed trending set.
func (c *Client) Trending(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.get(ctx, "/books/trending", nil, false, &books); err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	return books, nil
}

// GetBook fetches a single book by id.
func (c *Client) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	var book domain.Book
	if err := c.get(ctx, "/books/"+bookID, nil, false, &book); err != nil {
		return nil, fmt.Errorf("get book %s: %w", bookID, err)
	}
	return &book, nil
}

// SearchBooks runs a free-text catalog search.
func (c *Client) SearchBooks(ctx context.Context, q string) ([]domain.Book, error) {
	query := url.Values{}
	query.Set("q", q)

	var books []domain.Book
	if err := c.get(ctx, "/books/search", query, false, &books); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// BookDraft is the payload for adding a book to the catalog. The server
// assigns the id and stamps the signed-in viewer as owner.
type BookDraft struct {
	Title      string `json:"title" validate:"required,notblank"`
	Author     string `json:"author" validate:"required,notblank"`
	Category   string `json:"category,omitempty"`
	CoverImage string `json:"coverImage,omitempty" validate:"omitempty,url"`
	Overview   string `json:"overview,omitempty"`
	TotalPages int    `json:"totalPages,omitempty" validate:"omitempty,min=1"`
}

// CreateBook adds a book to the catalog and returns the stored copy.
func (c *Client) CreateBook(ctx context.Context, draft BookDraft) (*domain.Book, error) {
	data, err := c.do(ctx, http.MethodPost, "/books", nil, draft, true)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	var resp struct {
		Book domain.Book `json:"book"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse create response: %w", err)
	}
	return &resp.Book, nil
}

// BookPatch is a partial book update. Nil fields are left unchanged.
type BookPatch struct {
	Title         *string               `json:"title,omitempty"`
	Author        *string               `json:"author,omitempty"`
	Category      *string               `json:"category,omitempty"`
	Overview      *string               `json:"overview,omitempty"`
	TotalPages    *int                  `json:"totalPages,omitempty"`
	ReadingStatus *domain.ReadingStatus `json:"readingStatus,omitempty"`
}

// UpdateBook applies an owner-only partial update (including reading-status
// changes). The server enforces ownership; callers pre-check for fast
// feedback but treat server rejection as final.
func (c *Client) UpdateBook(ctx context.Context, bookID string, patch BookPatch) (*domain.Book, error) {
	data, err := c.do(ctx, http.MethodPatch, "/books/"+bookID, nil, patch, true)
	if err != nil {
		return nil, fmt.Errorf("update book %s: %w", bookID, err)
	}

	var resp struct {
		Book domain.Book `json:"book"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse update response: %w", err)
	}
	return &resp.Book, nil
}

// DeleteBook removes an owned book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, bookID string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/books/"+bookID, nil, nil, true); err != nil {
		return fmt.Errorf("delete book %s: %w", bookID, err)
	}
	return nil
}
