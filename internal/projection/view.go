package projection

import (
	"sync"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

// BookView is a mounted snapshot of a book collection (trending, category
// listing, bookshelf, liked books, search results). It subscribes to the
// broadcast hub on mount and patches only rows whose entity id matches an
// update; it never computes counters itself, the published patch is
// canonical.
//
// All public methods are safe for concurrent use.
type BookView struct {
	mu         sync.RWMutex
	books      []domain.Book
	totalPages int
	totalBooks int
	sub        *broadcast.Subscription
}

// Books returns a copy of the current snapshot.
func (v *BookView) Books() []domain.Book {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.Book(nil), v.books...)
}

// Len returns the number of books currently in the snapshot.
func (v *BookView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.books)
}

// Pagination returns the server-reported page and book totals for paginated
// sources. Zero for unpaginated ones.
func (v *BookView) Pagination() (totalPages, totalBooks int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.totalPages, v.totalBooks
}

// Unmount cancels the hub subscription. No updates are applied afterwards.
func (v *BookView) Unmount() {
	if v.sub != nil {
		v.sub.Cancel()
	}
}

func (v *BookView) apply(update broadcast.Update) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch update.Type {
	case broadcast.UpdateBookPatched:
		for i := range v.books {
			if v.books[i].ID == update.EntityID {
				v.books[i] = *update.Book
			}
		}
	case broadcast.UpdateBookDeleted:
		for i := range v.books {
			if v.books[i].ID == update.EntityID {
				v.books = append(v.books[:i], v.books[i+1:]...)
				if v.totalBooks > 0 {
					v.totalBooks--
				}
				break
			}
		}
	}
}

// BookDetail is a mounted snapshot of one book plus its reviews.
type BookDetail struct {
	mu      sync.RWMutex
	book    domain.Book
	reviews []domain.Review
	deleted bool
	sub     *broadcast.Subscription
}

// Book returns the current book snapshot.
func (d *BookDetail) Book() domain.Book {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.book
}

// Reviews returns a copy of the current review list.
func (d *BookDetail) Reviews() []domain.Review {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Review(nil), d.reviews...)
}

// Deleted reports whether the book was deleted while mounted.
func (d *BookDetail) Deleted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deleted
}

// Unmount cancels the hub subscription. No updates are applied afterwards.
func (d *BookDetail) Unmount() {
	if d.sub != nil {
		d.sub.Cancel()
	}
}

func (d *BookDetail) apply(update broadcast.Update) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch update.Type {
	case broadcast.UpdateBookPatched:
		if update.EntityID == d.book.ID {
			d.book = *update.Book
		}
	case broadcast.UpdateBookDeleted:
		if update.EntityID == d.book.ID {
			d.deleted = true
		}
	case broadcast.UpdateReviewPatched:
		for i := range d.reviews {
			if d.reviews[i].ID == update.EntityID {
				d.reviews[i] = *update.Review
			}
		}
	}
}
