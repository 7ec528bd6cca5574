package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

func newTestSuggester(t *testing.T) *Suggester {
	t.Helper()
	s, err := NewSuggester()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedBooks() []domain.Book {
	return []domain.Book{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"},
		{ID: "book-2", Title: "Dune Messiah", Author: "Frank Herbert", Category: "Sci-Fi"},
		{ID: "book-3", Title: "The Hobbit", Author: "J.R.R. Tolkien", Category: "Fantasy"},
		{ID: "book-4", Title: "Hyperion", Author: "Dan Simmons", Category: "Sci-Fi"},
	}
}

func TestSuggester_PrefixOnTitle(t *testing.T) {
	s := newTestSuggester(t)
	require.NoError(t, s.IndexBooks(seedBooks()))

	got, err := s.Suggest("dun", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].BookID, got[1].BookID}
	assert.ElementsMatch(t, []string{"book-1", "book-2"}, ids)
}

func TestSuggester_PrefixOnAuthor(t *testing.T) {
	s := newTestSuggester(t)
	require.NoError(t, s.IndexBooks(seedBooks()))

	got, err := s.Suggest("tolk", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "book-3", got[0].BookID)
	assert.Equal(t, "the hobbit", got[0].Title)
	assert.Equal(t, "Fantasy", got[0].Category)
}

func TestSuggester_CaseAndDiacriticsInsensitive(t *testing.T) {
	s := newTestSuggester(t)
	require.NoError(t, s.IndexBook(domain.Book{
		ID: "book-5", Title: "Les Misérables", Author: "Victor Hugo",
	}))

	got, err := s.Suggest("MISÉR", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "book-5", got[0].BookID)
}

func TestSuggester_EmptyInput(t *testing.T) {
	s := newTestSuggester(t)
	require.NoError(t, s.IndexBooks(seedBooks()))

	got, err := s.Suggest("   ", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggester_LimitApplies(t *testing.T) {
	s := newTestSuggester(t)
	require.NoError(t, s.IndexBooks(seedBooks()))

	got, err := s.Suggest("frank", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSuggester_ReindexReplaces(t *testing.T) {
	s := newTestSuggester(t)
	require.NoError(t, s.IndexBook(domain.Book{ID: "book-1", Title: "Dnue", Author: "Frank Herbert"}))
	require.NoError(t, s.IndexBook(domain.Book{ID: "book-1", Title: "Dune", Author: "Frank Herbert"}))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	got, err := s.Suggest("dune", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dune", got[0].Title)
}

func TestSuggester_Remove(t *testing.T) {
	s := newTestSuggester(t)
	require.NoError(t, s.IndexBooks(seedBooks()))
	require.NoError(t, s.Remove("book-3"))

	got, err := s.Suggest("hobbit", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
