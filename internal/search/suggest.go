package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	"github.com/shelfmarkapp/shelfmark-client/internal/normalize"
)

// defaultSuggestLimit caps how many suggestions one lookup returns.
const defaultSuggestLimit = 5

// Suggestion is one type-ahead candidate.
type Suggestion struct {
	BookID   string
	Title    string
	Author   string
	Category string
	Score    float64
}

// Suggester serves instant type-ahead candidates from an in-memory Bleve
// index. It is populated opportunistically from books the runtime has
// already fetched (mounted views, past search results), so suggestions
// appear without a network round trip.
//
// All public methods are safe for concurrent use.
type Suggester struct {
	index bleve.Index
	mu    sync.RWMutex
}

// suggestDoc is the indexed shape of a book. Fields are pre-normalized so
// prefix matching works regardless of case and diacritics.
type suggestDoc struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// NewSuggester creates an empty in-memory suggestion index.
func NewSuggester() (*Suggester, error) {
	index, err := bleve.NewMemOnly(buildSuggestMapping())
	if err != nil {
		return nil, fmt.Errorf("create suggestion index: %w", err)
	}
	return &Suggester{index: index}, nil
}

// buildSuggestMapping keeps the mapping deliberately small: title and author
// are prefix-matchable text, category is an exact keyword. Everything is
// stored so suggestions can be rendered straight from the hit.
func buildSuggestMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = simple.Name
	titleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = simple.Name
	authorFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = keyword.Name
	categoryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// IndexBook adds or updates one book. Indexing the same ID again replaces
// the previous document, so stale titles self-heal as fresher copies arrive.
func (s *Suggester) IndexBook(book domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(book.ID, toSuggestDoc(book))
}

// IndexBooks adds or updates books in a single batch.
func (s *Suggester) IndexBooks(books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	batch := s.index.NewBatch()
	for _, book := range books {
		if err := batch.Index(book.ID, toSuggestDoc(book)); err != nil {
			return fmt.Errorf("batch index %s: %w", book.ID, err)
		}
	}
	return s.index.Batch(batch)
}

// Remove drops a book from the index, typically after deletion.
func (s *Suggester) Remove(bookID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(bookID)
}

// Count returns the number of indexed books.
func (s *Suggester) Count() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Suggest returns up to limit candidates whose title or author starts with
// any term of the partial query. A limit of zero or less uses the default.
// Empty input returns no suggestions.
func (s *Suggester) Suggest(partial string, limit int) ([]Suggestion, error) {
	q := normalize.Query(partial)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	titleQuery := bleve.NewPrefixQuery(q)
	titleQuery.SetField("title")

	authorQuery := bleve.NewPrefixQuery(q)
	authorQuery.SetField("author")

	matchTitle := bleve.NewMatchQuery(q)
	matchTitle.SetField("title")

	searchQuery := bleve.NewDisjunctionQuery(titleQuery, authorQuery, matchTitle)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)
	searchRequest.Fields = []string{"title", "author", "category"}

	result, err := s.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", q, err)
	}

	suggestions := make([]Suggestion, 0, len(result.Hits))
	for _, hit := range result.Hits {
		suggestions = append(suggestions, Suggestion{
			BookID:   hit.ID,
			Title:    stringField(hit.Fields, "title"),
			Author:   stringField(hit.Fields, "author"),
			Category: stringField(hit.Fields, "category"),
			Score:    hit.Score,
		})
	}
	return suggestions, nil
}

// Close releases the index. The suggester must not be used afterwards.
func (s *Suggester) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

func toSuggestDoc(book domain.Book) suggestDoc {
	return suggestDoc{
		Title:    normalize.Query(book.Title),
		Author:   normalize.Query(book.Author),
		Category: book.Category,
	}
}

func stringField(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}
