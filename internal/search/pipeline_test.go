package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
)

// fakeSearchCatalog records queries and can hold selected queries open until
// released, so tests can force response ordering.
type fakeSearchCatalog struct {
	mu      sync.Mutex
	queries []string
	gates   map[string]chan struct{}
	results map[string][]domain.Book
	err     error
}

func newFakeSearchCatalog() *fakeSearchCatalog {
	return &fakeSearchCatalog{
		gates:   make(map[string]chan struct{}),
		results: make(map[string][]domain.Book),
	}
}

func (f *fakeSearchCatalog) gate(q string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[q] = ch
	return ch
}

func (f *fakeSearchCatalog) SearchBooks(ctx context.Context, q string) ([]domain.Book, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.gates[q]
	books := f.results[q]
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (f *fakeSearchCatalog) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func waitResult(t *testing.T, results <-chan ResultSet) ResultSet {
	t.Helper()
	select {
	case rs, ok := <-results:
		require.True(t, ok, "results channel closed unexpectedly")
		return rs
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result set")
		return ResultSet{}
	}
}

func TestPipeline_CoalescesKeystrokes(t *testing.T) {
	catalog := newFakeSearchCatalog()
	catalog.results["harr"] = []domain.Book{{ID: "book-1", Title: "Harry Potter"}}

	p := NewPipeline(Options{Catalog: catalog, Quiescence: 40 * time.Millisecond})
	defer p.Close()

	for _, q := range []string{"h", "ha", "har", "harr"} {
		p.SetQuery(q)
		time.Sleep(5 * time.Millisecond)
	}

	rs := waitResult(t, p.Results())
	assert.Equal(t, "harr", rs.Query)
	require.Len(t, rs.Books, 1)
	assert.Equal(t, "book-1", rs.Books[0].ID)

	// Only the settled query ever reached the network.
	assert.Equal(t, []string{"harr"}, catalog.calls())
}

func TestPipeline_DiscardsStaleResponse(t *testing.T) {
	catalog := newFakeSearchCatalog()
	slowGate := catalog.gate("slow")
	catalog.results["slow"] = []domain.Book{{ID: "stale"}}
	catalog.results["fast"] = []domain.Book{{ID: "fresh"}}

	p := NewPipeline(Options{Catalog: catalog, Quiescence: 10 * time.Millisecond})
	defer p.Close()

	p.SetQuery("slow")
	require.Eventually(t, func() bool {
		return len(catalog.calls()) == 1
	}, time.Second, 5*time.Millisecond, "first request never issued")

	// A newer query supersedes the one still in flight.
	p.SetQuery("fast")
	rs := waitResult(t, p.Results())
	assert.Equal(t, "fast", rs.Query)
	require.Len(t, rs.Books, 1)
	assert.Equal(t, "fresh", rs.Books[0].ID)

	// Releasing the slow response must not produce another emission.
	close(slowGate)
	select {
	case rs := <-p.Results():
		t.Fatalf("stale response leaked through: %+v", rs)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPipeline_EmptyQueryClearsWithoutNetwork(t *testing.T) {
	catalog := newFakeSearchCatalog()
	p := NewPipeline(Options{Catalog: catalog, Quiescence: 40 * time.Millisecond})
	defer p.Close()

	// Clearing before the window elapses abandons the pending query too.
	p.SetQuery("ha")
	p.SetQuery("   ")

	rs := waitResult(t, p.Results())
	assert.Empty(t, rs.Query)
	assert.Empty(t, rs.Books)
	assert.NoError(t, rs.Err)

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, catalog.calls(), "cleared input must not hit the network")
}

func TestPipeline_NormalizesBeforeDispatch(t *testing.T) {
	catalog := newFakeSearchCatalog()
	p := NewPipeline(Options{Catalog: catalog, Quiescence: 10 * time.Millisecond})
	defer p.Close()

	p.SetQuery("  Crème   BRÛLÉE  ")
	waitResult(t, p.Results())

	assert.Equal(t, []string{"creme brulee"}, catalog.calls())
}

func TestPipeline_SurfacesNewestError(t *testing.T) {
	catalog := newFakeSearchCatalog()
	catalog.err = context.DeadlineExceeded

	p := NewPipeline(Options{Catalog: catalog, Quiescence: 10 * time.Millisecond})
	defer p.Close()

	p.SetQuery("doomed")
	rs := waitResult(t, p.Results())
	assert.Equal(t, "doomed", rs.Query)
	assert.ErrorIs(t, rs.Err, context.DeadlineExceeded)
}

func TestPipeline_CloseStopsEmissions(t *testing.T) {
	catalog := newFakeSearchCatalog()
	gate := catalog.gate("pending")

	p := NewPipeline(Options{Catalog: catalog, Quiescence: 10 * time.Millisecond})

	p.SetQuery("pending")
	require.Eventually(t, func() bool {
		return len(catalog.calls()) == 1
	}, time.Second, 5*time.Millisecond)

	p.Close()
	close(gate)

	// SetQuery after Close is a no-op.
	p.SetQuery("more")

	for rs := range p.Results() {
		t.Fatalf("emission after Close: %+v", rs)
	}
	assert.Equal(t, []string{"pending"}, catalog.calls())
}

func TestPipeline_FeedsSuggester(t *testing.T) {
	catalog := newFakeSearchCatalog()
	catalog.results["dune"] = []domain.Book{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert"},
	}

	suggester, err := NewSuggester()
	require.NoError(t, err)
	defer suggester.Close()

	p := NewPipeline(Options{Catalog: catalog, Suggester: suggester, Quiescence: 10 * time.Millisecond})
	defer p.Close()

	p.SetQuery("dune")
	waitResult(t, p.Results())

	require.Eventually(t, func() bool {
		n, countErr := suggester.Count()
		return countErr == nil && n == 1
	}, time.Second, 10*time.Millisecond)
}
