// Package search converts free-text keystroke input into rate-limited,
// cancellable catalog queries, and serves instant local suggestions from an
// in-memory index of every book the runtime has already seen.
package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	"github.com/shelfmarkapp/shelfmark-client/internal/normalize"
)

// defaultQuiescence is how long input must be stable before a request is
// issued. Matches the original product's feel of "fires when you stop
// typing, not while you type".
const defaultQuiescence = 450 * time.Millisecond

// CatalogAPI is the slice of the catalog client the pipeline needs.
type CatalogAPI interface {
	SearchBooks(ctx context.Context, q string) ([]domain.Book, error)
}

// ResultSet is one emission from the pipeline: the settled query and its
// results. An empty Query means "input cleared, show nothing". Err is set
// when the newest request failed; stale failures are discarded silently.
type ResultSet struct {
	Query string
	Books []domain.Book
	Err   error
}

// Pipeline debounces a stream of query strings into catalog searches.
//
// One pipeline serves one search surface. Keystrokes go in via SetQuery;
// settled results come out of Results. Only the response matching the most
// recently issued request is ever emitted - a slow earlier response can
// never overwrite a newer one. Close cancels pending timers and in-flight
// requests; nothing is emitted afterwards.
type Pipeline struct {
	catalog   CatalogAPI
	suggest   *Suggester // optional; fed from applied result sets
	logger    *slog.Logger
	debounced func(func())
	results   chan ResultSet

	mu      sync.Mutex
	seq     uint64 // issued request counter; responses must match to apply
	pending string // last normalized query seen during the window
	cancel  context.CancelFunc
	root    context.Context
	stop    context.CancelFunc
	closed  bool
}

// Options configures a pipeline.
type Options struct {
	Catalog    CatalogAPI
	Suggester  *Suggester
	Quiescence time.Duration
	Logger     *slog.Logger
}

// NewPipeline creates a pipeline. The caller must Close it when the search
// surface unmounts.
func NewPipeline(opts Options) *Pipeline {
	if opts.Quiescence <= 0 {
		opts.Quiescence = defaultQuiescence
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	root, stop := context.WithCancel(context.Background())
	return &Pipeline{
		catalog:   opts.Catalog,
		suggest:   opts.Suggester,
		logger:    opts.Logger,
		debounced: debounce.New(opts.Quiescence),
		results:   make(chan ResultSet, 4),
		root:      root,
		stop:      stop,
	}
}

// Results is the pipeline's output stream. Closed by Close.
func (p *Pipeline) Results() <-chan ResultSet {
	return p.results
}

// SetQuery feeds one keystroke's worth of input. Requests are suppressed
// until input has been stable for the quiescence interval; only the last
// query seen during the window is issued. Empty or whitespace-only input
// clears results immediately, with no network call, and invalidates any
// pending or in-flight request.
func (p *Pipeline) SetQuery(raw string) {
	q := normalize.Query(raw)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	if q == "" {
		// Bumping seq orphans the pending debounce fire and any response
		// still on the wire.
		p.seq++
		p.pending = ""
		if p.cancel != nil {
			p.cancel()
			p.cancel = nil
		}
		p.emitLocked(ResultSet{Query: ""})
		p.mu.Unlock()
		return
	}

	p.pending = q
	p.mu.Unlock()

	p.debounced(p.dispatch)
}

// dispatch fires when input has settled. It issues the request for the last
// pending query and arranges for stale responses to be discarded.
func (p *Pipeline) dispatch() {
	p.mu.Lock()
	if p.closed || p.pending == "" {
		p.mu.Unlock()
		return
	}

	q := p.pending
	p.seq++
	seq := p.seq

	// A newer request supersedes whatever is still in flight.
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(p.root)
	p.cancel = cancel
	p.mu.Unlock()

	p.logger.Debug("search issued", slog.String("query", q), slog.Uint64("seq", seq))

	go func() {
		books, err := p.catalog.SearchBooks(ctx, q)

		p.mu.Lock()
		defer p.mu.Unlock()

		if p.closed || seq != p.seq {
			p.logger.Debug("stale search response discarded",
				slog.String("query", q), slog.Uint64("seq", seq))
			return
		}
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			p.emitLocked(ResultSet{Query: q, Err: err})
			return
		}

		p.emitLocked(ResultSet{Query: q, Books: books})

		if p.suggest != nil {
			p.suggest.IndexBooks(books)
		}
	}()
}

// emitLocked delivers a result set, preferring to drop a stale queued frame
// over blocking or losing the newest. Callers hold p.mu.
func (p *Pipeline) emitLocked(rs ResultSet) {
	for {
		select {
		case p.results <- rs:
			return
		default:
		}
		select {
		case <-p.results:
		default:
		}
	}
}

// Close cancels pending debounce work and in-flight requests and closes the
// results stream. No state is mutated after Close returns.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.seq++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.stop()
	close(p.results)
	p.mu.Unlock()
}
