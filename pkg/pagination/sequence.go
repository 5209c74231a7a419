package pagination

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/saturnines/labclient/pkg/errors"
	"github.com/saturnines/labclient/pkg/transport/rest"
)

// Streamer issues one request to an absolute URL. *rest.Executor implements it.
type Streamer interface {
	StreamURL(ctx context.Context, method string, target *url.URL, body any, consume rest.ResponseConsumer) error
}

type settings struct {
	logger *zap.Logger
	pager  Pager
}

// Option configures a Sequence
type Option func(*settings)

// WithLogger sets the logger used to trace page fetches
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPager replaces the default LinkPager. The start URL is then ignored.
func WithPager(pager Pager) Option {
	return func(s *settings) {
		s.pager = pager
	}
}

// Sequence is a lazy, forward-only iterator over the items of a paginated
// list endpoint. Pages are fetched one at a time when the buffer runs dry.
//
// A page that decodes to zero items ends the sequence even if it advertises
// a next link.
//
// A Sequence is single-pass and not safe for concurrent use.
type Sequence[T any] struct {
	streamer Streamer
	pager    Pager
	logger   *zap.Logger

	buffer  []T
	current T
	err     error
	done    bool
	pages   int
}

// NewSequence returns a Sequence whose first page is start.
func NewSequence[T any](streamer Streamer, start *url.URL, options ...Option) *Sequence[T] {
	cfg := settings{logger: zap.NewNop()}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.pager == nil {
		cfg.pager = NewLinkPager(start)
	}
	return &Sequence[T]{
		streamer: streamer,
		pager:    cfg.pager,
		logger:   cfg.logger,
	}
}

// Next advances to the next item, fetching a page if needed. It returns
// false when the sequence is exhausted or a fetch failed; check Err.
func (s *Sequence[T]) Next(ctx context.Context) bool {
	for len(s.buffer) == 0 {
		if s.done {
			return false
		}
		if err := s.fetch(ctx); err != nil {
			s.err = err
			s.done = true
			return false
		}
	}

	s.current = s.buffer[0]
	var zero T
	s.buffer[0] = zero
	s.buffer = s.buffer[1:]
	return true
}

// Item returns the item produced by the last successful call to Next.
func (s *Sequence[T]) Item() T {
	return s.current
}

// Err returns the error that stopped the sequence, if any.
func (s *Sequence[T]) Err() error {
	return s.err
}

// Pages returns how many pages have been fetched so far.
func (s *Sequence[T]) Pages() int {
	return s.pages
}

func (s *Sequence[T]) fetch(ctx context.Context) error {
	target := s.pager.NextURL()
	if target == nil {
		s.done = true
		return nil
	}

	var page []T
	err := s.streamer.StreamURL(ctx, http.MethodGet, target, nil, func(resp *http.Response) error {
		if err := rest.DecodeBody(resp.Body, &page); err != nil {
			return err
		}
		return s.pager.UpdateState(resp)
	})
	if err != nil {
		return errors.WrapError(err, errors.ErrPagination, fmt.Sprintf("fetch page %d", s.pages+1))
	}
	s.pages++

	s.logger.Debug("fetched page",
		zap.String("url", target.String()),
		zap.Int("page", s.pages),
		zap.Int("items", len(page)),
	)

	if len(page) == 0 {
		s.done = true
		return nil
	}
	s.buffer = append(s.buffer, page...)
	return nil
}

// All adapts the sequence to a range-over-func iterator. A failure is
// yielded once, as the final pair, with the zero item.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for s.Next(ctx) {
			if !yield(s.Item(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect drains the sequence into a slice. Items fetched before a failure
// are returned along with the error.
func (s *Sequence[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for s.Next(ctx) {
		items = append(items, s.Item())
	}
	return items, s.Err()
}
