package pagination

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saturnines/labclient/pkg/auth"
	"github.com/saturnines/labclient/pkg/errors"
	"github.com/saturnines/labclient/pkg/transport/rest"
)

type item struct {
	ID int `json:"id"`
}

func ids(items []item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// pagedServer serves canned pages and records every requested URL.
type pagedServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []string
	hits     atomic.Int32
}

func (s *pagedServer) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func newPagedServer(t *testing.T, handler func(s *pagedServer, w http.ResponseWriter, r *http.Request)) (*pagedServer, *rest.Executor) {
	t.Helper()
	ps := &pagedServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.hits.Add(1)
		ps.mu.Lock()
		ps.requests = append(ps.requests, r.URL.RequestURI())
		ps.mu.Unlock()
		handler(ps, w, r)
	}))
	t.Cleanup(ps.Close)

	builder := rest.NewBuilder(rest.NewEndpoint(ps.URL, "v4"), auth.NewPrivateTokenAuth("T"))
	return ps, rest.NewExecutor(builder, rest.WithLogger(zap.NewNop()))
}

func startURL(t *testing.T, exec *rest.Executor, path string) *url.URL {
	t.Helper()
	u, err := exec.Endpoint().Resolve(path)
	require.NoError(t, err)
	return u
}

func TestSequence_FollowsNextLinks(t *testing.T) {
	ps, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "T", r.Header.Get("PRIVATE-TOKEN"))
		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/v4/projects?page=2>; rel="next", <%s/api/v4/projects?page=1>; rel="first", <%s/api/v4/projects?page=2>; rel="last"`, s.URL, s.URL, s.URL))
			fmt.Fprint(w, `[{"id":1},{"id":2}]`)
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/v4/projects?page=1>; rel="first", <%s/api/v4/projects?page=2>; rel="last"`, s.URL, s.URL))
			fmt.Fprint(w, `[{"id":3}]`)
		default:
			t.Errorf("unexpected request %s", r.URL)
		}
	})

	seq := NewSequence[item](exec, startURL(t, exec, "/projects?page=1"))
	items, err := seq.Collect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(items))
	assert.Equal(t, int32(2), ps.hits.Load())
	assert.Equal(t, []string{"/api/v4/projects?page=1", "/api/v4/projects?page=2"}, ps.requested())
	assert.Equal(t, 2, seq.Pages())
}

func TestSequence_NextInSeparateLinkField(t *testing.T) {
	ps, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id":3}]`)
			return
		}
		w.Header().Add("Link", fmt.Sprintf(`<%s/api/v4/projects?page=1>; rel="first"`, s.URL))
		w.Header().Add("Link", fmt.Sprintf(`<%s/api/v4/projects?page=2>; rel="next"`, s.URL))
		fmt.Fprint(w, `[{"id":1},{"id":2}]`)
	})

	items, err := NewSequence[item](exec, startURL(t, exec, "/projects?page=1")).Collect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(items))
	assert.Equal(t, int32(2), ps.hits.Load())
}

func TestSequence_IsLazy(t *testing.T) {
	ps, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v4/issues?page=%s0>; rel="next"`, s.URL, page))
		fmt.Fprintf(w, `[{"id":%s1},{"id":%s2}]`, page, page)
	})

	seq := NewSequence[item](exec, startURL(t, exec, "/issues?page=1"))
	assert.Equal(t, int32(0), ps.hits.Load(), "no request before the first pull")

	require.True(t, seq.Next(context.Background()))
	assert.Equal(t, 11, seq.Item().ID)
	require.True(t, seq.Next(context.Background()))
	assert.Equal(t, 12, seq.Item().ID)
	assert.Equal(t, int32(1), ps.hits.Load(), "second item comes from the buffer")

	require.True(t, seq.Next(context.Background()))
	assert.Equal(t, 101, seq.Item().ID)
	assert.Equal(t, int32(2), ps.hits.Load())
}

func TestSequence_LastPageStopsWithoutExtraCall(t *testing.T) {
	ps, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":1}]`)
	})

	seq := NewSequence[item](exec, startURL(t, exec, "/users"))
	ctx := context.Background()

	require.True(t, seq.Next(ctx))
	assert.False(t, seq.Next(ctx))
	assert.False(t, seq.Next(ctx), "exhausted sequence stays exhausted")
	assert.NoError(t, seq.Err())
	assert.Equal(t, int32(1), ps.hits.Load())
}

func TestSequence_EmptyPageIgnoresNextLink(t *testing.T) {
	ps, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v4/groups?page=2>; rel="next"`, s.URL))
		fmt.Fprint(w, `[]`)
	})

	items, err := NewSequence[item](exec, startURL(t, exec, "/groups?page=1")).Collect(context.Background())

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int32(1), ps.hits.Load())
}

func TestSequence_ErrorAfterBufferedItems(t *testing.T) {
	ps, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message":"500 Internal Server Error"}`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v4/projects?page=2>; rel="next"`, s.URL))
		fmt.Fprint(w, `[{"id":1},{"id":2}]`)
	})

	seq := NewSequence[item](exec, startURL(t, exec, "/projects?page=1"))
	ctx := context.Background()

	require.True(t, seq.Next(ctx))
	require.True(t, seq.Next(ctx))
	assert.NoError(t, seq.Err(), "buffered items are delivered before the failure")

	assert.False(t, seq.Next(ctx))
	err := seq.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPagination))

	var remote *errors.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, 500, remote.StatusCode)
	assert.Equal(t, "500 Internal Server Error", remote.Message)

	assert.False(t, seq.Next(ctx), "a failed sequence stays stopped")
	assert.Equal(t, int32(2), ps.hits.Load())
}

func TestSequence_DecodeError(t *testing.T) {
	_, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1}`)
	})

	items, err := NewSequence[item](exec, startURL(t, exec, "/projects")).Collect(context.Background())
	assert.Empty(t, items)
	assert.True(t, errors.Is(err, errors.ErrDecode))
}

func TestSequence_All(t *testing.T) {
	_, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id":3}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v4/projects?page=2>; rel="next"`, s.URL))
		fmt.Fprint(w, `[{"id":1},{"id":2}]`)
	})

	var got []int
	for it, err := range NewSequence[item](exec, startURL(t, exec, "/projects?page=1")).All(context.Background()) {
		require.NoError(t, err)
		got = append(got, it.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestSequence_AllStopsEarly(t *testing.T) {
	ps, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v4/projects?page=2>; rel="next"`, s.URL))
		fmt.Fprint(w, `[{"id":1},{"id":2}]`)
	})

	for it, err := range NewSequence[item](exec, startURL(t, exec, "/projects?page=1")).All(context.Background()) {
		require.NoError(t, err)
		if it.ID == 1 {
			break
		}
	}
	assert.Equal(t, int32(1), ps.hits.Load())
}

func TestSequence_AllYieldsError(t *testing.T) {
	_, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"401 Unauthorized"}`)
	})

	var errs []error
	for _, err := range NewSequence[item](exec, startURL(t, exec, "/projects")).All(context.Background()) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.Equal(t, http.StatusUnauthorized, errors.StatusCode(errs[0]))
}

// countingPager serves a fixed list of URLs without reading headers.
type countingPager struct {
	urls    []*url.URL
	updates int
}

func (p *countingPager) NextURL() *url.URL {
	if len(p.urls) == 0 {
		return nil
	}
	next := p.urls[0]
	p.urls = p.urls[1:]
	return next
}

func (p *countingPager) UpdateState(*http.Response) error {
	p.updates++
	return nil
}

func TestSequence_WithPager(t *testing.T) {
	_, exec := newPagedServer(t, func(s *pagedServer, w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"id":%s}]`, r.URL.Query().Get("page"))
	})

	pager := &countingPager{urls: []*url.URL{
		startURL(t, exec, "/projects?page=4"),
		startURL(t, exec, "/projects?page=5"),
	}}
	items, err := NewSequence[item](exec, nil, WithPager(pager), WithLogger(zap.NewNop())).Collect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, ids(items))
	assert.Equal(t, 2, pager.updates)
}
