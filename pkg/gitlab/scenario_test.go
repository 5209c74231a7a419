package gitlab

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/labclient/pkg/pagination"
	"github.com/saturnines/labclient/pkg/transport/rest"
)

// recordingDoer answers from a fixed table keyed by absolute URL.
type recordingDoer struct {
	pages    map[string]http.Response
	bodies   map[string]string
	requests []*http.Request
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req)
	resp, ok := d.pages[req.URL.String()]
	if !ok {
		resp = http.Response{StatusCode: http.StatusNotFound, Header: http.Header{}}
	}
	resp.Request = req
	resp.Body = io.NopCloser(strings.NewReader(d.bodies[req.URL.String()]))
	return &resp, nil
}

func TestScenario_TwoPageTraversal(t *testing.T) {
	first := "https://git.example.com/api/v4/projects?page=1"
	second := "https://git.example.com/projects?page=2"

	doer := &recordingDoer{
		pages: map[string]http.Response{
			first: {
				StatusCode: http.StatusOK,
				Header:     http.Header{"Link": {`<https://git.example.com/projects?page=2>; rel="next"`}},
			},
			second: {StatusCode: http.StatusOK, Header: http.Header{}},
		},
		bodies: map[string]string{
			first:  `[{"id":1},{"id":2}]`,
			second: `[{"id":3}]`,
		},
	}

	client, err := Connect("https://git.example.com", "T", WithHTTPOptions(rest.WithCustomHTTPClient(doer)))
	require.NoError(t, err)

	start, err := client.Executor().Endpoint().Resolve("/projects?page=1")
	require.NoError(t, err)

	projects, err := pagination.NewSequence[Project](client.Executor(), start).Collect(context.Background())
	require.NoError(t, err)

	var ids []int
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)

	require.Len(t, doer.requests, 2)
	assert.Equal(t, first, doer.requests[0].URL.String())
	assert.Equal(t, second, doer.requests[1].URL.String())
	for _, req := range doer.requests {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "T", req.Header.Get("PRIVATE-TOKEN"))
	}
}
