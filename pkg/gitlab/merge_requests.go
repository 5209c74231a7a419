package gitlab

import (
	"context"
	"net/url"
	"strconv"

	"github.com/saturnines/labclient/pkg/pagination"
)

// MergeRequestClient wraps the merge request endpoints of one project
type MergeRequestClient struct {
	client    *Client
	projectID int
}

// All lists merge requests in the given state. An empty state lists all.
func (m *MergeRequestClient) All(state MergeRequestState) (*pagination.Sequence[MergeRequest], error) {
	var query url.Values
	if state != "" {
		query = url.Values{"state": {string(state)}}
	}
	return list[MergeRequest](m.client, m.path(), query)
}

func (m *MergeRequestClient) Get(ctx context.Context, iid int) (MergeRequest, error) {
	var mr MergeRequest
	err := m.client.get(ctx, m.itemPath(iid), &mr)
	return mr, err
}

func (m *MergeRequestClient) Create(ctx context.Context, mr MergeRequestCreate) (MergeRequest, error) {
	var created MergeRequest
	err := m.client.post(ctx, m.path(), mr, &created)
	return created, err
}

func (m *MergeRequestClient) Update(ctx context.Context, iid int, mr MergeRequestUpdate) (MergeRequest, error) {
	var updated MergeRequest
	err := m.client.put(ctx, m.itemPath(iid), mr, &updated)
	return updated, err
}

// Accept merges the request. A nil accept sends a bodiless PUT.
func (m *MergeRequestClient) Accept(ctx context.Context, iid int, accept *MergeRequestAccept) (MergeRequest, error) {
	var merged MergeRequest
	var body any
	if accept != nil {
		body = accept
	}
	err := m.client.put(ctx, m.itemPath(iid)+"/merge", body, &merged)
	return merged, err
}

func (m *MergeRequestClient) path() string {
	return projectPath(m.projectID) + "/merge_requests"
}

func (m *MergeRequestClient) itemPath(iid int) string {
	return m.path() + "/" + strconv.Itoa(iid)
}
