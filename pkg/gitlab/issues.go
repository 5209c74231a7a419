package gitlab

import (
	"context"
	"strconv"

	"github.com/saturnines/labclient/pkg/pagination"
)

// IssueClient wraps the issue endpoints. Project issues are addressed by
// their project-scoped IID.
type IssueClient struct {
	client *Client
}

// All lists issues across every project visible to the token
func (i *IssueClient) All() (*pagination.Sequence[Issue], error) {
	return list[Issue](i.client, "/issues", nil)
}

func (i *IssueClient) ForProject(projectID int) (*pagination.Sequence[Issue], error) {
	return list[Issue](i.client, projectPath(projectID)+"/issues", nil)
}

func (i *IssueClient) Get(ctx context.Context, projectID, iid int) (Issue, error) {
	var issue Issue
	err := i.client.get(ctx, issuePath(projectID, iid), &issue)
	return issue, err
}

func (i *IssueClient) Create(ctx context.Context, projectID int, issue IssueCreate) (Issue, error) {
	var created Issue
	err := i.client.post(ctx, projectPath(projectID)+"/issues", issue, &created)
	return created, err
}

func (i *IssueClient) Update(ctx context.Context, projectID, iid int, issue IssueUpdate) (Issue, error) {
	var updated Issue
	err := i.client.put(ctx, issuePath(projectID, iid), issue, &updated)
	return updated, err
}

func issuePath(projectID, iid int) string {
	return projectPath(projectID) + "/issues/" + strconv.Itoa(iid)
}
