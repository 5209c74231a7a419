package gitlab

import (
	"github.com/saturnines/labclient/pkg/pagination"
)

// RepositoryClient wraps the repository endpoints of one project
type RepositoryClient struct {
	client    *Client
	projectID int
}

func (r *RepositoryClient) Branches() (*pagination.Sequence[Branch], error) {
	return list[Branch](r.client, r.path()+"/branches", nil)
}

func (r *RepositoryClient) Tags() (*pagination.Sequence[Tag], error) {
	return list[Tag](r.client, r.path()+"/tags", nil)
}

// Hooks returns the webhook client of the project
func (r *RepositoryClient) Hooks() *ProjectHookClient {
	return &ProjectHookClient{client: r.client, projectID: r.projectID}
}

func (r *RepositoryClient) path() string {
	return projectPath(r.projectID) + "/repository"
}
