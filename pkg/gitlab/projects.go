package gitlab

import (
	"context"
	"net/url"

	"github.com/saturnines/labclient/pkg/pagination"
)

// ProjectClient wraps the /projects endpoints
type ProjectClient struct {
	client *Client
}

// Accessible lists projects the token's user is a member of
func (p *ProjectClient) Accessible() (*pagination.Sequence[Project], error) {
	return list[Project](p.client, "/projects", url.Values{"membership": {"true"}})
}

// Owned lists projects owned by the token's user
func (p *ProjectClient) Owned() (*pagination.Sequence[Project], error) {
	return list[Project](p.client, "/projects", url.Values{"owned": {"true"}})
}

// All lists every project visible to the token
func (p *ProjectClient) All() (*pagination.Sequence[Project], error) {
	return list[Project](p.client, "/projects", nil)
}

func (p *ProjectClient) Get(ctx context.Context, id int) (Project, error) {
	var project Project
	err := p.client.get(ctx, projectPath(id), &project)
	return project, err
}

// GetByPath looks a project up by its namespaced path, e.g. "group/name"
func (p *ProjectClient) GetByPath(ctx context.Context, path string) (Project, error) {
	var project Project
	err := p.client.get(ctx, "/projects/"+url.PathEscape(path), &project)
	return project, err
}

func (p *ProjectClient) Create(ctx context.Context, project ProjectUpsert) (Project, error) {
	var created Project
	err := p.client.post(ctx, "/projects", project, &created)
	return created, err
}

func (p *ProjectClient) Update(ctx context.Context, id int, project ProjectUpsert) (Project, error) {
	var updated Project
	err := p.client.put(ctx, projectPath(id), project, &updated)
	return updated, err
}

func (p *ProjectClient) Delete(ctx context.Context, id int) error {
	return p.client.delete(ctx, projectPath(id))
}
