package gitlab

import (
	"context"
	"strconv"

	"github.com/saturnines/labclient/pkg/pagination"
)

// ProjectHookClient wraps the webhook endpoints of one project
type ProjectHookClient struct {
	client    *Client
	projectID int
}

func (h *ProjectHookClient) All() (*pagination.Sequence[ProjectHook], error) {
	return list[ProjectHook](h.client, h.path(), nil)
}

func (h *ProjectHookClient) Get(ctx context.Context, id int) (ProjectHook, error) {
	var hook ProjectHook
	err := h.client.get(ctx, h.itemPath(id), &hook)
	return hook, err
}

func (h *ProjectHookClient) Create(ctx context.Context, hook ProjectHookUpsert) (ProjectHook, error) {
	var created ProjectHook
	err := h.client.post(ctx, h.path(), hook, &created)
	return created, err
}

func (h *ProjectHookClient) Update(ctx context.Context, id int, hook ProjectHookUpsert) (ProjectHook, error) {
	var updated ProjectHook
	err := h.client.put(ctx, h.itemPath(id), hook, &updated)
	return updated, err
}

func (h *ProjectHookClient) Delete(ctx context.Context, id int) error {
	return h.client.delete(ctx, h.itemPath(id))
}

func (h *ProjectHookClient) path() string {
	return projectPath(h.projectID) + "/hooks"
}

func (h *ProjectHookClient) itemPath(id int) string {
	return h.path() + "/" + strconv.Itoa(id)
}
