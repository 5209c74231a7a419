package gitlab

import (
	"context"
	"net/url"
	"strconv"

	"github.com/saturnines/labclient/pkg/pagination"
)

// NamespaceClient wraps the /groups endpoints
type NamespaceClient struct {
	client *Client
}

func (n *NamespaceClient) All() (*pagination.Sequence[Namespace], error) {
	return list[Namespace](n.client, "/groups", nil)
}

func (n *NamespaceClient) Get(ctx context.Context, id int) (Namespace, error) {
	var group Namespace
	err := n.client.get(ctx, "/groups/"+strconv.Itoa(id), &group)
	return group, err
}

// Search lists groups whose name or path matches query
func (n *NamespaceClient) Search(query string) (*pagination.Sequence[Namespace], error) {
	return list[Namespace](n.client, "/groups", url.Values{"search": {query}})
}

func (n *NamespaceClient) Create(ctx context.Context, group NamespaceCreate) (Namespace, error) {
	var created Namespace
	err := n.client.post(ctx, "/groups", group, &created)
	return created, err
}

func (n *NamespaceClient) Delete(ctx context.Context, id int) error {
	return n.client.delete(ctx, "/groups/"+strconv.Itoa(id))
}
