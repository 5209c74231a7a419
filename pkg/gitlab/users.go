package gitlab

import (
	"context"
	"strconv"

	"github.com/saturnines/labclient/pkg/pagination"
)

// UserClient wraps the /users endpoints
type UserClient struct {
	client *Client
}

// All lists every user visible to the token
func (u *UserClient) All() (*pagination.Sequence[User], error) {
	return list[User](u.client, "/users", nil)
}

func (u *UserClient) Get(ctx context.Context, id int) (User, error) {
	var user User
	err := u.client.get(ctx, "/users/"+strconv.Itoa(id), &user)
	return user, err
}

// Current returns the user owning the token
func (u *UserClient) Current(ctx context.Context) (User, error) {
	var user User
	err := u.client.get(ctx, "/user", &user)
	return user, err
}

// Create requires an admin token
func (u *UserClient) Create(ctx context.Context, user UserUpsert) (User, error) {
	var created User
	err := u.client.post(ctx, "/users", user, &created)
	return created, err
}

func (u *UserClient) Delete(ctx context.Context, id int) error {
	return u.client.delete(ctx, "/users/"+strconv.Itoa(id))
}
