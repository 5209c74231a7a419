package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/labclient/pkg/errors"
)

// BearerAuth implements the interface for OAuth2 bearer tokens
type BearerAuth struct {
	Value string
}

// NewBearerAuth creates a new bearer token authentication handler
func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{
		Value: token,
	}
}

// ApplyAuth adds the Bearer token to the Authorization header
func (b *BearerAuth) ApplyAuth(req *http.Request) error {
	if b.Value == "" {
		return errors.WrapError(
			fmt.Errorf("token is empty"),
			errors.ErrAuthentication,
			"apply bearer auth",
		)
	}

	req.Header.Set("Authorization", "Bearer "+b.Value)

	return nil
}

// Token returns the bearer token
func (b *BearerAuth) Token() string {
	return b.Value
}

// String returns a string representation of this auth method for testing
func (b *BearerAuth) String() string {
	// There is no need to actually put the actual token
	return "BearerAuth(token: [REDACTED])"
}
