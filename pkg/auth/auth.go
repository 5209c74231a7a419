package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/labclient/pkg/errors"
)

// Header names understood by GitLab
const (
	PrivateTokenHeader = "PRIVATE-TOKEN"
	JobTokenHeader     = "JOB-TOKEN"
)

// Handler defines the interface for auth handlers
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// APIKeyAuth implements the Handler interface for API key authentication
type APIKeyAuth struct {
	HeaderName string // Header name for header-based auth (e.g., "PRIVATE-TOKEN")
	QueryParam string // Query parameter name for query-based auth (e.g., "private_token")
	Value      string // The actual API key value
}

// NewAPIKeyAuth creates a new API key authentication handler
func NewAPIKeyAuth(headerName, queryParam, value string) *APIKeyAuth {
	return &APIKeyAuth{
		HeaderName: headerName,
		QueryParam: queryParam,
		Value:      value,
	}
}

// NewPrivateTokenAuth sends a personal, project or group access token in the PRIVATE-TOKEN header.
func NewPrivateTokenAuth(token string) *APIKeyAuth {
	return NewAPIKeyAuth(PrivateTokenHeader, "", token)
}

// PrivateTokenQueryParam is the query parameter GitLab accepts in place of the PRIVATE-TOKEN header.
const PrivateTokenQueryParam = "private_token"

// NewPrivateTokenQueryAuth sends a private token as the private_token query parameter,
// for proxies that strip custom headers.
func NewPrivateTokenQueryAuth(token string) *APIKeyAuth {
	return NewAPIKeyAuth("", PrivateTokenQueryParam, token)
}

// NewJobTokenAuth sends a CI job token in the JOB-TOKEN header.
func NewJobTokenAuth(token string) *APIKeyAuth {
	return NewAPIKeyAuth(JobTokenHeader, "", token)
}

// ApplyAuth adds the API key to the request, either as a header or query parameter
func (a *APIKeyAuth) ApplyAuth(req *http.Request) error {
	if a.Value == "" {
		return errors.WrapError(
			fmt.Errorf("API key value is required"),
			errors.ErrAuthentication,
			"apply API key auth",
		)
	}

	if a.HeaderName == "" && a.QueryParam == "" {
		return errors.WrapError(
			fmt.Errorf("API key auth requires either header name or query parameter name"),
			errors.ErrConfiguration,
			"apply API key auth",
		)
	}

	if a.HeaderName != "" {
		req.Header.Set(a.HeaderName, a.Value)
	}

	if a.QueryParam != "" {
		query := req.URL.Query()
		query.Set(a.QueryParam, a.Value)
		req.URL.RawQuery = query.Encode()
	}

	return nil
}

// Token returns the credential carried by this handler
func (a *APIKeyAuth) Token() string {
	return a.Value
}

// String returns a string representation of this auth method
func (a *APIKeyAuth) String() string {
	if a.HeaderName != "" {
		return fmt.Sprintf("APIKeyAuth(header: %s)", a.HeaderName)
	}
	return fmt.Sprintf("APIKeyAuth(query: %s)", a.QueryParam)
}
