package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"

	"github.com/google/uuid"

	"github.com/saturnines/labclient/pkg/auth"
	"github.com/saturnines/labclient/pkg/errors"
)

const (
	contentTypeJSON = "application/json"
	requestIDHeader = "X-Request-Id"
)

// Builder builds authenticated REST requests against one Endpoint.
type Builder struct {
	Endpoint    Endpoint
	AuthHandler auth.Handler // nil only for unauthenticated calls such as session bootstrap
	UserAgent   string
	RequestIDs  bool // attach a fresh X-Request-Id to every request
}

// NewBuilder constructs a Builder.
func NewBuilder(endpoint Endpoint, authHandler auth.Handler) *Builder {
	return &Builder{
		Endpoint:    endpoint,
		AuthHandler: authHandler,
		UserAgent:   "labclient",
	}
}

// Build creates an HTTP request for method against target.
//
// POST and PATCH always declare a JSON content type. PUT does so only when it
// carries a body; a bodiless PUT, POST or PATCH is sent with an explicit zero
// content length because some servers wait for a body otherwise.
func (b *Builder) Build(ctx context.Context, method string, target *neturl.URL, body any) (*http.Request, error) {
	if err := validateRestMethod(method); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.WrapError(fmt.Errorf("target URL is nil"), errors.ErrValidation, "build request")
	}

	var (
		payload []byte
		err     error
	)
	if body != nil {
		if !methodAllowsBody(method) {
			return nil, errors.WrapError(
				fmt.Errorf("%s requests cannot carry a body", method),
				errors.ErrValidation,
				"build request",
			)
		}
		payload, err = EncodeBody(body)
		if err != nil {
			return nil, err
		}
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), bodyReader)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "failed to create request")
	}

	switch {
	case payload != nil:
		req.Header.Set("Content-Type", contentTypeJSON)
	case method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch:
		req.Body = http.NoBody
		req.ContentLength = 0
		if method != http.MethodPut {
			req.Header.Set("Content-Type", contentTypeJSON)
		}
	}

	// Setting Accept-Encoding by hand turns off the transport's transparent
	// decompression; the executor inflates gzip bodies itself.
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", contentTypeJSON)
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}
	if b.RequestIDs {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}

	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func methodAllowsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Return an error if the provided REST method is not valid
func validateRestMethod(method string) error {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodPatch, http.MethodHead:
		return nil
	}
	return errors.WrapError(
		fmt.Errorf("should be one of GET, PUT, POST, DELETE, PATCH, HEAD: '%v'", method),
		errors.ErrValidation,
		"invalid REST method",
	)
}
