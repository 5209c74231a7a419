package rest

import (
	"fmt"
	neturl "net/url"
	"strings"

	"github.com/saturnines/labclient/pkg/errors"
)

// DefaultAPIVersion is used when an Endpoint has no version set
const DefaultAPIVersion = "v4"

// Endpoint resolves API paths against <host>/api/<version>.
type Endpoint struct {
	Host       string
	APIVersion string
}

// NewEndpoint builds an Endpoint, defaulting the API version.
func NewEndpoint(host, apiVersion string) Endpoint {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return Endpoint{Host: strings.TrimSuffix(host, "/"), APIVersion: apiVersion}
}

// Root returns the API root, e.g. https://gitlab.example.com/api/v4
func (e Endpoint) Root() string {
	version := e.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return strings.TrimSuffix(e.Host, "/") + "/api/" + version
}

// Resolve turns a path relative to the API root into an absolute URL.
// Absolute http(s) URLs are returned unchanged so that server-provided
// cursors can be fed back in.
func (e Endpoint) Resolve(path string) (*neturl.URL, error) {
	raw := path
	if !isAbsoluteURL(path) {
		raw = e.Root() + "/" + strings.TrimPrefix(path, "/")
	}
	u, err := validateURLWithPath(raw)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "resolve endpoint")
	}
	return u, nil
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Return an error if the provided URL is not valid
func validateURLWithPath(url string) (*neturl.URL, error) {
	u, err := neturl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("cannot parse URL '%v': %w", url, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL '%v'", url)
	}
	if u.Path == "" {
		return nil, fmt.Errorf("URL does not contain a path '%v'", url)
	}
	return u, nil
}
