// Package gitlab is a typed client for the GitLab REST API. Resource clients
// only assemble paths; requests, errors and pagination are handled by
// pkg/transport/rest and pkg/pagination.
package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/saturnines/labclient/pkg/auth"
	"github.com/saturnines/labclient/pkg/config"
	"github.com/saturnines/labclient/pkg/errors"
	"github.com/saturnines/labclient/pkg/pagination"
	"github.com/saturnines/labclient/pkg/transport/rest"
)

// Client is the entry point to the API. It is safe to share between
// goroutines; the sequences it returns are not.
type Client struct {
	exec    *rest.Executor
	token   string
	perPage int
	logger  *zap.Logger

	Users    *UserClient
	Projects *ProjectClient
	Issues   *IssueClient
	Groups   *NamespaceClient
}

type options struct {
	apiVersion  string
	logger      *zap.Logger
	httpOptions []rest.HTTPClientOption
	userAgent   string
	requestIDs  bool
	perPage     int
}

// Option configures a Client
type Option func(*options)

// WithAPIVersion selects the API version, v4 by default
func WithAPIVersion(version string) Option {
	return func(o *options) { o.apiVersion = version }
}

// WithLogger sets the logger shared by the executor and paginated sequences
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHTTPOptions tunes or replaces the underlying HTTP client
func WithHTTPOptions(httpOptions ...rest.HTTPClientOption) Option {
	return func(o *options) { o.httpOptions = append(o.httpOptions, httpOptions...) }
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(userAgent string) Option {
	return func(o *options) { o.userAgent = userAgent }
}

// WithRequestIDs tags every request with a fresh X-Request-Id
func WithRequestIDs() Option {
	return func(o *options) { o.requestIDs = true }
}

// WithPerPage sets the page size requested from list endpoints (1-100)
func WithPerPage(perPage int) Option {
	return func(o *options) { o.perPage = perPage }
}

func buildOptions(opts []Option) options {
	o := options{
		apiVersion: config.DefaultAPIVersion,
		logger:     zap.NewNop(),
		userAgent:  config.DefaultUserAgent,
		perPage:    config.DefaultPerPage,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// Connect returns a client authenticating with a private token.
func Connect(host, token string, opts ...Option) (*Client, error) {
	return newClient(host, auth.NewPrivateTokenAuth(token), token, buildOptions(opts))
}

// ConnectWithHandler returns a client using any auth handler, for example
// auth.NewJobTokenAuth or auth.NewBearerAuth.
func ConnectWithHandler(host string, handler auth.Handler, opts ...Option) (*Client, error) {
	if handler == nil {
		return nil, errors.WrapError(fmt.Errorf("auth handler is nil"), errors.ErrConfiguration, "connect")
	}
	var token string
	if carrier, ok := handler.(interface{ Token() string }); ok {
		token = carrier.Token()
	}
	return newClient(host, handler, token, buildOptions(opts))
}

// ConnectWithLogin exchanges login and password for a private token through
// the session endpoint, then connects with that token.
func ConnectWithLogin(ctx context.Context, host, login, password string, opts ...Option) (*Client, error) {
	o := buildOptions(opts)
	// fail before the password leaves the process
	if err := validateOptions(o); err != nil {
		return nil, err
	}

	bootstrap, err := newExecutor(host, nil, o)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("login", login)
	query.Set("password", password)

	session, err := rest.Do[Session](ctx, bootstrap, http.MethodPost, "/session?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrAuthentication, fmt.Sprintf("session login for %q", login))
	}
	if session.PrivateToken == "" {
		return nil, errors.WrapError(
			fmt.Errorf("session response carried no private token"),
			errors.ErrAuthentication,
			fmt.Sprintf("session login for %q", login),
		)
	}

	o.logger.Debug("session established", zap.String("login", login))
	return newClient(host, auth.NewPrivateTokenAuth(session.PrivateToken), session.PrivateToken, o)
}

// NewFromProfile connects using a loaded configuration profile.
func NewFromProfile(ctx context.Context, profile *config.Profile, opts ...Option) (*Client, error) {
	if profile == nil || profile.Auth == nil {
		return nil, errors.WrapError(fmt.Errorf("profile has no auth section"), errors.ErrConfiguration, "connect")
	}

	base := []Option{WithAPIVersion(profile.APIVersion)}
	if profile.HTTP.TimeoutSecs > 0 {
		base = append(base, WithHTTPOptions(rest.WithTimeout(time.Duration(profile.HTTP.TimeoutSecs)*time.Second)))
	}
	if profile.HTTP.PerPage > 0 {
		base = append(base, WithPerPage(profile.HTTP.PerPage))
	}
	if profile.HTTP.UserAgent != "" {
		base = append(base, WithUserAgent(profile.HTTP.UserAgent))
	}
	if profile.HTTP.SendRequestIDs {
		base = append(base, WithRequestIDs())
	}
	opts = append(base, opts...)

	if profile.Auth.Type == config.AuthTypeSession {
		if profile.Auth.Session == nil {
			return nil, errors.WrapError(fmt.Errorf("session credentials missing"), errors.ErrConfiguration, "connect")
		}
		return ConnectWithLogin(ctx, profile.Host, profile.Auth.Session.Login, profile.Auth.Session.Password, opts...)
	}

	handler, err := auth.CreateHandler(profile.Auth)
	if err != nil {
		return nil, err
	}
	return ConnectWithHandler(profile.Host, handler, opts...)
}

func newExecutor(host string, handler auth.Handler, o options) (*rest.Executor, error) {
	endpoint := rest.NewEndpoint(host, o.apiVersion)
	if _, err := endpoint.Resolve("/"); err != nil {
		return nil, err
	}

	builder := rest.NewBuilder(endpoint, handler)
	builder.UserAgent = o.userAgent
	builder.RequestIDs = o.requestIDs

	return rest.NewExecutor(builder,
		rest.WithLogger(o.logger),
		rest.WithHTTPClientOptions(o.httpOptions...),
	), nil
}

func validateOptions(o options) error {
	if o.perPage < 1 || o.perPage > 100 {
		return errors.WrapError(
			fmt.Errorf("per page must be between 1 and 100, got %d", o.perPage),
			errors.ErrConfiguration,
			"connect",
		)
	}
	return nil
}

func newClient(host string, handler auth.Handler, token string, o options) (*Client, error) {
	if err := validateOptions(o); err != nil {
		return nil, err
	}

	exec, err := newExecutor(host, handler, o)
	if err != nil {
		return nil, err
	}

	c := &Client{
		exec:    exec,
		token:   token,
		perPage: o.perPage,
		logger:  o.logger,
	}
	c.Users = &UserClient{client: c}
	c.Projects = &ProjectClient{client: c}
	c.Issues = &IssueClient{client: c}
	c.Groups = &NamespaceClient{client: c}
	return c, nil
}

// APIToken returns the token the client authenticates with.
func (c *Client) APIToken() string {
	return c.token
}

// Executor exposes the single-shot executor for endpoints not wrapped here.
func (c *Client) Executor() *rest.Executor {
	return c.exec
}

// GetRepository returns the repository client of a project.
func (c *Client) GetRepository(projectID int) *RepositoryClient {
	return &RepositoryClient{client: c, projectID: projectID}
}

// GetMergeRequest returns the merge request client of a project.
func (c *Client) GetMergeRequest(projectID int) *MergeRequestClient {
	return &MergeRequestClient{client: c, projectID: projectID}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.exec.Execute(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.exec.Execute(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.exec.Execute(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.exec.Execute(ctx, http.MethodDelete, path, nil, nil)
}

// list starts a lazy paginated traversal of path.
func list[T any](c *Client, path string, query url.Values) (*pagination.Sequence[T], error) {
	if query == nil {
		query = url.Values{}
	}
	if !query.Has("per_page") {
		query.Set("per_page", strconv.Itoa(c.perPage))
	}

	start, err := c.exec.Endpoint().Resolve(path + "?" + query.Encode())
	if err != nil {
		return nil, err
	}
	return pagination.NewSequence[T](c.exec, start, pagination.WithLogger(c.logger)), nil
}

func projectPath(projectID int) string {
	return "/projects/" + strconv.Itoa(projectID)
}
