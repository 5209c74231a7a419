package rest

import (
	"context"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/saturnines/labclient/pkg/errors"
)

// ResponseConsumer receives a successful response. The body is already
// decompressed and is closed by the executor once the consumer returns.
type ResponseConsumer func(resp *http.Response) error

// Executor performs exactly one request/response cycle per call.
type Executor struct {
	httpClient HTTPDoer
	builder    *Builder
	logger     *zap.Logger
}

// ExecutorOption configures an Executor
type ExecutorOption func(*Executor)

// WithHTTPClientOptions applies HTTPClientOptions to the executor's doer
func WithHTTPClientOptions(options ...HTTPClientOption) ExecutorOption {
	return func(e *Executor) {
		e.httpClient = ApplyHTTPClientOptions(e.httpClient, options...)
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an Executor sending requests built by builder.
func NewExecutor(builder *Builder, options ...ExecutorOption) *Executor {
	e := &Executor{
		httpClient: newDefaultHTTPClient(),
		builder:    builder,
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Endpoint returns the endpoint requests are resolved against
func (e *Executor) Endpoint() Endpoint {
	return e.builder.Endpoint
}

// Logger returns the executor's logger
func (e *Executor) Logger() *zap.Logger {
	return e.logger
}

// Execute sends one request and decodes the JSON response into out.
// out may be nil when the caller does not care about the body.
func (e *Executor) Execute(ctx context.Context, method, path string, body, out any) error {
	return e.Stream(ctx, method, path, body, func(resp *http.Response) error {
		if out == nil || resp.StatusCode == http.StatusNoContent || method == http.MethodHead {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		return DecodeBody(resp.Body, out)
	})
}

// Do is the typed form of Execute.
func Do[T any](ctx context.Context, e *Executor, method, path string, body any) (T, error) {
	var result T
	err := e.Execute(ctx, method, path, body, &result)
	return result, err
}

// Stream sends one request to a path relative to the API root and hands the
// response to consume.
func (e *Executor) Stream(ctx context.Context, method, path string, body any, consume ResponseConsumer) error {
	target, err := e.builder.Endpoint.Resolve(path)
	if err != nil {
		return err
	}
	return e.StreamURL(ctx, method, target, body, consume)
}

// StreamURL sends one request to an absolute URL and hands the response to
// consume. The response body is closed before StreamURL returns, whether
// consume succeeds, fails or panics.
func (e *Executor) StreamURL(ctx context.Context, method string, target *neturl.URL, body any, consume ResponseConsumer) error {
	req, err := e.builder.Build(ctx, method, target, body)
	if err != nil {
		return err
	}

	logURL := redactURL(target)
	e.logger.Debug("sending request", zap.String("method", method), zap.String("url", logURL))

	start := time.Now()
	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Debug("request failed", zap.String("method", method), zap.String("url", logURL), zap.Error(err))
		return &errors.TransportError{Method: method, URL: logURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	e.logger.Debug("response received",
		zap.String("method", method),
		zap.String("url", logURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	decodeErr := inflate(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var data []byte
		if decodeErr == nil {
			data, _ = io.ReadAll(resp.Body)
		}
		return decodeRemoteError(resp.StatusCode, data)
	}
	if decodeErr != nil {
		return decodeErr
	}

	return consume(resp)
}

// gzipBody closes both the inflating reader and the network body.
type gzipBody struct {
	*gzip.Reader
	raw io.ReadCloser
}

func (g *gzipBody) Close() error {
	zerr := g.Reader.Close()
	if err := g.raw.Close(); err != nil {
		return err
	}
	return zerr
}

// inflate swaps a gzip-encoded body for a decompressing reader.
func inflate(resp *http.Response) error {
	if !strings.EqualFold(strings.TrimSpace(resp.Header.Get("Content-Encoding")), "gzip") {
		return nil
	}

	zr, err := gzip.NewReader(resp.Body)
	if err == io.EOF {
		// empty body, nothing to inflate
		return nil
	}
	if err != nil {
		return &errors.DecodeError{Target: "gzip stream", Err: err}
	}

	resp.Body = &gzipBody{Reader: zr, raw: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return nil
}

var sensitiveParams = []string{"password", "private_token", "job_token", "access_token"}

// redactURL hides credentials that may travel in the query string.
func redactURL(u *neturl.URL) string {
	if u.RawQuery == "" {
		return u.Redacted()
	}
	q := u.Query()
	changed := false
	for _, key := range sensitiveParams {
		if q.Has(key) {
			q.Set(key, "xxxxx")
			changed = true
		}
	}
	if !changed {
		return u.Redacted()
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.Redacted()
}
