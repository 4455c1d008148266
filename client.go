package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Config holds the process-wide settings of a client instance.
type Config struct {
	// BaseURL is prepended to every resolved path, e.g. "https://jsonplaceholder.typicode.com".
	BaseURL string
	// DefaultHeaders are sent with every request (Accept, Authorization, ...).
	DefaultHeaders map[string]string
}

// Client is the calling surface over a Registry. It is safe for concurrent
// use; its configuration is fixed at construction.
type Client struct {
	registry     *Registry
	baseURL      string
	headers      http.Header
	transport    Transport
	codec        Codec
	logger       *slog.Logger
	interceptors []Interceptor
}

// Option configures a Client at construction.
type Option func(*Client)

// WithTransport sets the transport used for every call.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPClient sends requests through the given *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.transport = HTTPTransport(hc)
	}
}

// WithCodec sets the wire payload codec. The default is JSON.
func WithCodec(codec Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithLogger sets a custom logger for the client.
// If not set, slog.Default() will be used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithInterceptor adds an interceptor around the transport step.
// Interceptors run in the order they were added (first added is outermost).
func WithInterceptor(i Interceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, i)
	}
}

// NewClient creates a client for the endpoints in reg.
func NewClient(reg *Registry, cfg Config, opts ...Option) *Client {
	headers := make(http.Header, len(cfg.DefaultHeaders))
	for k, v := range cfg.DefaultHeaders {
		headers.Set(k, v)
	}
	c := &Client{
		registry:  reg,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		headers:   headers,
		transport: HTTPTransport(nil),
		codec:     JSON,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Registry returns the registry the client dispatches against.
func (c *Client) Registry() *Registry {
	return c.registry
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DefaultHeaders returns a copy of the default request headers.
func (c *Client) DefaultHeaders() http.Header {
	return c.headers.Clone()
}

// Get calls the GET endpoint registered for path.
func (c *Client) Get(ctx context.Context, path string, params *Params, opts ...CallOption) (any, error) {
	return c.Do(ctx, MethodGet, path, params, opts...)
}

// Post calls the POST endpoint registered for path.
func (c *Client) Post(ctx context.Context, path string, params *Params, opts ...CallOption) (any, error) {
	return c.Do(ctx, MethodPost, path, params, opts...)
}

// Patch calls the PATCH endpoint registered for path.
func (c *Client) Patch(ctx context.Context, path string, params *Params, opts ...CallOption) (any, error) {
	return c.Do(ctx, MethodPatch, path, params, opts...)
}

// Put calls the PUT endpoint registered for path.
func (c *Client) Put(ctx context.Context, path string, params *Params, opts ...CallOption) (any, error) {
	return c.Do(ctx, MethodPut, path, params, opts...)
}

// Delete calls the DELETE endpoint registered for path.
func (c *Client) Delete(ctx context.Context, path string, params *Params, opts ...CallOption) (any, error) {
	return c.Do(ctx, MethodDelete, path, params, opts...)
}

// Do looks up the endpoint for (method, path) and dispatches it.
func (c *Client) Do(ctx context.Context, method Method, path string, params *Params, opts ...CallOption) (any, error) {
	def, err := c.registry.Lookup(method, path)
	if err != nil {
		return nil, err
	}
	return c.Dispatch(ctx, def, params, opts...)
}

// CallOption adjusts a single call.
type CallOption func(*callOptions)

type callOptions struct {
	header http.Header
}

// WithHeader overrides a request header for one call.
// Call-site headers win over default headers and the header parameter part.
func WithHeader(key, value string) CallOption {
	return func(o *callOptions) {
		if o.header == nil {
			o.header = make(http.Header)
		}
		o.header.Set(key, value)
	}
}

// WithHeaders overrides several request headers for one call.
func WithHeaders(headers map[string]string) CallOption {
	return func(o *callOptions) {
		for k, v := range headers {
			WithHeader(k, v)(o)
		}
	}
}
