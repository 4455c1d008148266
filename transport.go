package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// Request is a fully resolved call handed to a Transport.
type Request struct {
	Method Method
	URL    string
	Header http.Header
	// Body is the encoded payload, nil when no body is sent.
	Body []byte
}

// Response is the raw result of a Transport exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single network exchange.
// Implementations must not retry; failures are reported to the caller as is.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport returns a Transport backed by client.
// A nil client uses http.DefaultClient.
func HTTPTransport(client *http.Client) Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpTransport{client: client}
}

type httpTransport struct {
	client *http.Client
}

func (t *httpTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = append([]string(nil), vs...)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
