// Package testutil provides testing helpers for apiclient users: a recording
// stub transport and assertions on client errors.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"testing"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

type stub struct {
	res *apiclient.Response
	err error
}

// Transport is a deterministic apiclient.Transport. It answers requests from
// canned responses keyed by method and URL path and records every request.
// Unmatched requests fail with an error.
type Transport struct {
	mu       sync.Mutex
	stubs    map[string]stub
	requests []*apiclient.Request
}

// NewTransport creates an empty stub transport.
func NewTransport() *Transport {
	return &Transport{stubs: make(map[string]stub)}
}

func key(method, path string) string {
	return method + " " + path
}

// Respond registers a JSON response for method and path (without query).
func (t *Transport) Respond(method, path string, status int, body string) *Transport {
	return t.RespondWith(method, path, &apiclient.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	})
}

// RespondWith registers a raw response for method and path.
func (t *Transport) RespondWith(method, path string, res *apiclient.Response) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stubs[key(method, path)] = stub{res: res}
	return t
}

// Fail makes requests to method and path fail with err.
func (t *Transport) Fail(method, path string, err error) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stubs[key(method, path)] = stub{err: err}
	return t
}

// Send implements apiclient.Transport.
func (t *Transport) Send(ctx context.Context, req *apiclient.Request) (*apiclient.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	recorded := *req
	recorded.Header = req.Header.Clone()
	if req.Body != nil {
		recorded.Body = append([]byte(nil), req.Body...)
	}
	t.requests = append(t.requests, &recorded)

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	s, ok := t.stubs[key(string(req.Method), u.Path)]
	if !ok {
		return nil, fmt.Errorf("testutil: no stub for %s %s", req.Method, u.Path)
	}
	if s.err != nil {
		return nil, s.err
	}
	res := *s.res
	res.Body = append([]byte(nil), s.res.Body...)
	return &res, nil
}

// Requests returns the recorded requests in order.
func (t *Transport) Requests() []*apiclient.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*apiclient.Request(nil), t.requests...)
}

// Calls returns the number of recorded requests.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// LastRequest returns the most recent request, or nil.
func (t *Transport) LastRequest() *apiclient.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return nil
	}
	return t.requests[len(t.requests)-1]
}

// AssertCode checks that err is an *apiclient.Error with the expected code
// and returns it.
func AssertCode(t *testing.T, err error, expected apiclient.ErrorCode) *apiclient.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", expected)
	}
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apiclient.Error, got %T: %v", err, err)
	}
	if apiErr.Code != expected {
		t.Errorf("expected error code %s, got %s (message: %s)", expected, apiErr.Code, apiErr.Message)
	}
	return apiErr
}

// AssertIssue checks that err carries a validation issue at path.
func AssertIssue(t *testing.T, err error, path string) apiclient.Issue {
	t.Helper()
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apiclient.Error, got %T: %v", err, err)
	}
	for _, is := range apiErr.Issues {
		if is.Path == path {
			return is
		}
	}
	t.Errorf("expected issue at %q, got %v", path, apiErr.Issues)
	return apiclient.Issue{}
}
