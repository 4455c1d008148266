package apiclient

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func finalInvoker(calls *int) Invoker {
	return func(ctx context.Context, req *Request) (*Response, error) {
		*calls++
		return &Response{StatusCode: 200}, nil
	}
}

func TestChainInterceptors_Empty(t *testing.T) {
	calls := 0
	chain := chainInterceptors(nil, finalInvoker(&calls))
	res, err := chain(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != 200 || calls != 1 {
		t.Errorf("expected final invoker to run once, got %d calls", calls)
	}
}

func TestChainInterceptors_Order(t *testing.T) {
	var order []string
	named := func(name string) Interceptor {
		return func(ctx context.Context, req *Request, next Invoker) (*Response, error) {
			order = append(order, "before-"+name)
			res, err := next(ctx, req)
			order = append(order, "after-"+name)
			return res, err
		}
	}

	calls := 0
	chain := chainInterceptors([]Interceptor{named("1"), named("2"), named("3")}, finalInvoker(&calls))
	if _, err := chain(context.Background(), &Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"before-1", "before-2", "before-3", "after-3", "after-2", "after-1"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChainInterceptors_Error(t *testing.T) {
	testErr := errors.New("denied")
	deny := func(ctx context.Context, req *Request, next Invoker) (*Response, error) {
		return nil, testErr
	}

	calls := 0
	chain := chainInterceptors([]Interceptor{deny}, finalInvoker(&calls))
	_, err := chain(context.Background(), &Request{})
	if !errors.Is(err, testErr) {
		t.Errorf("expected %v, got %v", testErr, err)
	}
	if calls != 0 {
		t.Error("final invoker should not run")
	}
}

func TestChainInterceptors_ModifyRequest(t *testing.T) {
	rewrite := func(ctx context.Context, req *Request, next Invoker) (*Response, error) {
		req.URL = "https://mirror.test/todos"
		return next(ctx, req)
	}

	var seen string
	final := func(ctx context.Context, req *Request) (*Response, error) {
		seen = req.URL
		return &Response{}, nil
	}
	chain := chainInterceptors([]Interceptor{rewrite}, final)
	if _, err := chain(context.Background(), &Request{URL: "https://api.test/todos"}); err != nil {
		t.Fatal(err)
	}
	if seen != "https://mirror.test/todos" {
		t.Errorf("transport saw %q", seen)
	}
}
