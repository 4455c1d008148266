package apiclient

import (
	"context"
	"testing"
)

func TestEndpointFromContext(t *testing.T) {
	if _, ok := EndpointFromContext(context.Background()); ok {
		t.Error("expected no endpoint in a bare context")
	}

	def := &EndpointDefinition{Method: MethodGet, Path: "/todos"}
	ctx := withEndpoint(context.Background(), def)
	got, ok := EndpointFromContext(ctx)
	if !ok || got != def {
		t.Errorf("got %v, %v", got, ok)
	}
	if got.String() != "GET /todos" {
		t.Errorf("String() = %q", got.String())
	}
}
