package apiclient

import (
	"context"
)

type contextKey struct {
	name string
}

var endpointKey = &contextKey{"endpoint"}

// EndpointFromContext returns the endpoint definition of the call in progress.
// It is set for the duration of the transport step, so interceptors and
// transports can use it.
func EndpointFromContext(ctx context.Context) (*EndpointDefinition, bool) {
	def, ok := ctx.Value(endpointKey).(*EndpointDefinition)
	return def, ok
}

func withEndpoint(ctx context.Context, def *EndpointDefinition) context.Context {
	return context.WithValue(ctx, endpointKey, def)
}
