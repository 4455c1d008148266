package apiclient

import (
	"context"
)

// Invoker sends a request. It is passed to [Interceptor] functions to invoke
// the next interceptor or the transport itself.
type Invoker func(ctx context.Context, req *Request) (*Response, error)

// Interceptor is a hook that wraps the transport step of every call.
//
// The endpoint being called is available via EndpointFromContext:
//
//	func timing(ctx context.Context, req *apiclient.Request, next apiclient.Invoker) (*apiclient.Response, error) {
//	    start := time.Now()
//	    res, err := next(ctx, req)
//	    def, _ := apiclient.EndpointFromContext(ctx)
//	    log.Printf("%s took %v", def.ID(), time.Since(start))
//	    return res, err
//	}
//
// Interceptors can:
//   - Inspect or modify the request (headers, URL) before calling next
//   - Inspect the raw response after calling next
//   - Short-circuit by returning a response or an error without calling next
//
// Errors returned by an interceptor are reported as transport errors.
type Interceptor func(ctx context.Context, req *Request, next Invoker) (*Response, error)

// chainInterceptors combines interceptors around final.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []Interceptor, final Invoker) Invoker {
	chain := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		current := interceptors[i]
		next := chain
		chain = func(ctx context.Context, req *Request) (*Response, error) {
			return current(ctx, req, next)
		}
	}
	return chain
}
