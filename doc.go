// Package apiclient is a typed HTTP client over a static endpoint registry.
//
// A Registry maps (HTTP method, path template) pairs to EndpointDefinitions,
// each declaring a ParameterSchema (path, query, body and header parts) and a
// response Schema. A Client looks endpoints up by method and path template,
// validates parameters, resolves the URL, sends the request through its
// Transport and validates the decoded response before returning it.
//
// Two calling styles are available. The dynamic facade takes a path template
// and structural parameters:
//
//	res, err := client.Get(ctx, "/todos/{todoId}", &apiclient.Params{
//	    Path: map[string]any{"todoId": 5},
//	})
//
// The typed layer binds a definition to Go types once, so the compiler
// rejects calls with the wrong verb or parameter type:
//
//	todo, err := apiclient.Get(ctx, client, todo.GetTodo, todo.GetTodoParams{...})
//
// Every failure is an *Error whose Code identifies the failing step.
package apiclient
