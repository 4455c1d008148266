package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
)

// Verb is a compile-time tag for an HTTP method. Typed endpoints carry their
// verb as a type parameter so that, for example, Get only accepts GET endpoints.
type Verb interface {
	Method() Method
}

type (
	VerbGet    struct{}
	VerbPost   struct{}
	VerbPatch  struct{}
	VerbPut    struct{}
	VerbDelete struct{}
)

func (VerbGet) Method() Method    { return MethodGet }
func (VerbPost) Method() Method   { return MethodPost }
func (VerbPatch) Method() Method  { return MethodPatch }
func (VerbPut) Method() Method    { return MethodPut }
func (VerbDelete) Method() Method { return MethodDelete }

// NoParams is the parameter type of endpoints without parameters.
type NoParams struct{}

// Empty is the result type of endpoints that return an empty object.
type Empty struct{}

// Endpoint is a typed handle on an endpoint definition.
//
// P is the parameter type: a struct whose JSON form has the optional keys
// "path", "query", "body" and "header". R is the Go type the validated
// response is decoded into.
//
//	type GetTodoParams struct {
//	    Path struct {
//	        TodoID int `json:"todoId"`
//	    } `json:"path"`
//	}
//
//	var GetTodo = apiclient.NewEndpoint[apiclient.VerbGet, GetTodoParams, Todo](getTodoDef)
type Endpoint[V Verb, P any, R any] struct {
	def *EndpointDefinition
}

// NewEndpoint binds a definition to its static types.
// It panics if def is nil or its method does not match V.
func NewEndpoint[V Verb, P any, R any](def *EndpointDefinition) Endpoint[V, P, R] {
	var v V
	if def == nil {
		panic("apiclient: NewEndpoint with nil definition")
	}
	if def.Method != v.Method() {
		panic(fmt.Sprintf("apiclient: endpoint %s bound as %s", def.ID(), v.Method()))
	}
	return Endpoint[V, P, R]{def: def}
}

// Definition returns the underlying endpoint definition.
func (e Endpoint[V, P, R]) Definition() *EndpointDefinition {
	return e.def
}

// Path returns the endpoint's path template, the key used by the client facade.
func (e Endpoint[V, P, R]) Path() string {
	return e.def.Path
}

// Call invokes a typed endpoint of any verb.
func Call[V Verb, P any, R any](ctx context.Context, c *Client, ep Endpoint[V, P, R], params P, opts ...CallOption) (R, error) {
	var zero R
	if ep.def == nil {
		return zero, NewError(CodeUnknownEndpoint, "zero Endpoint value")
	}
	raw, err := toParams(params)
	if err != nil {
		return zero, err
	}
	res, err := c.Dispatch(ctx, ep.def, raw, opts...)
	if err != nil {
		return zero, err
	}
	var out R
	if err := convert(res, &out); err != nil {
		return zero, &Error{
			Code:    CodeResponseValidation,
			Message: fmt.Sprintf("decode %s response into %T: %v", ep.def.ID(), out, err),
			Err:     err,
		}
	}
	return out, nil
}

// Get invokes a typed GET endpoint.
func Get[P any, R any](ctx context.Context, c *Client, ep Endpoint[VerbGet, P, R], params P, opts ...CallOption) (R, error) {
	return Call(ctx, c, ep, params, opts...)
}

// Post invokes a typed POST endpoint.
func Post[P any, R any](ctx context.Context, c *Client, ep Endpoint[VerbPost, P, R], params P, opts ...CallOption) (R, error) {
	return Call(ctx, c, ep, params, opts...)
}

// Patch invokes a typed PATCH endpoint.
func Patch[P any, R any](ctx context.Context, c *Client, ep Endpoint[VerbPatch, P, R], params P, opts ...CallOption) (R, error) {
	return Call(ctx, c, ep, params, opts...)
}

// Put invokes a typed PUT endpoint.
func Put[P any, R any](ctx context.Context, c *Client, ep Endpoint[VerbPut, P, R], params P, opts ...CallOption) (R, error) {
	return Call(ctx, c, ep, params, opts...)
}

// Delete invokes a typed DELETE endpoint.
func Delete[P any, R any](ctx context.Context, c *Client, ep Endpoint[VerbDelete, P, R], params P, opts ...CallOption) (R, error) {
	return Call(ctx, c, ep, params, opts...)
}

// wireParams is the JSON shape typed parameter structs map onto.
type wireParams struct {
	Path   map[string]any `json:"path"`
	Query  map[string]any `json:"query"`
	Body   any            `json:"body"`
	Header map[string]any `json:"header"`
}

func toParams(params any) (*Params, error) {
	var w wireParams
	if err := convert(params, &w); err != nil {
		return nil, &Error{
			Code:    CodeParameterValidation,
			Message: fmt.Sprintf("convert %T to parameters: %v", params, err),
			Err:     err,
		}
	}
	return &Params{Path: w.Path, Query: w.Query, Body: w.Body, Header: w.Header}, nil
}

// convert maps between Go types and structural data through their JSON form.
func convert(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
