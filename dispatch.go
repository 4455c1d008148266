package apiclient

import (
	"context"
	"log/slog"
	"net/http"
)

// Dispatch performs a single call to def:
//
//  1. validate params against def.Parameters (nil params are empty params)
//  2. resolve the URL from the base URL, path template and path/query parts
//  3. encode the body part, if any, with the client codec
//  4. merge headers: defaults, then the header part, then call options
//  5. send the request through the interceptors and transport
//  6. decode the response payload
//  7. validate it against def.Response
//
// Each call is one round trip; nothing is retried. On failure the returned
// error is an *Error whose Code names the failing step, and the unvalidated
// payload is never returned.
func (c *Client) Dispatch(ctx context.Context, def *EndpointDefinition, params *Params, opts ...CallOption) (any, error) {
	if def == nil {
		return nil, NewError(CodeUnknownEndpoint, "nil endpoint definition")
	}
	if registered, err := c.registry.Lookup(def.Method, def.Path); err != nil {
		return nil, err
	} else if registered != def {
		return nil, Errorf(CodeUnknownEndpoint, "endpoint %s does not match the registered definition", def.ID())
	}

	logger := c.logger.With(slog.String("endpoint", def.ID()))

	validated, err := Validate(def.Parameters.schema(), params.value())
	if err != nil {
		verrs, _ := err.(ValidationErrors)
		logger.DebugContext(ctx, "invalid parameters", slog.Any("error", err))
		return nil, validationError(CodeParameterValidation, "invalid parameters for "+def.ID(), verrs).
			WithDetail("endpoint", def.ID())
	}
	parts := validated.(map[string]any)

	pathValues, _ := parts[PartPath].(map[string]any)
	url := ResolveURL(c.baseURL, def.Path, pathValues, orderedQuery(def.Parameters.Query, parts[PartQuery]))

	var payload []byte
	if body, ok := parts[PartBody]; ok {
		payload, err = c.codec.Marshal(body)
		if err != nil {
			return nil, &Error{
				Code:    CodeParameterValidation,
				Message: "encode body: " + err.Error(),
				Err:     err,
			}
		}
	}

	req := &Request{
		Method: def.Method,
		URL:    url,
		Header: c.mergeHeaders(parts[PartHeader], payload != nil, opts),
		Body:   payload,
	}

	logger.DebugContext(ctx, "sending request", slog.String("url", url))
	invoke := chainInterceptors(c.interceptors, c.transport.Send)
	resp, err := invoke(withEndpoint(ctx, def), req)
	if err != nil {
		return nil, &Error{
			Code:    CodeTransport,
			Message: err.Error(),
			Details: map[string]any{"endpoint": def.ID(), "url": url},
			Err:     err,
		}
	}
	if resp == nil {
		return nil, Errorf(CodeTransport, "transport returned no response for %s", def.ID())
	}

	codec := c.responseCodec(resp)
	raw, err := codec.Unmarshal(resp.Body)
	if err != nil {
		logger.DebugContext(ctx, "malformed response payload", slog.Int("status", resp.StatusCode), slog.Any("error", err))
		return nil, &Error{
			Code:    CodeResponsePayload,
			Message: "decode " + codec.ContentType() + " response: " + err.Error(),
			Details: map[string]any{"endpoint": def.ID(), "status": resp.StatusCode},
			Err:     err,
		}
	}

	out, err := Validate(def.Response, raw)
	if err != nil {
		verrs, _ := err.(ValidationErrors)
		logger.DebugContext(ctx, "response does not match schema", slog.Int("status", resp.StatusCode), slog.Any("error", err))
		return nil, validationError(CodeResponseValidation, "invalid response from "+def.ID(), verrs).
			WithDetails(map[string]any{"endpoint": def.ID(), "status": resp.StatusCode})
	}
	return out, nil
}

// mergeHeaders layers the default headers, the validated header part and the
// call-site overrides. Later sources win.
func (c *Client) mergeHeaders(part any, hasBody bool, opts []CallOption) http.Header {
	h := c.headers.Clone()
	if h == nil {
		h = make(http.Header)
	}
	if values, ok := part.(map[string]any); ok {
		for k, v := range values {
			if v != nil {
				h.Set(k, stringify(v))
			}
		}
	}
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	for k, vs := range co.header {
		h[k] = append([]string(nil), vs...)
	}
	if hasBody && h.Get("Content-Type") == "" {
		h.Set("Content-Type", c.codec.ContentType())
	}
	return h
}

// responseCodec picks the codec named by the response Content-Type, falling
// back to the client codec.
func (c *Client) responseCodec(resp *Response) Codec {
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if codec, err := CodecFor(ct); err == nil {
			return codec
		}
	}
	return c.codec
}
