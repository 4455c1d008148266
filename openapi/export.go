// Package openapi exports an endpoint registry as an OpenAPI 3 document.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

// Info describes the exported document.
type Info struct {
	Title       string
	Version     string
	Description string
	// ServerURL is listed as the document's only server when set.
	ServerURL string
}

// Export builds and validates an OpenAPI 3.0 document describing every
// endpoint in reg.
func Export(ctx context.Context, reg *apiclient.Registry, info Info) (*openapi3.T, error) {
	if info.Title == "" {
		info.Title = "API"
	}
	if info.Version == "" {
		info.Version = "0.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.Paths{},
	}
	if info.ServerURL != "" {
		doc.Servers = openapi3.Servers{&openapi3.Server{URL: info.ServerURL}}
	}

	for _, def := range reg.Endpoints() {
		doc.AddOperation(def.Path, string(def.Method), operation(def))
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: exported document is invalid: %w", err)
	}
	return doc, nil
}

// MarshalJSON renders doc as indented JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// MarshalYAML renders doc as YAML.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	// JSON is valid YAML; decoding into a node keeps key order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle drops the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func operation(def *apiclient.EndpointDefinition) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: operationID(def),
		Summary:     def.Summary,
	}

	addParams := func(s *apiclient.Schema, newParam func(string) *openapi3.Parameter) {
		if s == nil {
			return
		}
		for _, f := range s.Fields {
			p := newParam(f.Name).
				WithRequired(!f.Optional).
				WithSchema(schema(f.Schema))
			op.AddParameter(p)
		}
	}
	addParams(def.Parameters.Path, openapi3.NewPathParameter)
	addParams(def.Parameters.Query, openapi3.NewQueryParameter)
	addParams(def.Parameters.Header, openapi3.NewHeaderParameter)

	if body := def.Parameters.Body; body != nil {
		required := body.Kind != apiclient.KindObject
		for _, f := range body.Fields {
			required = required || !f.Optional
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(required).
				WithJSONSchema(schema(body)),
		}
	}

	status := http.StatusOK
	if def.Method == apiclient.MethodPost {
		status = http.StatusCreated
	}
	op.Responses = openapi3.Responses{
		fmt.Sprint(status): &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription(http.StatusText(status)).
				WithJSONSchema(schema(def.Response)),
		},
	}
	return op
}

func operationID(def *apiclient.EndpointDefinition) string {
	if def.Name != "" {
		return def.Name
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(string(def.Method)))
	for _, seg := range strings.Split(def.Path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}

// schema converts an apiclient schema to its OpenAPI equivalent.
func schema(s *apiclient.Schema) *openapi3.Schema {
	if s == nil {
		return openapi3.NewSchema()
	}

	var out *openapi3.Schema
	switch s.Kind {
	case apiclient.KindString:
		out = openapi3.NewStringSchema()
	case apiclient.KindNumber:
		out = openapi3.NewFloat64Schema()
	case apiclient.KindInteger:
		out = openapi3.NewIntegerSchema()
	case apiclient.KindBoolean:
		out = openapi3.NewBoolSchema()
	case apiclient.KindArray:
		out = openapi3.NewArraySchema().WithItems(schema(s.Items))
	case apiclient.KindObject:
		out = openapi3.NewObjectSchema()
		for _, f := range s.Fields {
			out.WithProperty(f.Name, schema(f.Schema))
			if !f.Optional {
				out.Required = append(out.Required, f.Name)
			}
		}
	default:
		out = openapi3.NewSchema()
	}

	for _, r := range parseRules(s.Rules) {
		r.apply(out, s.Kind == apiclient.KindString)
	}
	if s.Nullable {
		out.Nullable = true
	}
	return out
}
