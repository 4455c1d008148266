package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

// CallCmd calls an endpoint through the untyped facade. Values of --path,
// --query and --param-header are parsed as JSON when possible, so
// "--path todoId=1" sends the number 1.
type CallCmd struct {
	Method   string            `arg:"" help:"HTTP method (GET, POST, PATCH, PUT or DELETE)."`
	Template string            `arg:"" help:"Registered path template, e.g. /todos/{todoId}."`
	Params   map[string]string `help:"Path parameter (key=value)." name:"path" short:"p"`
	Query    map[string]string `help:"Query parameter (key=value)." short:"q"`
	Header   map[string]string `help:"Header parameter (key=value)." name:"param-header"`
	Body     string            `help:"JSON request body." short:"d"`
}

func (c *CallCmd) Run(g *Globals) error {
	method, err := apiclient.ParseMethod(c.Method)
	if err != nil {
		return err
	}
	params := &apiclient.Params{
		Path:   jsonValues(c.Params),
		Query:  jsonValues(c.Query),
		Header: jsonValues(c.Header),
	}
	if c.Body != "" {
		if err := json.Unmarshal([]byte(c.Body), &params.Body); err != nil {
			return fmt.Errorf("invalid --body: %w", err)
		}
	}
	res, err := g.client().API().Do(context.Background(), method, c.Template, params)
	if err != nil {
		return err
	}
	return g.print(res)
}

// jsonValues decodes each value as JSON, keeping it as a string otherwise.
func jsonValues(in map[string]string) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, raw := range in {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		out[k] = v
	}
	return out
}

type EndpointsCmd struct{}

func (c *EndpointsCmd) Run(g *Globals) error {
	w := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME\tSUMMARY")
	for _, def := range g.client().API().Registry().Endpoints() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Method, def.Path, def.Name, def.Summary)
	}
	return w.Flush()
}
