package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
	"github.com/Equilibriumty/typesafe-api-client/middleware"
	"github.com/Equilibriumty/typesafe-api-client/todo"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config    kong.ConfigFlag   `help:"Load defaults from a YAML file."`
	BaseURL   string            `help:"Base URL of the todo API." name:"base-url" env:"TODOCTL_BASE_URL" default:"${base_url}"`
	Header    map[string]string `help:"Default request header (repeatable, key=value)." short:"H" env:"TODOCTL_HEADERS"`
	Codec     string            `help:"Payload codec." enum:"json,msgpack" default:"json" env:"TODOCTL_CODEC"`
	LogLevel  string            `help:"Log level." enum:"debug,info,warn,error" default:"warn" name:"log-level" env:"TODOCTL_LOG_LEVEL"`
	LogFormat string            `help:"Log format." enum:"text,json" default:"text" name:"log-format" env:"TODOCTL_LOG_FORMAT"`
	Output    string            `help:"Result format." enum:"json,yaml" default:"json" short:"o"`

	Stdout io.Writer `kong:"-"`
}

func (g *Globals) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if g.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func (g *Globals) codec() apiclient.Codec {
	if g.Codec == "msgpack" {
		return apiclient.MessagePack
	}
	return apiclient.JSON
}

// client builds a todo client from the global flags.
func (g *Globals) client() *todo.Client {
	logger := g.logger()
	headers := make(map[string]string, len(g.Header)+1)
	headers["Accept"] = g.codec().ContentType()
	for k, v := range g.Header {
		headers[k] = v
	}
	return todo.NewClient(
		apiclient.Config{BaseURL: g.BaseURL, DefaultHeaders: headers},
		apiclient.WithCodec(g.codec()),
		apiclient.WithLogger(logger),
		apiclient.WithInterceptor(middleware.LoggingInterceptor(logger)),
	)
}

// yamlLoader resolves flag values from a YAML mapping. Keys match flag
// names, either dashed ("base-url") or with underscores ("base_url").
// Mapping values (e.g. header) are flattened to "k=v;k2=v2".
func yamlLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("todoctl: invalid config: %w", err)
	}
	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			v, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok {
			return nil, nil
		}
		if m, isMap := v.(map[string]any); isMap {
			return flattenMap(m), nil
		}
		return v, nil
	}
	return f, nil
}

func flattenMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return strings.Join(pairs, ";")
}
