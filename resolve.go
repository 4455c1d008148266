package apiclient

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is a single query-string entry. A nil Value is omitted.
type QueryParam struct {
	Key   string
	Value any
}

// ResolveURL builds a request URL from a base URL, a path template and
// path/query parameters.
//
// Every {name} placeholder is replaced with the path-escaped string form of
// path[name]; a missing value substitutes the empty string. Query entries
// are appended in the given order, skipping nil values. ResolveURL is pure.
func ResolveURL(baseURL, pathTemplate string, path map[string]any, query []QueryParam) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString(replacePlaceholders(pathTemplate, path))

	qs := encodeQuery(query)
	if qs != "" {
		b.WriteByte('?')
		b.WriteString(qs)
	}
	return b.String()
}

func replacePlaceholders(template string, values map[string]any) string {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		name := rest[open+1 : open+end]
		if !isTokenName(name) {
			b.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		b.WriteString(rest[:open])
		if v, ok := values[name]; ok && v != nil {
			b.WriteString(url.PathEscape(stringify(v)))
		}
		rest = rest[open+end+1:]
	}
	b.WriteString(rest)
	return b.String()
}

func encodeQuery(query []QueryParam) string {
	var b strings.Builder
	for _, p := range query {
		if p.Value == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(stringify(p.Value)))
	}
	return b.String()
}

// stringify renders a parameter value the way it appears in a URL.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
