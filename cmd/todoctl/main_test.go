package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/Equilibriumty/typesafe-api-client/internal/todoserver"
	"github.com/Equilibriumty/typesafe-api-client/todo"
)

func newTestServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(todoserver.New().Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := &CLI{}
	parser, err := newParser(cli, &out, kong.Exit(func(code int) {
		t.Fatalf("unexpected exit with code %d", code)
	}))
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}
	err = ctx.Run(&cli.Globals)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0.1.0") {
		t.Errorf("version output = %q, want it to contain 0.1.0", out)
	}
}

func TestGet(t *testing.T) {
	base := newTestServer(t)

	for _, codec := range []string{"json", "msgpack"} {
		t.Run(codec, func(t *testing.T) {
			out, err := runCLI(t, "--base-url", base, "--codec", codec, "get", "3")
			if err != nil {
				t.Fatal(err)
			}
			var got todo.Todo
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not a todo: %v\n%s", err, out)
			}
			want := todo.Todo{UserID: 1, ID: 3, Title: "todo 3", Completed: true}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestCreateAndList(t *testing.T) {
	base := newTestServer(t)

	out, err := runCLI(t, "--base-url", base, "create", "--title", "buy milk", "--user-id", "7")
	if err != nil {
		t.Fatal(err)
	}
	var created todo.Todo
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("output is not a todo: %v\n%s", err, out)
	}
	if created.ID != 21 || created.Title != "buy milk" || created.UserID != 7 {
		t.Errorf("created = %+v", created)
	}

	out, err = runCLI(t, "--base-url", base, "list", "--page", "3")
	if err != nil {
		t.Fatal(err)
	}
	var page []todo.Todo
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("output is not a todo list: %v\n%s", err, out)
	}
	if len(page) != 1 || page[0].ID != 21 {
		t.Errorf("page 3 = %+v, want only the created todo", page)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	base := newTestServer(t)
	_, err := runCLI(t, "--base-url", base, "create", "--title", "", "--user-id", "1")
	if err == nil || !strings.Contains(err.Error(), "parameter_validation") {
		t.Fatalf("err = %v, want parameter_validation", err)
	}
}

func TestPatch(t *testing.T) {
	base := newTestServer(t)
	out, err := runCLI(t, "--base-url", base, "patch", "2", "--completed=true")
	if err != nil {
		t.Fatal(err)
	}
	var got todo.Todo
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Completed || got.Title != "todo 2" {
		t.Errorf("got %+v, want completed todo 2 with title unchanged", got)
	}
}

func TestCall(t *testing.T) {
	base := newTestServer(t)
	out, err := runCLI(t, "--base-url", base, "-o", "yaml",
		"call", "put", "/todos/{todoId}",
		"--path", "todoId=5",
		"--body", `{"title":"renamed","userId":2,"completed":false}`)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"id: 5", "title: renamed", "userId: 2", "completed: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCallUnknownEndpoint(t *testing.T) {
	base := newTestServer(t)
	_, err := runCLI(t, "--base-url", base, "call", "GET", "/users")
	if err == nil || !strings.Contains(err.Error(), "unknown_endpoint") {
		t.Fatalf("err = %v, want unknown_endpoint", err)
	}
}

func TestEndpoints(t *testing.T) {
	out, err := runCLI(t, "endpoints")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want header plus 6 endpoints:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "GET") || !strings.Contains(lines[1], "/todos") {
		t.Errorf("first endpoint = %q, want GET /todos", lines[1])
	}
}

func TestOpenAPI(t *testing.T) {
	out, err := runCLI(t, "openapi", "--server-url", "http://example.test")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"openapi: 3.0.3", "/todos/{todoId}", "http://example.test", "operationId: createTodo"} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestConfigFile(t *testing.T) {
	base := newTestServer(t)
	path := filepath.Join(t.TempDir(), "todoctl.yaml")
	config := "base_url: " + base + "\noutput: yaml\nheader:\n  X-Trace: abc\n"
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cli := &CLI{}
	parser, err := newParser(cli, &out)
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse([]string{"--config", path, "get", "1"})
	if err != nil {
		t.Fatal(err)
	}
	if cli.BaseURL != base {
		t.Errorf("BaseURL = %q, want %q", cli.BaseURL, base)
	}
	if cli.Header["X-Trace"] != "abc" {
		t.Errorf("Header = %v, want X-Trace=abc", cli.Header)
	}
	if err := ctx.Run(&cli.Globals); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "title: todo 1") {
		t.Errorf("output = %q, want yaml todo", out.String())
	}
}
