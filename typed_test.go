package apiclient_test

import (
	"context"
	"net/http"
	"testing"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
	"github.com/Equilibriumty/typesafe-api-client/testutil"
	"github.com/Equilibriumty/typesafe-api-client/todo"
)

func TestTyped_Get(t *testing.T) {
	transport := testutil.NewTransport().Respond(http.MethodGet, "/todos/1", http.StatusOK, todo1)
	client := newClient(t, transport)

	got, err := apiclient.Get(context.Background(), client, todo.GetTodo, todo.GetTodoParams{
		Path: todo.TodoPath{TodoID: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := todo.Todo{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: false}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTyped_Post(t *testing.T) {
	transport := testutil.NewTransport().Respond(http.MethodPost, "/todos", http.StatusCreated,
		`{"newTodo":{"userId":1,"id":201,"title":"New todo","completed":false}}`)
	client := newClient(t, transport)

	got, err := apiclient.Post(context.Background(), client, todo.CreateTodo, todo.CreateTodoParams{
		Body: todo.NewTodo{Title: "New todo", UserID: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NewTodo.ID != 201 || got.NewTodo.Title != "New todo" {
		t.Errorf("got %+v", got)
	}
}

func TestTyped_ParameterValidation(t *testing.T) {
	transport := testutil.NewTransport()
	client := newClient(t, transport)

	_, err := apiclient.Call(context.Background(), client, todo.CreateTodo, todo.CreateTodoParams{
		Body: todo.NewTodo{Title: "", UserID: 1},
	})
	testutil.AssertCode(t, err, apiclient.CodeParameterValidation)
	testutil.AssertIssue(t, err, "body.title")
	if transport.Calls() != 0 {
		t.Errorf("expected no transport calls, got %d", transport.Calls())
	}
}

func TestTyped_ResponseValidation(t *testing.T) {
	transport := testutil.NewTransport().Respond(http.MethodGet, "/todos/1", http.StatusOK, `{"id":1}`)
	client := newClient(t, transport)

	got, err := apiclient.Get(context.Background(), client, todo.GetTodo, todo.GetTodoParams{
		Path: todo.TodoPath{TodoID: 1},
	})
	testutil.AssertCode(t, err, apiclient.CodeResponseValidation)
	if got != (todo.Todo{}) {
		t.Errorf("expected zero value on failure, got %+v", got)
	}
}

func TestTyped_DeleteEmpty(t *testing.T) {
	transport := testutil.NewTransport().Respond(http.MethodDelete, "/todos/1", http.StatusOK, `{"ignored":true}`)
	client := newClient(t, transport)

	if _, err := apiclient.Delete(context.Background(), client, todo.DeleteTodo, todo.DeleteTodoParams{
		Path: todo.TodoPath{TodoID: 1},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTyped_ParamsMustBeAnObject(t *testing.T) {
	ep := apiclient.NewEndpoint[apiclient.VerbGet, string, any](todo.GetTodosDef)
	client := newClient(t, testutil.NewTransport())

	_, err := apiclient.Get(context.Background(), client, ep, "not an object")
	testutil.AssertCode(t, err, apiclient.CodeParameterValidation)
}

func TestTyped_ZeroEndpoint(t *testing.T) {
	var ep apiclient.Endpoint[apiclient.VerbGet, apiclient.NoParams, any]
	client := newClient(t, testutil.NewTransport())

	_, err := apiclient.Get(context.Background(), client, ep, apiclient.NoParams{})
	testutil.AssertCode(t, err, apiclient.CodeUnknownEndpoint)
}

func TestTyped_ForeignRegistry(t *testing.T) {
	def := *todo.GetTodoDef
	transport := testutil.NewTransport().Respond(http.MethodGet, "/todos/1", http.StatusOK, todo1)
	client := apiclient.NewClient(apiclient.MustRegistry(&def), apiclient.Config{BaseURL: "https://api.test"},
		apiclient.WithTransport(transport))

	_, err := apiclient.Get(context.Background(), client, todo.GetTodo, todo.GetTodoParams{
		Path: todo.TodoPath{TodoID: 1},
	})
	testutil.AssertCode(t, err, apiclient.CodeUnknownEndpoint)
	if transport.Calls() != 0 {
		t.Errorf("expected no transport calls, got %d", transport.Calls())
	}
}

func TestNewEndpoint_Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil definition", func() {
			apiclient.NewEndpoint[apiclient.VerbGet, apiclient.NoParams, any](nil)
		}},
		{"verb mismatch", func() {
			apiclient.NewEndpoint[apiclient.VerbPost, apiclient.NoParams, any](todo.GetTodosDef)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestEndpoint_Accessors(t *testing.T) {
	if todo.GetTodo.Definition() != todo.GetTodoDef {
		t.Error("Definition mismatch")
	}
	if todo.GetTodo.Path() != "/todos/{todoId}" {
		t.Errorf("Path = %q", todo.GetTodo.Path())
	}
}
