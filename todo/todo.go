// Package todo defines the todo API: the Todo entity, the endpoint registry
// of the upstream service and a typed client over it.
package todo

import (
	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

// DefaultBaseURL is the public upstream the definitions were written against.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Todo is a single todo item.
type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Schema is the wire schema of Todo.
var Schema = apiclient.Object(
	apiclient.Required("userId", apiclient.Number()),
	apiclient.Required("id", apiclient.Number(apiclient.NonNegative)),
	apiclient.Required("title", apiclient.String(apiclient.NonEmpty)),
	apiclient.Required("completed", apiclient.Boolean()),
)

var todoIDPath = apiclient.Object(
	apiclient.Required("todoId", apiclient.Number()),
)

// Path templates.
const (
	PathTodos = "/todos"
	PathTodo  = "/todos/{todoId}"
)

// Endpoint definitions.
var (
	GetTodosDef = &apiclient.EndpointDefinition{
		Method:  apiclient.MethodGet,
		Path:    PathTodos,
		Name:    "getTodos",
		Summary: "List one page of todos",
		Parameters: apiclient.ParameterSchema{
			Query: apiclient.Object(
				apiclient.Required("_page", apiclient.Number(apiclient.NonNegative)),
			),
		},
		Response: apiclient.ArrayOf(Schema),
	}

	GetTodoDef = &apiclient.EndpointDefinition{
		Method:  apiclient.MethodGet,
		Path:    PathTodo,
		Name:    "getTodo",
		Summary: "Fetch a todo by id",
		Parameters: apiclient.ParameterSchema{
			Path: todoIDPath,
		},
		Response: Schema,
	}

	CreateTodoDef = &apiclient.EndpointDefinition{
		Method:  apiclient.MethodPost,
		Path:    PathTodos,
		Name:    "createTodo",
		Summary: "Create a todo",
		Parameters: apiclient.ParameterSchema{
			Body: apiclient.Object(
				apiclient.Required("title", apiclient.String(apiclient.NonEmpty)),
				apiclient.Required("userId", apiclient.Number()),
			),
		},
		Response: apiclient.Object(
			apiclient.Required("newTodo", Schema),
		),
	}

	PartiallyUpdateTodoDef = &apiclient.EndpointDefinition{
		Method:  apiclient.MethodPatch,
		Path:    PathTodo,
		Name:    "partiallyUpdateTodo",
		Summary: "Update some fields of a todo",
		Parameters: apiclient.ParameterSchema{
			Path: todoIDPath,
			Body: apiclient.Object(
				apiclient.Optional("title", apiclient.String()),
				apiclient.Optional("completed", apiclient.Boolean()),
			),
		},
		Response: Schema,
	}

	UpdateTodoDef = &apiclient.EndpointDefinition{
		Method:  apiclient.MethodPut,
		Path:    PathTodo,
		Name:    "updateTodo",
		Summary: "Replace a todo",
		Parameters: apiclient.ParameterSchema{
			Path: todoIDPath,
			Body: apiclient.Object(
				apiclient.Required("title", apiclient.String()),
				apiclient.Required("userId", apiclient.Number()),
				apiclient.Required("completed", apiclient.Boolean()),
			),
		},
		Response: Schema,
	}

	DeleteTodoDef = &apiclient.EndpointDefinition{
		Method:  apiclient.MethodDelete,
		Path:    PathTodo,
		Name:    "deleteTodo",
		Summary: "Delete a todo",
		Parameters: apiclient.ParameterSchema{
			Path: todoIDPath,
		},
		Response: apiclient.Object(),
	}
)

var registry = apiclient.MustRegistry(
	GetTodosDef,
	GetTodoDef,
	CreateTodoDef,
	PartiallyUpdateTodoDef,
	UpdateTodoDef,
	DeleteTodoDef,
)

// Registry returns the registry of all todo endpoints.
func Registry() *apiclient.Registry {
	return registry
}
