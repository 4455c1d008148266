package todo

import (
	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

// TodoPath is the path part of every /todos/{todoId} endpoint.
type TodoPath struct {
	TodoID int `json:"todoId"`
}

// GetTodosParams are the parameters of GET /todos.
type GetTodosParams struct {
	Query struct {
		Page int `json:"_page"`
	} `json:"query"`
}

// GetTodoParams are the parameters of GET /todos/{todoId}.
type GetTodoParams struct {
	Path TodoPath `json:"path"`
}

// NewTodo is the body of POST /todos.
type NewTodo struct {
	Title  string `json:"title"`
	UserID int    `json:"userId"`
}

// CreateTodoParams are the parameters of POST /todos.
type CreateTodoParams struct {
	Body NewTodo `json:"body"`
}

// CreateTodoResponse is the response of POST /todos.
type CreateTodoResponse struct {
	NewTodo Todo `json:"newTodo"`
}

// TodoPatch is the body of PATCH /todos/{todoId}. Nil fields are left unchanged.
type TodoPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// PartiallyUpdateTodoParams are the parameters of PATCH /todos/{todoId}.
type PartiallyUpdateTodoParams struct {
	Path TodoPath  `json:"path"`
	Body TodoPatch `json:"body"`
}

// TodoUpdate is the body of PUT /todos/{todoId}.
type TodoUpdate struct {
	Title     string `json:"title"`
	UserID    int    `json:"userId"`
	Completed bool   `json:"completed"`
}

// UpdateTodoParams are the parameters of PUT /todos/{todoId}.
type UpdateTodoParams struct {
	Path TodoPath   `json:"path"`
	Body TodoUpdate `json:"body"`
}

// DeleteTodoParams are the parameters of DELETE /todos/{todoId}.
type DeleteTodoParams struct {
	Path TodoPath `json:"path"`
}

// Typed endpoint handles.
var (
	GetTodos            = apiclient.NewEndpoint[apiclient.VerbGet, GetTodosParams, []Todo](GetTodosDef)
	GetTodo             = apiclient.NewEndpoint[apiclient.VerbGet, GetTodoParams, Todo](GetTodoDef)
	CreateTodo          = apiclient.NewEndpoint[apiclient.VerbPost, CreateTodoParams, CreateTodoResponse](CreateTodoDef)
	PartiallyUpdateTodo = apiclient.NewEndpoint[apiclient.VerbPatch, PartiallyUpdateTodoParams, Todo](PartiallyUpdateTodoDef)
	UpdateTodo          = apiclient.NewEndpoint[apiclient.VerbPut, UpdateTodoParams, Todo](UpdateTodoDef)
	DeleteTodo          = apiclient.NewEndpoint[apiclient.VerbDelete, DeleteTodoParams, apiclient.Empty](DeleteTodoDef)
)
