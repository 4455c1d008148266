package todo

import (
	"context"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

// Client is a typed client for the todo API.
type Client struct {
	api *apiclient.Client
}

// NewClient creates a todo client. An empty BaseURL uses DefaultBaseURL.
func NewClient(cfg apiclient.Config, opts ...apiclient.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{api: apiclient.NewClient(Registry(), cfg, opts...)}
}

// API returns the underlying generic client.
func (c *Client) API() *apiclient.Client {
	return c.api
}

// List returns one page of todos.
func (c *Client) List(ctx context.Context, page int) ([]Todo, error) {
	var p GetTodosParams
	p.Query.Page = page
	return apiclient.Get(ctx, c.api, GetTodos, p)
}

// Get returns the todo with the given id.
func (c *Client) Get(ctx context.Context, id int) (Todo, error) {
	return apiclient.Get(ctx, c.api, GetTodo, GetTodoParams{Path: TodoPath{TodoID: id}})
}

// Create creates a todo and returns it as stored by the server.
func (c *Client) Create(ctx context.Context, t NewTodo) (Todo, error) {
	res, err := apiclient.Post(ctx, c.api, CreateTodo, CreateTodoParams{Body: t})
	if err != nil {
		return Todo{}, err
	}
	return res.NewTodo, nil
}

// Patch updates the non-nil fields of patch.
func (c *Client) Patch(ctx context.Context, id int, patch TodoPatch) (Todo, error) {
	return apiclient.Patch(ctx, c.api, PartiallyUpdateTodo, PartiallyUpdateTodoParams{
		Path: TodoPath{TodoID: id},
		Body: patch,
	})
}

// Update replaces the todo with the given id.
func (c *Client) Update(ctx context.Context, id int, t TodoUpdate) (Todo, error) {
	return apiclient.Put(ctx, c.api, UpdateTodo, UpdateTodoParams{
		Path: TodoPath{TodoID: id},
		Body: t,
	})
}

// Delete deletes the todo with the given id.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := apiclient.Delete(ctx, c.api, DeleteTodo, DeleteTodoParams{Path: TodoPath{TodoID: id}})
	return err
}
