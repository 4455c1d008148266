package main

import (
	"context"

	"github.com/Equilibriumty/typesafe-api-client/todo"
)

type ListCmd struct {
	Page int `help:"Page number; 0 lists every todo." default:"0"`
}

func (c *ListCmd) Run(g *Globals) error {
	todos, err := g.client().List(context.Background(), c.Page)
	if err != nil {
		return err
	}
	return g.print(todos)
}

type GetCmd struct {
	ID int `arg:"" help:"Todo id."`
}

func (c *GetCmd) Run(g *Globals) error {
	t, err := g.client().Get(context.Background(), c.ID)
	if err != nil {
		return err
	}
	return g.print(t)
}

type CreateCmd struct {
	Title  string `help:"Todo title." required:""`
	UserID int    `help:"Owner of the todo." name:"user-id" required:""`
}

func (c *CreateCmd) Run(g *Globals) error {
	t, err := g.client().Create(context.Background(), todo.NewTodo{Title: c.Title, UserID: c.UserID})
	if err != nil {
		return err
	}
	return g.print(t)
}

type PatchCmd struct {
	ID        int     `arg:"" help:"Todo id."`
	Title     *string `help:"New title."`
	Completed *bool   `help:"New completion state."`
}

func (c *PatchCmd) Run(g *Globals) error {
	t, err := g.client().Patch(context.Background(), c.ID, todo.TodoPatch{
		Title:     c.Title,
		Completed: c.Completed,
	})
	if err != nil {
		return err
	}
	return g.print(t)
}

type UpdateCmd struct {
	ID        int    `arg:"" help:"Todo id."`
	Title     string `help:"Todo title." required:""`
	UserID    int    `help:"Owner of the todo." name:"user-id" required:""`
	Completed bool   `help:"Completion state." negatable:""`
}

func (c *UpdateCmd) Run(g *Globals) error {
	t, err := g.client().Update(context.Background(), c.ID, todo.TodoUpdate{
		Title:     c.Title,
		UserID:    c.UserID,
		Completed: c.Completed,
	})
	if err != nil {
		return err
	}
	return g.print(t)
}

type DeleteCmd struct {
	ID int `arg:"" help:"Todo id."`
}

func (c *DeleteCmd) Run(g *Globals) error {
	if err := g.client().Delete(context.Background(), c.ID); err != nil {
		return err
	}
	return g.print(struct{}{})
}
