package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Equilibriumty/typesafe-api-client/todo"
)

type CLI struct {
	Globals

	Version   VersionCmd   `cmd:"" help:"Print version information."`
	List      ListCmd      `cmd:"" help:"List one page of todos (GET /todos)."`
	Get       GetCmd       `cmd:"" help:"Fetch a todo (GET /todos/{todoId})."`
	Create    CreateCmd    `cmd:"" help:"Create a todo (POST /todos)."`
	Patch     PatchCmd     `cmd:"" help:"Update some fields of a todo (PATCH /todos/{todoId})."`
	Update    UpdateCmd    `cmd:"" help:"Replace a todo (PUT /todos/{todoId})."`
	Delete    DeleteCmd    `cmd:"" help:"Delete a todo (DELETE /todos/{todoId})."`
	Call      CallCmd      `cmd:"" help:"Call any registered endpoint by method and path template."`
	Endpoints EndpointsCmd `cmd:"" help:"List registered endpoints."`
	OpenAPI   OpenAPICmd   `cmd:"" name:"openapi" help:"Print the OpenAPI document of the registry."`
	Serve     ServeCmd     `cmd:"" help:"Run an in-memory todo API server."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	_, err := fmt.Fprintln(g.Stdout, readVersion())
	return err
}

// newParser builds the kong parser. Output is written to stdout.
func newParser(cli *CLI, stdout io.Writer, options ...kong.Option) (*kong.Kong, error) {
	cli.Stdout = stdout
	options = append([]kong.Option{
		kong.Name("todoctl"),
		kong.Description("Typed client for the todo API."),
		kong.UsageOnError(),
		kong.Configuration(yamlLoader, "~/.config/todoctl.yaml"),
		kong.Vars{"base_url": todo.DefaultBaseURL},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	cli := &CLI{}
	parser, err := newParser(cli, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
