package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Equilibriumty/typesafe-api-client/internal/todoserver"
	"github.com/Equilibriumty/typesafe-api-client/openapi"
	"github.com/Equilibriumty/typesafe-api-client/todo"
)

type OpenAPICmd struct {
	Format    string `help:"Document format." enum:"json,yaml" default:"yaml" short:"f"`
	ServerURL string `help:"Server URL listed in the document; defaults to --base-url." name:"server-url"`
}

func (c *OpenAPICmd) Run(g *Globals) error {
	server := c.ServerURL
	if server == "" {
		server = g.BaseURL
	}
	doc, err := openapi.Export(context.Background(), todo.Registry(), openapi.Info{
		Title:       "Todo API",
		Version:     readVersion().Version,
		Description: "Endpoints of the typed todo client.",
		ServerURL:   server,
	})
	if err != nil {
		return err
	}
	var data []byte
	if c.Format == "json" {
		data, err = openapi.MarshalJSON(doc)
		data = append(data, '\n')
	} else {
		data, err = openapi.MarshalYAML(doc)
	}
	if err != nil {
		return err
	}
	_, err = g.Stdout.Write(data)
	return err
}

type ServeCmd struct {
	Addr     string   `help:"Listen address." default:"localhost:8080" env:"TODOCTL_ADDR"`
	PageSize int      `help:"Todos per page of GET /todos." default:"10" name:"page-size"`
	Seed     int      `help:"Number of generated todos." default:"20"`
	CORS     []string `help:"Allowed CORS origin (repeatable, * for any)." name:"cors-origin"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := g.logger()
	opts := []todoserver.Option{
		todoserver.WithLogger(logger),
		todoserver.WithPageSize(c.PageSize),
		todoserver.WithTodos(todoserver.SeedTodos(c.Seed)),
	}
	if len(c.CORS) > 0 {
		opts = append(opts, todoserver.WithCORS(todoserver.CORSConfig{AllowOrigins: c.CORS}))
	}
	srv := todoserver.New(opts...)
	httpServer := &http.Server{
		Addr:              c.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	fmt.Fprintf(g.Stdout, "serving todo API on http://%s\n", c.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
		return err
	}
	return nil
}
