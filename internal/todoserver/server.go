// Package todoserver is an in-memory implementation of the upstream todo API.
// It serves the same wire contract as the public service and is used by
// end-to-end tests and `todoctl serve`.
package todoserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
	"github.com/Equilibriumty/typesafe-api-client/todo"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// DefaultPageSize is the number of todos per page of GET /todos.
const DefaultPageSize = 10

// Server is an in-memory todo store served over HTTP.
type Server struct {
	mu       sync.RWMutex
	todos    map[int]todo.Todo
	nextID   int
	pageSize int
	logger   *slog.Logger
	cors     *CORSConfig
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
// If not set, slog.Default() will be used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPageSize sets the page size of GET /todos.
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithTodos replaces the seed data.
func WithTodos(todos []todo.Todo) Option {
	return func(s *Server) {
		s.todos = make(map[int]todo.Todo, len(todos))
		s.nextID = 1
		for _, t := range todos {
			s.todos[t.ID] = t
			if t.ID >= s.nextID {
				s.nextID = t.ID + 1
			}
		}
	}
}

// SeedTodos returns n generated todos owned by users of ten todos each.
func SeedTodos(n int) []todo.Todo {
	todos := make([]todo.Todo, n)
	for i := range todos {
		id := i + 1
		todos[i] = todo.Todo{
			UserID:    i/10 + 1,
			ID:        id,
			Title:     fmt.Sprintf("todo %d", id),
			Completed: id%3 == 0,
		}
	}
	return todos
}

// New creates a server seeded with SeedTodos(20).
func New(opts ...Option) *Server {
	s := &Server{pageSize: DefaultPageSize}
	WithTodos(SeedTodos(20))(s)
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Handler returns the HTTP handler serving the todo API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+todo.PathTodos, s.listTodos)
	mux.HandleFunc("POST "+todo.PathTodos, s.createTodo)
	mux.HandleFunc("GET "+todo.PathTodo, s.getTodo)
	mux.HandleFunc("PATCH "+todo.PathTodo, s.patchTodo)
	mux.HandleFunc("PUT "+todo.PathTodo, s.putTodo)
	mux.HandleFunc("DELETE "+todo.PathTodo, s.deleteTodo)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errorf(codeNotFound, "route %s %s not found", r.Method, r.URL.Path), s.logger)
	})
	var h http.Handler = mux
	if s.cors != nil {
		h = cors(*s.cors, h)
	}
	return s.recoverAndLog(h)
}

// recoverAndLog logs every request and turns panics into internal errors.
func (s *Server) recoverAndLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("PANIC recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))
				writeError(w, errorf(codeInternal, "internal server error (panic): %v", rec), s.logger)
			}
		}()
		next.ServeHTTP(w, r)
		s.logger.Debug("handled request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}

type listQuery struct {
	Page *int `schema:"_page" validate:"omitempty,gte=0"`
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	var q listQuery
	if err := schemaDecoder.Decode(&q, r.URL.Query()); err != nil {
		writeError(w, err, s.logger)
		return
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, err, s.logger)
		return
	}

	s.mu.RLock()
	all := make([]todo.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		all = append(all, t)
	}
	s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page := all
	if q.Page != nil && *q.Page > 0 {
		start := (*q.Page - 1) * s.pageSize
		end := start + s.pageSize
		switch {
		case start >= len(all):
			page = []todo.Todo{}
		case end > len(all):
			page = all[start:]
		default:
			page = all[start:end]
		}
	}
	s.write(w, r, http.StatusOK, page)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeError(w, err, s.logger)
		return
	}
	s.mu.RLock()
	t, ok := s.todos[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, errorf(codeNotFound, "todo %d not found", id), s.logger)
		return
	}
	s.write(w, r, http.StatusOK, t)
}

type createRequest struct {
	Title  string `json:"title" validate:"required"`
	UserID *int   `json:"userId" validate:"required"`
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, s.logger)
		return
	}

	s.mu.Lock()
	t := todo.Todo{UserID: *req.UserID, ID: s.nextID, Title: req.Title}
	s.todos[t.ID] = t
	s.nextID++
	s.mu.Unlock()

	s.write(w, r, http.StatusCreated, todo.CreateTodoResponse{NewTodo: t})
}

type patchRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (s *Server) patchTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeError(w, err, s.logger)
		return
	}
	var req patchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, s.logger)
		return
	}

	s.mu.Lock()
	t, ok := s.todos[id]
	if ok {
		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Completed != nil {
			t.Completed = *req.Completed
		}
		s.todos[id] = t
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, errorf(codeNotFound, "todo %d not found", id), s.logger)
		return
	}
	s.write(w, r, http.StatusOK, t)
}

type putRequest struct {
	Title     *string `json:"title" validate:"required"`
	UserID    *int    `json:"userId" validate:"required"`
	Completed *bool   `json:"completed" validate:"required"`
}

func (s *Server) putTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeError(w, err, s.logger)
		return
	}
	var req putRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, s.logger)
		return
	}

	s.mu.Lock()
	_, ok := s.todos[id]
	t := todo.Todo{UserID: *req.UserID, ID: id, Title: *req.Title, Completed: *req.Completed}
	if ok {
		s.todos[id] = t
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, errorf(codeNotFound, "todo %d not found", id), s.logger)
		return
	}
	s.write(w, r, http.StatusOK, t)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeError(w, err, s.logger)
		return
	}
	s.mu.Lock()
	delete(s.todos, id)
	s.mu.Unlock()
	s.write(w, r, http.StatusOK, struct{}{})
}

func todoID(r *http.Request) (int, error) {
	raw := r.PathValue("todoId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errorf(codeInvalidArgument, "todoId must be an integer, got %q", raw)
	}
	return id, nil
}

// decodeBody decodes a JSON or MessagePack request body into dst and
// validates it.
func decodeBody(r *http.Request, dst any) error {
	codec := apiclient.JSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		c, err := apiclient.CodecFor(ct)
		if err != nil {
			return errorf(codeUnsupportedMedia, "%v", err)
		}
		codec = c
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return errorf(codeInvalidArgument, "failed to read body: %v", err)
	}
	raw, err := codec.Unmarshal(data)
	if err != nil {
		return errorf(codeInvalidArgument, "failed to decode body: %v", err)
	}
	// Re-encode through JSON so struct tags apply to both codecs.
	buf, err := json.Marshal(raw)
	if err != nil {
		return errorf(codeInvalidArgument, "failed to decode body: %v", err)
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return errorf(codeInvalidArgument, "failed to decode body: %v", err)
	}
	return validate.Struct(dst)
}

// write encodes v with the codec the client accepts.
func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	codec := apiclient.JSON
	if strings.Contains(r.Header.Get("Accept"), apiclient.MessagePack.ContentType()) {
		codec = apiclient.MessagePack
	}

	payload := v
	if codec != apiclient.JSON {
		// Go structs carry json tags only; go through the JSON form first.
		buf, err := json.Marshal(v)
		if err == nil {
			err = json.Unmarshal(buf, &payload)
		}
		if err != nil {
			writeError(w, err, s.logger)
			return
		}
	}
	data, err := codec.Marshal(payload)
	if err != nil {
		writeError(w, err, s.logger)
		return
	}
	w.Header().Set("Content-Type", codec.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write response", slog.Any("error", err))
	}
}
