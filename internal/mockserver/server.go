// Package mockserver provides an in-memory OpenFiles API server for
// tests and local development. It speaks the same wire contract as the
// hosted service: bearer auth, the response envelope and the file
// endpoints, backed by a versioned memory store.
package mockserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"openfiles/core"
)

var apiKeyPattern = regexp.MustCompile(`^oa_[A-Za-z0-9]{32,}$`)

// Config holds mock server options.
type Config struct {
	APIKey string // Optional: exact key to require. Empty accepts any well-formed key.
}

// Server wraps the Echo server and its file store.
type Server struct {
	echo  *echo.Echo
	store *MemoryStore
}

// New creates a mock OpenFiles server.
func New(cfg *Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, store: NewMemoryStore()}

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(authMiddleware(cfg))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/files", s.writeFile)
	e.GET("/files", s.listFiles)
	e.GET("/files/*", s.getFile)
	e.PUT("/files/edit/*", s.editFile)
	e.PUT("/files/append/*", s.appendFile)
	e.PUT("/files/overwrite/*", s.overwriteFile)

	return s
}

// Store exposes the backing store so tests can seed files directly.
func (s *Server) Store() *MemoryStore { return s.store }

// Start starts the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP implements http.Handler, allowing Server to be used with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Success   bool           `json:"success"`
	Data      any            `json:"data,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Message   string         `json:"message,omitempty"`
	Error     *core.APIError `json:"error,omitempty"`
}

func ok(c echo.Context, operation string, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Operation: operation})
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, envelope{Success: false, Error: &core.APIError{Code: code, Message: message}})
}

// requestLogger logs one debug line per request.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			slog.Debug("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return err
		}
	}
}

// authMiddleware enforces the Authorization: Bearer header. With a
// configured key only that key passes; otherwise any key matching the
// published format does.
func authMiddleware(cfg *Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/metrics" {
				return next(c)
			}
			auth := c.Request().Header.Get("Authorization")
			token, found := strings.CutPrefix(auth, "Bearer ")
			if !found || token == "" {
				return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or malformed authorization header")
			}
			if cfg != nil && cfg.APIKey != "" {
				if token != cfg.APIKey {
					return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid API key")
				}
			} else if !apiKeyPattern.MatchString(token) {
				return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid API key")
			}
			return next(c)
		}
	}
}

// writeRequest is the POST /files body.
type writeRequest struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	IsBase64    bool   `json:"isBase64"`
}

// editRequest is the PUT /files/edit/{path} body.
type editRequest struct {
	OldString string `json:"oldString"`
	NewString string `json:"newString"`
}

// contentRequest is the body shared by append and overwrite.
type contentRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	IsBase64    bool   `json:"isBase64"`
}

func (s *Server) writeFile(c echo.Context) error {
	var req writeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body: "+err.Error())
	}
	if req.Path == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "path is required")
	}
	meta, err := s.store.Write(req.Path, req.Content, req.ContentType, req.IsBase64)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, "write_file", meta)
}

func (s *Server) listFiles(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	recursive := c.QueryParam("recursive") == "true"

	list, err := s.store.List(c.QueryParam("directory"), limit, offset, recursive)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, "list_files", list)
}

// getFile serves reads, metadata lookups and version history from one
// route, selected by query flags the way the hosted API does.
func (s *Server) getFile(c echo.Context) error {
	path := wildcardPath(c)
	if path == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "path is required")
	}

	switch {
	case c.QueryParam("metadata") == "true":
		version, _ := strconv.Atoi(c.QueryParam("version"))
		meta, err := s.store.Metadata(path, version)
		if err != nil {
			return storeError(c, err)
		}
		return ok(c, "get_file_metadata", meta)

	case c.QueryParam("versions") == "true":
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		versions, err := s.store.Versions(path, limit, offset)
		if err != nil {
			return storeError(c, err)
		}
		return ok(c, "get_file_versions", versions)

	default:
		version, _ := strconv.Atoi(c.QueryParam("version"))
		content, err := s.store.Read(path, version)
		if err != nil {
			return storeError(c, err)
		}
		return ok(c, "read_file", content)
	}
}

func (s *Server) editFile(c echo.Context) error {
	path := wildcardPath(c)
	var req editRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body: "+err.Error())
	}
	meta, err := s.store.Edit(path, req.OldString, req.NewString)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, "edit_file", meta)
}

func (s *Server) appendFile(c echo.Context) error {
	path := wildcardPath(c)
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body: "+err.Error())
	}
	meta, err := s.store.Append(path, req.Content)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, "append_to_file", meta)
}

func (s *Server) overwriteFile(c echo.Context) error {
	path := wildcardPath(c)
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body: "+err.Error())
	}
	meta, err := s.store.Overwrite(path, req.Content, req.ContentType, req.IsBase64)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, "overwrite_file", meta)
}

// storeError converts store errors to the wire error envelope.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBadVersion):
		return fail(c, http.StatusNotFound, "FILE_NOT_FOUND", err.Error())
	case errors.Is(err, ErrExists):
		return fail(c, http.StatusBadRequest, "FILE_EXISTS", err.Error())
	case errors.Is(err, ErrStringNotFound):
		return fail(c, http.StatusBadRequest, "STRING_NOT_FOUND", err.Error())
	default:
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}
}

// wildcardPath returns the decoded remainder of the matched route.
func wildcardPath(c echo.Context) string {
	raw := c.Param("*")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.Trim(raw, "/")
}
