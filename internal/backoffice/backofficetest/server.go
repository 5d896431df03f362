// Package backofficetest provides a recording fake of the back-office API for tests.
package backofficetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"advisory-console/internal/config"
)

// Request is one call received by the fake.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// JSON decodes the request body into v.
func (r Request) JSON(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %s %s body: %v", r.Method, r.Path, err)
	}
}

// Server is a gin engine behind httptest that records every request.
type Server struct {
	*httptest.Server
	Engine *gin.Engine

	mu       sync.Mutex
	requests []Request
}

// New starts a fake back office. It is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{Engine: gin.New()}
	s.Engine.Use(s.record)
	s.Engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	s.Server = httptest.NewServer(s.Engine)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()

	c.Next()
}

// Reply registers a fixed JSON response for method and path.
func (s *Server) Reply(method, path string, status int, body any) {
	s.Engine.Handle(method, path, func(c *gin.Context) {
		c.JSON(status, body)
	})
}

// Handle registers a custom handler for method and path.
func (s *Server) Handle(method, path string, h gin.HandlerFunc) {
	s.Engine.Handle(method, path, h)
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the received requests matching method and path.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Config returns a console configuration pointing at the fake.
func (s *Server) Config() config.Config {
	cfg, err := config.FromEnv(func(key string) string {
		switch key {
		case "BACKOFFICE_BASE_URL":
			return s.URL
		case "BACKOFFICE_RATE_LIMIT":
			return "1000"
		case "BACKOFFICE_TIMEOUT_SECONDS":
			return "5"
		}
		return ""
	})
	if err != nil {
		panic(err)
	}
	return cfg
}
