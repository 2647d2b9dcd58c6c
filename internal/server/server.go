// Package server implements the HTTP and MCP control surfaces for lightbox serve.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/wethinkt/go-lightbox/internal/server/docs"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// Config holds server configuration.
type Config struct {
	Host  string
	Port  int
	Quiet bool // disables the access log
	MCP   bool // also serve MCP over SSE at /mcp

	// AccessLog receives the HTTP access log instead of stdout.
	AccessLog io.Writer
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host: "localhost",
		Port: 7480,
	}
}

// HTTPServer serves the REST API, the state stream, metrics and API docs.
type HTTPServer struct {
	session *Session
	mcp     *MCPServer
	router  chi.Router
	config  Config
}

// NewHTTPServer creates a new HTTP server driving session.
func NewHTTPServer(session *Session, config Config) *HTTPServer {
	s := &HTTPServer{
		session: session,
		config:  config,
	}
	if config.MCP {
		s.mcp = NewMCPServer(session)
	}
	s.router = s.setupRouter()
	return s
}

// setupRouter configures all routes.
func (s *HTTPServer) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware)

	switch {
	case s.config.Quiet:
	case s.config.AccessLog != nil:
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  log.New(s.config.AccessLog, "", log.LstdFlags),
			NoColor: true,
		}))
	default:
		r.Use(middleware.Logger)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", s.handleGetItems)
		r.Get("/items/{index}/raw", s.handleGetItemRaw)
		r.Get("/keys", s.handleGetKeys)

		r.Route("/viewer", func(r chi.Router) {
			r.Get("/", s.handleGetViewer)
			r.Get("/ws", s.handleViewerWS)
			r.Post("/open", s.handleOpen)
			r.Post("/close", s.handleClose)
			r.Post("/navigate", s.handleNavigate)
			r.Post("/zoom", s.handleZoom)
			r.Post("/rotate", s.handleRotate)
			r.Post("/load-error", s.handleLoadError)
			r.Post("/keys", s.handlePressKey)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if s.mcp != nil {
		r.Handle("/mcp", s.mcp.SSEHandler())
		r.Handle("/mcp/*", s.mcp.SSEHandler())
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Lightbox</title></head>
<body>
<h1>Lightbox Server</h1>
<p>Viewer state: <a href="/api/v1/viewer">/api/v1/viewer</a></p>
<p>API docs: <a href="/swagger/index.html">/swagger/</a></p>
</body>
</html>`))
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *HTTPServer) Router() chi.Router {
	return s.router
}

// Addr returns the server address.
func (s *HTTPServer) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled.
func (s *HTTPServer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// Update port if it was auto-assigned
	if s.config.Port == 0 {
		s.config.Port = ln.Addr().(*net.TCPAddr).Port
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		s.session.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			tuilog.Log.Warn("server shutdown", "error", err)
		}
	}()

	tuilog.Log.Info("control server listening", "addr", s.Addr(), "mcp", s.mcp != nil)
	fmt.Printf("Lightbox server running at http://%s\n", s.Addr())
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// corsMiddleware adds CORS headers for local tools and browser clients.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
