package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wethinkt/go-lightbox/internal/server"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// Serve command flags
var (
	servePort    int
	serveHost    string
	serveQuiet   bool
	serveMCP     bool
	serveHTTPLog string
)

// Serve mcp subcommand flags
var (
	mcpStdio bool
	mcpPort  int
	mcpHost  string
)

var serveCmd = &cobra.Command{
	Use:   "serve [paths...]",
	Short: "Start the control server",
	Long: `Start a local HTTP server that owns one viewer over the collection.

The server provides:
  - REST API to open, close, navigate, zoom and rotate the viewer
  - POST /api/v1/viewer/keys to drive it with the viewer's key table
  - WebSocket stream of viewer state at /api/v1/viewer/ws
  - Prometheus metrics at /metrics and API docs at /swagger/

The collection reloads when files change, keeping the current item.

Examples:
  lightbox serve                  # Serve the current directory on port 7480
  lightbox serve -p 8080 photos/  # Custom port
  lightbox serve --mcp            # Also serve MCP over SSE at /mcp`,
	RunE: runServeHTTP,
}

var serveMcpCmd = &cobra.Command{
	Use:   "mcp [paths...]",
	Short: "Start MCP server for AI tool integration",
	Long: `Start an MCP (Model Context Protocol) server exposing the viewer as tools:
list_items, get_viewer, open_item, close_viewer, navigate, zoom, rotate
and press_key.

By default, runs on stdio for use with MCP clients.
Use --port to run over HTTP (SSE transport at /mcp) instead.

Examples:
  lightbox serve mcp                        # MCP server on stdio (default)
  lightbox serve mcp --port 7481 photos/    # MCP server over HTTP`,
	RunE: runServeMCP,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", server.DefaultConfig().Port, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "server host (default from config)")
	serveCmd.Flags().BoolVarP(&serveQuiet, "quiet", "q", false, "suppress HTTP request logging")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve MCP over SSE at /mcp")
	serveCmd.Flags().StringVar(&serveHTTPLog, "http-log", "", "write HTTP access log to file (default: stdout, unless --quiet)")

	serveCmd.AddCommand(serveMcpCmd)
	addCollectionFlags(serveMcpCmd)
	serveMcpCmd.Flags().BoolVar(&mcpStdio, "stdio", false, "use stdio transport (default if no --port)")
	serveMcpCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "run MCP over HTTP on this port")
	serveMcpCmd.Flags().StringVar(&mcpHost, "host", "localhost", "host to bind MCP HTTP server")
}

// signalContext cancels on interrupt or terminate.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			tuilog.Log.Info("Received interrupt signal, shutting down")
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// newSession scans paths and keeps the session in sync with the file
// system until ctx ends.
func newSession(ctx context.Context, g *errgroup.Group, paths []string) (*server.Session, error) {
	items, err := loadCollection(ctx, paths)
	if err != nil {
		return nil, err
	}
	session := server.NewSession(items)

	updates, stop, err := startWatcher(ctx, paths)
	if err != nil {
		tuilog.Log.Warn("watch disabled", "error", err)
	}
	if updates == nil {
		stop()
		return session, nil
	}
	g.Go(func() error {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case items, ok := <-updates:
				if !ok {
					return nil
				}
				snap := session.SetItems(items)
				tuilog.Log.Info("collection updated", "items", len(items), "index", snap.Index, "open", snap.Open)
			}
		}
	})
	return session, nil
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	session, err := newSession(ctx, g, collectionPaths(args))
	if err != nil {
		return err
	}

	config := server.Config{
		Host:  cfg.Server.Host,
		Port:  cfg.Server.Port,
		Quiet: serveQuiet,
		MCP:   serveMCP,
	}
	if cmd.Flags().Changed("host") {
		config.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		config.Port = servePort
	}
	if serveHTTPLog != "" {
		f, err := os.OpenFile(serveHTTPLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open http log: %w", err)
		}
		defer f.Close()
		config.AccessLog = f
	}

	tuilog.Log.Info("Starting HTTP server", "host", config.Host, "port", config.Port)
	srv := server.NewHTTPServer(session, config)
	g.Go(func() error {
		defer cancel()
		return srv.ListenAndServe(ctx)
	})
	return g.Wait()
}

func runServeMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	session, err := newSession(ctx, g, collectionPaths(args))
	if err != nil {
		return err
	}

	if mcpPort > 0 && !mcpStdio {
		srv := server.NewHTTPServer(session, server.Config{
			Host:  mcpHost,
			Port:  mcpPort,
			Quiet: true,
			MCP:   true,
		})
		tuilog.Log.Info("Starting MCP server over HTTP", "host", mcpHost, "port", mcpPort)
		g.Go(func() error {
			defer cancel()
			return srv.ListenAndServe(ctx)
		})
		return g.Wait()
	}

	tuilog.Log.Info("Starting MCP server on stdio")
	ms := server.NewMCPServer(session)
	g.Go(func() error {
		defer cancel()
		defer session.Shutdown()
		return ms.RunStdio(ctx)
	})
	return g.Wait()
}
