// Package mcp exposes the tool registry as a Model Context Protocol server
// over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vporto/almanac"
	"github.com/vporto/almanac/internal/registry"
)

// Server wraps the dispatcher and exposes it as an MCP server.
type Server struct {
	dispatcher *registry.Dispatcher
	mcpServer  *server.MCPServer
}

// NewServer creates an MCP server whose tool list mirrors the registry.
func NewServer(d *registry.Dispatcher) *Server {
	s := &Server{
		dispatcher: d,
		mcpServer:  server.NewMCPServer("almanac", almanac.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// registerTools mirrors every registry descriptor into an MCP tool whose
// handler forwards to the dispatcher. Failures come back as regular text
// content, exactly as on the HTTP side.
func (s *Server) registerTools() {
	for _, t := range s.dispatcher.List() {
		opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
		for _, p := range t.Params {
			propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
			if p.Required {
				propOpts = append(propOpts, mcp.Required())
			} else {
				propOpts = append(propOpts, mcp.DefaultString(p.Default))
			}
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}

		name := t.Name
		s.mcpServer.AddTool(mcp.NewTool(name, opts...),
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				res := s.dispatcher.Execute(ctx, name, request.GetArguments())
				return mcp.NewToolResultText(res.Text), nil
			})
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("almanac://tools", "Tool Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.dispatcher.List())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tool catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "almanac://tools",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
