package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/vporto/almanac/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts almanac as an MCP server so AI agents can call its tools.

Supported transports:
- stdio (default): Standard Input/Output. Ideal for local process integration.
- sse: Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		application, err := newApp(cmd)
		if err != nil {
			log.Fatalf("Error initializing almanac: %v", err)
		}
		defer application.Close()

		srv := mcpAdapter.NewServer(application.Dispatcher)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout.
			log.SetOutput(os.Stderr)
			slog.Info("Starting Almanac MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Almanac MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP server execution failed", "err", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
