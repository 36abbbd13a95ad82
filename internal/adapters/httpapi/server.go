// Package httpapi exposes the tool registry over a JSON HTTP API: a static
// tool list, an execute endpoint, metrics and an optional static dashboard.
package httpapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/pkg/domain"
)

//go:embed openapi.yaml
var openapiSpec []byte

// ExecuteRequest is the POST /api/execute body.
type ExecuteRequest struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// ExecuteResponse is the success envelope.
type ExecuteResponse struct {
	Status string `json:"status"`
	Result string `json:"result"`
}

// ErrorResponse carries a failure detail for non-200 statuses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Server routes HTTP requests to the dispatcher.
type Server struct {
	dispatcher *registry.Dispatcher
}

// NewHandler creates the HTTP handler. The embedded OpenAPI contract is
// parsed and validated up front so a broken spec fails startup, not a
// request. If staticDir names an existing directory it is served at the
// root path.
func NewHandler(d *registry.Dispatcher, staticDir string) (http.Handler, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded OpenAPI spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("embedded OpenAPI spec is invalid: %w", err)
	}

	s := &Server{dispatcher: d}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/tools", s.listTools)
	r.Post("/api/execute", s.execute)
	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			slog.Info("serving static assets", "dir", staticDir)
			r.Handle("/*", http.FileServer(http.Dir(staticDir)))
		}
	}

	return enableCORS(r), nil
}

func (s *Server) listTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatcher.List())
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "invalid request body"})
		slog.Warn("execute: invalid request body", "err", err)
		return
	}

	res := s.dispatcher.Execute(r.Context(), req.ToolName, req.Arguments)
	if res.Outcome == domain.OutcomeUnknownTool {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: res.Text})
		return
	}

	// Handled diagnostics are still successful responses; the text carries
	// the failure report.
	writeJSON(w, http.StatusOK, ExecuteResponse{Status: "success", Result: res.Text})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Almanac API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
