package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/optirail"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Server exposes a ports.Tracer over HTTP.
type Server struct {
	Engine       ports.Tracer
	Store        ports.WorkspaceStore
	Metrics      http.Handler
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore enables the /workspaces routes.
func WithStore(store ports.WorkspaceStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Tracer, opts ...Option) http.Handler {
	server := &Server{
		Engine:       engine,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics)
	}

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/components", server.ListComponents)
	r.Post("/trace", server.Trace)

	if server.Store != nil {
		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", server.ListWorkspaces)
			r.Get("/{name}", server.GetWorkspace)
			r.Put("/{name}", server.PutWorkspace)
			r.Delete("/{name}", server.DeleteWorkspace)
			r.Post("/{name}/trace", server.TraceWorkspace)
		})
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
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
    <title>optirail API Documentation</title>
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

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "optirail-http",
		"version":     strings.TrimSpace(optirail.Version),
		"api_version": apiVersion,
	})
}

// ListComponents handles the GET /components request.
func (s *Server) ListComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Components())
}

// Trace handles the POST /trace request.
func (s *Server) Trace(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodeTraceRequest(w, r, "Trace")
	if !ok {
		return
	}
	s.trace(w, r, mapRequestToDomain(body))
}

// ListWorkspaces handles the GET /workspaces request.
func (s *Server) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, "ListWorkspaces", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// GetWorkspace handles the GET /workspaces/{name} request.
func (s *Server) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "GetWorkspace", err)
		return
	}
	writeJSON(w, http.StatusOK, mapWorkspaceFromDomain(ws))
}

// PutWorkspace handles the PUT /workspaces/{name} request.
func (s *Server) PutWorkspace(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodeTraceRequest(w, r, "PutWorkspace")
	if !ok {
		return
	}

	req := mapRequestToDomain(body)
	ws := &domain.Workspace{
		Name:       chi.URLParam(r, "name"),
		Components: req.Components,
		Rays:       req.Rays,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.Store.Save(r.Context(), ws); err != nil {
		s.writeError(w, "PutWorkspace", err)
		return
	}
	writeJSON(w, http.StatusOK, mapWorkspaceFromDomain(ws))
}

// DeleteWorkspace handles the DELETE /workspaces/{name} request.
func (s *Server) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, "DeleteWorkspace", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TraceWorkspace handles the POST /workspaces/{name}/trace request.
func (s *Server) TraceWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "TraceWorkspace", err)
		return
	}
	s.trace(w, r, ws.Request())
}

func (s *Server) trace(w http.ResponseWriter, r *http.Request, req domain.TraceRequest) {
	res, err := s.Engine.Trace(r.Context(), req)
	if err != nil {
		s.writeError(w, "Trace", err)
		return
	}
	writeJSON(w, http.StatusOK, mapResultFromDomain(res))
}

// decodeTraceRequest reads, contract-checks and decodes a TraceRequest body.
func (s *Server) decodeTraceRequest(w http.ResponseWriter, r *http.Request, op string) (TraceRequest, bool) {
	var body TraceRequest

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, op, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrRequestTooLarge, tooLarge.Limit))
			return body, false
		}
		s.writeError(w, op, fmt.Errorf("%w: %v", domain.ErrInvalidNumericInput, err))
		return body, false
	}

	if err := validateBody("TraceRequest", raw); err != nil {
		s.writeError(w, op, fmt.Errorf("%w: %v", domain.ErrInvalidNumericInput, err))
		return body, false
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		s.writeError(w, op, fmt.Errorf("%w: %v", domain.ErrInvalidNumericInput, err))
		return body, false
	}
	return body, true
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidNumericInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownComponentType), errors.Is(err, domain.ErrDegenerateParameter):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+": request rejected", "error", err, "status", status)
	}

	detail := ErrorDetail{
		Code:    domain.Code(err),
		Message: err.Error(),
	}
	var te *domain.TraceError
	if errors.As(err, &te) {
		if te.Index >= 0 {
			detail.Index = ptr(te.Index)
		}
		detail.Type = te.Type
		detail.Param = te.Param
		detail.Field = te.Field
	}
	writeJSON(w, status, ErrorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
