package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/optirail"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const componentsURI = "optirail://components"

// ElementOutput is one element transfer in tool output.
type ElementOutput struct {
	ID     string        `json:"id,omitempty" jsonschema_description:"Caller-assigned component id"`
	Type   string        `json:"type" jsonschema_description:"Component type"`
	Matrix [2][2]float64 `json:"matrix" jsonschema_description:"ABCD matrix [[A,B],[C,D]]"`
	Offset [2]float64    `json:"offset" jsonschema_description:"Affine offset [dh, dtheta]"`
}

// RayOutput is a propagated ray in tool output.
type RayOutput struct {
	Label  string       `json:"label,omitempty"`
	Height float64      `json:"height" jsonschema_description:"Final height (mm)"`
	Angle  float64      `json:"angle" jsonschema_description:"Final angle (mrad)"`
	Path   [][2]float64 `json:"path" jsonschema_description:"[height, angle] at every element boundary, input first"`
}

// TraceOutput aligns with the HTTP TraceResponse.
type TraceOutput struct {
	Elements    []ElementOutput `json:"elements" jsonschema_description:"Per-element transfers in rail order"`
	TotalMatrix [2][2]float64   `json:"total_matrix" jsonschema_description:"System matrix"`
	TotalOffset [2]float64      `json:"total_offset" jsonschema_description:"System offset"`
	Rays        []RayOutput     `json:"propagated_rays" jsonschema_description:"Final ray states in input order"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Tracer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Tracer) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("optirail-mcp", strings.TrimSpace(optirail.Version)),
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: trace_rail
	traceTool := mcp.NewTool("trace_rail",
		mcp.WithDescription("Compose a rail of paraxial optical elements and propagate rays through it. Heights in mm, angles in mrad."),
		mcp.WithString("components", mcp.Required(), mcp.Description(`JSON array of components, e.g. [{"id":"d1","type":"free_space","params":{"length":100}}]`)),
		mcp.WithString("rays", mcp.Description(`JSON array of rays, e.g. [{"label":"axial","height":0,"angle":10}]`)),
		mcp.WithOutputSchema[TraceOutput](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleTrace))

	// TOOL: list_components
	s.mcpServer.AddTool(mcp.NewTool("list_components",
		mcp.WithDescription("List the component library: types, labels and parameter schemas."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.Components())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TraceOutput, error) {
	var req domain.TraceRequest

	compStr, _ := args["components"].(string)
	if compStr != "" {
		if err := json.Unmarshal([]byte(compStr), &req.Components); err != nil {
			return TraceOutput{}, fmt.Errorf("%w: components: %v", domain.ErrInvalidNumericInput, err)
		}
	}
	if rayStr, ok := args["rays"].(string); ok && rayStr != "" {
		if err := json.Unmarshal([]byte(rayStr), &req.Rays); err != nil {
			return TraceOutput{}, fmt.Errorf("%w: rays: %v", domain.ErrInvalidNumericInput, err)
		}
	}

	res, err := s.engine.Trace(ctx, req)
	if err != nil {
		slog.Warn("MCP Trace: request rejected", "error", err)
		return TraceOutput{}, fmt.Errorf("trace failed: %w", err)
	}
	return mapTraceOutput(res), nil
}

func (s *Server) registerResources() {
	// EXPOSE: optirail://components
	s.mcpServer.AddResource(mcp.NewResource(componentsURI, "Component Library",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Components())
		if err != nil {
			return nil, fmt.Errorf("failed to encode components: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      componentsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func mapTraceOutput(res *domain.TraceResult) TraceOutput {
	out := TraceOutput{
		Elements:    make([]ElementOutput, len(res.Elements)),
		TotalMatrix: res.TotalMatrix.Rows(),
		TotalOffset: [2]float64{res.TotalOffset.Height, res.TotalOffset.Angle},
		Rays:        make([]RayOutput, len(res.Rays)),
	}
	for i, el := range res.Elements {
		out.Elements[i] = ElementOutput{
			ID:     el.ID,
			Type:   el.Type,
			Matrix: el.Matrix.Rows(),
			Offset: [2]float64{el.Offset.Height, el.Offset.Angle},
		}
	}
	for i, ray := range res.Rays {
		path := make([][2]float64, len(ray.Path))
		for j, st := range ray.Path {
			path[j] = [2]float64{st.Height, st.Angle}
		}
		out.Rays[i] = RayOutput{Label: ray.Label, Height: ray.Final.Height, Angle: ray.Final.Angle, Path: path}
	}
	return out
}
