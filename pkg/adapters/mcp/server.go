// Package mcp exposes the stepwise catalog, runner and explanation service as
// Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/explain"
	"github.com/aretw0/stepwise/pkg/generator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	SampleGraphURI = "stepwise://graphs/sample"
	AlgorithmsURI  = "stepwise://algorithms"

	// DefaultMaxOperations caps the operation list returned by run_algorithm.
	DefaultMaxOperations = 50
)

// Engine is the part of stepwise.Engine the MCP server needs.
type Engine interface {
	Algorithms() []domain.AlgorithmInfo
	Record(ctx context.Context, id domain.AlgorithmID, in domain.Input) (*domain.Run, error)
	Load(ctx context.Context, runID string) (*domain.Run, error)
}

var _ Engine = (*stepwise.Engine)(nil)

// Explainer produces natural-language explanations. *explain.Service implements it.
type Explainer interface {
	ExplainComplexity(ctx context.Context, algorithm string) (string, error)
}

// AlgorithmList is the output of list_algorithms.
type AlgorithmList struct {
	Algorithms []domain.AlgorithmInfo `json:"algorithms" jsonschema_description:"Every runnable algorithm in display order"`
}

// RunArgs are the arguments of run_algorithm.
type RunArgs struct {
	Algorithm     string        `json:"algorithm"`
	Values        []int         `json:"values,omitempty"`
	Input         *domain.Input `json:"input,omitempty"`
	MaxOperations int           `json:"max_operations,omitempty"`
}

// RunSummary is the output of run_algorithm.
type RunSummary struct {
	RunID       string   `json:"run_id" jsonschema_description:"Identifier for get_step"`
	Algorithm   string   `json:"algorithm"`
	Steps       int      `json:"steps" jsonschema_description:"Number of recorded steps"`
	Comparisons int      `json:"comparisons"`
	Swaps       int      `json:"swaps"`
	Result      string   `json:"result" jsonschema_description:"Operation of the final step"`
	Operations  []string `json:"operations" jsonschema_description:"Leading step operations, in order"`
	Truncated   bool     `json:"truncated"`
}

// StepArgs are the arguments of get_step.
type StepArgs struct {
	RunID string `json:"run_id"`
	Index int    `json:"index"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	explainer Explainer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithExplainer enables the explain_complexity tool.
func WithExplainer(e Explainer) Option {
	return func(s *Server) { s.explainer = e }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("stepwise-mcp", strings.TrimSpace(stepwise.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func algorithmIDs() []string {
	var ids []string
	for _, info := range domain.Catalog() {
		ids = append(ids, string(info.ID))
	}
	return ids
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_algorithms",
		mcp.WithDescription("List the algorithms that can be run, with their complexity."),
		mcp.WithOutputSchema[AlgorithmList](),
	), mcp.NewStructuredToolHandler(s.handleListAlgorithms))

	s.mcpServer.AddTool(mcp.NewTool("run_algorithm",
		mcp.WithDescription("Run an algorithm and record every step. Omit values and input to use the sample instance."),
		mcp.WithString("algorithm", mcp.Required(), mcp.Enum(algorithmIDs()...), mcp.Description("Algorithm id")),
		mcp.WithArray("values", mcp.Items(map[string]any{"type": "integer"}), mcp.Description("Array to sort (sorting algorithms only)")),
		mcp.WithObject("input", mcp.Description("Full input: graph+start(+target), fibonacci{n}, knapsack{capacity,weights,values} or lcs{first,second}")),
		mcp.WithNumber("max_operations", mcp.Description("How many step operations to return (default 50)")),
		mcp.WithOutputSchema[RunSummary](),
	), mcp.NewStructuredToolHandler(s.handleRunAlgorithm))

	s.mcpServer.AddTool(mcp.NewTool("get_step",
		mcp.WithDescription("Fetch one recorded step of a run as JSON."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run id returned by run_algorithm")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based step index")),
	), mcp.NewStructuredToolHandler(s.handleGetStep))

	s.mcpServer.AddTool(mcp.NewTool("explain_complexity",
		mcp.WithDescription("Explain the time and space complexity of an algorithm in simple terms."),
		mcp.WithString("algorithm", mcp.Required(), mcp.Description("Algorithm id or name")),
	), s.handleExplainComplexity)
}

func (s *Server) handleListAlgorithms(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (AlgorithmList, error) {
	return AlgorithmList{Algorithms: s.engine.Algorithms()}, nil
}

func (s *Server) handleRunAlgorithm(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunSummary, error) {
	id, err := domain.ParseAlgorithm(args.Algorithm)
	if err != nil {
		return RunSummary{}, err
	}

	var in domain.Input
	switch {
	case args.Values != nil:
		in = domain.Input{Array: domain.NewArray(args.Values...)}
	case args.Input != nil:
		in = *args.Input
	default:
		in, err = generator.SampleInput(id, nil)
		if err != nil {
			return RunSummary{}, err
		}
	}

	run, err := s.engine.Record(ctx, id, in)
	if err != nil {
		s.logger.WarnContext(ctx, "MCP run_algorithm failed", "algorithm", id, "error", err)
		return RunSummary{}, fmt.Errorf("run failed: %w", err)
	}

	limit := args.MaxOperations
	if limit <= 0 {
		limit = DefaultMaxOperations
	}
	final, _ := run.Final()
	summary := RunSummary{
		RunID:       run.ID,
		Algorithm:   string(id),
		Steps:       len(run.Steps),
		Comparisons: final.Comparisons,
		Swaps:       final.Swaps,
		Result:      final.Operation,
		Truncated:   len(run.Steps) > limit,
	}
	for i, step := range run.Steps {
		if i == limit {
			break
		}
		summary.Operations = append(summary.Operations, step.Operation)
	}
	return summary, nil
}

func (s *Server) handleGetStep(ctx context.Context, request mcp.CallToolRequest, args StepArgs) (domain.Step, error) {
	run, err := s.engine.Load(ctx, args.RunID)
	if err != nil {
		return domain.Step{}, err
	}
	if args.Index < 0 || args.Index >= len(run.Steps) {
		return domain.Step{}, fmt.Errorf("%w: step %d out of range: run has %d steps", domain.ErrInvalidInput, args.Index, len(run.Steps))
	}
	return run.Steps[args.Index], nil
}

func (s *Server) handleExplainComplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	algorithm, err := request.RequireString("algorithm")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.explainer == nil {
		return mcp.NewToolResultError(explain.MessageMissingKey), nil
	}
	text, err := s.explainer.ExplainComplexity(ctx, algorithm)
	if err != nil {
		s.logger.WarnContext(ctx, "MCP explain_complexity failed", "algorithm", algorithm, "error", err)
		return mcp.NewToolResultError(explain.UserMessage(err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(SampleGraphURI, "Sample graph",
		mcp.WithResourceDescription("The five-node weighted demo graph used by BFS, DFS and Dijkstra"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(SampleGraphURI, map[string]any{
			"graph": generator.SampleGraph(),
			"start": generator.SampleStart,
		})
	})

	s.mcpServer.AddResource(mcp.NewResource(AlgorithmsURI, "Algorithm catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(AlgorithmsURI, s.engine.Algorithms())
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
