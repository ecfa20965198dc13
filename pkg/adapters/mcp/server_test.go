package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/explain"
	"github.com/aretw0/stepwise/pkg/generator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExplainer struct {
	text string
	err  error
}

func (s stubExplainer) ExplainComplexity(ctx context.Context, algorithm string) (string, error) {
	return s.text, s.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestListAlgorithms(t *testing.T) {
	s := NewServer(stepwise.New())
	out, err := s.handleListAlgorithms(context.Background(), callRequest("list_algorithms", nil), nil)
	require.NoError(t, err)
	assert.Len(t, out.Algorithms, 10)
}

func TestRunAlgorithm_Values(t *testing.T) {
	eng := stepwise.New()
	s := NewServer(eng)

	out, err := s.handleRunAlgorithm(context.Background(), callRequest("run_algorithm", nil), RunArgs{
		Algorithm: "bubble",
		Values:    []int{3, 1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, out.Steps)
	assert.Equal(t, 3, out.Comparisons)
	assert.Equal(t, 2, out.Swaps)
	assert.Equal(t, "Sorting complete!", out.Result)
	assert.Equal(t, "Comparing 3 and 1", out.Operations[0])
	assert.False(t, out.Truncated)

	step, err := s.handleGetStep(context.Background(), callRequest("get_step", nil), StepArgs{RunID: out.RunID, Index: 2})
	require.NoError(t, err)
	assert.Equal(t, "Comparing 3 and 2", step.Operation)

	_, err = s.handleGetStep(context.Background(), callRequest("get_step", nil), StepArgs{RunID: out.RunID, Index: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunAlgorithm_SampleAndTruncation(t *testing.T) {
	s := NewServer(stepwise.New())

	out, err := s.handleRunAlgorithm(context.Background(), callRequest("run_algorithm", nil), RunArgs{
		Algorithm:     "lcs",
		MaxOperations: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 85, out.Steps)
	assert.Len(t, out.Operations, 3)
	assert.True(t, out.Truncated)
	assert.Contains(t, out.Result, `"GTAB"`)
}

func TestRunAlgorithm_Input(t *testing.T) {
	s := NewServer(stepwise.New())

	out, err := s.handleRunAlgorithm(context.Background(), callRequest("run_algorithm", nil), RunArgs{
		Algorithm: "bfs",
		Input:     &domain.Input{Graph: generator.DisconnectedGraph(), Start: "X"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.Result, "X → Y")
	assert.NotContains(t, out.Result, "Z")
}

func TestRunAlgorithm_Rejections(t *testing.T) {
	s := NewServer(stepwise.New())
	ctx := context.Background()

	_, err := s.handleRunAlgorithm(ctx, callRequest("run_algorithm", nil), RunArgs{Algorithm: "heap"})
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)

	_, err = s.handleRunAlgorithm(ctx, callRequest("run_algorithm", nil), RunArgs{Algorithm: "dfs", Input: &domain.Input{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunAlgorithm_OversizeInput(t *testing.T) {
	s := NewServer(stepwise.New())
	ctx := context.Background()

	tests := []struct {
		name string
		args RunArgs
	}{
		{"values", RunArgs{Algorithm: "quick", Values: make([]int, domain.MaxArrayLen+1)}},
		{"knapsack", RunArgs{Algorithm: "knapsack", Input: &domain.Input{Knapsack: &domain.KnapsackProblem{
			Capacity: 400, Weights: []int{1, 2, 3}, Values: []int{1, 2, 3},
		}}}},
		{"lcs", RunArgs{Algorithm: "lcs", Input: &domain.Input{LCS: &domain.LCSProblem{
			First: strings.Repeat("G", domain.MaxSequenceLength+1), Second: "GT",
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleRunAlgorithm(ctx, callRequest("run_algorithm", nil), tt.args)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	call := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"run_algorithm","arguments":{"algorithm":"knapsack","input":{"knapsack":{"capacity":400,"weights":[1,2,3],"values":[1,2,3]}}}}}`)
	assert.Contains(t, call, `"isError":true`)
	assert.Contains(t, call, "capacity must be between")
}

func TestExplainComplexity(t *testing.T) {
	ctx := context.Background()
	req := callRequest("explain_complexity", map[string]any{"algorithm": "merge"})

	res, err := NewServer(stepwise.New(), WithExplainer(stubExplainer{text: "O(n log n) always."})).handleExplainComplexity(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "O(n log n) always.", res.Content[0].(mcp.TextContent).Text)

	res, err = NewServer(stepwise.New(), WithExplainer(stubExplainer{err: domain.ErrExternalService})).handleExplainComplexity(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, explain.MessageFailed, res.Content[0].(mcp.TextContent).Text)

	res, err = NewServer(stepwise.New()).handleExplainComplexity(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, explain.MessageMissingKey, res.Content[0].(mcp.TextContent).Text)

	res, err = NewServer(stepwise.New(), WithExplainer(stubExplainer{err: errors.New("unused")})).handleExplainComplexity(ctx, callRequest("explain_complexity", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError, "algorithm is required")
}

func handle(t *testing.T, s *Server, msg string) string {
	t.Helper()
	resp := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(msg))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestProtocol_ToolsAndResources(t *testing.T) {
	s := NewServer(stepwise.New())

	tools := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	for _, name := range []string{"list_algorithms", "run_algorithm", "get_step", "explain_complexity"} {
		assert.Contains(t, tools, `"name":"`+name+`"`)
	}

	call := handle(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"run_algorithm","arguments":{"algorithm":"fibonacci","input":{"fibonacci":{"n":10}}}}}`)
	assert.Contains(t, call, "F(10) = 55")

	res := handle(t, s, `{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"stepwise://graphs/sample"}}`)
	assert.Contains(t, res, `\"start\":\"A\"`)
}
