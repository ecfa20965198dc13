package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/explain"
	"github.com/aretw0/stepwise/pkg/generator"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExplainer struct {
	text string
	err  error
	got  explain.Request
}

func (s *stubExplainer) Explain(ctx context.Context, req explain.Request) (string, error) {
	s.got = req
	return s.text, s.err
}

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	base := []Option{WithRand(func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) })}
	return NewHandler(stepwise.New(), append(base, opts...)...)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "stepwise-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(stepwise.Version), info["version"])
}

func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	doc, err := Spec()
	require.NoError(t, err)

	s := &Server{metrics: http.NotFoundHandler()}
	err = chi.Walk(s.routes(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		item := doc.Paths.Value(route)
		if !assert.NotNil(t, item, "undocumented path %s", route) {
			return nil
		}
		assert.NotNil(t, item.GetOperation(method), "undocumented operation %s %s", method, route)
		return nil
	})
	require.NoError(t, err)

	w := do(t, newTestHandler(t), http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodOptions, "/runs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListAlgorithms(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodGet, "/algorithms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	algos := decodeJSON[[]domain.AlgorithmInfo](t, w)
	assert.Len(t, algos, 10)
}

func TestGenerateRandom(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/generate/random", map[string]int{"size": 5})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON[map[string][]domain.Element](t, w)
	require.Len(t, resp["array"], 5)
	for _, el := range resp["array"] {
		assert.GreaterOrEqual(t, el.Value, generator.MinValue)
		assert.LessOrEqual(t, el.Value, generator.MaxValue)
	}

	w = do(t, h, http.MethodPost, "/generate/random", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON[map[string][]domain.Element](t, w)["array"], generator.DefaultSize)

	w = do(t, h, http.MethodPost, "/generate/random", map[string]int{"size": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateCustom(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/generate/custom", map[string]string{"values": "5, 3, x, 8 0 900"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON[map[string][]domain.Element](t, w)
	assert.Equal(t, []int{5, 3, 8}, domain.Values(resp["array"]))

	w = do(t, h, http.MethodPost, "/generate/custom", map[string]string{"values": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/generate/custom", `{"values": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSampleGraph(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/graphs/sample", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"start":"A"`)

	w = do(t, h, http.MethodGet, "/graphs/sample?format=mermaid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR"))
}

func TestRunLifecycle(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/runs", map[string]any{"algorithm": "bubble", "values": []int{3, 1, 2}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	run := decodeJSON[domain.Run](t, w)
	require.Len(t, run.Steps, 6)

	w = do(t, h, http.MethodGet, "/runs", nil)
	assert.Equal(t, []string{run.ID}, decodeJSON[map[string][]string](t, w)["runs"])

	w = do(t, h, http.MethodGet, "/runs/"+run.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, run.Steps, decodeJSON[domain.Run](t, w).Steps)

	w = do(t, h, http.MethodGet, "/runs/"+run.ID+"/steps/5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	last := decodeJSON[domain.Step](t, w)
	assert.Equal(t, "Sorting complete!", last.Operation)
	assert.Equal(t, []int{1, 2, 3}, domain.Values(last.Array))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/runs/"+run.ID+"/steps/6", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/runs/"+run.ID+"/steps/x", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/runs/"+run.ID+"/steps/0?format=mermaid", nil).Code)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/runs/"+run.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/runs/"+run.ID, nil).Code)
}

func TestCreateRun_Rejections(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body any
	}{
		{"unknown algorithm", map[string]any{"algorithm": "heap"}},
		{"unknown field", map[string]any{"algorithm": "bubble", "size": 3}},
		{"negative value", map[string]any{"algorithm": "bubble", "values": []int{3, -1}}},
		{"missing start", map[string]any{"algorithm": "bfs", "input": map[string]any{"graph": generator.SampleGraph()}}},
		{"fibonacci too large", map[string]any{"algorithm": "fibonacci", "input": map[string]any{"fibonacci": map[string]int{"n": 41}}}},
		{"too many values", map[string]any{"algorithm": "bubble", "values": make([]int, domain.MaxArrayLen+1)}},
		{"knapsack capacity too large", map[string]any{"algorithm": "knapsack", "input": map[string]any{"knapsack": map[string]any{
			"capacity": 400, "weights": []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, "values": []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		}}}},
		{"knapsack table too large", map[string]any{"algorithm": "knapsack", "input": map[string]any{"knapsack": map[string]any{
			"capacity": 100, "weights": []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, "values": []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		}}}},
		{"lcs sequence too long", map[string]any{"algorithm": "lcs", "input": map[string]any{"lcs": map[string]string{
			"first": strings.Repeat("A", domain.MaxSequenceLength+1), "second": "AB",
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/runs", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCreateRun_SampleInput(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/runs", map[string]string{"algorithm": "knapsack"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	run := decodeJSON[domain.Run](t, w)
	final, ok := run.Final()
	require.True(t, ok)
	assert.Contains(t, final.Operation, "Maximum value 15")
}

func TestCreateRun_GraphInputAndMermaidStep(t *testing.T) {
	h := newTestHandler(t)

	input := domain.Input{Graph: generator.SampleGraph(), Start: "A"}
	w := do(t, h, http.MethodPost, "/runs", map[string]any{"algorithm": "dijkstra", "input": input})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	run := decodeJSON[domain.Run](t, w)
	final, _ := run.Final()
	assert.Equal(t, "Shortest path to E: A → B → E (distance 5)", final.Operation)

	w = do(t, h, http.MethodGet, "/runs/"+run.ID+"/steps/0?format=mermaid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph LR")
}

func TestPlayRun(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/runs", map[string]any{"algorithm": "bubble", "values": []int{3, 1, 2}})
	require.Equal(t, http.StatusCreated, w.Code)
	run := decodeJSON[domain.Run](t, w)

	w = do(t, h, http.MethodGet, "/runs/"+run.ID+"/play?speed=100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: ping\ndata: connected\n\n"))
	assert.Equal(t, 6, strings.Count(body, "event: step\n"))
	for i := range 6 {
		assert.Contains(t, body, "id: "+string(rune('0'+i))+"\n")
	}
	assert.Contains(t, body, "event: complete\ndata: {\"comparisons\":3,\"steps\":6,\"swaps\":2}")
	assert.Less(t, strings.Index(body, "Comparing 3 and 1"), strings.Index(body, "Sorting complete!"))
}

func TestPlayRun_Diff(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/runs", map[string]any{"algorithm": "bubble", "values": []int{2, 1}})
	run := decodeJSON[domain.Run](t, w)

	w = do(t, h, http.MethodGet, "/runs/"+run.ID+"/play?speed=100&diff=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, len(run.Steps), strings.Count(w.Body.String(), "event: step\n"))
	assert.NotContains(t, w.Body.String(), `"timestamp"`, "diff payloads are not step events")
}

func TestPlayRun_Rejections(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/runs", map[string]any{"algorithm": "bubble", "values": []int{2, 1}})
	run := decodeJSON[domain.Run](t, w)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/runs/"+run.ID+"/play?speed=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/runs/"+run.ID+"/play?speed=fast", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/runs/"+run.ID+"/play?diff=maybe", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/runs/missing/play", nil).Code)
}

func TestExplain(t *testing.T) {
	stub := &stubExplainer{text: "Because the pair is out of order."}
	h := newTestHandler(t, WithExplainer(stub))

	w := do(t, h, http.MethodPost, "/explain/step", map[string]any{
		"algorithm":        "bubble",
		"current_state":    []int{3, 1, 2},
		"step_description": "Swapping 3 and 1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"explanation":"Because the pair is out of order."}`, w.Body.String())
	assert.Equal(t, explain.KindStep, stub.got.Kind)
	assert.Equal(t, "Swapping 3 and 1", stub.got.Step)

	w = do(t, h, http.MethodPost, "/review", map[string]string{"algorithm": "quick", "code": "function f() {}"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, explain.KindReview, stub.got.Kind)
	assert.Equal(t, "function f() {}", stub.got.Code)

	w = do(t, h, http.MethodPost, "/explain/complexity", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExplain_Errors(t *testing.T) {
	stub := &stubExplainer{err: errors.Join(domain.ErrExternalService, errors.New("timeout"))}
	h := newTestHandler(t, WithExplainer(stub))

	w := do(t, h, http.MethodPost, "/explain/complexity", map[string]string{"algorithm": "merge"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), explain.MessageFailed)

	stub.err = domain.ErrMissingCredential
	w = do(t, h, http.MethodPost, "/explain/complexity", map[string]string{"algorithm": "merge"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), explain.MessageMissingKey)

	w = do(t, newTestHandler(t), http.MethodPost, "/explain/complexity", map[string]string{"algorithm": "merge"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), explain.MessageMissingKey)
}

func TestSettingsAPIKey(t *testing.T) {
	assert.Equal(t, http.StatusNotImplemented, do(t, newTestHandler(t), http.MethodGet, "/settings/api-key", nil).Code)

	store := memory.NewSettingsStore()
	h := newTestHandler(t, WithSettings(store))

	w := do(t, h, http.MethodGet, "/settings/api-key", nil)
	assert.JSONEq(t, `{"configured":false}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/settings/api-key", map[string]string{"key": "  "}).Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/settings/api-key", map[string]string{"key": "sk-123"}).Code)

	w = do(t, h, http.MethodGet, "/settings/api-key", nil)
	assert.JSONEq(t, `{"configured":true}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "sk-123")

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/settings/api-key", nil).Code)
	w = do(t, h, http.MethodGet, "/settings/api-key", nil)
	assert.JSONEq(t, `{"configured":false}`, w.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	m := observability.NewMetrics()
	eng := stepwise.New(stepwise.WithLifecycleHooks(m.Hooks()))
	h := NewHandler(eng, WithMetrics(m.Handler()))

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/runs", map[string]any{"algorithm": "bubble", "values": []int{2, 1}}).Code)

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stepwise_runs_total")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrUnknownAlgorithm, http.StatusBadRequest},
		{domain.ErrRunNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrExternalService, http.StatusBadGateway},
		{domain.ErrRunnerInternal, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestValidateSchema_RunRequest(t *testing.T) {
	assert.NoError(t, validateSchema("RunRequest", map[string]any{"algorithm": "bubble", "values": []any{3.0, 1.0}}))

	long := make([]any, domain.MaxArrayLen+1)
	for i := range long {
		long[i] = 1.0
	}
	assert.ErrorIs(t, validateSchema("RunRequest", map[string]any{"algorithm": "bubble", "values": long}), domain.ErrInvalidInput)
	assert.ErrorIs(t, validateSchema("RunRequest", map[string]any{"algorithm": "bubble", "values": []any{1.5}}), domain.ErrInvalidInput)
	assert.ErrorIs(t, validateSchema("RunRequest", map[string]any{
		"algorithm": "lcs",
		"input":     map[string]any{"lcs": map[string]any{"first": strings.Repeat("A", domain.MaxSequenceLength+1)}},
	}), domain.ErrInvalidInput)

	assert.Error(t, validateSchema("NoSuchSchema", map[string]any{}))
}
