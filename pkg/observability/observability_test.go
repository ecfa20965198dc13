package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	h := m.Hooks()

	h.OnRunGenerated(&domain.RunEvent{Algorithm: domain.AlgorithmBubble, Steps: 6, Duration: time.Millisecond})
	h.OnRunGenerated(&domain.RunEvent{Algorithm: domain.AlgorithmBubble, Err: errors.New("boom")})
	h.OnStepPublished(&domain.StepEvent{})
	h.OnStepPublished(&domain.StepEvent{})
	h.OnStatusChange(&domain.StatusEvent{From: domain.StatusIdle, To: domain.StatusRunning})

	count, err := testutil.GatherAndCount(m.Registry)
	assert.NoError(t, err)
	assert.Equal(t, 6, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `stepwise_runs_total{algorithm="bubble",outcome="ok"} 1`)
	assert.Contains(t, body, `stepwise_runs_total{algorithm="bubble",outcome="error"} 1`)
	assert.Contains(t, body, `stepwise_steps_published_total 2`)
	assert.Contains(t, body, `stepwise_playback_transitions_total{from="idle",to="running"} 1`)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := observability.LoggingHooks(logger)

	h.OnRunGenerated(&domain.RunEvent{Algorithm: domain.AlgorithmLCS, Steps: 85})
	h.OnStatusChange(&domain.StatusEvent{From: domain.StatusRunning, To: domain.StatusPaused})

	out := buf.String()
	assert.Contains(t, out, "run_generated")
	assert.Contains(t, out, "algorithm=lcs")
	assert.Contains(t, out, "to=paused")
}
