package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/player"
	"github.com/go-chi/chi/v5"
)

// playRun replays a recorded run over Server-Sent Events. Each published step
// is one "step" event; a final "complete" event carries the totals. With
// diff=true the step payload is a domain.StepDiff against the previous step.
func (s *Server) playRun(w http.ResponseWriter, r *http.Request) {
	speed := player.DefaultSpeed
	if v := r.URL.Query().Get("speed"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < domain.MinSpeed || n > domain.MaxSpeed {
			s.writeError(w, r, fmt.Errorf("%w: speed must be between %d and %d, got %q", domain.ErrInvalidInput, domain.MinSpeed, domain.MaxSpeed, v))
			return
		}
		speed = n
	}
	useDiff := false
	if v := r.URL.Query().Get("diff"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: diff %q", domain.ErrInvalidInput, v))
			return
		}
		useDiff = b
	}

	run, err := s.engine.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("playRun: streaming not supported")
		return
	}

	// Buffered for the whole run so hooks never block the player.
	events := make(chan *domain.StepEvent, len(run.Steps))
	done := make(chan struct{})
	var once sync.Once
	p := s.engine.NewPlayer(player.WithLifecycleHooks(domain.LifecycleHooks{
		OnStepPublished: func(e *domain.StepEvent) { events <- e },
		OnStatusChange: func(e *domain.StatusEvent) {
			if e.To == domain.StatusComplete {
				once.Do(func() { close(done) })
			}
		},
	}))
	defer p.Reset()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	if err := p.Start(run.Steps, domain.IntervalForSpeed(speed)); err != nil {
		s.logger.ErrorContext(r.Context(), "playback failed to start", "run_id", run.ID, "error", err)
		return
	}
	s.logger.DebugContext(r.Context(), "playback started", "run_id", run.ID, "speed", speed)

	var prev *domain.Step
	send := func(e *domain.StepEvent) {
		var payload any = e
		if useDiff {
			payload = domain.Diff(e.Index, prev, e.Step)
		}
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger.Error("playRun: encode failed", "error", err)
			return
		}
		fmt.Fprintf(w, "event: step\nid: %d\ndata: %s\n\n", e.Index, data)
		flusher.Flush()
		step := e.Step
		prev = &step
	}

	for {
		select {
		case e := <-events:
			send(e)
		case <-done:
			// The final step is queued before the status change; drain it.
		drain:
			for {
				select {
				case e := <-events:
					send(e)
				default:
					break drain
				}
			}
			final, _ := run.Final()
			data, _ := json.Marshal(map[string]int{
				"steps":       len(run.Steps),
				"comparisons": final.Comparisons,
				"swaps":       final.Swaps,
			})
			fmt.Fprintf(w, "event: complete\ndata: %s\n\n", data)
			flusher.Flush()
			return
		case <-r.Context().Done():
			s.logger.DebugContext(r.Context(), "playback client disconnected", "run_id", run.ID)
			return
		}
	}
}
