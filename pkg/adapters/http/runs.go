package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aretw0/stepwise/internal/presentation/graph"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/generator"
	"github.com/go-chi/chi/v5"
)

type runRequest struct {
	Algorithm string        `mapstructure:"algorithm"`
	Values    []int         `mapstructure:"values"`
	Input     *domain.Input `mapstructure:"input"`
}

func (s *Server) createRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := decodeSchemaBody(r, "RunRequest", &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := domain.ParseAlgorithm(req.Algorithm)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in domain.Input
	switch {
	case req.Values != nil:
		in = domain.Input{Array: domain.NewArray(req.Values...)}
	case req.Input != nil:
		in = *req.Input
	default:
		in, err = generator.SampleInput(id, s.newRand())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	run, err := s.engine.Record(r.Context(), id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.InfoContext(r.Context(), "run created", "run_id", run.ID, "algorithm", id, "steps", len(run.Steps))
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.Runs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.engine.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) deleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getStep(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		s.writeError(w, r, fmt.Errorf("%w: step index %q", domain.ErrInvalidInput, chi.URLParam(r, "index")))
		return
	}
	run, err := s.engine.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if index >= len(run.Steps) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("step %d out of range: run has %d steps", index, len(run.Steps)),
		})
		return
	}
	step := run.Steps[index]

	if r.URL.Query().Get("format") == "mermaid" {
		if step.Graph == nil {
			s.writeError(w, r, fmt.Errorf("%w: %s steps have no graph", domain.ErrInvalidInput, run.Algorithm))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(step.Graph)))
		return
	}
	writeJSON(w, http.StatusOK, step)
}
