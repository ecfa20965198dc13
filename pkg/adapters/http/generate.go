package http

import (
	"net/http"

	"github.com/aretw0/stepwise/internal/presentation/graph"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/generator"
)

type randomRequest struct {
	Size int `mapstructure:"size"`
}

type customRequest struct {
	Values string `mapstructure:"values"`
}

func (s *Server) generateRandom(w http.ResponseWriter, r *http.Request) {
	var req randomRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Size == 0 {
		req.Size = generator.DefaultSize
	}
	arr, err := generator.RandomArray(s.newRand(), req.Size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Element{"array": arr})
}

func (s *Server) generateCustom(w http.ResponseWriter, r *http.Request) {
	var req customRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	arr, err := generator.ParseCustom(req.Values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Element{"array": arr})
}

func (s *Server) getSampleGraph(w http.ResponseWriter, r *http.Request) {
	g := generator.SampleGraph()
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(&domain.GraphSnapshot{Nodes: g.Nodes, Edges: g.Edges})))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"graph": g,
		"start": generator.SampleStart,
	})
}
