package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/explain"
)

func (s *Server) explain(kind explain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req explain.Request
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		req.Kind = kind
		if strings.TrimSpace(req.Algorithm) == "" {
			s.writeError(w, r, fmt.Errorf("%w: algorithm is required", domain.ErrInvalidInput))
			return
		}

		if s.explainer == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": explain.MessageMissingKey})
			return
		}
		text, err := s.explainer.Explain(r.Context(), req)
		if err != nil {
			s.logger.WarnContext(r.Context(), "explanation failed", "kind", kind, "algorithm", req.Algorithm, "error", err)
			writeJSON(w, statusFor(err), map[string]string{"error": explain.UserMessage(err)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"explanation": text})
	}
}
