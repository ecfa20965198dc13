package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

type apiKeyRequest struct {
	Key string `mapstructure:"key"`
}

func (s *Server) settingsAvailable(w http.ResponseWriter) bool {
	if s.settings == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "settings store not configured"})
		return false
	}
	return true
}

func (s *Server) getAPIKeyStatus(w http.ResponseWriter, r *http.Request) {
	if !s.settingsAvailable(w) {
		return
	}
	_, err := s.settings.Get(r.Context(), ports.SettingAPIKey)
	if err != nil && !errors.Is(err, domain.ErrSettingNotFound) {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"configured": err == nil})
}

func (s *Server) putAPIKey(w http.ResponseWriter, r *http.Request) {
	if !s.settingsAvailable(w) {
		return
	}
	var req apiKeyRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		s.writeError(w, r, fmt.Errorf("%w: key is empty", domain.ErrInvalidInput))
		return
	}
	if err := s.settings.Set(r.Context(), ports.SettingAPIKey, key); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.InfoContext(r.Context(), "api key updated")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if !s.settingsAvailable(w) {
		return
	}
	if err := s.settings.Delete(r.Context(), ports.SettingAPIKey); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
