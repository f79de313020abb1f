package api

import (
	"net/http"

	"github.com/dgallion1/questgen/internal/questions"
)

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": questions.Languages(),
		"default":   s.cfg.DefaultLanguage,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"phases":      s.stats.Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
