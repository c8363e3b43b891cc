package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"open_documents": len(s.sessions.List()),
		"queue_depth":    s.orchestrator.QueueDepth(),
		"stats":          s.stats.Snapshot(),
	})
}
