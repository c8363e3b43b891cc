package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/docedit/internal/editor"
	"github.com/go-chi/chi/v5"
)

// handleEdits applies a list of formatting operations to an open
// document. Operations are applied in order; a failed operation is
// reported but does not stop the rest of the list.
func (s *Server) handleEdits(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	sess := s.sessions.Get(docID)
	if sess == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var ops []editor.Op
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(ops) == 0 {
		jsonError(w, "at least one operation is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	applied := 0
	changed := 0
	var opErrors []string

	sess.Lock()
	for i, op := range ops {
		n, err := editor.ApplyOp(sess.Root, op)
		if err != nil {
			opErrors = append(opErrors, fmt.Sprintf("op %d: %v", i, err))
			continue
		}
		applied++
		changed += n
	}
	sess.Unlock()
	sess.Touch()

	s.stats.EditApplied(changed, time.Since(start))
	s.log.Info("edits applied", "doc_id", docID, "ops", len(ops), "applied", applied, "changed", changed, "errors", len(opErrors))

	if opErrors == nil {
		opErrors = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":  docID,
		"applied": applied,
		"changed": changed,
		"errors":  opErrors,
	})
}
