package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dgallion1/docedit/internal/editor"
	"github.com/dgallion1/docedit/internal/parser"
	"github.com/dgallion1/docedit/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleBatchEdit queues an asynchronous parse-edit-render job: the
// uploaded file never becomes an interactive session, it is processed
// start to finish by the worker pool.
func (s *Server) handleBatchEdit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	var ops []editor.Op
	if err := json.Unmarshal([]byte(r.FormValue("ops")), &ops); err != nil {
		jsonError(w, "invalid ops: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(ops) == 0 {
		jsonError(w, "at least one operation is required", http.StatusBadRequest)
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = "markdown"
	}
	if format != "markdown" && format != "ooxml" {
		jsonError(w, fmt.Sprintf("unknown format %q (want markdown or ooxml)", format), http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:           pipeline.NewID(),
		Filename:     filename,
		Status:       pipeline.StatusQueued,
		OutputFormat: format,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	job.SetInput(data, ops)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.log.Info("batch job queued", "job_id", job.ID, "filename", filename, "ops", len(ops), "format", format)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"filename": filename,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/batch/%s/status", job.ID),
	})
}

func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleBatchResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted && snap.Status != pipeline.StatusPartial {
		jsonError(w, fmt.Sprintf("job is %s, result not ready", snap.Status), http.StatusConflict)
		return
	}

	contentType := "text/markdown; charset=utf-8"
	if snap.OutputFormat == "ooxml" {
		contentType = "application/xml; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(job.Result())
}
