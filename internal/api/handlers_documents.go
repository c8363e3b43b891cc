package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docedit/internal/docprops"
	"github.com/dgallion1/docedit/internal/doctree"
	"github.com/dgallion1/docedit/internal/outline"
	"github.com/dgallion1/docedit/internal/parser"
	"github.com/dgallion1/docedit/internal/pipeline"
	"github.com/dgallion1/docedit/internal/writer"
	"github.com/go-chi/chi/v5"
)

// handleOpenDocument accepts a multipart upload, parses it into a
// document tree, and registers an editing session for it.
func (s *Server) handleOpenDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

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

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Error("parse failed", "filename", filename, "error", err)
		jsonError(w, "failed to parse document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	root := doctree.Build(doc.Blocks)
	props := docprops.New()
	if doc.Title != "" {
		props.Set(docprops.KeyTitle, doc.Title)
	}

	id := pipeline.NewID()
	s.sessions.Open(id, filename, root, props)
	s.stats.DocumentOpened()

	s.log.Info("document opened", "doc_id", id, "filename", filename, "blocks", len(doc.Blocks))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   id,
		"filename": filename,
		"blocks":   len(doc.Blocks),
		"title":    doc.Title,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	sessions := s.sessions.List()
	docs := make([]map[string]any, 0, len(sessions))
	for _, sess := range sessions {
		docs = append(docs, map[string]any{
			"doc_id":     sess.ID,
			"filename":   sess.Filename,
			"created_at": sess.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs, "count": len(docs)})
}

func (s *Server) handleCloseDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.sessions.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	s.log.Info("document closed", "doc_id", docID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	sess := s.sessions.Get(docID)
	if sess == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	sess.Lock()
	entries := outline.Flatten(sess.Root)
	sess.Unlock()
	sess.Touch()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":  docID,
		"entries": entries,
		"count":   len(entries),
	})
}

// handleExport renders the document tree in the requested format.
// Nodes holding a valid source snapshot are emitted verbatim.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	sess := s.sessions.Get(docID)
	if sess == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}

	var rendered, contentType string
	sess.Lock()
	switch format {
	case "markdown":
		rendered = writer.Markdown(sess.Root, sess.Props)
		contentType = "text/markdown; charset=utf-8"
	case "ooxml":
		rendered = writer.BodyXML(sess.Root)
		contentType = "application/xml; charset=utf-8"
	}
	sess.Unlock()
	sess.Touch()

	if contentType == "" {
		jsonError(w, fmt.Sprintf("unknown format %q (want markdown or ooxml)", format), http.StatusBadRequest)
		return
	}

	s.stats.ExportRendered()
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, strings.NewReader(rendered))
}

func (s *Server) handleGetProperties(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	sess := s.sessions.Get(docID)
	if sess == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":     docID,
		"properties": sess.Props.All(),
	})
}

func (s *Server) handleSetProperties(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	sess := s.sessions.Get(docID)
	if sess == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var props map[string]string
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	for k, v := range props {
		sess.Props.Set(k, v)
	}
	sess.Touch()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":     docID,
		"properties": sess.Props.All(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
