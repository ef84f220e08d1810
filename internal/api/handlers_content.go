package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docshape/internal/content"
	"github.com/dgallion1/docshape/internal/extract"
	"github.com/dgallion1/docshape/internal/parser"
	"github.com/dgallion1/docshape/internal/render"
	"golang.org/x/sync/errgroup"
)

type processRequest struct {
	Text            string `json:"text"`
	IncludeExamples bool   `json:"includeExamples"`
}

type batchRequest struct {
	Texts           []string `json:"texts"`
	IncludeExamples bool     `json:"includeExamples"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if !decodeJSON(w, r, s.cfg.MaxUploadBytes, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.processor.Process(req.Text, req.IncludeExamples))
}

func (s *Server) handleRecover(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if !decodeJSON(w, r, s.cfg.MaxUploadBytes, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.recoverRecord(req.Text))
}

// recoverRecord runs the recovery engine and logs the fallback path and
// any graph links that point at unknown nodes.
func (s *Server) recoverRecord(raw string) extract.RagRecord {
	res, err := extract.Recover(raw)
	rec, accepted := extract.Normalize(raw, res, err)
	if !accepted {
		s.log.Info("structured response not recovered, using fallback", "error", err, "len", len(raw))
		return rec
	}
	if dangling := extract.DanglingLinks(rec.RelationshipGraph); len(dangling) > 0 {
		s.log.Warn("relationship graph has dangling links", "count", len(dangling), "strategy", res.Strategy())
	}
	return rec
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, s.cfg.MaxUploadBytes*int64(s.cfg.MaxBatch), &req) {
		return
	}
	if len(req.Texts) == 0 {
		jsonError(w, "at least one text is required", http.StatusBadRequest)
		return
	}
	if len(req.Texts) > s.cfg.MaxBatch {
		jsonError(w, fmt.Sprintf("batch exceeds max size (%d texts)", s.cfg.MaxBatch), http.StatusBadRequest)
		return
	}

	results := make([]content.StructuredContent, len(req.Texts))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.cfg.MaxConcurrentStructure)
	for i, text := range req.Texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.processor.Process(text, req.IncludeExamples)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		jsonError(w, "batch cancelled: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if !decodeJSON(w, r, s.cfg.MaxUploadBytes, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	sc := s.processor.Process(req.Text, req.IncludeExamples)
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, render.Markdown(sc))
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.HTML(&buf, sc); err != nil {
		s.log.Error("render failed", "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

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

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	p, err := parser.ForFile(filename, s.cfg.PDFFallbackPdftotext)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("parse upload failed", "filename", filename, "error", err)
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if strings.TrimSpace(doc.Text) == "" {
		jsonError(w, "no text found in file", http.StatusUnprocessableEntity)
		return
	}

	includeExamples := r.FormValue("includeExamples") == "true"
	writeJSON(w, http.StatusOK, map[string]any{
		"filename":   filename,
		"title":      doc.Title,
		"structured": s.processor.Process(doc.Text, includeExamples),
	})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
