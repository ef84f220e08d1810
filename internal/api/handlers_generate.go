package api

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/docshape/internal/content"
	"github.com/dgallion1/docshape/internal/extract"
	"github.com/dgallion1/docshape/internal/generate"
)

const maxPromptBytes = 1 << 20

type structuredRequest struct {
	Prompt          string `json:"prompt"`
	Context         string `json:"context"`
	ContentType     string `json:"contentType"`
	ResponseFormat  string `json:"responseFormat"`
	IncludeExamples bool   `json:"includeExamples"`
}

type performance struct {
	ProcessingTimeMs int64   `json:"processingTimeMs"`
	PromptTokens     int     `json:"promptTokens"`
	ResponseTokens   int     `json:"responseTokens"`
	TotalTokens      int     `json:"totalTokens"`
	Confidence       float64 `json:"confidence"`
	Quality          float64 `json:"quality"`
}

type generationMetadata struct {
	RequestID   string    `json:"requestId"`
	Timestamp   time.Time `json:"timestamp"`
	Model       string    `json:"model"`
	Format      string    `json:"format,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
}

type structuredResponse struct {
	Raw         string                    `json:"raw"`
	Structured  content.StructuredContent `json:"structured"`
	Performance performance               `json:"performance"`
	Metadata    generationMetadata        `json:"metadata"`
}

func (s *Server) handleStructured(w http.ResponseWriter, r *http.Request) {
	var req structuredRequest
	if !decodeJSON(w, r, maxPromptBytes, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		jsonError(w, "prompt is required", http.StatusBadRequest)
		return
	}

	sreq := generate.StructuredRequest{
		Prompt:          req.Prompt,
		Context:         req.Context,
		ContentType:     generate.ContentType(req.ContentType),
		Format:          generate.Format(req.ResponseFormat),
		IncludeExamples: req.IncludeExamples,
	}.Normalized()
	prompt := generate.BuildStructuredPrompt(sreq)

	start := s.now()
	raw, err := s.gen.Generate(r.Context(), prompt)
	if err != nil {
		s.log.Error("structured generation failed", "error", err)
		jsonError(w, "generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sc := s.processor.Process(raw, req.IncludeExamples)
	promptTokens, responseTokens := generate.EstimateTokens(prompt), generate.EstimateTokens(raw)

	writeJSON(w, http.StatusOK, structuredResponse{
		Raw:        raw,
		Structured: sc,
		Performance: performance{
			ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
			PromptTokens:     promptTokens,
			ResponseTokens:   responseTokens,
			TotalTokens:      promptTokens + responseTokens,
			Confidence:       content.Confidence(raw),
			Quality:          content.Quality(sc),
		},
		Metadata: s.metadata(string(sreq.Format), string(sreq.ContentType)),
	})
}

type ragRequest struct {
	Prompt string `json:"prompt"`
}

type ragResponse struct {
	Result   extract.RagRecord  `json:"result"`
	Metadata generationMetadata `json:"metadata"`
}

func (s *Server) handleRagStructured(w http.ResponseWriter, r *http.Request) {
	var req ragRequest
	if !decodeJSON(w, r, maxPromptBytes, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		jsonError(w, "prompt is required", http.StatusBadRequest)
		return
	}

	raw, err := s.gen.Generate(r.Context(), generate.ApplyTemplate(s.cfg.MessageTemplate, req.Prompt))
	if err != nil {
		s.log.Error("rag generation failed", "error", err)
		jsonError(w, "generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ragResponse{
		Result:   s.recoverRecord(raw),
		Metadata: s.metadata("json", ""),
	})
}

type titleRequest struct {
	Response string `json:"response"`
}

func (s *Server) handleTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decodeJSON(w, r, maxPromptBytes, &req) {
		return
	}
	if strings.TrimSpace(req.Response) == "" {
		jsonError(w, "response is required", http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.Response) > generate.MaxTitleSource {
		jsonError(w, "response too long for title generation", http.StatusBadRequest)
		return
	}

	raw, err := s.gen.Generate(r.Context(), generate.TitlePrompt(req.Response))
	if err != nil {
		s.log.Error("title generation failed", "error", err)
		jsonError(w, "generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	title := generate.CleanTitle(raw)
	if title == "" {
		jsonError(w, "empty title generated", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"title": title})
}

func (s *Server) metadata(format, contentType string) generationMetadata {
	return generationMetadata{
		RequestID:   s.newID(),
		Timestamp:   s.now().UTC(),
		Model:       s.gen.Model(),
		Format:      format,
		ContentType: contentType,
	}
}
