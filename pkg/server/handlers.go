package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opnlabs/advisor/pkg/analyzer"
	"github.com/opnlabs/advisor/pkg/models"
	"github.com/opnlabs/advisor/pkg/store"
)

type analyzeResponse struct {
	Status string `json:"status"`
	models.AnalysisResult
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleAnalyze accepts {"yaml_content": "..."} and returns the analysis.
// Parse failures and oversized inputs are client errors, never a 500.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "yaml_content is required and must be a string")
		return
	}

	result, err := s.analyzer.Analyze(req.YAMLContent)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrInputTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		case analyzer.IsParseError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("analysis failed", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to analyze pipeline")
		}
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Status: "success", AnalysisResult: result})
}

// handleList returns all pipelines known to the provider.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	pipelines, err := s.provider.List(r.Context())
	if err != nil {
		s.logger.Error("listing pipelines failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list pipelines")
		return
	}
	writeJSON(w, http.StatusOK, pipelines)
}

// handleYAML returns the stored YAML definition of a pipeline.
func (s *Server) handleYAML(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	content, err := s.provider.YAML(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "pipeline not found")
			return
		}
		s.logger.Error("fetching pipeline YAML failed", "err", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to fetch pipeline YAML")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"yaml_content": content})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Message: message})
}
