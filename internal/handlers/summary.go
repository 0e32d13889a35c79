package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"studyhub-backend/internal/models"
	"studyhub-backend/internal/services"
)

const maxUploadSize = 20 << 20 // 20 MB

type SummaryHandler struct {
	gemini  *services.GeminiService
	extract *services.FileExtractService
}

func NewSummaryHandler(gemini *services.GeminiService, extract *services.FileExtractService) *SummaryHandler {
	return &SummaryHandler{gemini: gemini, extract: extract}
}

// Summarize runs synchronously; the caller waits for the proxy. Validation
// failures never reach the proxy.
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateSummaryFields(req); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid summary request", fields, r))
		return
	}

	summary, err := h.gemini.Summarize(r.Context(), req.Text, req.SummaryType, int(req.SummaryLength))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResp("AI_UNAVAILABLE", "Failed to generate summary", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// Extract pulls plain text out of an uploaded .txt, .pdf or .docx file so
// it can be fed back into Summarize.
func (h *SummaryHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "File is required", r))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read file", r))
		return
	}

	text, err := h.extract.ExtractText(header.Filename, data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_FAILED", err.Error(), r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func validateSummaryFields(req models.SummarizeRequest) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Text) == "" {
		fields["text"] = "Text is required"
	}
	switch req.SummaryType {
	case "concise", "detailed", "bullet":
	default:
		fields["summary_type"] = "Must be one of: concise, detailed, bullet"
	}
	if req.SummaryLength < 10 || req.SummaryLength > 90 {
		fields["summary_length"] = "Must be between 10 and 90"
	}
	return fields
}
