package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/repository"
	"studyhub-backend/internal/services"
)

type PDFHandler struct {
	repo   *repository.PDFRepo
	export *services.PDFExportService
}

func NewPDFHandler(repo *repository.PDFRepo, export *services.PDFExportService) *PDFHandler {
	return &PDFHandler{repo: repo, export: export}
}

func (h *PDFHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.ExportPDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Title and content are required", r))
		return
	}

	payload, err := h.export.Generate(req.Title, req.SummaryType, int(req.SummaryLength), req.Content, time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to generate PDF", r))
		return
	}

	saved := &models.SavedPDF{
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Payload: payload,
	}
	if err := h.repo.Create(r.Context(), saved); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save PDF", r))
		return
	}

	saved.Payload = ""
	writeJSON(w, http.StatusCreated, map[string]interface{}{"pdf": saved})
}

func (h *PDFHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	pdfs, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list PDFs", r))
		return
	}
	if pdfs == nil {
		pdfs = []models.SavedPDF{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pdfs": pdfs})
}

// Download streams the decoded document under a sanitized filename.
func (h *PDFHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	pdfID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid PDF ID", r))
		return
	}

	saved, err := h.repo.GetByID(r.Context(), pdfID, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "PDF not found", r))
		return
	}

	data, err := h.export.Decode(saved.Payload)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Stored PDF payload is corrupt", r))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.Filename(saved.Title)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *PDFHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	pdfID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid PDF ID", r))
		return
	}

	if _, err := h.repo.GetByID(r.Context(), pdfID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "PDF not found", r))
		return
	}
	if err := h.repo.Delete(r.Context(), pdfID, userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete PDF", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "PDF deleted"})
}
