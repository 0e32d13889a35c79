package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyhub-backend/internal/events"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/repository"
)

type StudySessionHandler struct {
	repo *repository.StudySessionRepo
	bus  *events.Bus
}

func NewStudySessionHandler(repo *repository.StudySessionRepo, bus *events.Bus) *StudySessionHandler {
	return &StudySessionHandler{repo: repo, bus: bus}
}

func (h *StudySessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := validateSessionFields(req)
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	session := &models.StudySession{
		UserID:          userID,
		Subject:         strings.TrimSpace(req.Subject),
		Topic:           strings.TrimSpace(req.Topic),
		Date:            date,
		StartTime:       req.StartTime,
		Duration:        req.Duration,
		Notes:           req.Notes,
		ClientRequestID: req.ClientRequestID,
	}
	if req.Progress != nil {
		session.Progress = int(*req.Progress)
	}

	if err := h.repo.Create(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create study session", r))
		return
	}

	h.bus.Publish(r.Context(), userID, events.SessionCreated, events.SessionCreatedPayload{Session: *session})

	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}

func (h *StudySessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var (
		sessions []models.StudySession
		err      error
	)
	if r.URL.Query().Get("upcoming") == "true" {
		sessions, err = h.repo.ListUpcoming(r.Context(), userID)
	} else {
		sessions, err = h.repo.ListByUser(r.Context(), userID)
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list study sessions", r))
		return
	}

	if sessions == nil {
		sessions = []models.StudySession{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *StudySessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	var req models.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	update := repository.SessionFieldUpdate{
		Subject:   req.Subject,
		Topic:     req.Topic,
		StartTime: req.StartTime,
		Duration:  req.Duration,
		Notes:     req.Notes,
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "date must be YYYY-MM-DD", r))
			return
		}
		update.Date = &date
	}

	if req.Progress != nil {
		progress := int(*req.Progress)
		if progress < 0 || progress > 100 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "progress must be between 0 and 100", r))
			return
		}
		update.Progress = &progress
	}

	session, err := h.repo.UpdateFields(r.Context(), sessionID, userID, update)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Study session not found", r))
		return
	}

	h.bus.Publish(r.Context(), userID, events.SessionUpdated, events.SessionUpdatedPayload{
		SessionID: session.ID,
		Subject:   session.Subject,
		Progress:  session.Progress,
		Completed: session.Completed(),
	})
	if session.Completed() {
		h.bus.Publish(r.Context(), userID, events.SessionCompleted, events.SessionCompletedPayload{
			SessionID: session.ID,
			Subject:   session.Subject,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

// Complete marks a session done by setting its progress to 100; there is no
// separate completed flag to drift out of sync.
func (h *StudySessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	session, err := h.repo.UpdateProgress(r.Context(), sessionID, userID, 100)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Study session not found", r))
		return
	}

	h.bus.Publish(r.Context(), userID, events.SessionCompleted, events.SessionCompletedPayload{
		SessionID: session.ID,
		Subject:   session.Subject,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

// Delete removes the session and returns its snapshot so the client can
// offer a single-shot undo via Restore.
func (h *StudySessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	session, err := h.repo.Delete(r.Context(), sessionID, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Study session not found", r))
		return
	}

	h.bus.Publish(r.Context(), userID, events.SessionDeleted, events.SessionDeletedPayload{
		SessionID: session.ID,
		Subject:   session.Subject,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Study session deleted",
		"snapshot": session.Snapshot(),
	})
}

// Restore re-creates a deleted session from its snapshot. The result is a
// new record with a new identity; subscribers still holding the deleted ID
// must treat this as a distinct session.
func (h *StudySessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		Snapshot   models.SessionSnapshot `json:"snapshot"`
		ReplacesID uuid.UUID              `json:"replaces_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	date, err := time.Parse("2006-01-02", req.Snapshot.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "snapshot date must be YYYY-MM-DD", r))
		return
	}
	progress := int(req.Snapshot.Progress)
	if req.Snapshot.Subject == "" || progress < 0 || progress > 100 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid snapshot", r))
		return
	}

	session := &models.StudySession{
		UserID:    userID,
		Subject:   req.Snapshot.Subject,
		Topic:     req.Snapshot.Topic,
		Date:      date,
		StartTime: req.Snapshot.StartTime,
		Duration:  req.Snapshot.Duration,
		Notes:     req.Snapshot.Notes,
		Progress:  progress,
	}

	if err := h.repo.Create(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to restore study session", r))
		return
	}

	h.bus.Publish(r.Context(), userID, events.SessionRestored, events.SessionRestoredPayload{
		Session:    *session,
		ReplacesID: req.ReplacesID,
	})

	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}

func validateSessionFields(req models.CreateSessionRequest) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(req.Subject) == "" {
		fields["subject"] = "Subject is required"
	}
	if strings.TrimSpace(req.Topic) == "" {
		fields["topic"] = "Topic is required"
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		fields["date"] = "Date must be YYYY-MM-DD"
	}
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		fields["start_time"] = "Start time must be HH:MM"
	}
	if strings.TrimSpace(req.Duration) == "" {
		fields["duration"] = "Duration is required"
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		fields["progress"] = "Progress must be between 0 and 100"
	}

	return fields
}
