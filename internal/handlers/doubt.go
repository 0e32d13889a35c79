package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyhub-backend/internal/events"
	"studyhub-backend/internal/logger"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/repository"
	"studyhub-backend/internal/worker"
)

type DoubtHandler struct {
	repo  *repository.DoubtRepo
	redis *redis.Client
	bus   *events.Bus
	log   *logger.Logger
}

func NewDoubtHandler(repo *repository.DoubtRepo, redisClient *redis.Client, bus *events.Bus, log *logger.Logger) *DoubtHandler {
	return &DoubtHandler{repo: repo, redis: redisClient, bus: bus, log: log}
}

// Create persists the doubt and its first message atomically, then — and
// only then — queues the AI answer. If answering later fails, the worker
// appends an apology message; the question itself is never lost.
func (h *DoubtHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateDoubtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Question is required", r))
		return
	}

	doubt := &models.Doubt{
		UserID:          userID,
		Question:        strings.TrimSpace(req.Question),
		Subject:         strings.TrimSpace(req.Subject),
		ClientRequestID: req.ClientRequestID,
	}

	firstMessage, err := h.repo.CreateWithFirstMessage(r.Context(), doubt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create doubt", r))
		return
	}

	messages := []models.DoubtMessage{*firstMessage}
	if err := h.enqueueAnswer(r, models.AnswerJob{
		DoubtID:  doubt.ID,
		UserID:   userID,
		Question: doubt.Question,
	}); err != nil {
		if apology := h.appendApology(r, doubt.ID, err); apology != nil {
			messages = append(messages, *apology)
		}
	}

	h.bus.Publish(r.Context(), userID, events.DoubtCreated, events.DoubtCreatedPayload{
		DoubtID:  doubt.ID,
		Subject:  doubt.Subject,
		Question: doubt.Question,
	})

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"doubt":    doubt,
		"messages": messages,
	})
}

func (h *DoubtHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	doubts, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list doubts", r))
		return
	}

	if doubts == nil {
		doubts = []models.Doubt{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"doubts": doubts})
}

func (h *DoubtHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	doubtID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid doubt ID", r))
		return
	}

	doubt, err := h.repo.GetByID(r.Context(), doubtID, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Doubt not found", r))
		return
	}

	messages, err := h.repo.ListMessages(r.Context(), doubtID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load messages", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"doubt":    doubt,
		"messages": messages,
	})
}

// Reply appends a follow-up user message and queues its answer with the
// thread so far as context.
func (h *DoubtHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	doubtID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid doubt ID", r))
		return
	}

	var req models.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
		return
	}

	doubt, err := h.repo.GetByID(r.Context(), doubtID, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Doubt not found", r))
		return
	}

	history, err := h.repo.ListMessages(r.Context(), doubtID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load messages", r))
		return
	}

	msg := &models.DoubtMessage{
		DoubtID: doubtID,
		Sender:  models.SenderUser,
		Content: strings.TrimSpace(req.Content),
	}
	if err := h.repo.AppendMessage(r.Context(), msg); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to append message", r))
		return
	}

	if err := h.enqueueAnswer(r, models.AnswerJob{
		DoubtID:  doubtID,
		UserID:   userID,
		Question: msg.Content,
		Context:  threadContext(history),
	}); err != nil {
		h.appendApology(r, doubtID, err)
	}

	h.bus.Publish(r.Context(), userID, events.DoubtUpdated, events.DoubtUpdatedPayload{
		DoubtID:    doubtID,
		Solved:     doubt.Solved,
		LastSender: models.SenderUser,
	})

	writeJSON(w, http.StatusAccepted, map[string]interface{}{"message": msg})
}

func (h *DoubtHandler) Solve(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	doubtID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid doubt ID", r))
		return
	}

	if err := h.repo.MarkSolved(r.Context(), doubtID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Doubt not found", r))
		return
	}

	h.bus.Publish(r.Context(), userID, events.DoubtUpdated, events.DoubtUpdatedPayload{
		DoubtID: doubtID,
		Solved:  true,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Doubt marked as solved"})
}

func (h *DoubtHandler) enqueueAnswer(r *http.Request, job models.AnswerJob) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return h.redis.LPush(r.Context(), worker.AnswerQueue, string(jobBytes)).Err()
}

// appendApology records a visible failure reply when the answer job could
// not be queued, so the thread never waits on an answer that will never
// come. The question itself is already durably written at this point.
func (h *DoubtHandler) appendApology(r *http.Request, doubtID uuid.UUID, cause error) *models.DoubtMessage {
	h.log.Error("failed to enqueue answer job", "doubt_id", doubtID, "error", cause)

	apology := &models.DoubtMessage{
		DoubtID: doubtID,
		Sender:  models.SenderAI,
		Content: worker.ApologyMessage,
	}
	if err := h.repo.AppendMessage(r.Context(), apology); err != nil {
		h.log.Error("failed to append apology message", "doubt_id", doubtID, "error", err)
		return nil
	}
	return apology
}

func threadContext(messages []models.DoubtMessage) string {
	var b strings.Builder
	for i := range messages {
		label := "Student"
		if messages[i].Sender == models.SenderAI {
			label = "Tutor"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, messages[i].Content)
	}
	return b.String()
}
