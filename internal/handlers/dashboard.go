package handlers

import (
	"net/http"

	"studyhub-backend/internal/aggregate"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/repository"
)

// DashboardHandler serves derived views only. Everything here is recomputed
// from fresh store reads on each request; broadcast events tell clients
// when to re-fetch, never what the numbers are.
type DashboardHandler struct {
	sessions   *repository.StudySessionRepo
	doubts     *repository.DoubtRepo
	flashcards *repository.FlashcardRepo
	pdfs       *repository.PDFRepo
}

func NewDashboardHandler(
	sessions *repository.StudySessionRepo,
	doubts *repository.DoubtRepo,
	flashcards *repository.FlashcardRepo,
	pdfs *repository.PDFRepo,
) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, doubts: doubts, flashcards: flashcards, pdfs: pdfs}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	totalSessions, completedSessions, err := h.sessions.CountByUser(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load stats", r))
		return
	}
	totalDoubts, solvedDoubts, err := h.doubts.CountByUser(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load stats", r))
		return
	}
	totalDecks, totalCards, err := h.flashcards.CountByUser(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load stats", r))
		return
	}
	totalPDFs, err := h.pdfs.CountByUser(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load stats", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats": map[string]int{
			"total_sessions":     totalSessions,
			"completed_sessions": completedSessions,
			"total_doubts":       totalDoubts,
			"solved_doubts":      solvedDoubts,
			"total_decks":        totalDecks,
			"total_cards":        totalCards,
			"saved_pdfs":         totalPDFs,
		},
	})
}

func (h *DashboardHandler) SubjectProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := h.sessions.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subjects": aggregate.BySubject(sessions),
	})
}

func (h *DashboardHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := h.sessions.ListUpcoming(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load upcoming sessions", r))
		return
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}
