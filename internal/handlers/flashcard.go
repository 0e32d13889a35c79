package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/repository"
	"studyhub-backend/internal/services"
)

type FlashcardHandler struct {
	repo   *repository.FlashcardRepo
	gemini *services.GeminiService
}

func NewFlashcardHandler(repo *repository.FlashcardRepo, gemini *services.GeminiService) *FlashcardHandler {
	return &FlashcardHandler{repo: repo, gemini: gemini}
}

func (h *FlashcardHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Deck name is required", r))
		return
	}

	deck := &models.FlashcardDeck{
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		Subject: strings.TrimSpace(req.Subject),
	}
	if err := h.repo.CreateDeck(r.Context(), deck); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"deck": deck})
}

func (h *FlashcardHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.repo.ListDecksByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list decks", r))
		return
	}
	if decks == nil {
		decks = []models.FlashcardDeck{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *FlashcardHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	deck, err := h.repo.GetDeckByID(r.Context(), deckID, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	cards, err := h.repo.GetCardsByDeck(r.Context(), deckID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load cards", r))
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deck":  deck,
		"cards": cards,
	})
}

func (h *FlashcardHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	if _, err := h.repo.GetDeckByID(r.Context(), deckID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}
	if err := h.repo.DeleteDeck(r.Context(), deckID, userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}

func (h *FlashcardHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	var req models.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Front) == "" || strings.TrimSpace(req.Back) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Both front and back are required", r))
		return
	}

	if _, err := h.repo.GetDeckByID(r.Context(), deckID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	card := &models.Flashcard{
		DeckID: deckID,
		Front:  strings.TrimSpace(req.Front),
		Back:   strings.TrimSpace(req.Back),
	}
	if err := h.repo.AddCard(r.Context(), card); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to add card", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"card": card})
}

func (h *FlashcardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	var req models.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Front) == "" || strings.TrimSpace(req.Back) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Both front and back are required", r))
		return
	}

	card, err := h.repo.UpdateCard(r.Context(), cardID, userID, strings.TrimSpace(req.Front), strings.TrimSpace(req.Back))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Card not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"card": card})
}

func (h *FlashcardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	if err := h.repo.DeleteCard(r.Context(), cardID, userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete card", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted"})
}

// Generate asks the AI proxy for cards from the supplied text and stores
// the batch in one transaction. The response deck carries the re-derived
// card count.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.GenerateFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Source text is required", r))
		return
	}
	count := int(req.Count)
	if count <= 0 {
		count = 10
	}
	if count > 50 {
		count = 50
	}

	if _, err := h.repo.GetDeckByID(r.Context(), req.DeckID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	generated, err := h.gemini.GenerateFlashcards(r.Context(), req.Text, req.Subject, count)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResp("AI_UNAVAILABLE", "Failed to generate flashcards", r))
		return
	}

	cards, err := h.repo.CreateCards(r.Context(), req.DeckID, generated)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save generated cards", r))
		return
	}

	deck, err := h.repo.GetDeckByID(r.Context(), req.DeckID, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to reload deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"deck":  deck,
		"cards": cards,
	})
}
