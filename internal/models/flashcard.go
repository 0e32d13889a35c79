package models

import (
	"time"

	"github.com/google/uuid"
)

type FlashcardDeck struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	CardCount int       `json:"card_count"` // derived by COUNT at read time, never stored
	CreatedAt time.Time `json:"created_at"`
}

type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateDeckRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

type CardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type GenerateFlashcardsRequest struct {
	DeckID  uuid.UUID `json:"deck_id"`
	Text    string    `json:"text"`
	Subject string    `json:"subject"`
	Count   FlexInt   `json:"count"`
}

// GeneratedCard is the proxy's parsed output before cards get identities.
type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}
