package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

type Doubt struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Question        string    `json:"question"`
	Subject         string    `json:"subject"`
	Solved          bool      `json:"solved"`
	ClientRequestID *string   `json:"client_request_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type DoubtMessage struct {
	ID        uuid.UUID `json:"id"`
	DoubtID   uuid.UUID `json:"doubt_id"`
	Sender    string    `json:"sender"` // "user" | "ai"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateDoubtRequest struct {
	Question        string  `json:"question"`
	Subject         string  `json:"subject"`
	ClientRequestID *string `json:"client_request_id"`
}

type ReplyRequest struct {
	Content string `json:"content"`
}

// AnswerJob is the payload pushed on queue:doubt-answer after the question
// (or follow-up message) has been durably written.
type AnswerJob struct {
	DoubtID  uuid.UUID `json:"doubt_id"`
	UserID   uuid.UUID `json:"user_id"`
	Question string    `json:"question"`
	Context  string    `json:"context,omitempty"`
}
