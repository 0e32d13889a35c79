package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedPDF is immutable once created. Payload is the base64-encoded PDF
// document; list queries omit it.
type SavedPDF struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportPDFRequest struct {
	Title         string  `json:"title"`
	SummaryType   string  `json:"summary_type"`
	SummaryLength FlexInt `json:"summary_length"`
	Content       string  `json:"content"`
}
