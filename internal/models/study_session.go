package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type StudySession struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Subject         string    `json:"subject"`
	Topic           string    `json:"topic"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"start_time"` // "HH:MM"
	Duration        string    `json:"duration"`   // free text, e.g. "1.5 hours"
	Notes           *string   `json:"notes,omitempty"`
	Progress        int       `json:"progress"` // 0-100
	ClientRequestID *string   `json:"client_request_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Completed is derived: a session is complete exactly when progress is 100.
// There is no independently settable completed field anywhere in the system.
func (s *StudySession) Completed() bool {
	return s.Progress == 100
}

func (s StudySession) MarshalJSON() ([]byte, error) {
	type alias StudySession
	return json.Marshal(struct {
		alias
		Completed bool `json:"completed"`
	}{alias(s), s.Completed()})
}

// SessionSnapshot captures the field values of a deleted session so a
// client-side undo can re-create it. The restored row gets a fresh identity.
type SessionSnapshot struct {
	Subject   string  `json:"subject"`
	Topic     string  `json:"topic"`
	Date      string  `json:"date"` // "2006-01-02"
	StartTime string  `json:"start_time"`
	Duration  string  `json:"duration"`
	Notes     *string `json:"notes,omitempty"`
	Progress  FlexInt `json:"progress"`
}

func (s *StudySession) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		Subject:   s.Subject,
		Topic:     s.Topic,
		Date:      s.Date.Format("2006-01-02"),
		StartTime: s.StartTime,
		Duration:  s.Duration,
		Notes:     s.Notes,
		Progress:  FlexInt(s.Progress),
	}
}

type CreateSessionRequest struct {
	Subject         string   `json:"subject"`
	Topic           string   `json:"topic"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	Duration        string   `json:"duration"`
	Notes           *string  `json:"notes"`
	Progress        *FlexInt `json:"progress"`
	ClientRequestID *string  `json:"client_request_id"`
}

type UpdateSessionRequest struct {
	Subject   *string  `json:"subject"`
	Topic     *string  `json:"topic"`
	Date      *string  `json:"date"`
	StartTime *string  `json:"start_time"`
	Duration  *string  `json:"duration"`
	Notes     *string  `json:"notes"`
	Progress  *FlexInt `json:"progress"`
}
