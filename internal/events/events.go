// Package events defines the dashboard-updates broadcast channel: a typed
// event bus carried over Redis pub/sub that keeps independently mounted
// views (dashboard, planner, doubt list) consistent without a shared store.
//
// The channel is advisory. Payloads carry denormalized display fields only;
// any consumer that needs an aggregate re-derives it from a store read, never
// from incremental payload math.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"studyhub-backend/internal/models"
)

type Kind string

const (
	SessionCreated   Kind = "session-created"
	SessionUpdated   Kind = "session-updated"
	SessionCompleted Kind = "session-completed"
	SessionDeleted   Kind = "session-deleted"
	SessionRestored  Kind = "session-restored"
	DoubtCreated     Kind = "doubt-created"
	DoubtUpdated     Kind = "doubt-updated"
)

// Envelope is the wire form published to dashboard-updates:<user_id>.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Payload schemas, one per kind.

type SessionCreatedPayload struct {
	Session models.StudySession `json:"session"`
}

type SessionUpdatedPayload struct {
	SessionID uuid.UUID `json:"session_id"`
	Subject   string    `json:"subject"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
}

type SessionCompletedPayload struct {
	SessionID uuid.UUID `json:"session_id"`
	Subject   string    `json:"subject"`
}

type SessionDeletedPayload struct {
	SessionID uuid.UUID `json:"session_id"`
	Subject   string    `json:"subject"`
}

// SessionRestoredPayload carries both identities: the restored session is a
// new record, not a resurrection of the deleted one.
type SessionRestoredPayload struct {
	Session    models.StudySession `json:"session"`
	ReplacesID uuid.UUID           `json:"replaces_id"`
}

type DoubtCreatedPayload struct {
	DoubtID  uuid.UUID `json:"doubt_id"`
	Subject  string    `json:"subject"`
	Question string    `json:"question"`
}

type DoubtUpdatedPayload struct {
	DoubtID    uuid.UUID `json:"doubt_id"`
	Solved     bool      `json:"solved"`
	LastSender string    `json:"last_sender,omitempty"`
}

var schemas = map[Kind]func() interface{}{
	SessionCreated:   func() interface{} { return &SessionCreatedPayload{} },
	SessionUpdated:   func() interface{} { return &SessionUpdatedPayload{} },
	SessionCompleted: func() interface{} { return &SessionCompletedPayload{} },
	SessionDeleted:   func() interface{} { return &SessionDeletedPayload{} },
	SessionRestored:  func() interface{} { return &SessionRestoredPayload{} },
	DoubtCreated:     func() interface{} { return &DoubtCreatedPayload{} },
	DoubtUpdated:     func() interface{} { return &DoubtUpdatedPayload{} },
}

// Encode wraps a payload in its envelope. The payload must match the kind's
// declared schema type.
func Encode(kind Kind, payload interface{}) ([]byte, error) {
	if _, ok := schemas[kind]; !ok {
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return json.Marshal(Envelope{Type: kind, Payload: raw})
}

// Decode parses an envelope and its payload against the declared schema.
// Unknown kinds and malformed payloads are errors, never silently skipped.
func Decode(data []byte) (Kind, interface{}, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("malformed event envelope: %w", err)
	}

	newPayload, ok := schemas[env.Type]
	if !ok {
		return "", nil, fmt.Errorf("unknown event kind %q", env.Type)
	}

	payload := newPayload()
	if err := json.Unmarshal(env.Payload, payload); err != nil {
		return "", nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
	}
	return env.Type, payload, nil
}
