package events

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"studyhub-backend/internal/models"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	sessionID := uuid.New()

	data, err := Encode(SessionUpdated, SessionUpdatedPayload{
		SessionID: sessionID,
		Subject:   "Math",
		Progress:  100,
		Completed: true,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	kind, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if kind != SessionUpdated {
		t.Errorf("Expected kind %q, got %q", SessionUpdated, kind)
	}

	p, ok := payload.(*SessionUpdatedPayload)
	if !ok {
		t.Fatalf("Expected *SessionUpdatedPayload, got %T", payload)
	}
	if p.SessionID != sessionID || p.Subject != "Math" || p.Progress != 100 || !p.Completed {
		t.Errorf("Payload fields lost in round trip: %+v", p)
	}
}

func TestEncode_UnknownKind(t *testing.T) {
	if _, err := Encode(Kind("session-archived"), SessionDeletedPayload{}); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown kind", `{"type":"session-archived","payload":{}}`},
		{"not json", `not-json`},
		{"payload wrong shape", `{"type":"session-updated","payload":"a string"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Decode([]byte(tc.input)); err == nil {
				t.Errorf("Expected error for input %s", tc.input)
			}
		})
	}
}

func TestSessionCompleted_PayloadShape(t *testing.T) {
	data, err := Encode(SessionCompleted, SessionCompletedPayload{
		SessionID: uuid.New(),
		Subject:   "History",
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(env.Payload, &fields); err != nil {
		t.Fatalf("Unmarshal payload failed: %v", err)
	}

	// Identification and display fields only. Anything resembling an
	// aggregate must come from a store read, not the event.
	for key := range fields {
		if strings.Contains(key, "total") || strings.Contains(key, "count") || strings.Contains(key, "percent") {
			t.Errorf("Completed event must not carry aggregate field %q", key)
		}
	}
	if len(fields) != 2 {
		t.Errorf("Expected exactly session_id and subject, got %v", fields)
	}
}

func TestSessionRestored_CarriesBothIdentities(t *testing.T) {
	replaced := uuid.New()
	restored := models.StudySession{ID: uuid.New(), Subject: "Biology"}

	data, err := Encode(SessionRestored, SessionRestoredPayload{
		Session:    restored,
		ReplacesID: replaced,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	p := payload.(*SessionRestoredPayload)
	if p.Session.ID != restored.ID {
		t.Error("Restored session identity lost")
	}
	if p.ReplacesID != replaced {
		t.Error("Replaced session identity lost")
	}
	if p.Session.ID == p.ReplacesID {
		t.Error("Restored session must have a fresh identity")
	}
}
