package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStudySession_CompletedDerived(t *testing.T) {
	tests := []struct {
		progress int
		want     bool
	}{
		{0, false},
		{50, false},
		{99, false},
		{100, true},
	}

	for _, tc := range tests {
		s := StudySession{Progress: tc.progress}
		if got := s.Completed(); got != tc.want {
			t.Errorf("Progress %d: expected completed=%v, got %v", tc.progress, tc.want, got)
		}
	}
}

func TestStudySession_MarshalIncludesCompleted(t *testing.T) {
	s := StudySession{
		ID:       uuid.New(),
		Subject:  "Physics",
		Progress: 100,
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	completed, ok := out["completed"].(bool)
	if !ok {
		t.Fatal("Expected completed field in JSON output")
	}
	if !completed {
		t.Error("Expected completed=true for progress 100")
	}
}

func TestStudySession_SnapshotRoundTrip(t *testing.T) {
	notes := "review chapter 4"
	date, _ := time.Parse("2006-01-02", "2026-09-15")
	s := StudySession{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Subject:   "Chemistry",
		Topic:     "Organic reactions",
		Date:      date,
		StartTime: "14:30",
		Duration:  "2 hours",
		Notes:     &notes,
		Progress:  60,
	}

	snap := s.Snapshot()

	if snap.Subject != s.Subject || snap.Topic != s.Topic {
		t.Error("Snapshot lost subject or topic")
	}
	if snap.Date != "2026-09-15" {
		t.Errorf("Expected date 2026-09-15, got %q", snap.Date)
	}
	if snap.StartTime != s.StartTime || snap.Duration != s.Duration {
		t.Error("Snapshot lost start time or duration")
	}
	if snap.Notes == nil || *snap.Notes != notes {
		t.Error("Snapshot lost notes")
	}
	if int(snap.Progress) != s.Progress {
		t.Errorf("Expected progress %d, got %d", s.Progress, int(snap.Progress))
	}

	// A snapshot never carries the deleted row's identity.
	data, _ := json.Marshal(snap)
	var out map[string]interface{}
	json.Unmarshal(data, &out)
	if _, ok := out["id"]; ok {
		t.Error("Snapshot must not carry the session id")
	}
	if _, ok := out["user_id"]; ok {
		t.Error("Snapshot must not carry the user id")
	}
}
