package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyhub-backend/internal/models"
)

// ─── Session Validation Tests ───

func validSessionRequest() models.CreateSessionRequest {
	return models.CreateSessionRequest{
		Subject:   "Math",
		Topic:     "Integrals",
		Date:      "2026-09-01",
		StartTime: "09:30",
		Duration:  "1.5 hours",
	}
}

func TestValidateSessionFields_Valid(t *testing.T) {
	if fields := validateSessionFields(validSessionRequest()); len(fields) != 0 {
		t.Errorf("Expected no field errors, got %v", fields)
	}
}

func TestValidateSessionFields_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateSessionRequest)
		field  string
	}{
		{"missing subject", func(r *models.CreateSessionRequest) { r.Subject = "  " }, "subject"},
		{"missing topic", func(r *models.CreateSessionRequest) { r.Topic = "" }, "topic"},
		{"bad date format", func(r *models.CreateSessionRequest) { r.Date = "01/09/2026" }, "date"},
		{"bad time format", func(r *models.CreateSessionRequest) { r.StartTime = "9:30 AM" }, "start_time"},
		{"missing duration", func(r *models.CreateSessionRequest) { r.Duration = "" }, "duration"},
		{"progress too high", func(r *models.CreateSessionRequest) { p := models.FlexInt(150); r.Progress = &p }, "progress"},
		{"negative progress", func(r *models.CreateSessionRequest) { p := models.FlexInt(-1); r.Progress = &p }, "progress"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validSessionRequest()
			tc.mutate(&req)
			fields := validateSessionFields(req)
			if _, ok := fields[tc.field]; !ok {
				t.Errorf("Expected error on field %q, got %v", tc.field, fields)
			}
		})
	}
}

func TestCreateSessionRequest_StringProgress(t *testing.T) {
	body := `{"subject":"Math","topic":"Limits","date":"2026-09-01","start_time":"10:00","duration":"1 hour","progress":"40"}`

	var req models.CreateSessionRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Progress == nil || int(*req.Progress) != 40 {
		t.Errorf("Expected progress 40, got %v", req.Progress)
	}
	if fields := validateSessionFields(req); len(fields) != 0 {
		t.Errorf("Expected no field errors, got %v", fields)
	}
}

// ─── Doubt Enqueue Tests ───

func TestEnqueueAnswer_SurfacesQueueFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	defer rdb.Close()

	h := &DoubtHandler{redis: rdb}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doubts", nil)

	err := h.enqueueAnswer(req, models.AnswerJob{
		DoubtID:  uuid.New(),
		UserID:   uuid.New(),
		Question: "Why is the sky blue?",
	})
	if err == nil {
		t.Fatal("Expected error when the answer queue is unreachable")
	}
}

// ─── Summary Validation Tests ───

func TestValidateSummaryFields(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SummarizeRequest
		wantErr []string
	}{
		{
			"valid concise",
			models.SummarizeRequest{Text: "Some lecture text", SummaryType: "concise", SummaryLength: 30},
			nil,
		},
		{
			"valid bullet at bounds",
			models.SummarizeRequest{Text: "Some lecture text", SummaryType: "bullet", SummaryLength: 90},
			nil,
		},
		{
			"missing text",
			models.SummarizeRequest{SummaryType: "detailed", SummaryLength: 50},
			[]string{"text"},
		},
		{
			"unknown type",
			models.SummarizeRequest{Text: "x", SummaryType: "verbose", SummaryLength: 50},
			[]string{"summary_type"},
		},
		{
			"length too low",
			models.SummarizeRequest{Text: "x", SummaryType: "concise", SummaryLength: 5},
			[]string{"summary_length"},
		},
		{
			"length too high",
			models.SummarizeRequest{Text: "x", SummaryType: "concise", SummaryLength: 95},
			[]string{"summary_length"},
		},
		{
			"everything wrong",
			models.SummarizeRequest{},
			[]string{"text", "summary_type", "summary_length"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := validateSummaryFields(tc.req)
			if len(tc.wantErr) == 0 && len(fields) != 0 {
				t.Errorf("Expected no field errors, got %v", fields)
			}
			for _, f := range tc.wantErr {
				if _, ok := fields[f]; !ok {
					t.Errorf("Expected error on field %q, got %v", f, fields)
				}
			}
		})
	}
}
