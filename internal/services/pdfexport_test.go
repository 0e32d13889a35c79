package services

import (
	"bytes"
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Physics Notes", "physicsnotes.pdf"},
		{"Chapter 4: Thermodynamics!", "chapter4thermodynamics.pdf"},
		{"ALL CAPS", "allcaps.pdf"},
		{"2026 exam prep", "2026examprep.pdf"},
		{"२०२६ notes", "notes.pdf"},
		{"???", "document.pdf"},
		{"", "document.pdf"},
		{"   ", "document.pdf"},
	}

	for _, tc := range tests {
		if got := Filename(tc.title); got != tc.want {
			t.Errorf("Filename(%q): expected %q, got %q", tc.title, tc.want, got)
		}
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	svc := NewPDFExportService()

	generatedAt, _ := time.Parse("2006-01-02 15:04", "2026-08-20 10:30")
	payload, err := svc.Generate("Biology Summary", "concise", 30, "Cells are the basic unit of life.\n\nThey divide by mitosis.", generatedAt)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if payload == "" {
		t.Fatal("Expected non-empty payload")
	}

	data, err := svc.Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Decoded payload is not a PDF document")
	}
}

func TestDecode_InvalidPayload(t *testing.T) {
	svc := NewPDFExportService()
	if _, err := svc.Decode("not!!!base64"); err == nil {
		t.Error("Expected error for invalid base64")
	}
}
