package services

import (
	"testing"
)

func TestParseFlashcards_JSON(t *testing.T) {
	raw := `[{"front":"What is osmosis?","back":"Movement of water across a membrane"},{"front":"Define enthalpy","back":"Total heat content of a system"}]`

	cards := ParseFlashcards(raw)
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Front != "What is osmosis?" {
		t.Errorf("Unexpected front: %q", cards[0].Front)
	}
	if cards[1].Back != "Total heat content of a system" {
		t.Errorf("Unexpected back: %q", cards[1].Back)
	}
}

func TestParseFlashcards_FencedJSONWithProse(t *testing.T) {
	raw := "Here are your flashcards:\n```json\n[{\"front\":\"Q1\",\"back\":\"A1\"}]\n```"

	cards := ParseFlashcards(raw)
	if len(cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(cards))
	}
	if cards[0].Front != "Q1" || cards[0].Back != "A1" {
		t.Errorf("Unexpected card: %+v", cards[0])
	}
}

func TestParseFlashcards_TextFallback(t *testing.T) {
	raw := `Flashcard 1:
Front: What year did WWII end?
Back: 1945

Flashcard 2:
Front: Capital of France
Back: Paris`

	cards := ParseFlashcards(raw)
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Front != "What year did WWII end?" || cards[0].Back != "1945" {
		t.Errorf("Unexpected first card: %+v", cards[0])
	}
	if cards[1].Front != "Capital of France" || cards[1].Back != "Paris" {
		t.Errorf("Unexpected second card: %+v", cards[1])
	}
}

func TestParseFlashcards_SkipsEmptyFields(t *testing.T) {
	raw := `[{"front":"Q1","back":"A1"},{"front":"  ","back":"A2"},{"front":"Q3","back":""}]`

	cards := ParseFlashcards(raw)
	if len(cards) != 1 {
		t.Fatalf("Expected 1 usable card, got %d", len(cards))
	}
	if cards[0].Front != "Q1" {
		t.Errorf("Unexpected card: %+v", cards[0])
	}
}

func TestParseFlashcards_Unparseable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"plain prose", "I could not generate flashcards from this text."},
		{"broken json no pattern", `{"front": "Q1"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if cards := ParseFlashcards(tc.raw); len(cards) != 0 {
				t.Errorf("Expected no cards, got %d", len(cards))
			}
		})
	}
}
