package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"studyhub-backend/internal/models"
)

// GeminiService is the generation proxy: a stateless request/response bridge
// to the upstream model. Any failure here is recoverable and reported to the
// caller; it never takes the service down.
type GeminiService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	rateChan chan struct{} // Token bucket
}

func NewGeminiService(apiKey string, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-3-flash-preview")
	model.SetTemperature(0.3)
	model.SetTopP(0.95)

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:   client,
		model:    model,
		rateChan: rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// AnswerDoubt generates an answer to a student question. threadContext holds
// the earlier messages of the doubt for follow-ups; empty for a new doubt.
func (s *GeminiService) AnswerDoubt(ctx context.Context, question, threadContext string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	prompt := buildDoubtPrompt(question, threadContext)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	answer := strings.TrimSpace(extractText(resp))
	if answer == "" {
		return "", fmt.Errorf("Gemini returned an empty answer")
	}
	return answer, nil
}

// Summarize condenses free text. summaryType is concise, detailed, or
// bullet; lengthPercent is 10-90 (target length relative to the input).
func (s *GeminiService) Summarize(ctx context.Context, text, summaryType string, lengthPercent int) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	prompt := buildSummaryPrompt(text, summaryType, lengthPercent)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	summary := strings.TrimSpace(extractText(resp))
	if summary == "" {
		return "", fmt.Errorf("Gemini returned an empty summary")
	}
	return summary, nil
}

// GenerateFlashcards asks the model for count cards over the given text and
// parses the response: structured JSON first, then a text-pattern fallback.
// It errors only when both strategies yield zero cards.
func (s *GeminiService) GenerateFlashcards(ctx context.Context, text, subject string, count int) ([]models.GeneratedCard, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	prompt := buildFlashcardPrompt(text, subject, count)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	cards := ParseFlashcards(extractText(resp))
	if len(cards) == 0 {
		return nil, fmt.Errorf("AI response contained no usable flashcards")
	}
	if len(cards) > count {
		cards = cards[:count]
	}
	return cards, nil
}

// ParseFlashcards extracts cards from a model response. Strategy one is a
// JSON array of {front, back} objects (with markdown fences and surrounding
// prose tolerated); strategy two recognizes "Flashcard N: ... Front: ...
// Back: ..." sections in plain text.
func ParseFlashcards(raw string) []models.GeneratedCard {
	if cards := parseFlashcardsJSON(raw); len(cards) > 0 {
		return cards
	}
	return parseFlashcardsText(raw)
}

func parseFlashcardsJSON(raw string) []models.GeneratedCard {
	cleaned := stripFences(raw)

	var cards []models.GeneratedCard
	if err := json.Unmarshal([]byte(cleaned), &cards); err != nil {
		// Try to extract JSON array
		start := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if start >= 0 && end > start {
			json.Unmarshal([]byte(cleaned[start:end+1]), &cards)
		}
	}

	valid := cards[:0]
	for _, c := range cards {
		c.Front = strings.TrimSpace(c.Front)
		c.Back = strings.TrimSpace(c.Back)
		if c.Front != "" && c.Back != "" {
			valid = append(valid, c)
		}
	}
	return valid
}

var flashcardSectionRe = regexp.MustCompile(`(?is)flashcard\s*\d+\s*:?\s*front\s*:\s*(.*?)\s*back\s*:\s*(.*?)\s*(?:flashcard\s*\d+|$)`)

func parseFlashcardsText(raw string) []models.GeneratedCard {
	var cards []models.GeneratedCard
	rest := raw
	for {
		m := flashcardSectionRe.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		front := strings.TrimSpace(rest[m[2]:m[3]])
		back := strings.TrimSpace(rest[m[4]:m[5]])
		if front != "" && back != "" {
			cards = append(cards, models.GeneratedCard{Front: front, Back: back})
		}
		// Resume right after the back text so the next section's header,
		// consumed by the terminator group, gets matched again.
		if m[5] >= len(rest) {
			break
		}
		rest = rest[m[5]:]
	}
	return cards
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
