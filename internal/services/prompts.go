package services

import (
	"fmt"
	"strings"
)

func buildDoubtPrompt(question, threadContext string) string {
	var b strings.Builder
	b.WriteString("You are a patient tutor helping a student understand a concept. ")
	b.WriteString("Answer clearly and concretely, with a short example where it helps. ")
	b.WriteString("Return plain text only, no markdown headers.\n\n")

	if threadContext != "" {
		b.WriteString("Conversation so far:\n")
		b.WriteString(threadContext)
		b.WriteString("\n\n")
	}

	b.WriteString("Student question:\n")
	b.WriteString(question)
	return b.String()
}

func buildSummaryPrompt(text, summaryType string, lengthPercent int) string {
	var style string
	switch summaryType {
	case "bullet":
		style = "Write the summary as a flat list of bullet points, one key idea per bullet."
	case "detailed":
		style = "Write a thorough summary in paragraphs, keeping definitions, examples, and reasoning."
	default: // concise
		style = "Write a tight summary in a few short paragraphs, only the essential ideas."
	}

	return fmt.Sprintf(`Summarize the following study notes to roughly %d%% of their original length.
%s
Return plain text only. Do NOT use markdown tables, pipes (|), or HTML.

Notes:
%s`, lengthPercent, style, text)
}

func buildFlashcardPrompt(text, subject string, count int) string {
	return fmt.Sprintf(`Create exactly %d flashcards for the subject "%s" from the study material below.

Return ONLY a valid JSON array, no markdown fences, in this shape:
[{"front": "question or term", "back": "answer or definition"}]

Each front must be a single question or term; each back a short, self-contained answer.

Study material:
%s`, count, subject, text)
}
