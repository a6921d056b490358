package prompt

import (
	"fmt"
	"strings"

	"documentor-ai-be/internal/entity"
)

const (
	// ContextSeparator joins retrieved fragment texts inside the answer prompt.
	ContextSeparator = "\n---\n"

	// NoContextAnswer is streamed verbatim when retrieval found nothing;
	// the model is never invoked in that case.
	NoContextAnswer = "I could not find any relevant information in the document to answer your question."

	// PlaceholderSummary is returned for an empty conversation without a model call.
	PlaceholderSummary = "No conversation history to summarize."

	// SummaryErrorText replaces the summary when generation fails.
	SummaryErrorText = "Could not generate summary due to an AI error."

	emptyHistoryNote = "No previous conversation history."
)

// Builder renders retrieval context and chat history into model prompts.
type Builder struct {
	historyWindow int
}

// NewBuilder bounds the answer prompt to the last historyWindow chat
// messages; the summary prompt always sees the full history.
func NewBuilder(historyWindow int) *Builder {
	if historyWindow <= 0 {
		historyWindow = 5
	}
	return &Builder{historyWindow: historyWindow}
}

func (b *Builder) FormatHistory(history []entity.ChatMessage) string {
	if len(history) == 0 {
		return emptyHistoryNote
	}
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		role := "Assistant"
		if msg.Sender == "user" {
			role = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, msg.Text))
	}
	return strings.Join(lines, "\n")
}

func (b *Builder) BuildAnswerPrompt(question string, context []*entity.RetrievedFragment, history []entity.ChatMessage) string {
	texts := make([]string, len(context))
	for i, fragment := range context {
		texts[i] = fragment.Text
	}
	contextStr := strings.Join(texts, ContextSeparator)

	if len(history) > b.historyWindow {
		history = history[len(history)-b.historyWindow:]
	}
	historyStr := b.FormatHistory(history)

	return fmt.Sprintf(`You are a helpful assistant for DocuMentor AI.
Your goal is to answer the user's "CURRENT QUESTION" based *only* on the provided "DOCUMENT CONTEXT".

Instructions:
1. Answer directly and clearly.
2. Do not use outside knowledge.
3. Suggest 2-3 follow-up questions at the end.

---
CHAT HISTORY:
%s
---
DOCUMENT CONTEXT:
%s
---
CURRENT QUESTION:
%s
---
ANSWER:
`, historyStr, contextStr, question)
}

func (b *Builder) BuildSummaryPrompt(history []entity.ChatMessage) string {
	return fmt.Sprintf(`You are a professional technical writer.
Create a structured summary of the following Q&A conversation about a document.
Focus on the key insights and answers provided.
Do NOT use emojis or special characters. Keep the text clean and professional.

CONVERSATION:
%s

SUMMARY:
`, b.FormatHistory(history))
}
