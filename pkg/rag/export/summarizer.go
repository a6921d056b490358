package export

import (
	"context"
	"strings"

	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/pkg/llm"
	"documentor-ai-be/pkg/rag/prompt"
)

// Summarizer condenses a conversation into prose for the export report.
// It never returns an error: a failed or empty generation degrades to a
// fixed, clearly-marked error string so the export itself still succeeds.
type Summarizer struct {
	llmProvider llm.LLMProvider
	prompts     *prompt.Builder
	log         logger.ILogger
}

func NewSummarizer(llmProvider llm.LLMProvider, prompts *prompt.Builder, log logger.ILogger) *Summarizer {
	return &Summarizer{
		llmProvider: llmProvider,
		prompts:     prompts,
		log:         log,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, history []entity.ChatMessage) string {
	if len(history) == 0 {
		return prompt.PlaceholderSummary
	}

	summary, err := s.llmProvider.Generate(ctx, s.prompts.BuildSummaryPrompt(history))
	if err != nil {
		s.log.Error("EXPORT", "Summary generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return prompt.SummaryErrorText
	}
	if strings.TrimSpace(summary) == "" {
		return prompt.SummaryErrorText
	}
	return summary
}
