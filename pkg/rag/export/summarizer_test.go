package export

import (
	"context"
	"errors"
	"testing"

	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/pkg/llm"
	"documentor-ai-be/pkg/rag/prompt"

	"github.com/stretchr/testify/assert"
)

type stubLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, promptText string, options ...llm.Option) (string, error) {
	s.lastPrompt = promptText
	return s.response, s.err
}

func (s *stubLLM) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (llm.Stream, error) {
	return nil, errors.New("not used")
}

func history() []entity.ChatMessage {
	return []entity.ChatMessage{
		{Sender: "user", Text: "What is the warranty period?"},
		{Sender: "assistant", Text: "The warranty period is two years."},
	}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	stub := &stubLLM{response: "should never be used"}
	s := NewSummarizer(stub, prompt.NewBuilder(5), logger.NopLogger{})

	got := s.Summarize(context.Background(), nil)
	assert.Equal(t, prompt.PlaceholderSummary, got)
	assert.Empty(t, stub.lastPrompt)
}

func TestSummarizeIncludesFullConversation(t *testing.T) {
	stub := &stubLLM{response: "A summary."}
	s := NewSummarizer(stub, prompt.NewBuilder(1), logger.NopLogger{})

	got := s.Summarize(context.Background(), history())
	assert.Equal(t, "A summary.", got)

	// The summary prompt ignores the answer-prompt history window.
	assert.Contains(t, stub.lastPrompt, "User: What is the warranty period?")
	assert.Contains(t, stub.lastPrompt, "Assistant: The warranty period is two years.")
}

func TestSummarizeDegradesOnError(t *testing.T) {
	stub := &stubLLM{err: errors.New("model offline")}
	s := NewSummarizer(stub, prompt.NewBuilder(5), logger.NopLogger{})

	got := s.Summarize(context.Background(), history())
	assert.Equal(t, prompt.SummaryErrorText, got)
}

func TestSummarizeDegradesOnBlankResponse(t *testing.T) {
	stub := &stubLLM{response: "  \n\t "}
	s := NewSummarizer(stub, prompt.NewBuilder(5), logger.NopLogger{})

	got := s.Summarize(context.Background(), history())
	assert.Equal(t, prompt.SummaryErrorText, got)
}
