package answer

import (
	"context"
	"errors"
	"io"

	"documentor-ai-be/internal/entity"
	"documentor-ai-be/pkg/llm"
	"documentor-ai-be/pkg/rag/prompt"
)

// Assembler builds the generation prompt and exposes the answer as a
// Stream. Once streaming has begun an upstream failure can no longer change
// the response status, so errors surface as one final text increment.
type Assembler struct {
	llmProvider llm.LLMProvider
	prompts     *prompt.Builder
}

func NewAssembler(llmProvider llm.LLMProvider, prompts *prompt.Builder) *Assembler {
	return &Assembler{
		llmProvider: llmProvider,
		prompts:     prompts,
	}
}

// Stream answers the question against the retrieved context. With an empty
// context the fixed no-information reply is streamed and the model is never
// invoked. An error opening the model stream is returned as-is: the
// response has not started yet and may still become a protocol error.
func (a *Assembler) Stream(
	ctx context.Context,
	question string,
	retrieved []*entity.RetrievedFragment,
	history []entity.ChatMessage,
) (llm.Stream, error) {
	if len(retrieved) == 0 {
		return &fixedStream{text: prompt.NoContextAnswer}, nil
	}

	p := a.prompts.BuildAnswerPrompt(question, retrieved, history)
	upstream, err := a.llmProvider.ChatStream(ctx, []llm.Message{{Role: "user", Content: p}})
	if err != nil {
		return nil, err
	}
	return &guardedStream{upstream: upstream}, nil
}

// fixedStream yields a single increment and then EOF.
type fixedStream struct {
	text string
	done bool
}

func (s *fixedStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	s.done = true
	return s.text, nil
}

func (s *fixedStream) Close() error { return nil }

// guardedStream converts a mid-stream upstream failure into a terminal
// inline error increment followed by EOF.
type guardedStream struct {
	upstream llm.Stream
	done     bool
}

func (s *guardedStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	delta, err := s.upstream.Recv()
	if err == nil {
		return delta, nil
	}
	s.done = true
	if errors.Is(err, io.EOF) {
		return "", io.EOF
	}
	return "An error occurred while generating the answer: " + err.Error(), nil
}

func (s *guardedStream) Close() error {
	return s.upstream.Close()
}
