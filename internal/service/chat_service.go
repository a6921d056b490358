package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"documentor-ai-be/internal/dto"
	"documentor-ai-be/internal/entity"
	"documentor-ai-be/pkg/llm"
	"documentor-ai-be/pkg/rag/answer"
	"documentor-ai-be/pkg/rag/retrieve"
)

// ChatAnswer carries everything the handler needs before the body starts:
// the encoded source attribution header and the lazy answer stream.
type ChatAnswer struct {
	SourcesHeader string
	Stream        llm.Stream
}

type IChatService interface {
	Answer(ctx context.Context, request *dto.QueryRequest) (*ChatAnswer, error)
}

type chatService struct {
	retriever *retrieve.Retriever
	assembler *answer.Assembler
}

func NewChatService(retriever *retrieve.Retriever, assembler *answer.Assembler) IChatService {
	return &chatService{
		retriever: retriever,
		assembler: assembler,
	}
}

func (s *chatService) Answer(ctx context.Context, request *dto.QueryRequest) (*ChatAnswer, error) {
	retrieved, err := s.retriever.Retrieve(ctx, request.SessionId, request.Question)
	if err != nil {
		return nil, err
	}

	header, err := encodeSources(retrieved)
	if err != nil {
		return nil, fmt.Errorf("encode sources: %w", err)
	}

	history := toEntityHistory(request.ChatHistory)
	stream, err := s.assembler.Stream(ctx, request.Question, retrieved, history)
	if err != nil {
		return nil, fmt.Errorf("open answer stream: %w", err)
	}

	return &ChatAnswer{
		SourcesHeader: header,
		Stream:        stream,
	}, nil
}

func encodeSources(retrieved []*entity.RetrievedFragment) (string, error) {
	chunks := make([]dto.SourceChunk, len(retrieved))
	for i, f := range retrieved {
		chunks[i] = dto.SourceChunk{
			Text:   f.Text,
			Source: f.Source,
			Score:  f.Score,
		}
	}
	payload, err := json.Marshal(chunks)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

func toEntityHistory(history []dto.ChatMessage) []entity.ChatMessage {
	out := make([]entity.ChatMessage, len(history))
	for i, msg := range history {
		out[i] = entity.ChatMessage{Sender: msg.Sender, Text: msg.Text}
	}
	return out
}
