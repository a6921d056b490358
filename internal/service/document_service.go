package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/dto"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/pkg/parser"
	"documentor-ai-be/pkg/rag/ingest"
)

type IDocumentService interface {
	Process(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ProcessResponse, error)
}

type documentService struct {
	pipeline *ingest.Pipeline
	log      logger.ILogger
}

func NewDocumentService(pipeline *ingest.Pipeline, log logger.ILogger) IDocumentService {
	return &documentService{
		pipeline: pipeline,
		log:      log,
	}
}

// Process extracts the uploaded document's text and runs ingestion.
// Validation failures happen before any session exists, so a rejected
// upload never leaves state behind.
func (s *documentService) Process(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ProcessResponse, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.NewValidation("Unable to read uploaded file.")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperror.NewValidation("Unable to read uploaded file.")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	text, err := parser.Extract(contentType, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupportedType) {
			return nil, apperror.NewValidation("Unsupported file type.")
		}
		return nil, apperror.NewValidation("Invalid or empty document.")
	}

	sessionId, err := s.pipeline.Ingest(ctx, text, fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	return &dto.ProcessResponse{
		Message:   "Processed successfully",
		SessionId: sessionId,
	}, nil
}
