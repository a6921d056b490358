package service

import (
	"context"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/dto"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/pkg/rag/export"
	"documentor-ai-be/pkg/report"
)

type IExportService interface {
	// ExportPDF returns the path of the rendered report file. The caller
	// owns transmission and deletion.
	ExportPDF(ctx context.Context, history []dto.ChatMessage) (string, error)
}

type exportService struct {
	summarizer *export.Summarizer
	reports    *report.Generator
	log        logger.ILogger
}

func NewExportService(summarizer *export.Summarizer, reports *report.Generator, log logger.ILogger) IExportService {
	return &exportService{
		summarizer: summarizer,
		reports:    reports,
		log:        log,
	}
}

func (s *exportService) ExportPDF(ctx context.Context, history []dto.ChatMessage) (string, error) {
	summary := s.summarizer.Summarize(ctx, toEntityHistory(history))

	path, err := s.reports.RenderSummary(summary)
	if err != nil {
		s.log.Error("EXPORT", "PDF generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", apperror.NewExport("Failed to generate PDF.", err)
	}
	return path, nil
}
