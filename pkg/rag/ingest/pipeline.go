package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/repository/contract"
	"documentor-ai-be/pkg/embedding"
	"documentor-ai-be/pkg/events"
	"documentor-ai-be/pkg/session"
	"documentor-ai-be/pkg/utils"
)

// Pipeline turns extracted document text into a fully-populated session.
// Ingestion is all-or-nothing: any failure after the session exists tears
// down both the record and the collection before the error is reported.
type Pipeline struct {
	registry     *session.Registry
	collections  contract.CollectionRepository
	embedder     embedding.Provider
	publisher    events.Publisher
	log          logger.ILogger
	chunkSize    int
	chunkOverlap int
	batchSize    int
}

func NewPipeline(
	registry *session.Registry,
	collections contract.CollectionRepository,
	embedder embedding.Provider,
	publisher events.Publisher,
	log logger.ILogger,
	chunkSize, chunkOverlap, batchSize int,
) *Pipeline {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Pipeline{
		registry:     registry,
		collections:  collections,
		embedder:     embedder,
		publisher:    publisher,
		log:          log,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		batchSize:    batchSize,
	}
}

// Ingest chunks the text, embeds it batch by batch, and appends the
// fragments to a fresh session's collection. The session id is returned
// only after every batch has landed.
func (p *Pipeline) Ingest(ctx context.Context, text, filename string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperror.NewValidation("Invalid or empty document.")
	}

	sess, err := p.registry.Register(ctx)
	if err != nil {
		return "", apperror.NewIngestion("Failed to create session.", err)
	}

	chunks := utils.SplitText(text, p.chunkSize, p.chunkOverlap)

	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := p.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			p.rollback(ctx, sess.Id, err)
			return "", apperror.NewIngestion("Batch processing error.", err)
		}
		if len(vectors) != len(batch) {
			err := fmt.Errorf("embedding count %d does not match batch size %d", len(vectors), len(batch))
			p.rollback(ctx, sess.Id, err)
			return "", apperror.NewIngestion("Batch processing error.", err)
		}

		fragments := make([]*entity.Fragment, len(batch))
		for i, chunk := range batch {
			fragments[i] = &entity.Fragment{
				Text:       chunk,
				Embedding:  vectors[i],
				Source:     filename,
				ChunkIndex: start + i,
			}
		}

		if err := p.collections.AppendFragments(ctx, sess.Id, fragments); err != nil {
			p.rollback(ctx, sess.Id, err)
			return "", apperror.NewIngestion("Batch processing error.", err)
		}
	}

	p.log.Info("INGEST", "Document processed", map[string]interface{}{
		"session_id": sess.Id,
		"source":     filename,
		"chunks":     len(chunks),
	})
	return sess.Id, nil
}

func (p *Pipeline) rollback(ctx context.Context, sessionId string, cause error) {
	if err := p.registry.Remove(ctx, sessionId); err != nil {
		// The expiry sweep will retry; the session is already invisible to
		// readers because ingestion never returned its id.
		p.log.Error("INGEST", "Rollback failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}
	p.log.Warn("INGEST", "Ingestion rolled back", map[string]interface{}{
		"session_id": sessionId,
		"cause":      cause.Error(),
	})
	if p.publisher != nil {
		evt := events.BaseEvent{
			Type:       events.SessionRolledBack,
			Data:       map[string]interface{}{"session_id": sessionId, "cause": cause.Error()},
			OccurredAt: time.Now(),
		}
		if err := p.publisher.Publish(ctx, evt); err != nil {
			p.log.Error("INGEST", "Failed to publish rollback event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
