package retrieve

import (
	"context"
	"fmt"

	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/repository/contract"
	"documentor-ai-be/pkg/embedding"
	"documentor-ai-be/pkg/session"
)

// Retriever resolves a session and returns the fragments most similar to a
// question, most-similar first. An empty collection yields an empty context,
// not an error; the answer assembler owns the "nothing found" reply.
type Retriever struct {
	registry    *session.Registry
	collections contract.CollectionRepository
	embedder    embedding.Provider
	topK        int
}

func NewRetriever(
	registry *session.Registry,
	collections contract.CollectionRepository,
	embedder embedding.Provider,
	topK int,
) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{
		registry:    registry,
		collections: collections,
		embedder:    embedder,
		topK:        topK,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, sessionId, question string) ([]*entity.RetrievedFragment, error) {
	if _, err := r.registry.Lookup(sessionId); err != nil {
		return nil, err
	}

	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	fragments, err := r.collections.QuerySimilar(ctx, sessionId, vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	return fragments, nil
}
