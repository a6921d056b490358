package contract

import (
	"context"
	"errors"

	"documentor-ai-be/internal/entity"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrDimensionMismatch  = errors.New("embedding dimension mismatch")
)

// CollectionRepository is the per-session vector collection store:
// one collection per session id, fragments appended in batches, queried by
// cosine similarity, deleted as a unit.
type CollectionRepository interface {
	Create(ctx context.Context, sessionId string, dimension int) error
	AppendFragments(ctx context.Context, sessionId string, fragments []*entity.Fragment) error
	QuerySimilar(ctx context.Context, sessionId string, embedding []float32, topK int) ([]*entity.RetrievedFragment, error)
	Delete(ctx context.Context, sessionId string) error
	CountFragments(ctx context.Context, sessionId string) (int64, error)
}
