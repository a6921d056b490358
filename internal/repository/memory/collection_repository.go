package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/repository/contract"
)

type collectionData struct {
	dimension int
	fragments []*entity.Fragment
}

// CollectionRepository is a brute-force cosine-similarity store kept entirely
// in process memory. It backs the service when no Postgres DSN is configured
// and is the store the unit tests run against.
type CollectionRepository struct {
	mu          sync.RWMutex
	collections map[string]*collectionData
}

func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{
		collections: make(map[string]*collectionData),
	}
}

func (r *CollectionRepository) Create(ctx context.Context, sessionId string, dimension int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.collections[sessionId]; exists {
		return contract.ErrCollectionExists
	}
	r.collections[sessionId] = &collectionData{dimension: dimension}
	return nil
}

func (r *CollectionRepository) AppendFragments(ctx context.Context, sessionId string, fragments []*entity.Fragment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	col, exists := r.collections[sessionId]
	if !exists {
		return contract.ErrCollectionNotFound
	}
	for _, f := range fragments {
		if len(f.Embedding) != col.dimension {
			return contract.ErrDimensionMismatch
		}
	}
	col.fragments = append(col.fragments, fragments...)
	return nil
}

func (r *CollectionRepository) QuerySimilar(ctx context.Context, sessionId string, embedding []float32, topK int) ([]*entity.RetrievedFragment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	col, exists := r.collections[sessionId]
	if !exists {
		return nil, contract.ErrCollectionNotFound
	}
	if topK <= 0 {
		topK = 5
	}

	scored := make([]*entity.RetrievedFragment, len(col.fragments))
	for i, f := range col.fragments {
		scored[i] = &entity.RetrievedFragment{
			Text:   f.Text,
			Source: f.Source,
			Score:  cosineSimilarity(f.Embedding, embedding),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

func (r *CollectionRepository) Delete(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.collections, sessionId)
	return nil
}

func (r *CollectionRepository) CountFragments(ctx context.Context, sessionId string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	col, exists := r.collections[sessionId]
	if !exists {
		return 0, contract.ErrCollectionNotFound
	}
	return int64(len(col.fragments)), nil
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
