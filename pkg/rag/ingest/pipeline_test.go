package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/repository/memory"
	"documentor-ai-be/pkg/session"

	"github.com/stretchr/testify/assert"
)

type fakeEmbedder struct {
	dimension int
	// fail the batch call with this index (0-based); -1 never fails
	failAtBatch int
	batchCalls  int
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	call := f.batchCalls
	f.batchCalls++
	if f.failAtBatch >= 0 && call == f.failAtBatch {
		return nil, errors.New("embedding backend unavailable")
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, f.dimension)
		v[0] = float32(len(texts[i]))
		vectors[i] = v
	}
	return vectors, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	v := make([]float32, f.dimension)
	v[0] = float32(len(text))
	return v, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dimension }

type fixture struct {
	store    *memory.CollectionRepository
	registry *session.Registry
	embedder *fakeEmbedder
	pipeline *Pipeline
}

func newFixture(failAtBatch int) *fixture {
	store := memory.NewCollectionRepository()
	embedder := &fakeEmbedder{dimension: 4, failAtBatch: failAtBatch}
	reg := session.NewRegistry(store, embedder.Dimension(), time.Hour, nil, logger.NopLogger{})
	pipe := NewPipeline(reg, store, embedder, nil, logger.NopLogger{}, 20, 5, 3)
	return &fixture{store: store, registry: reg, embedder: embedder, pipeline: pipe}
}

func TestIngestStoresEveryChunk(t *testing.T) {
	f := newFixture(-1)
	ctx := context.Background()

	text := strings.Repeat("lorem ipsum dolor sit amet ", 10)
	id, err := f.pipeline.Ingest(ctx, text, "notes.txt")
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = f.registry.Lookup(id)
	assert.NoError(t, err)

	count, err := f.store.CountFragments(ctx, id)
	assert.NoError(t, err)
	assert.Greater(t, count, int64(1))

	// Every fragment carries the filename as its source.
	query := make([]float32, 4)
	query[0] = 1
	retrieved, err := f.store.QuerySimilar(ctx, id, query, int(count))
	assert.NoError(t, err)
	for _, frag := range retrieved {
		assert.Equal(t, "notes.txt", frag.Source)
	}
}

func TestIngestRejectsEmptyText(t *testing.T) {
	f := newFixture(-1)

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := f.pipeline.Ingest(context.Background(), text, "empty.txt")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	}
	assert.Equal(t, 0, f.registry.Count())
}

func TestIngestRollsBackOnEmbeddingFailure(t *testing.T) {
	// Fail the second batch so the first batch has already been stored.
	f := newFixture(1)
	ctx := context.Background()

	text := strings.Repeat("alpha beta gamma delta ", 20)
	_, err := f.pipeline.Ingest(ctx, text, "doc.txt")
	assert.Error(t, err)
	assert.GreaterOrEqual(t, f.embedder.batchCalls, 2)

	// Nothing survives: no record, no collection.
	assert.Equal(t, 0, f.registry.Count())
}

type rejectingStore struct {
	*memory.CollectionRepository
	failAppends bool
}

func (r *rejectingStore) AppendFragments(ctx context.Context, sessionId string, fragments []*entity.Fragment) error {
	if r.failAppends {
		return errors.New("write rejected")
	}
	return r.CollectionRepository.AppendFragments(ctx, sessionId, fragments)
}

func TestIngestRollsBackOnStoreFailure(t *testing.T) {
	store := &rejectingStore{CollectionRepository: memory.NewCollectionRepository(), failAppends: true}
	embedder := &fakeEmbedder{dimension: 4, failAtBatch: -1}
	reg := session.NewRegistry(store, 4, time.Hour, nil, logger.NopLogger{})
	pipe := NewPipeline(reg, store, embedder, nil, logger.NopLogger{}, 20, 5, 3)

	_, err := pipe.Ingest(context.Background(), "some document text that is long enough to chunk", "doc.txt")
	assert.Error(t, err)
	assert.Equal(t, 0, reg.Count())
}
