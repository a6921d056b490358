package retrieve

import (
	"context"
	"testing"
	"time"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/repository/memory"
	"documentor-ai-be/pkg/session"

	"github.com/stretchr/testify/assert"
)

// directionEmbedder maps known texts to fixed unit vectors so similarity
// ordering in tests is deterministic.
type directionEmbedder struct {
	vectors map[string][]float32
}

func (d *directionEmbedder) vectorFor(text string) []float32 {
	if v, ok := d.vectors[text]; ok {
		return v
	}
	return []float32{0, 0, 0, 1}
}

func (d *directionEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = d.vectorFor(text)
	}
	return out, nil
}

func (d *directionEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return d.vectorFor(text), nil
}

func (d *directionEmbedder) Dimension() int { return 4 }

func seedSession(t *testing.T, reg *session.Registry, store *memory.CollectionRepository, embedder *directionEmbedder, texts []string, source string) string {
	t.Helper()
	ctx := context.Background()

	sess, err := reg.Register(ctx)
	if err != nil {
		t.Fatalf("register session: %v", err)
	}

	fragments := make([]*entity.Fragment, len(texts))
	for i, text := range texts {
		fragments[i] = &entity.Fragment{
			Text:       text,
			Embedding:  embedder.vectorFor(text),
			Source:     source,
			ChunkIndex: i,
		}
	}
	if err := store.AppendFragments(ctx, sess.Id, fragments); err != nil {
		t.Fatalf("append fragments: %v", err)
	}
	return sess.Id
}

func TestRetrieveRanksBySimilarity(t *testing.T) {
	embedder := &directionEmbedder{vectors: map[string][]float32{
		"cats purr":    {1, 0, 0, 0},
		"dogs bark":    {0, 1, 0, 0},
		"fish swim":    {0, 0, 1, 0},
		"tell me cats": {0.9, 0.1, 0, 0},
	}}
	store := memory.NewCollectionRepository()
	reg := session.NewRegistry(store, 4, time.Hour, nil, logger.NopLogger{})
	retriever := NewRetriever(reg, store, embedder, 2)

	id := seedSession(t, reg, store, embedder, []string{"cats purr", "dogs bark", "fish swim"}, "animals.txt")

	got, err := retriever.Retrieve(context.Background(), id, "tell me cats")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "cats purr", got[0].Text)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestRetrieveIsScopedToSession(t *testing.T) {
	embedder := &directionEmbedder{vectors: map[string][]float32{
		"first document":  {1, 0, 0, 0},
		"second document": {1, 0, 0, 0},
		"query":           {1, 0, 0, 0},
	}}
	store := memory.NewCollectionRepository()
	reg := session.NewRegistry(store, 4, time.Hour, nil, logger.NopLogger{})
	retriever := NewRetriever(reg, store, embedder, 5)

	first := seedSession(t, reg, store, embedder, []string{"first document"}, "a.txt")
	second := seedSession(t, reg, store, embedder, []string{"second document"}, "b.txt")

	got, err := retriever.Retrieve(context.Background(), first, "query")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "first document", got[0].Text)
	assert.Equal(t, "a.txt", got[0].Source)

	got, err = retriever.Retrieve(context.Background(), second, "query")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "second document", got[0].Text)
}

func TestRetrieveEmptyCollection(t *testing.T) {
	embedder := &directionEmbedder{}
	store := memory.NewCollectionRepository()
	reg := session.NewRegistry(store, 4, time.Hour, nil, logger.NopLogger{})
	retriever := NewRetriever(reg, store, embedder, 5)

	sess, err := reg.Register(context.Background())
	assert.NoError(t, err)

	got, err := retriever.Retrieve(context.Background(), sess.Id, "anything")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveExpiredSession(t *testing.T) {
	embedder := &directionEmbedder{}
	store := memory.NewCollectionRepository()
	reg := session.NewRegistry(store, 4, -time.Minute, nil, logger.NopLogger{})
	retriever := NewRetriever(reg, store, embedder, 5)

	sess, err := reg.Register(context.Background())
	assert.NoError(t, err)

	_, err = retriever.Retrieve(context.Background(), sess.Id, "anything")
	assert.True(t, apperror.IsNotFound(err))
}

func TestRetrieveUnknownSession(t *testing.T) {
	embedder := &directionEmbedder{}
	store := memory.NewCollectionRepository()
	reg := session.NewRegistry(store, 4, time.Hour, nil, logger.NopLogger{})
	retriever := NewRetriever(reg, store, embedder, 5)

	_, err := retriever.Retrieve(context.Background(), "11111111-1111-1111-1111-111111111111", "anything")
	assert.True(t, apperror.IsNotFound(err))
}
