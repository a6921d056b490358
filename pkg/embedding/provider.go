package embedding

import "context"

// Task types steer providers that embed documents and queries differently.
const (
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeQuery    = "RETRIEVAL_QUERY"
)

// Provider maps text to fixed-dimension vectors. EmbedBatch preserves input
// order: vector i belongs to texts[i].
type Provider interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
