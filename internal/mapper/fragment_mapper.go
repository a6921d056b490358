package mapper

import (
	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type FragmentMapper struct{}

func NewFragmentMapper() *FragmentMapper {
	return &FragmentMapper{}
}

func (m *FragmentMapper) ToModel(sessionId string, f *entity.Fragment) *model.Fragment {
	return &model.Fragment{
		SessionId:  sessionId,
		ChunkIndex: f.ChunkIndex,
		Document:   f.Text,
		Embedding:  pgvector.NewVector(f.Embedding),
		Metadata:   datatypes.JSONMap{"source": f.Source},
	}
}

func (m *FragmentMapper) ToRetrieved(mod *model.Fragment, score float64) *entity.RetrievedFragment {
	source, _ := mod.Metadata["source"].(string)
	return &entity.RetrievedFragment{
		Text:   mod.Document,
		Source: source,
		Score:  score,
	}
}
