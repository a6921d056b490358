package implementation

import (
	"context"
	"errors"

	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/mapper"
	"documentor-ai-be/internal/model"
	"documentor-ai-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CollectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FragmentMapper
}

func NewCollectionRepository(db *gorm.DB) contract.CollectionRepository {
	return &CollectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewFragmentMapper(),
	}
}

func (r *CollectionRepositoryImpl) Create(ctx context.Context, sessionId string, dimension int) error {
	m := &model.Collection{SessionId: sessionId, Dimension: dimension}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return contract.ErrCollectionExists
		}
		return err
	}
	return nil
}

func (r *CollectionRepositoryImpl) AppendFragments(ctx context.Context, sessionId string, fragments []*entity.Fragment) error {
	if len(fragments) == 0 {
		return nil
	}
	// The whole batch lands or none of it does.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var col model.Collection
		if err := tx.First(&col, "session_id = ?", sessionId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contract.ErrCollectionNotFound
			}
			return err
		}

		models := make([]*model.Fragment, len(fragments))
		for i, f := range fragments {
			if len(f.Embedding) != col.Dimension {
				return contract.ErrDimensionMismatch
			}
			models[i] = r.mapper.ToModel(sessionId, f)
		}
		return tx.Create(models).Error
	})
}

func (r *CollectionRepositoryImpl) QuerySimilar(ctx context.Context, sessionId string, embedding []float32, topK int) ([]*entity.RetrievedFragment, error) {
	if topK <= 0 {
		topK = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) gives the similarity score.
	type result struct {
		model.Fragment
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("fragments").
		Select("fragments.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Where("session_id = ?", sessionId).
		Order("similarity DESC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	retrieved := make([]*entity.RetrievedFragment, len(results))
	for i, res := range results {
		retrieved[i] = r.mapper.ToRetrieved(&res.Fragment, res.Similarity)
	}
	return retrieved, nil
}

func (r *CollectionRepositoryImpl) Delete(ctx context.Context, sessionId string) error {
	// Fragments first so a failure never leaves them orphaned from the
	// collection row.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionId).Delete(&model.Fragment{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionId).Delete(&model.Collection{}).Error
	})
}

func (r *CollectionRepositoryImpl) CountFragments(ctx context.Context, sessionId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Fragment{}).
		Where("session_id = ?", sessionId).
		Count(&count).Error
	return count, err
}
