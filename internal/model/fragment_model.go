package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Collection struct {
	SessionId string    `gorm:"type:uuid;primaryKey"`
	Dimension int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Collection) TableName() string {
	return "collections"
}

type Fragment struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  string            `gorm:"type:uuid;not null;index"`
	ChunkIndex int               `gorm:"default:0"` // 0-based index for ordering
	Document   string            `gorm:"type:text"`
	Embedding  pgvector.Vector   `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
}

func (Fragment) TableName() string {
	return "fragments"
}
