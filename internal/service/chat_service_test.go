package service

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"documentor-ai-be/internal/dto"
	"documentor-ai-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSources(t *testing.T) {
	retrieved := []*entity.RetrievedFragment{
		{Text: "The warranty lasts two years.", Source: "manual.pdf", Score: 0.93},
		{Text: "Coverage excludes water damage.", Source: "manual.pdf", Score: 0.81},
	}

	header, err := encodeSources(retrieved)
	assert.NoError(t, err)

	payload, err := base64.StdEncoding.DecodeString(header)
	assert.NoError(t, err)

	var chunks []dto.SourceChunk
	assert.NoError(t, json.Unmarshal(payload, &chunks))
	assert.Len(t, chunks, 2)
	assert.Equal(t, "The warranty lasts two years.", chunks[0].Text)
	assert.Equal(t, "manual.pdf", chunks[0].Source)
	assert.InDelta(t, 0.93, chunks[0].Score, 1e-9)
}

func TestEncodeSourcesEmpty(t *testing.T) {
	header, err := encodeSources(nil)
	assert.NoError(t, err)

	payload, err := base64.StdEncoding.DecodeString(header)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(payload))
}

func TestToEntityHistory(t *testing.T) {
	got := toEntityHistory([]dto.ChatMessage{
		{Sender: "user", Text: "q"},
		{Sender: "assistant", Text: "a"},
	})

	assert.Equal(t, []entity.ChatMessage{
		{Sender: "user", Text: "q"},
		{Sender: "assistant", Text: "a"},
	}, got)
}
