package dto

type ChatMessage struct {
	Sender string `json:"sender" validate:"required"`
	Text   string `json:"text"`
}

type QueryRequest struct {
	SessionId   string        `json:"session_id" validate:"required,uuid4"`
	Question    string        `json:"question" validate:"required"`
	ChatHistory []ChatMessage `json:"chat_history" validate:"dive"`
}

type ExportRequest struct {
	ChatHistory []ChatMessage `json:"chat_history" validate:"dive"`
}

// SourceChunk is the wire form of a retrieved fragment carried out of band
// in the X-Source-Chunks response header.
type SourceChunk struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}
