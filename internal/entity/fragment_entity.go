package entity

// Fragment is one embedded chunk of document text. Immutable once written;
// belongs to exactly one session's collection.
type Fragment struct {
	Text       string
	Embedding  []float32
	Source     string
	ChunkIndex int
}

// RetrievedFragment is the single shape fragments have once the collection
// store hands them back, regardless of which store produced them.
type RetrievedFragment struct {
	Text   string
	Source string
	Score  float64
}

// ChatMessage is one turn of the client-supplied conversation history.
type ChatMessage struct {
	Sender string // "user" or "assistant"
	Text   string
}
