package entity

import "time"

const SessionStatusActive = "ACTIVE"

// Session is an isolated, time-limited knowledge base built from one
// uploaded document. A session record and its vector collection are created
// and destroyed together.
type Session struct {
	Id        string
	CreatedAt time.Time
	ExpiresAt time.Time
	Status    string
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
