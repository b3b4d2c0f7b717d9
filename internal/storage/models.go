package storage

import "time"

// Session represents a conversation session in the database.
type Session struct {
	ID         string // UUID
	CreatedAt  time.Time
	LastActive time.Time
}

// Message represents a single turn of a conversation.
type Message struct {
	ID        int64
	SessionID string // Foreign key to sessions.id
	Role      string // "user" or "assistant"
	Content   string
	CreatedAt time.Time
}
