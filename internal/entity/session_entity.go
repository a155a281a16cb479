package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Role          string `json:"role"`
	Content       string `json:"content"`
	IsVoice       bool   `json:"is_voice,omitempty"`
	Transcription string `json:"transcription,omitempty"`
}

// Session is the in-memory record of one conversation. Messages are
// append-only: entries are never reordered or edited in place, only the
// whole slice is replaced on an explicit clear.
type Session struct {
	Id          uuid.UUID     `json:"id"`
	Messages    []ChatMessage `json:"messages"`
	CurrentMode string        `json:"current_mode"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
