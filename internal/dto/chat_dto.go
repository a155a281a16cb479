package dto

import (
	"time"

	"github.com/google/uuid"
)

// ChatRequest is the inbound chat payload. SessionId is opaque: absent,
// malformed or stale ids all lead to a transparently created session.
// Either Message or SelectedAction must be present.
type ChatRequest struct {
	Message        string `json:"message,omitempty"`
	SessionId      string `json:"sessionId,omitempty"`
	ForceMode      string `json:"forceMode,omitempty" validate:"omitempty,oneof=guide socrates hard"`
	SelectedAction string `json:"selectedAction,omitempty"`
}

// ChatResponse is the chat envelope. Error carries a caller-safe message
// only; raw internal errors never cross this boundary.
type ChatResponse struct {
	Success   bool        `json:"success"`
	Data      *AIResponse `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	SessionId string      `json:"sessionId"`
}

type ActiveListening struct {
	Intent      string   `json:"intent"`
	Emotion     string   `json:"emotion"`
	Constraints []string `json:"constraints"`
}

type KnowledgeSteps struct {
	StepA string `json:"stepA"`
	StepB string `json:"stepB,omitempty"`
	StepC string `json:"stepC"`
}

type NextAction struct {
	Id          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type AIResponse struct {
	Id              uuid.UUID       `json:"id"`
	ActiveListening ActiveListening `json:"activeListening"`
	KnowledgeSteps  KnowledgeSteps  `json:"knowledgeSteps"`
	FeedbackRequest string          `json:"feedbackRequest"`
	NextActions     []NextAction    `json:"nextActions"`
	Mode            string          `json:"mode"`
	Timestamp       time.Time       `json:"timestamp"`
}

type CreateSessionRequest struct {
	InitialMode string `json:"initialMode,omitempty" validate:"omitempty,oneof=guide socrates hard"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChatMessageDTO struct {
	Role          string `json:"role"`
	Content       string `json:"content"`
	IsVoice       bool   `json:"isVoice,omitempty"`
	Transcription string `json:"transcription,omitempty"`
}

type GetSessionResponse struct {
	Id          uuid.UUID        `json:"id"`
	CurrentMode string           `json:"currentMode"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Messages    []ChatMessageDTO `json:"messages"`
}

type SessionStatsDTO struct {
	TotalSessions  int `json:"totalSessions"`
	ActiveSessions int `json:"activeSessions"`
	TotalMessages  int `json:"totalMessages"`
}

type HealthResponse struct {
	Status       string          `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
	SessionStats SessionStatsDTO `json:"sessionStats"`
}
