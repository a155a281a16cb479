package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"insightsmith-be/internal/constant"
	"insightsmith-be/internal/dto"
	"insightsmith-be/internal/entity"
	"insightsmith-be/internal/pkg/logger"
	"insightsmith-be/internal/pkg/serverutils"
	"insightsmith-be/internal/repository/archive"
	"insightsmith-be/internal/repository/memory"
	"insightsmith-be/pkg/composer"
	"insightsmith-be/pkg/detector"
	"insightsmith-be/pkg/events"
	"insightsmith-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatService interface {
	// SendChat never fails: every outcome, including internal panics, is
	// folded into a well-formed ChatResponse.
	SendChat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse

	// SendTranscribedChat is SendChat for an utterance that arrived as
	// audio; the stored user message is flagged as voice input.
	SendTranscribedChat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse

	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
	Health(ctx context.Context) *dto.HealthResponse
	SweepExpired(ctx context.Context) int
}

type chatService struct {
	repo       *memory.SessionRepository
	sessionArc *archive.SessionArchive
	composer   *composer.Composer
	detector   *detector.Detector
	publisher  IPublisherService
	staleAfter time.Duration
	logger     logger.ILogger
}

func NewChatService(
	repo *memory.SessionRepository,
	sessionArc *archive.SessionArchive,
	cmp *composer.Composer,
	det *detector.Detector,
	publisher IPublisherService,
	staleAfter time.Duration,
	log logger.ILogger,
) IChatService {
	return &chatService{
		repo:       repo,
		sessionArc: sessionArc,
		composer:   cmp,
		detector:   det,
		publisher:  publisher,
		staleAfter: staleAfter,
		logger:     log,
	}
}

func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	return s.sendChat(ctx, req, false)
}

func (s *chatService) SendTranscribedChat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	return s.sendChat(ctx, req, true)
}

func (s *chatService) sendChat(ctx context.Context, req *dto.ChatRequest, isVoice bool) (resp *dto.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("ChatService", "Recovered from panic in SendChat", map[string]interface{}{"panic": fmt.Sprint(r)})
			resp = &dto.ChatResponse{
				Success:   false,
				Error:     "Internal server error",
				SessionId: req.SessionId,
			}
		}
	}()

	if req.Message == "" && req.SelectedAction == "" {
		return &dto.ChatResponse{
			Success:   false,
			Error:     "Message or selectedAction is required",
			SessionId: req.SessionId,
		}
	}

	session := s.resolveSession(ctx, req.SessionId)

	if req.SelectedAction != "" {
		aiResponse := s.handleActionSelection(ctx, req.SelectedAction, session)
		return &dto.ChatResponse{
			Success:   true,
			Data:      aiResponse,
			SessionId: session.Id.String(),
		}
	}

	aiResponse := s.handleMessage(ctx, req, session, isVoice)
	return &dto.ChatResponse{
		Success:   true,
		Data:      aiResponse,
		SessionId: session.Id.String(),
	}
}

// resolveSession treats the inbound session id as opaque. Absent, malformed
// and expired ids all resolve to a freshly created session.
func (s *chatService) resolveSession(ctx context.Context, rawId string) *entity.Session {
	if rawId != "" {
		if sid, err := uuid.Parse(rawId); err == nil {
			if session, ok := s.repo.Get(sid); ok {
				return session
			}
		}
	}

	session := s.repo.Create(constant.ModeGuide)
	s.logger.Info("ChatService", "Session created", map[string]interface{}{"session_id": session.Id})
	s.publish(events.NewSessionCreated(session.Id, session.CurrentMode))
	s.sessionArc.Save(ctx, session)
	return session
}

func (s *chatService) handleActionSelection(ctx context.Context, actionId string, session *entity.Session) *dto.AIResponse {
	s.logger.Info("ChatService", "Handling action", map[string]interface{}{
		"action":     actionId,
		"session_id": session.Id,
	})

	mode := session.CurrentMode

	switch actionId {
	case constant.ActionModeChange:
		nextMode := nextModeInCycle(mode)
		if updated, ok := s.repo.UpdateMode(session.Id, nextMode); ok {
			s.publish(events.NewModeChanged(session.Id, mode, nextMode))
			s.sessionArc.Save(ctx, updated)
		}
		return s.composer.Compose(ctx, constant.ActionPrompts[actionId], nextMode, session.Id, nil)

	case constant.ActionNewTopic:
		if s.repo.ClearMessages(session.Id) {
			s.publish(events.NewSessionCleared(session.Id))
			if cleared, ok := s.repo.Get(session.Id); ok {
				s.sessionArc.Save(ctx, cleared)
			}
		}
		return s.composer.Compose(ctx, constant.ActionPrompts[actionId], mode, session.Id, nil)

	case constant.ActionRetry:
		if last, ok := lastUserMessage(session.Messages); ok {
			return s.composer.Compose(ctx, last.Content, mode, session.Id, nil)
		}
		return s.genericActionResponse(ctx, actionId, mode)

	case constant.ActionDeepDive, constant.ActionPracticalSteps,
		constant.ActionMoreQuestions, constant.ActionRealityCheck:
		return s.composer.Compose(ctx, constant.ActionPrompts[actionId], mode, session.Id, nil)

	default:
		return s.genericActionResponse(ctx, actionId, mode)
	}
}

func (s *chatService) genericActionResponse(ctx context.Context, actionId, mode string) *dto.AIResponse {
	prompt := fmt.Sprintf("ユーザーが「%s」アクションを選択しました", actionId)
	return s.composer.Compose(ctx, prompt, mode, uuid.New(), nil)
}

func (s *chatService) handleMessage(ctx context.Context, req *dto.ChatRequest, session *entity.Session, isVoice bool) *dto.AIResponse {
	mode := session.CurrentMode

	if req.ForceMode != "" {
		mode = req.ForceMode
	} else if s.detector.IsHelpRequest(req.Message) {
		mode = constant.ModeGuide
	} else {
		detection := s.detector.DetectMode(req.Message)
		if detection.Confidence > 0.8 {
			mode = detection.DetectedMode
		}
	}

	if mode != session.CurrentMode {
		if _, ok := s.repo.UpdateMode(session.Id, mode); ok {
			s.publish(events.NewModeChanged(session.Id, session.CurrentMode, mode))
		}
	}

	// History passed to the composer covers messages before this turn.
	history := toLLMHistory(session.Messages)

	userMessage := entity.ChatMessage{
		Role:    constant.ChatMessageRoleUser,
		Content: req.Message,
		IsVoice: isVoice,
	}
	if isVoice {
		userMessage.Transcription = req.Message
	}
	if _, ok := s.repo.AppendMessage(session.Id, userMessage); ok {
		s.publish(events.NewMessageAppended(session.Id, constant.ChatMessageRoleUser, isVoice))
	}

	aiResponse := s.composer.Compose(ctx, req.Message, mode, session.Id, history)

	serialized, err := json.Marshal(aiResponse)
	if err != nil {
		serialized = []byte("{}")
	}
	if updated, ok := s.repo.AppendMessage(session.Id, entity.ChatMessage{
		Role:    constant.ChatMessageRoleAssistant,
		Content: string(serialized),
	}); ok {
		s.publish(events.NewMessageAppended(session.Id, constant.ChatMessageRoleAssistant, false))
		s.sessionArc.Save(ctx, updated)
	}

	return aiResponse
}

func (s *chatService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	mode := req.InitialMode
	if mode == "" {
		mode = constant.ModeGuide
	}

	session := s.repo.Create(mode)
	s.logger.Info("ChatService", "Session created", map[string]interface{}{"session_id": session.Id, "mode": mode})
	s.publish(events.NewSessionCreated(session.Id, mode))
	s.sessionArc.Save(ctx, session)

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error) {
	sid, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "invalid session id")
	}

	session, ok := s.repo.Get(sid)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "session not found")
	}

	messages := make([]dto.ChatMessageDTO, 0, len(session.Messages))
	for _, m := range session.Messages {
		messages = append(messages, dto.ChatMessageDTO{
			Role:          m.Role,
			Content:       m.Content,
			IsVoice:       m.IsVoice,
			Transcription: m.Transcription,
		})
	}

	return &dto.GetSessionResponse{
		Id:          session.Id,
		CurrentMode: session.CurrentMode,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
		Messages:    messages,
	}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionId string) error {
	sid, err := uuid.Parse(sessionId)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "invalid session id")
	}

	if !s.repo.Delete(sid) {
		return serverutils.NewApiError(fiber.StatusNotFound, "session not found")
	}

	s.publish(events.NewSessionDeleted(sid))
	s.sessionArc.Delete(ctx, sid)
	return nil
}

func (s *chatService) Health(ctx context.Context) *dto.HealthResponse {
	stats := s.repo.Stats(s.staleAfter)
	return &dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		SessionStats: dto.SessionStatsDTO{
			TotalSessions:  stats.TotalSessions,
			ActiveSessions: stats.ActiveSessions,
			TotalMessages:  stats.TotalMessages,
		},
	}
}

func (s *chatService) SweepExpired(ctx context.Context) int {
	removed := s.repo.SweepExpired(s.staleAfter)
	if removed > 0 {
		s.logger.Info("ChatService", "Swept expired sessions", map[string]interface{}{"removed": removed})
		s.publish(events.NewSessionsSwept(removed))
	}
	return removed
}

func (s *chatService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishChatEvent(event); err != nil {
		s.logger.Warn("ChatService", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func nextModeInCycle(mode string) string {
	for i, m := range constant.ModeCycle {
		if m == mode {
			return constant.ModeCycle[(i+1)%len(constant.ModeCycle)]
		}
	}
	return constant.ModeCycle[0]
}

func lastUserMessage(messages []entity.ChatMessage) (entity.ChatMessage, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == constant.ChatMessageRoleUser {
			return messages[i], true
		}
	}
	return entity.ChatMessage{}, false
}

func toLLMHistory(messages []entity.ChatMessage) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history
}
