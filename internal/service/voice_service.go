package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"insightsmith-be/internal/dto"
	"insightsmith-be/internal/pkg/logger"
	"insightsmith-be/internal/pkg/serverutils"
	"insightsmith-be/pkg/voice"

	"github.com/gofiber/fiber/v2"
)

type IVoiceService interface {
	Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscribeResponse, error)
	Speak(ctx context.Context, req *dto.SpeakRequest) (*dto.SpeakResponse, error)

	// VoiceChat never fails hard: transcription or synthesis problems are
	// reported inside the response envelope.
	VoiceChat(ctx context.Context, req *dto.VoiceChatRequest) *dto.VoiceChatResponse
}

type voiceService struct {
	provider        voice.Provider
	chatService     IChatService
	defaultLanguage string
	defaultVoice    string
	logger          logger.ILogger
}

func NewVoiceService(
	provider voice.Provider,
	chatService IChatService,
	defaultLanguage string,
	defaultVoice string,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		provider:        provider,
		chatService:     chatService,
		defaultLanguage: defaultLanguage,
		defaultVoice:    defaultVoice,
		logger:          log,
	}
}

func (s *voiceService) Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscribeResponse, error) {
	if s.provider == nil {
		return nil, serverutils.NewApiError(fiber.StatusServiceUnavailable, "voice provider is not configured")
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "audioData must be base64 encoded")
	}

	result, err := s.provider.Transcribe(ctx, audio)
	if err != nil {
		s.logger.Error("VoiceService", "Transcription failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewApiError(fiber.StatusInternalServerError, "Failed to transcribe voice input")
	}

	return &dto.TranscribeResponse{
		Transcription: result.Text,
		Language:      result.Language,
	}, nil
}

func (s *voiceService) Speak(ctx context.Context, req *dto.SpeakRequest) (*dto.SpeakResponse, error) {
	if s.provider == nil {
		return nil, serverutils.NewApiError(fiber.StatusServiceUnavailable, "voice provider is not configured")
	}

	language := req.Language
	if language == "" {
		language = s.defaultLanguage
	}
	voiceName := req.Voice
	if voiceName == "" {
		voiceName = s.defaultVoice
	}

	audio, err := s.provider.Synthesize(ctx, req.Text, language, voiceName)
	if err != nil {
		s.logger.Error("VoiceService", "Speech synthesis failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewApiError(fiber.StatusInternalServerError, "Failed to generate voice response")
	}

	return &dto.SpeakResponse{AudioData: base64.StdEncoding.EncodeToString(audio)}, nil
}

func (s *voiceService) VoiceChat(ctx context.Context, req *dto.VoiceChatRequest) *dto.VoiceChatResponse {
	transcribed, err := s.Transcribe(ctx, &dto.TranscribeRequest{
		AudioData: req.AudioData,
		SessionId: req.SessionId,
	})
	if err != nil {
		return &dto.VoiceChatResponse{
			Success:   false,
			Error:     "Failed to process voice input",
			SessionId: req.SessionId,
		}
	}

	chatResp := s.chatService.SendTranscribedChat(ctx, &dto.ChatRequest{
		Message:   transcribed.Transcription,
		SessionId: req.SessionId,
		ForceMode: req.ForceMode,
	})
	if !chatResp.Success || chatResp.Data == nil {
		return &dto.VoiceChatResponse{
			Success:       false,
			Transcription: transcribed.Transcription,
			Error:         chatResp.Error,
			SessionId:     chatResp.SessionId,
		}
	}

	audio := s.synthesizeSections(ctx, chatResp.Data, transcribed.Language)

	return &dto.VoiceChatResponse{
		Success:       true,
		Transcription: transcribed.Transcription,
		Data:          chatResp.Data,
		Audio:         audio,
		SessionId:     chatResp.SessionId,
	}
}

// synthesizeSections renders each spoken part of the response. A section
// that fails to synthesize is simply left empty.
func (s *voiceService) synthesizeSections(ctx context.Context, resp *dto.AIResponse, language string) *dto.SectionAudio {
	if language == "" {
		language = s.defaultLanguage
	}

	return &dto.SectionAudio{
		ActiveListening: s.synthesizeOne(ctx, spokenActiveListening(resp.ActiveListening), language),
		StepA:           s.synthesizeOne(ctx, resp.KnowledgeSteps.StepA, language),
		StepB:           s.synthesizeOne(ctx, resp.KnowledgeSteps.StepB, language),
		StepC:           s.synthesizeOne(ctx, resp.KnowledgeSteps.StepC, language),
		Feedback:        s.synthesizeOne(ctx, resp.FeedbackRequest, language),
	}
}

func (s *voiceService) synthesizeOne(ctx context.Context, text, language string) string {
	if text == "" {
		return ""
	}
	audio, err := s.provider.Synthesize(ctx, text, language, s.defaultVoice)
	if err != nil {
		s.logger.Warn("VoiceService", "Section synthesis failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	return base64.StdEncoding.EncodeToString(audio)
}

func spokenActiveListening(al dto.ActiveListening) string {
	return fmt.Sprintf("%sに関するご相談として、%sの気持ちと合わせて受け止めました。", al.Intent, al.Emotion)
}
