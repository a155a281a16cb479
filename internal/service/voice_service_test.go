package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"insightsmith-be/internal/constant"
	"insightsmith-be/internal/dto"
	"insightsmith-be/internal/repository/memory"
	"insightsmith-be/pkg/composer"
	"insightsmith-be/pkg/detector"
	"insightsmith-be/pkg/voice"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVoiceProvider struct {
	transcription string
	language      string
	failASR       bool
	failTTS       bool
}

func (f *fakeVoiceProvider) Transcribe(ctx context.Context, audio []byte) (*voice.Transcription, error) {
	if f.failASR {
		return nil, errors.New("asr unavailable")
	}
	return &voice.Transcription{Text: f.transcription, Language: f.language}, nil
}

func (f *fakeVoiceProvider) Synthesize(ctx context.Context, text, language, voiceName string) ([]byte, error) {
	if f.failTTS {
		return nil, errors.New("tts unavailable")
	}
	return []byte("audio:" + text[:min(len(text), 8)]), nil
}

func newTestVoiceService(t *testing.T, provider voice.Provider) (IVoiceService, *memory.SessionRepository) {
	t.Helper()

	repo := memory.NewSessionRepository()
	cmp := composer.NewComposer(nil, nil, constant.SearchTriggers, 5, log.New(io.Discard, "", 0))
	det := detector.New(constant.ModeCycle, constant.ModeDetectionPhrases, constant.HelpPhrases, constant.ModeSwitchPhrases, constant.ModeGuide)
	chat := NewChatService(repo, nil, cmp, det, nil, time.Hour, nopLogger{})
	return NewVoiceService(provider, chat, "ja", "alloy", nopLogger{}), repo
}

func TestTranscribe(t *testing.T) {
	svc, _ := newTestVoiceService(t, &fakeVoiceProvider{transcription: "転職の相談です", language: "ja"})

	payload := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	resp, err := svc.Transcribe(context.Background(), &dto.TranscribeRequest{AudioData: payload})
	require.NoError(t, err)
	assert.Equal(t, "転職の相談です", resp.Transcription)
	assert.Equal(t, "ja", resp.Language)
}

func TestTranscribe_RejectsBadBase64(t *testing.T) {
	svc, _ := newTestVoiceService(t, &fakeVoiceProvider{})

	_, err := svc.Transcribe(context.Background(), &dto.TranscribeRequest{AudioData: "%%%not-base64%%%"})
	assert.Error(t, err)
}

func TestTranscribe_WithoutProvider(t *testing.T) {
	svc, _ := newTestVoiceService(t, nil)

	payload := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	_, err := svc.Transcribe(context.Background(), &dto.TranscribeRequest{AudioData: payload})
	assert.Error(t, err)
}

func TestSpeak(t *testing.T) {
	svc, _ := newTestVoiceService(t, &fakeVoiceProvider{})

	resp, err := svc.Speak(context.Background(), &dto.SpeakRequest{Text: "こんにちは"})
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(resp.AudioData)
	require.NoError(t, err)
	assert.NotEmpty(t, decoded)
}

func TestVoiceChat_FullTurn(t *testing.T) {
	svc, repo := newTestVoiceService(t, &fakeVoiceProvider{transcription: "厳しくお願いします", language: "ja"})

	payload := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	resp := svc.VoiceChat(context.Background(), &dto.VoiceChatRequest{AudioData: payload})

	require.True(t, resp.Success)
	assert.Equal(t, "厳しくお願いします", resp.Transcription)
	require.NotNil(t, resp.Data)
	assert.Equal(t, constant.ModeHard, resp.Data.Mode)

	require.NotNil(t, resp.Audio)
	assert.NotEmpty(t, resp.Audio.StepA)
	assert.NotEmpty(t, resp.Audio.StepC)
	assert.NotEmpty(t, resp.Audio.Feedback)

	_, ok := repo.Get(mustParseUUID(t, resp.SessionId))
	assert.True(t, ok)
}

func mustParseUUID(t *testing.T, raw string) uuid.UUID {
	t.Helper()
	sid, err := uuid.Parse(raw)
	require.NoError(t, err)
	return sid
}

func TestVoiceChat_StoresVoiceProvenance(t *testing.T) {
	svc, repo := newTestVoiceService(t, &fakeVoiceProvider{transcription: "貯金について", language: "ja"})

	payload := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	resp := svc.VoiceChat(context.Background(), &dto.VoiceChatRequest{AudioData: payload})
	require.True(t, resp.Success)

	sid := mustParseUUID(t, resp.SessionId)
	session, ok := repo.Get(sid)
	require.True(t, ok)
	require.NotEmpty(t, session.Messages)
	assert.True(t, session.Messages[0].IsVoice)
	assert.Equal(t, "貯金について", session.Messages[0].Transcription)
}

func TestVoiceChat_TranscriptionFailure(t *testing.T) {
	svc, _ := newTestVoiceService(t, &fakeVoiceProvider{failASR: true})

	payload := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	resp := svc.VoiceChat(context.Background(), &dto.VoiceChatRequest{AudioData: payload})

	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to process voice input", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestVoiceChat_SynthesisFailureStillAnswers(t *testing.T) {
	svc, _ := newTestVoiceService(t, &fakeVoiceProvider{transcription: "健康について", language: "ja", failTTS: true})

	payload := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	resp := svc.VoiceChat(context.Background(), &dto.VoiceChatRequest{AudioData: payload})

	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	require.NotNil(t, resp.Audio)
	assert.Empty(t, resp.Audio.StepA)
}
