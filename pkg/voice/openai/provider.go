package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"insightsmith-be/pkg/voice"
)

// OpenAIVoiceProvider implements speech-to-text via the transcriptions API
// (whisper) and text-to-speech via the speech API.
type OpenAIVoiceProvider struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	SpeechModel     string
	Client          *http.Client
}

var _ voice.Provider = &OpenAIVoiceProvider{}

func NewOpenAIVoiceProvider(apiKey, baseURL, transcribeModel, speechModel string) *OpenAIVoiceProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIVoiceProvider{
		APIKey:          apiKey,
		BaseURL:         baseURL,
		TranscribeModel: transcribeModel,
		SpeechModel:     speechModel,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (p *OpenAIVoiceProvider) Transcribe(ctx context.Context, audio []byte) (*voice.Transcription, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.webm")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("write audio payload: %w", err)
	}
	if err := writer.WriteField("model", p.TranscribeModel); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("write format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	url := p.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	language := parsed.Language
	if language == "" {
		language = "ja"
	}

	return &voice.Transcription{Text: parsed.Text, Language: language}, nil
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

func (p *OpenAIVoiceProvider) Synthesize(ctx context.Context, text, language, voiceName string) ([]byte, error) {
	payload, err := json.Marshal(speechRequest{
		Model: p.SpeechModel,
		Input: text,
		Voice: voiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech error: status %d, body: %s", resp.StatusCode, string(audio))
	}

	return audio, nil
}
