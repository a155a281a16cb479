package dto

// TranscribeRequest carries base64-encoded audio for speech-to-text.
type TranscribeRequest struct {
	AudioData string `json:"audioData" validate:"required"`
	SessionId string `json:"sessionId,omitempty"`
}

type TranscribeResponse struct {
	Transcription string `json:"transcription"`
	Language      string `json:"language"`
}

type SpeakRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language,omitempty"`
	Voice    string `json:"voice,omitempty"`
}

// SpeakResponse returns synthesized audio as base64.
type SpeakResponse struct {
	AudioData string `json:"audioData"`
}

type VoiceChatRequest struct {
	AudioData string `json:"audioData" validate:"required"`
	SessionId string `json:"sessionId,omitempty"`
	ForceMode string `json:"forceMode,omitempty" validate:"omitempty,oneof=guide socrates hard"`
}

// SectionAudio holds one synthesized clip per spoken response section,
// base64-encoded.
type SectionAudio struct {
	ActiveListening string `json:"activeListening,omitempty"`
	StepA           string `json:"stepA,omitempty"`
	StepB           string `json:"stepB,omitempty"`
	StepC           string `json:"stepC,omitempty"`
	Feedback        string `json:"feedback,omitempty"`
}

type VoiceChatResponse struct {
	Success       bool          `json:"success"`
	Transcription string        `json:"transcription"`
	Data          *AIResponse   `json:"data,omitempty"`
	Audio         *SectionAudio `json:"audio,omitempty"`
	Error         string        `json:"error,omitempty"`
	SessionId     string        `json:"sessionId"`
}
