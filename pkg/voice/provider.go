package voice

import "context"

// Transcription is the speech-to-text outcome.
type Transcription struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Provider is the outbound voice capability: speech-to-text and
// text-to-speech.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte) (*Transcription, error)
	Synthesize(ctx context.Context, text, language, voice string) ([]byte, error)
}
