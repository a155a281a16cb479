package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Ai      AIConfig
	Voice   VoiceConfig
	Search  SearchConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EventTopic         string
}

type APIKeys struct {
	OpenAI    string
	WebSearch string
}

type AIConfig struct {
	LLMProvider   string // "openai", "ollama" or "rules" (no external model)
	LLMModel      string // e.g. "gpt-4o", "llama3"
	OllamaBaseURL string
	OpenAIBaseURL string
}

type VoiceConfig struct {
	TranscribeModel string
	SpeechModel     string
	DefaultVoice    string
	DefaultLanguage string
}

type SearchConfig struct {
	BaseURL    string
	MaxResults int
}

type SessionConfig struct {
	StaleAfter    time.Duration // sessions untouched this long get swept
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3001"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3001"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			EventTopic:         getEnv("CHAT_EVENT_TOPIC", "chat_events"),
		},
		Keys: APIKeys{
			OpenAI:    getEnv("OPENAI_API_KEY", ""),
			WebSearch: getEnv("WEB_SEARCH_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "rules"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		Voice: VoiceConfig{
			TranscribeModel: getEnv("VOICE_TRANSCRIBE_MODEL", "whisper-1"),
			SpeechModel:     getEnv("VOICE_SPEECH_MODEL", "tts-1"),
			DefaultVoice:    getEnv("VOICE_DEFAULT_VOICE", "alloy"),
			DefaultLanguage: getEnv("VOICE_DEFAULT_LANGUAGE", "ja"),
		},
		Search: SearchConfig{
			BaseURL:    getEnv("WEB_SEARCH_BASE_URL", ""),
			MaxResults: getEnvAsInt("WEB_SEARCH_MAX_RESULTS", 5),
		},
		Session: SessionConfig{
			StaleAfter:    getEnvAsDuration("SESSION_STALE_AFTER", time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
