package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CorsAllowedOrigins string // Comma-separated allowed origins (empty = *, dev mode)

	// Gemini (default conversation provider)
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI (alternative conversation provider: Whisper transcription + chat)
	OpenAIKey string

	// ConversationProvider selects which generative backend answers the
	// uploaded audio: "gemini" or "openai".
	ConversationProvider string

	// Google Cloud Text-to-Speech. The raw JSON credential blob comes from the
	// environment; Load writes it to a temp file and records the path here so
	// the client can be handed an explicit credential file instead of relying
	// on ambient lookups.
	TTSCredentialsJSON string
	TTSCredentialsPath string

	// ElevenLabs (alternative TTS provider — used when the key is set)
	ElevenLabsKey     string
	ElevenLabsVoiceID string
	ElevenLabsURL     string

	// Request limits
	MaxUploadBytes             int64
	MaxConcurrentConversations int
	ConversationTimeoutSeconds int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                       getEnv("PORT", "8000"),
		CorsAllowedOrigins:         getEnv("CORS_ALLOWED_ORIGINS", ""),
		GeminiAPIKey:               getEnv("GEMINI_API_KEY", ""),
		GeminiModel:                getEnv("GEMINI_MODEL", "talking-agent"),
		OpenAIKey:                  getEnv("OPENAI_API_KEY", ""),
		ConversationProvider:       getEnv("CONVERSATION_PROVIDER", "gemini"),
		TTSCredentialsJSON:         getEnv("TTS_CREDENTIALS_JSON", ""),
		ElevenLabsKey:              getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID:          getEnv("ELEVENLABS_VOICE_ID", ""),
		ElevenLabsURL:              getEnv("ELEVENLABS_API_URL", ""),
		MaxUploadBytes:             getEnvInt64("MAX_UPLOAD_BYTES", 25<<20),
		MaxConcurrentConversations: getEnvInt("MAX_CONCURRENT_CONVERSATIONS", 8),
		ConversationTimeoutSeconds: getEnvInt("CONVERSATION_TIMEOUT_SECONDS", 120),
	}

	switch cfg.ConversationProvider {
	case "gemini", "openai":
	default:
		return nil, fmt.Errorf("CONVERSATION_PROVIDER must be \"gemini\" or \"openai\", got %q", cfg.ConversationProvider)
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	if cfg.MaxConcurrentConversations <= 0 {
		return nil, fmt.Errorf("MAX_CONCURRENT_CONVERSATIONS must be positive, got %d", cfg.MaxConcurrentConversations)
	}

	// Missing provider credentials are call-time failures, not startup
	// failures — the service starts so health checks keep working.
	if cfg.ConversationProvider == "gemini" && cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY environment variable not set")
	}
	if cfg.ConversationProvider == "openai" && cfg.OpenAIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY environment variable not set")
	}

	if cfg.TTSCredentialsJSON != "" {
		path, err := writeCredentialsFile(cfg.TTSCredentialsJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to write TTS credentials file: %w", err)
		}
		cfg.TTSCredentialsPath = path
		// Exported for any library that resolves credentials via ADC.
		os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path)
	} else if cfg.ElevenLabsKey == "" {
		log.Println("WARNING: TTS_CREDENTIALS_JSON environment variable not set")
	}

	return cfg, nil
}

// writeCredentialsFile materializes the service-account JSON blob to disk so
// the Text-to-Speech client can be pointed at a credential file.
func writeCredentialsFile(blob string) (string, error) {
	f, err := os.CreateTemp("", "tts-credentials-*.json")
	if err != nil {
		return "", err
	}

	if _, err := f.WriteString(blob); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return i
		}
	}
	return defaultValue
}
