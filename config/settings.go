package config

import (
	"fmt"
	"time"
)

// Session store drivers
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Settings holds everything the server reads from the environment.
type Settings struct {
	Port string

	// Upstream chat completions endpoint (Mistral by default, any
	// OpenAI-compatible provider works)
	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMTemperature float64
	LLMMaxTokens   int
	LLMTopP        float64

	RequestTimeout time.Duration

	SessionStore string
	RedisURL     string
	SessionTTL   time.Duration

	SupabaseURL string
	SupabaseKey string

	CORSOrigin string
}

// LoadSettings reads Settings from the environment, applying defaults.
func LoadSettings() Settings {
	return Settings{
		Port:           getEnvOrDefault("PORT", "8080"),
		LLMAPIKey:      getEnvOrDefault("MISTRAL_API_KEY", ""),
		LLMBaseURL:     getEnvOrDefault("MISTRAL_API_URL", "https://api.mistral.ai/v1"),
		LLMModel:       getEnvOrDefault("MISTRAL_MODEL", "mistral-small-latest"),
		LLMTimeout:     getDurationOrDefault("LLM_TIMEOUT", 30*time.Second),
		LLMTemperature: getFloatOrDefault("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:   getIntOrDefault("LLM_MAX_TOKENS", 800),
		LLMTopP:        getFloatOrDefault("LLM_TOP_P", 0.9),
		RequestTimeout: getDurationOrDefault("REQUEST_TIMEOUT", 45*time.Second),
		SessionStore:   getEnvOrDefault("SESSION_STORE", StoreMemory),
		RedisURL:       getEnvOrDefault("REDIS_URL", ""),
		SessionTTL:     getDurationOrDefault("SESSION_TTL", 24*time.Hour),
		SupabaseURL:    getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:    getEnvOrDefault("SUPABASE_KEY", ""),
		CORSOrigin:     getEnvOrDefault("CORS_ORIGIN", "*"),
	}
}

// Validate checks that required fields are set.
func (s Settings) Validate() error {
	if s.LLMAPIKey == "" {
		return fmt.Errorf("MISTRAL_API_KEY is required")
	}
	if s.LLMBaseURL == "" {
		return fmt.Errorf("MISTRAL_API_URL is required")
	}
	if s.LLMModel == "" {
		return fmt.Errorf("MISTRAL_MODEL is required")
	}
	switch s.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q (supported: %s, %s)", s.SessionStore, StoreMemory, StoreRedis)
	}
	if s.LLMTemperature < 0 || s.LLMTemperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	if s.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be > 0")
	}
	return nil
}

// SupabaseEnabled reports whether mood/PHQ-9/activity persistence is configured.
func (s Settings) SupabaseEnabled() bool {
	return s.SupabaseURL != "" && s.SupabaseKey != ""
}
