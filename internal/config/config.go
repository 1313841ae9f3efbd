package config

import "github.com/caarlos0/env/v10"

// Config centralizes process configuration.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// LLMProvider selects the external responder: "openai", "gemini" or
	// "none". Without a provider the driver runs fully on local templates.
	LLMProvider       string `env:"LLM_PROVIDER" envDefault:"none"`
	LLMAPIKey         string `env:"LLM_API_KEY"`
	LLMBaseURL        string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiModel       string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	LLMTimeoutSeconds int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"10"`

	SessionSecret     string `env:"SESSION_SECRET"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES" envDefault:"1440"`

	MaxRounds int `env:"MAX_ROUNDS" envDefault:"8"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
