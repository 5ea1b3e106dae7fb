package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL string   `env:"DATABASE_URL" envDefault:"./ayurhealth.db"`
	APIPort     string   `env:"API_PORT" envDefault:"8001"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`

	// LLMProvider selects the text-generation backend: gemini, openai or groq.
	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GroqAPIKey   string `env:"GROQ_API_KEY"`
	GroqModel    string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	switch cfg.LLMProvider {
	case "gemini", "openai", "groq":
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER %q: must be gemini, openai or groq", cfg.LLMProvider)
	}

	return &cfg, nil
}
