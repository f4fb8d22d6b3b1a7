package infra

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// Image provider selection. Gemini is the default edit backend; OpenAI
	// is available as an alternative.
	ImageProvider string `env:"IMAGE_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image-preview"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// History persistence. When DATABASE_URL is set the Postgres key-value
	// store is used; otherwise records live in files under DataDir.
	DatabaseURL string `env:"DATABASE_URL"`
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`
	HistoryKey  string `env:"HISTORY_KEY" envDefault:"generationHistory"`

	// Thumbnail bounds and JPEG qualities used when persisting history.
	SourceThumbMax     int `env:"SOURCE_THUMB_MAX" envDefault:"800"`
	SourceThumbQuality int `env:"SOURCE_THUMB_QUALITY" envDefault:"80"`
	ResultThumbMax     int `env:"RESULT_THUMB_MAX" envDefault:"400"`
	ResultThumbQuality int `env:"RESULT_THUMB_QUALITY" envDefault:"70"`

	HTTPTimeoutSeconds int `env:"HTTP_TIMEOUT_SECONDS" envDefault:"60"`
}

// LoadConfig parses configuration from the environment and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.SourceThumbMax <= 0 || cfg.ResultThumbMax <= 0 {
		return nil, fmt.Errorf("thumbnail bounds must be positive")
	}

	switch cfg.ImageProvider {
	case "gemini", "openai":
	default:
		return nil, fmt.Errorf("unsupported image provider %q", cfg.ImageProvider)
	}

	return cfg, nil
}
